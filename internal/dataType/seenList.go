package dataType

// SeenList is a fixed-capacity, insertion-ordered record of already processed
// message keys. Presence of a key means the message must not be delivered or
// relayed again. When the list grows past capacity the oldest entries are
// evicted, so an old message can reappear and be treated as new; bounded
// memory wins over perfect loop suppression.
//
// Not safe for concurrent use: the mesh node serializes all access on its
// run loop goroutine.
type SeenList struct {
	keys     []string
	index    map[string]struct{}
	capacity int
}

func NewSeenList(capacity int) *SeenList {
	return &SeenList{
		index:    make(map[string]struct{}, capacity),
		capacity: capacity,
	}
}

// SeenKey builds the dedupe key for an origin/message-id pair.
func SeenKey(origin, messageID string) string {
	return origin + ":" + messageID
}

// CheckAndAdd reports whether key is already a member. If not, it appends the
// key at the tail and evicts from the head until the list is back at capacity.
func (s *SeenList) CheckAndAdd(key string) bool {
	if _, ok := s.index[key]; ok {
		return true
	}
	s.keys = append(s.keys, key)
	s.index[key] = struct{}{}
	if over := len(s.keys) - s.capacity; over > 0 {
		for _, old := range s.keys[:over] {
			delete(s.index, old)
		}
		s.keys = s.keys[over:]
	}
	return false
}

// Contains reports membership without recording the key.
func (s *SeenList) Contains(key string) bool {
	_, ok := s.index[key]
	return ok
}

func (s *SeenList) Len() int {
	return len(s.keys)
}
