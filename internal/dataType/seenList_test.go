package dataType

import (
	"fmt"
	"testing"
)

func TestSeenListFirstThenDuplicate(t *testing.T) {
	s := NewSeenList(10)
	k := SeenKey("A1B2C3", "1000")

	if s.CheckAndAdd(k) {
		t.Fatal("first CheckAndAdd returned true")
	}
	for i := 0; i < 3; i++ {
		if !s.CheckAndAdd(k) {
			t.Fatal("repeat CheckAndAdd returned false")
		}
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestSeenListEvictsOldestAtCapacity(t *testing.T) {
	s := NewSeenList(3)
	keys := make([]string, 4)
	for i := range keys {
		keys[i] = SeenKey("node", fmt.Sprintf("%06d", i))
		s.CheckAndAdd(keys[i])
	}

	if s.Len() != 3 {
		t.Fatalf("len = %d, want capacity 3", s.Len())
	}
	if s.Contains(keys[0]) {
		t.Error("oldest key still a member after eviction")
	}
	for _, k := range keys[1:] {
		if !s.Contains(k) {
			t.Errorf("key %q evicted prematurely", k)
		}
	}

	// The evicted key is treated as brand new again.
	if s.CheckAndAdd(keys[0]) {
		t.Error("evicted key reported as duplicate")
	}
}

func TestSeenListEvictionOrderIsInsertionOrder(t *testing.T) {
	s := NewSeenList(2)
	a := SeenKey("a", "1")
	b := SeenKey("b", "1")
	c := SeenKey("c", "1")

	s.CheckAndAdd(a)
	s.CheckAndAdd(b)
	s.CheckAndAdd(a) // duplicate, must not refresh position
	s.CheckAndAdd(c) // evicts a, the oldest insertion

	if s.Contains(a) {
		t.Error("a should have been evicted")
	}
	if !s.Contains(b) || !s.Contains(c) {
		t.Error("b and c should remain")
	}
}

func TestSeenListLongRun(t *testing.T) {
	s := NewSeenList(400)
	for i := 0; i < 10_000; i++ {
		s.CheckAndAdd(SeenKey("node", fmt.Sprintf("%06d", i)))
		if s.Len() > 400 {
			t.Fatalf("size %d exceeded capacity at insert %d", s.Len(), i)
		}
	}
	if s.Len() != 400 {
		t.Errorf("len = %d, want 400", s.Len())
	}
}
