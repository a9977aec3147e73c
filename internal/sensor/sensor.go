package sensor

// Source yields the locally observed value that the node injects into the
// mesh as a frame payload.
type Source interface {
	Read() float64
}
