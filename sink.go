package vt100

// KeypressSink is the dispatch contract the core hands decoded key
// events to. The binding table, dispatch policy, and the `Any` fallback
// it consults are owned by the enclosing application loop, not the
// core — this is an interface seam only, per §1's "out of scope" list
// and §6's "bindings public surface" note.
type KeypressSink interface {
	// Dispatch delivers one decoded key event. It reports whether the
	// event was consumed; an unconsumed event is the sink's own
	// fallback/propagation concern, not the core's.
	Dispatch(KeyPress) bool
}
