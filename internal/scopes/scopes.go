// Package scopes provides a generic stack of lexical frames. It is
// independent of the key and value types used by the checker so it can be
// reused and tested on its own.
package scopes

// Scopes is an ordered sequence of frames, innermost last. Lookup walks
// from the innermost frame outwards; insertion always writes into the
// innermost frame, overwriting any binding for the same key in that frame
// only.
type Scopes[K comparable, V any] struct {
	frames []map[K]V
}

// New returns a scope stack with a single root frame.
func New[K comparable, V any]() *Scopes[K, V] {
	return &Scopes[K, V]{frames: []map[K]V{{}}}
}

// Push creates a new innermost frame.
func (s *Scopes[K, V]) Push() {
	s.frames = append(s.frames, map[K]V{})
}

// Pop discards the innermost frame together with its bindings. Calling Pop
// with no frame present is a programmer error and panics.
func (s *Scopes[K, V]) Pop() {
	if len(s.frames) == 0 {
		panic("scopes: pop with no frame present")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Insert binds key to value in the innermost frame.
func (s *Scopes[K, V]) Insert(key K, value V) {
	s.frames[len(s.frames)-1][key] = value
}

// Get returns the nearest enclosing binding for key, walking frames from
// innermost to outermost.
func (s *Scopes[K, V]) Get(key K) (V, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][key]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Depth returns the number of frames currently on the stack.
func (s *Scopes[K, V]) Depth() int { return len(s.frames) }
