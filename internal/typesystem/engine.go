package typesystem

import (
	"fmt"
	"reflect"

	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/token"
)

// TypeID keys a slot in the engine. IDs grow monotonically and are never
// reused within one engine.
type TypeID int

type slot struct {
	info TypeInfo
	span token.Span
}

// Engine is the constraint store for one check: an arena of type slots
// addressed by TypeID. The engine owns the id-to-slot mapping exclusively;
// slots are only ever mutated through Unify. The whole engine is dropped as
// a unit when the check finishes.
type Engine struct {
	counter TypeID
	slots   map[TypeID]slot
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{slots: make(map[TypeID]slot)}
}

// Insert allocates a fresh slot with the given initial content and returns
// its id.
func (e *Engine) Insert(info TypeInfo, span token.Span) TypeID {
	e.counter++
	id := e.counter
	e.slots[id] = slot{info: info, span: span}
	return id
}

// InsertType allocates a slot already holding a concrete type.
func (e *Engine) InsertType(t Type, span token.Span) TypeID {
	return e.Insert(FromType(t), span)
}

// InsertUnknown allocates an unresolved slot.
func (e *Engine) InsertUnknown(span token.Span) TypeID {
	return e.Insert(Unknown{}, span)
}

// Unify asserts that slots a and b describe the same type. Forwarding
// references are chased all the way down before any decision is made, so a
// slot is never bound against a stale intermediate. When one side is
// unresolved it becomes a reference to the other (a first, then b, which
// keeps the binding direction deterministic). Two equal concrete types
// succeed without mutation; two differing concrete types fail with a
// type-mismatch carrying both original spans.
func (e *Engine) Unify(a, b TypeID) diagnostics.Diagnostic {
	slotA := e.slot(a)
	slotB := e.slot(b)

	if ref, ok := slotA.info.(Ref); ok {
		return e.Unify(ref.ID, b)
	}
	if ref, ok := slotB.info.(Ref); ok {
		return e.Unify(a, ref.ID)
	}

	if _, ok := slotA.info.(Unknown); ok {
		e.slots[a] = slot{info: Ref{ID: b}, span: slotB.span}
		return nil
	}
	if _, ok := slotB.info.(Unknown); ok {
		e.slots[b] = slot{info: Ref{ID: a}, span: slotA.span}
		return nil
	}

	knownA := slotA.info.(Known)
	knownB := slotB.info.(Known)
	if reflect.DeepEqual(knownA.Type, knownB.Type) {
		return nil
	}

	return &diagnostics.TypeMismatch{
		Span1: slotA.span,
		Span2: slotB.span,
		Ty1:   knownA.Type.String(),
		Ty2:   knownB.Type.String(),
	}
}

// Reconstruct dereferences the forwarding chain starting at id down to a
// concrete type. A chain terminating in an unresolved slot means the
// expression was under-constrained; this is the sole source of the
// cannot-infer-type diagnostic.
func (e *Engine) Reconstruct(id TypeID) (Type, diagnostics.Diagnostic) {
	start := e.slot(id)
	current := start
	for {
		switch info := current.info.(type) {
		case Known:
			return info.Type, nil
		case Ref:
			current = e.slot(info.ID)
		case Unknown:
			return nil, &diagnostics.CannotInferType{Span: start.span}
		default:
			panic(fmt.Sprintf("typesystem: unhandled slot content %T", info))
		}
	}
}

// Span returns the span recorded for a slot.
func (e *Engine) Span(id TypeID) token.Span {
	return e.slot(id).span
}

func (e *Engine) slot(id TypeID) slot {
	s, ok := e.slots[id]
	if !ok {
		panic(fmt.Sprintf("typesystem: unknown slot id %d", id))
	}
	return s
}
