package typesystem

// Type is the interface for resolved, concrete types. The set is closed:
// the language currently has a single numeric type, but the engine and the
// operator tables are written against this interface so further kinds slot
// in without structural change.
type Type interface {
	String() string
	typeNode()
}

// TNum is the numeric type.
type TNum struct{}

func (TNum) String() string { return "Num" }
func (TNum) typeNode()      {}

// TypeInfo is a provisional type description held by an engine slot: an
// unresolved marker, a forwarding reference to another slot, or a concrete
// type.
type TypeInfo interface {
	String() string
	typeInfoNode()
}

// Unknown marks a slot whose type has not been determined yet.
type Unknown struct{}

func (Unknown) String() string { return "?" }
func (Unknown) typeInfoNode()  {}

// Ref forwards resolution to another slot, union-find style.
type Ref struct {
	ID TypeID
}

func (Ref) String() string { return "ref" }
func (Ref) typeInfoNode()  {}

// Known holds a concrete type.
type Known struct {
	Type Type
}

func (k Known) String() string { return k.Type.String() }
func (k Known) typeInfoNode()  {}

// FromType wraps a concrete type as slot content.
func FromType(t Type) TypeInfo { return Known{Type: t} }
