package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/token"
)

func span(start, end int) token.Span {
	return token.Span{Start: start, End: end}
}

func TestInsertAllocatesFreshIDs(t *testing.T) {
	e := NewEngine()

	a := e.InsertType(TNum{}, span(0, 1))
	b := e.InsertUnknown(span(2, 3))
	c := e.Insert(Ref{ID: a}, span(4, 5))

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, c)
	assert.Equal(t, span(2, 3), e.Span(b))
}

func TestUnifyUnknownBecomesReference(t *testing.T) {
	e := NewEngine()

	concrete := e.InsertType(TNum{}, span(0, 1))
	unknown := e.InsertUnknown(span(4, 5))

	require.Nil(t, e.Unify(unknown, concrete))

	ty, d := e.Reconstruct(unknown)
	require.Nil(t, d)
	assert.Equal(t, TNum{}, ty)
}

func TestUnifyIsSymmetricForUnknowns(t *testing.T) {
	e := NewEngine()

	concrete := e.InsertType(TNum{}, span(0, 1))
	unknown := e.InsertUnknown(span(4, 5))

	require.Nil(t, e.Unify(concrete, unknown))

	ty, d := e.Reconstruct(unknown)
	require.Nil(t, d)
	assert.Equal(t, TNum{}, ty)
}

func TestUnifySameConcreteSucceeds(t *testing.T) {
	e := NewEngine()

	a := e.InsertType(TNum{}, span(0, 1))
	b := e.InsertType(TNum{}, span(2, 3))

	assert.Nil(t, e.Unify(a, b))
}

func TestUnifyChasesReferenceChains(t *testing.T) {
	e := NewEngine()

	// concrete <- r1 <- r2, then unify r2 with a fresh unknown: the unknown
	// must resolve through the whole chain.
	concrete := e.InsertType(TNum{}, span(0, 1))
	r1 := e.Insert(Ref{ID: concrete}, span(1, 2))
	r2 := e.Insert(Ref{ID: r1}, span(2, 3))
	unknown := e.InsertUnknown(span(3, 4))

	require.Nil(t, e.Unify(r2, unknown))

	ty, d := e.Reconstruct(unknown)
	require.Nil(t, d)
	assert.Equal(t, TNum{}, ty)
}

func TestUnifyMismatchCarriesBothSpans(t *testing.T) {
	e := NewEngine()

	a := e.InsertType(TNum{}, span(0, 3))
	b := e.InsertType(fakeType{name: "Bool"}, span(7, 11))

	d := e.Unify(a, b)
	require.NotNil(t, d)

	mismatch, ok := d.(*diagnostics.TypeMismatch)
	require.True(t, ok, "expected *diagnostics.TypeMismatch, got %T", d)
	assert.Equal(t, span(0, 3), mismatch.Span1)
	assert.Equal(t, span(7, 11), mismatch.Span2)
	assert.Equal(t, "Num", mismatch.Ty1)
	assert.Equal(t, "Bool", mismatch.Ty2)
}

func TestUnifyMismatchThroughReferences(t *testing.T) {
	e := NewEngine()

	num := e.InsertType(TNum{}, span(0, 3))
	numRef := e.Insert(Ref{ID: num}, span(3, 4))
	other := e.InsertType(fakeType{name: "Bool"}, span(7, 11))

	d := e.Unify(numRef, other)
	require.NotNil(t, d)

	mismatch, ok := d.(*diagnostics.TypeMismatch)
	require.True(t, ok)
	// Spans are those of the concrete slots at the ends of the chains, not
	// of the intermediate references.
	assert.Equal(t, span(0, 3), mismatch.Span1)
	assert.Equal(t, span(7, 11), mismatch.Span2)
}

func TestReconstructUnresolvedChainFails(t *testing.T) {
	e := NewEngine()

	u1 := e.InsertUnknown(span(0, 1))
	u2 := e.InsertUnknown(span(2, 3))
	require.Nil(t, e.Unify(u1, u2))

	_, d := e.Reconstruct(u1)
	require.NotNil(t, d)
	_, ok := d.(*diagnostics.CannotInferType)
	assert.True(t, ok, "expected *diagnostics.CannotInferType, got %T", d)

	// Later constraining the chain makes both resolvable.
	concrete := e.InsertType(TNum{}, span(4, 5))
	require.Nil(t, e.Unify(u2, concrete))

	ty, d := e.Reconstruct(u1)
	require.Nil(t, d)
	assert.Equal(t, TNum{}, ty)
}

func TestReconstructConcrete(t *testing.T) {
	e := NewEngine()

	id := e.InsertType(TNum{}, span(0, 1))
	ty, d := e.Reconstruct(id)
	require.Nil(t, d)
	assert.Equal(t, TNum{}, ty)
}

// fakeType stands in for a second primitive kind; the engine is written
// type-generically and must not care that the language only has Num today.
type fakeType struct {
	name string
}

func (f fakeType) String() string { return f.name }
func (fakeType) typeNode()        {}
