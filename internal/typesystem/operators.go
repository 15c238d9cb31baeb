package typesystem

// Operator applicability is table-driven: a combination is valid exactly
// when it has an entry, and the entry gives the result type. Adding a type
// or an operator means adding rows, not code.

type prefixKey struct {
	op      string
	operand string
}

type infixKey struct {
	left  string
	right string
}

var prefixTable = map[prefixKey]Type{
	{op: "-", operand: "Num"}: TNum{},
}

// All arithmetic infix operators share one applicability rule: they require
// same-type numeric operands. The table is keyed by the operand type pair;
// operand equality itself is enforced earlier by unification.
var infixTable = map[infixKey]Type{
	{left: "Num", right: "Num"}: TNum{},
}

// PrefixResult returns the result type of applying a prefix operator to an
// operand type, or false when no rule matches.
func PrefixResult(op string, operand Type) (Type, bool) {
	t, ok := prefixTable[prefixKey{op: op, operand: operand.String()}]
	return t, ok
}

// InfixResult returns the result type of a binary operation over the given
// operand types, or false when no rule matches.
func InfixResult(left, right Type) (Type, bool) {
	t, ok := infixTable[infixKey{left: left.String(), right: right.String()}]
	return t, ok
}
