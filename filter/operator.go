package filter

// Operator compares a record attribute with a filter value.
type Operator int

const (
	OpNone Operator = iota
	OpEq
	OpNe
	OpContains
	OpNotContains
	OpLt
	OpLe
	OpGt
	OpGe
)

var opStrings = map[Operator]string{
	OpNone:        "",
	OpEq:          "=",
	OpNe:          "!=",
	OpContains:    "~",
	OpNotContains: "!~",
	OpLt:          "<",
	OpLe:          "<=",
	OpGt:          ">",
	OpGe:          ">=",
}

func (op Operator) String() string {
	return opStrings[op]
}

// complement returns the operator matching exactly what op does not.
func (op Operator) complement() (Operator, bool) {

	switch op {
	case OpEq:
		return OpNe, true
	case OpNe:
		return OpEq, true
	case OpContains:
		return OpNotContains, true
	case OpNotContains:
		return OpContains, true
	}
	return op, false
}

// opTokens in match order, longest first.
var opTokens = []struct {
	text string
	op   Operator
}{
	{"<=", OpLe},
	{">=", OpGe},
	{"=", OpEq},
	{"~", OpContains},
	{"<", OpLt},
	{">", OpGt},
}

// opChars may not appear in a filter name.
const opChars = "!=~<>"

// matchOperator finds the operator at the start of text.
func matchOperator(text string) (op Operator, size int) {

	for _, tok := range opTokens {
		if len(text) >= len(tok.text) && text[:len(tok.text)] == tok.text {
			op = tok.op
			size = len(tok.text)
			return
		}
	}
	return
}
