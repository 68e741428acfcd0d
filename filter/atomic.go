package filter

import (
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	nt "torsift/entity"
)

// Atomic is a single filter: a spec, optionally compared against a value.
type Atomic struct {
	spec     *Spec
	op       Operator
	value    Value
	inverted bool
}

// NewAtomic builds an atomic filter, validating op and raw against spec's kind.
// Negated operators fold into their complement and may not be combined with inverted.
func NewAtomic(spec *Spec, op Operator, raw string, inverted bool) (at Atomic, err error) {

	if comp, ok := op.complement(); ok && inverted {
		op = comp
		inverted = false
	}

	if !slices.Contains(spec.Kind.Operators(), positive(op)) {
		err = semanticError(ErrorCodeInvalidOperator, spec.Name, op, raw)
		return
	}

	at = Atomic{spec: spec, op: op, inverted: inverted}
	if op == OpNone {
		return
	}

	at.value, err = parseValue(spec, op, raw)
	if err != nil {
		at = Atomic{}
	}
	return
}

// ParseAtomic parses a single filter such as "idle", "!private", "name~foo",
// "size>1G", "=exact" or a bare search term.
func ParseAtomic(reg *Registry, text string) (at Atomic, err error) {

	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	body := text[lead:]

	if strings.TrimSpace(body) == "" {
		at = Atomic{spec: All}
		return
	}

	inverted := false
	if body[0] == '!' && !(len(body) > 1 && (body[1] == '=' || body[1] == '~')) {
		inverted = true
		body = body[1:]
		lead++
	}

	idx := strings.IndexAny(body, opChars)
	if idx < 0 {
		at, err = parseBare(reg, text, strings.TrimSpace(body), inverted)
		return
	}

	name := strings.TrimSpace(body[:idx])
	rest := body[idx:]

	negated := false
	if rest[0] == '!' {
		negated = true
		rest = rest[1:]
	}

	op, size := matchOperator(rest)
	if size == 0 {
		err = parseError(ErrorCodeMalformedExpression, strings.TrimSpace(text), lead)
		return
	}

	raw := rest[size:]
	if strings.TrimSpace(raw) == "" {
		err = parseError(ErrorCodeMissingValue, strings.TrimSpace(text), lead)
		return
	}

	opAt := lead + idx
	if opAt > 0 && unicode.IsSpace(rune(text[opAt-1])) {
		raw = strings.TrimSpace(raw)
	}
	raw = unquote(raw)

	spec, err := resolve(reg, name)
	if err != nil {
		return
	}

	if negated {
		op, _ = op.complement()
		if op == OpLt || op == OpLe || op == OpGt || op == OpGe {
			inverted = !inverted
		}
	}

	at, err = NewAtomic(spec, op, raw, inverted)
	return
}

// Spec returns the filter's spec.
func (at Atomic) Spec() *Spec {
	if at.spec == nil {
		return All
	}
	return at.spec
}

// Operator returns the filter's operator, OpNone when it has none.
func (at Atomic) Operator() Operator {
	return at.op
}

// Value returns the filter's value, nil when it has no operator.
func (at Atomic) Value() Value {
	return at.value
}

// Inverted reports whether the result is negated.
func (at Atomic) Inverted() bool {
	return at.inverted
}

// IsAll reports whether the filter matches everything.
func (at Atomic) IsAll() bool {
	return at.Spec() == All && at.op == OpNone && !at.inverted
}

// NeededKeys returns the attributes Match reads.
func (at Atomic) NeededKeys() []string {
	return at.Spec().Keys()
}

// Equal reports whether two filters are the same.
func (at Atomic) Equal(other Atomic) bool {
	return at.String() == other.String()
}

// String returns the canonical form, which parses back to an equal filter.
func (at Atomic) String() string {

	spec := at.Spec()

	if at.op == OpNone {
		if at.inverted {
			return "!" + spec.Name
		}
		return spec.Name
	}

	var sb strings.Builder
	if !spec.Implied {
		sb.WriteString(spec.Name)
	}
	if at.inverted {
		sb.WriteString("!")
	}
	sb.WriteString(at.op.String())
	sb.WriteString(quote(at.value.String()))

	return sb.String()
}

// Match reports whether rec satisfies the filter.
func (at Atomic) Match(rec nt.Record) (ok bool, err error) {

	spec := at.Spec()

	if at.op == OpNone {
		ok, err = spec.test(rec)
	} else {
		ok, err = at.compare(rec)
	}
	if err != nil {
		ok = false
		return
	}

	if at.inverted {
		ok = !ok
	}
	return
}

// unexported

func (at Atomic) compare(rec nt.Record) (ok bool, err error) {

	val := rec.Get(at.spec.Key)
	defer func() {
		if err != nil {
			err = semanticError(ErrorCodeInvalidValue, at.spec.Name, at.op, val.String())
		}
	}()

	switch want := at.value.(type) {
	case Text:
		var got string
		got, err = val.Text()
		if err != nil {
			return
		}
		ok = compareText(at.spec.Kind, at.op, got, want)

	case Number:
		var got decimal.Decimal
		got, err = val.Decimal()
		if err != nil {
			return
		}
		ok = ordered(at.op, got.Cmp(want.Dec))

	case Span:
		var got nt.Timespan
		got, err = val.Span()
		if err != nil {
			return
		}
		if !got.Known || !want.Known {
			ok = at.op == OpNe
			return
		}
		ok = ordered(at.op, got.Compare(want.Timespan))

	case Status:
		var got []nt.Status
		got, err = val.Statuses()
		if err != nil {
			return
		}
		ok = slices.Contains(got, nt.Status(want)) == (at.op == OpEq)
	}
	return
}

func compareText(kind Kind, op Operator, got string, want Text) bool {

	switch op {
	case OpEq, OpNe:
		same := got == string(want)
		if kind == KindPath {
			same = samePath(got, string(want))
		}
		return same == (op == OpEq)
	case OpContains:
		return strings.Contains(got, string(want))
	case OpNotContains:
		return !strings.Contains(got, string(want))
	}

	length := len([]rune(got))
	bound := lengthBound(want)
	switch {
	case length < bound:
		return ordered(op, -1)
	case length > bound:
		return ordered(op, 1)
	}
	return ordered(op, 0)
}

// ordered applies an ordering operator to a comparison result.
func ordered(op Operator, cmp int) bool {

	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

// positive strips negation from op for legality checks.
func positive(op Operator) Operator {

	if op == OpNe || op == OpNotContains {
		op, _ = op.complement()
	}
	return op
}

func parseBare(reg *Registry, text, name string, inverted bool) (at Atomic, err error) {

	if name == "" {
		spec := reg.Implied()
		if spec == nil {
			err = parseError(ErrorCodeMalformedExpression, strings.TrimSpace(text), 0)
			return
		}
		at = Atomic{spec: spec, inverted: inverted}
		return
	}

	spec, ok := reg.Lookup(name)
	if ok {
		at = Atomic{spec: spec, inverted: inverted}
		return
	}

	if reg.Implied() == nil {
		err = semanticError(ErrorCodeUnknownName, name, OpNone, "")
		return
	}

	at, err = NewAtomic(reg.Implied(), OpContains, name, inverted)
	return
}

func resolve(reg *Registry, name string) (spec *Spec, err error) {

	if name == "" {
		spec = reg.Implied()
		if spec == nil {
			err = semanticError(ErrorCodeUnknownName, name, OpNone, "")
		}
		return
	}

	spec, ok := reg.Lookup(name)
	if !ok {
		err = semanticError(ErrorCodeUnknownName, name, OpNone, "")
	}
	return
}

// unquote strips one pair of matching outer quotes.
func unquote(raw string) string {

	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// quote escapes a value and wraps it in quotes when parsing would otherwise alter it.
func quote(val string) string {

	val = escape(val)
	if val == "" ||
		strings.TrimSpace(val) != val ||
		strings.ContainsAny(val[:1], `'"=~<>!`) ||
		strings.ContainsAny(val[len(val)-1:], `'"`) {
		return "'" + val + "'"
	}
	return val
}
