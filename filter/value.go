package filter

import (
	"path"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	nt "torsift/entity"
)

// Value is the parsed right-hand side of a comparison.
// Only Text, Number, Span and Status implement it.
type Value interface {
	filterValue()
	String() string
}

// Text is a string or path value.
type Text string

func (Text) filterValue() {}

func (txt Text) String() string { return string(txt) }

// Unit says how a Number renders.
type Unit int

const (
	UnitNone Unit = iota
	UnitSI
	UnitPercent
)

// Number is an exact numeric value.
type Number struct {
	Dec  decimal.Decimal
	Unit Unit
}

func (Number) filterValue() {}

// String renders SI multiples with their suffix and percentages with "%".
func (num Number) String() string {

	switch num.Unit {
	case UnitPercent:
		return num.Dec.String() + "%"
	case UnitSI:
		abs := num.Dec.Abs()
		for _, si := range siSuffixes {
			mul := decimal.NewFromInt(si.mul)
			if abs.GreaterThanOrEqual(mul) && num.Dec.Mod(mul).IsZero() {
				return num.Dec.Div(mul).String() + si.suffix
			}
		}
	}
	return num.Dec.String()
}

// Span is a timespan value.
type Span struct {
	nt.Timespan
}

func (Span) filterValue() {}

// Status is a single status value.
type Status nt.Status

func (Status) filterValue() {}

func (st Status) String() string { return string(st) }

// siSuffixes from largest to smallest.
var siSuffixes = []struct {
	suffix string
	mul    int64
}{
	{"P", units.PB},
	{"T", units.TB},
	{"G", units.GB},
	{"M", units.MB},
	{"k", units.KB},
}

// parseValue parses raw as a value for spec's kind.
func parseValue(spec *Spec, op Operator, raw string) (val Value, err error) {

	switch spec.Kind {
	case KindString:
		val = Text(raw)
		return
	case KindPath:
		val = Text(cleanPath(raw))
		return
	}

	text := strings.TrimSpace(raw)
	switch spec.Kind {
	case KindNumber:
		val, err = parseNumber(text, false)
	case KindSize:
		val, err = parseNumber(text, true)
	case KindPercentage:
		var dec decimal.Decimal
		dec, err = decimal.NewFromString(strings.TrimSuffix(text, "%"))
		val = Number{Dec: dec, Unit: UnitPercent}
	case KindTimespan:
		var span nt.Timespan
		span, err = nt.ParseTimespan(text)
		val = Span{Timespan: span}
	case KindStatus:
		var st nt.Status
		st, err = nt.ParseStatus(text)
		val = Status(st)
	default:
		err = errors.Errorf("%s filter takes no value", spec.Kind)
	}

	if err != nil {
		val = nil
		err = semanticError(ErrorCodeInvalidValue, spec.Name, op, raw)
	}
	return
}

// parseNumber parses a decimal with an optional SI suffix, and for sizes an optional byte unit.
func parseNumber(text string, size bool) (num Number, err error) {

	num.Unit = UnitNone
	if size {
		num.Unit = UnitSI
		if len(text) > 1 && (text[len(text)-1] == 'b' || text[len(text)-1] == 'B') {
			text = text[:len(text)-1]
		}
	}

	mul := int64(1)
	if len(text) > 1 {
		switch strings.ToLower(text[len(text)-1:]) {
		case "k":
			mul = units.KB
		case "m":
			mul = units.MB
		case "g":
			mul = units.GB
		case "t":
			mul = units.TB
		case "p":
			mul = units.PB
		}
		if mul > 1 {
			text = text[:len(text)-1]
		}
	}

	dec, err := decimal.NewFromString(text)
	if err != nil {
		return
	}

	num.Dec = dec.Mul(decimal.NewFromInt(mul))
	return
}

// cleanPath drops trailing slashes, keeping a lone root.
func cleanPath(raw string) string {

	trimmed := strings.TrimRight(raw, "/")
	if trimmed == "" && raw != "" {
		return "/"
	}
	return trimmed
}

// lengthBound is the length a string comparison measures against:
// the value itself when it is an integer, its length otherwise.
func lengthBound(txt Text) int {

	n, err := strconv.Atoi(strings.TrimSpace(string(txt)))
	if err == nil {
		return n
	}
	return len([]rune(string(txt)))
}

// samePath compares paths after cleaning both.
func samePath(a, b string) bool {
	return path.Clean(cleanPath(a)) == path.Clean(cleanPath(b))
}
