package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	nt "torsift/entity"
)

// Kind is the type of value a spec compares.
type Kind int

const (
	KindBoolean Kind = iota
	KindString
	KindPath
	KindNumber
	KindSize
	KindPercentage
	KindTimespan
	KindStatus
)

var kindStrings = map[Kind]string{
	KindBoolean:    "boolean",
	KindString:     "string",
	KindPath:       "path",
	KindNumber:     "number",
	KindSize:       "size",
	KindPercentage: "percentage",
	KindTimespan:   "timespan",
	KindStatus:     "status",
}

func (kind Kind) String() string {
	return kindStrings[kind]
}

// Operators returns the operators legal for kind, not counting their negations.
func (kind Kind) Operators() []Operator {

	switch kind {
	case KindBoolean:
		return []Operator{OpNone}
	case KindString, KindPath:
		return []Operator{OpNone, OpEq, OpNe, OpContains, OpNotContains, OpLt, OpLe, OpGt, OpGe}
	case KindStatus:
		return []Operator{OpNone, OpEq, OpNe}
	}
	return []Operator{OpNone, OpEq, OpNe, OpLt, OpLe, OpGt, OpGe}
}

// Predicate decides a spec used without an operator.
type Predicate func(rec nt.Record) (bool, error)

// Spec describes one named filter.
type Spec struct {
	Name    string
	Aliases []string
	Kind    Kind
	// Key is the attribute compared by operators.
	Key string
	// NeededKeys defaults to Key.
	NeededKeys []string
	// Default decides the spec without an operator; required for boolean specs.
	Default Predicate
	// Implied marks the spec that bare words and operator-only filters use.
	Implied     bool
	Description string
}

// Keys returns the attributes the spec reads.
func (spec *Spec) Keys() []string {

	if len(spec.NeededKeys) > 0 {
		return spec.NeededKeys
	}
	if spec.Key != "" {
		return []string{spec.Key}
	}
	return nil
}

// test evaluates the operator-less form of spec.
func (spec *Spec) test(rec nt.Record) (ok bool, err error) {

	if spec.Default != nil {
		ok, err = spec.Default(rec)
		if err != nil {
			ok = false
			err = semanticError(ErrorCodeInvalidValue, spec.Name, OpNone, spec.recordValues(rec))
		}
		return
	}

	val := rec.Get(spec.Key)
	switch spec.Kind {
	case KindString, KindPath:
		ok = val.String() != ""
	case KindStatus:
		var statuses []nt.Status
		statuses, err = val.Statuses()
		ok = len(statuses) > 0
	case KindTimespan:
		var span nt.Timespan
		span, err = val.Span()
		ok = span.Known && span.Duration != 0
	default:
		if val.Raw == nil {
			return
		}
		var dec decimal.Decimal
		dec, err = val.Decimal()
		ok = !dec.IsZero()
	}

	if err != nil {
		err = semanticError(ErrorCodeInvalidValue, spec.Name, OpNone, val.String())
	}
	return
}

// recordValues renders the attributes the spec reads, for error messages.
func (spec *Spec) recordValues(rec nt.Record) string {

	keys := spec.Keys()
	vals := make([]string, len(keys))
	for i, key := range keys {
		vals[i] = rec.Get(key).String()
	}
	return strings.Join(vals, ", ")
}

// All matches every record.
var All = &Spec{
	Name:        "all",
	Aliases:     []string{"*"},
	Kind:        KindBoolean,
	Default:     func(nt.Record) (bool, error) { return true, nil },
	Description: "All records",
}

// Registry holds the specs a filter may name.
type Registry struct {
	specs   []*Spec
	byName  map[string]*Spec
	implied *Spec
}

// NewRegistry creates a registry of specs, always including All.
func NewRegistry(specs ...*Spec) (reg *Registry, err error) {

	reg = &Registry{byName: map[string]*Spec{}}

	for _, spec := range append([]*Spec{All}, specs...) {
		if spec == All && slices.Contains(reg.specs, All) {
			continue
		}

		err = reg.add(spec)
		if err != nil {
			reg = nil
			return
		}
	}
	return
}

// Lookup finds a spec by name or alias.
func (reg *Registry) Lookup(name string) (spec *Spec, ok bool) {
	spec, ok = reg.byName[name]
	return
}

// Specs returns the specs in registration order.
func (reg *Registry) Specs() []*Spec {
	return slices.Clone(reg.specs)
}

// Implied returns the spec bare words resolve to, or nil.
func (reg *Registry) Implied() *Spec {
	return reg.implied
}

// Help returns a line per spec giving its names, kind and description.
func (reg *Registry) Help() (lines []string) {

	for _, spec := range reg.specs {
		names := spec.Name
		if len(spec.Aliases) > 0 {
			names += " (" + strings.Join(spec.Aliases, ", ") + ")"
		}

		lines = append(lines, fmt.Sprintf("%-22s %-10s %s", names, spec.Kind, spec.Description))
	}
	return
}

// unexported

func (reg *Registry) add(spec *Spec) (err error) {

	if spec.Name == "" {
		err = errors.Errorf("filter spec has no name")
		return
	}
	if spec.Kind == KindBoolean && spec.Default == nil {
		err = errors.Errorf("boolean filter %q has no default predicate", spec.Name)
		return
	}
	if spec.Kind != KindBoolean && spec.Key == "" {
		err = errors.Errorf("%s filter %q has no key", spec.Kind, spec.Name)
		return
	}

	for _, name := range append([]string{spec.Name}, spec.Aliases...) {
		if strings.ContainsAny(name, opChars+"&| ") {
			err = errors.Errorf("filter name %q contains a reserved character", name)
			return
		}
		if _, ok := reg.byName[name]; ok {
			err = errors.Errorf("filter name %q is registered twice", name)
			return
		}
		reg.byName[name] = spec
	}

	if spec.Implied {
		if reg.implied != nil {
			err = errors.Errorf("filters %q and %q are both implied", reg.implied.Name, spec.Name)
			return
		}
		reg.implied = spec
	}

	reg.specs = append(reg.specs, spec)
	return
}
