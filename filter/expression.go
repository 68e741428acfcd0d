package filter

import (
	"iter"
	"slices"
	"strings"

	nt "torsift/entity"
)

// Expression is an OR of AND-groups of atomic filters.
// The zero value has no groups and matches everything.
type Expression struct {
	groups [][]Atomic
}

// New builds a normalized expression from AND-groups.
// Repeated filters and groups are dropped, keeping the first occurrence,
// and a group holding "all" makes the whole expression match everything.
func New(groups ...[]Atomic) (ex Expression) {

	seen := map[string]bool{}
	for _, group := range groups {
		var kept []Atomic
		for _, at := range group {
			if at.IsAll() {
				ex = Expression{}
				return
			}
			if !slices.ContainsFunc(kept, at.Equal) {
				kept = append(kept, at)
			}
		}
		if len(kept) == 0 {
			continue
		}

		key := groupKey(kept)
		if seen[key] {
			continue
		}
		seen[key] = true
		ex.groups = append(ex.groups, kept)
	}
	return
}

// Parse parses filters joined by "&" (and) and "|" (or), with "&" binding tighter.
// A literal "&", "|" or "\" is escaped with a backslash.
func Parse(reg *Registry, text string) (ex Expression, err error) {

	var tokens []Token
	for _, tok := range NewLexer(text).Tokens() {
		if !tok.blank() {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return
	}

	err = checkOperators(text, tokens)
	if err != nil {
		return
	}

	var groups [][]Atomic
	var group []Atomic
	for _, tok := range tokens {
		switch tok.Type {
		case TEXT:
			var at Atomic
			at, err = ParseAtomic(reg, tok.Literal)
			if err != nil {
				return
			}
			group = append(group, at)
		case OR:
			groups = append(groups, group)
			group = nil
		}
	}
	groups = append(groups, group)

	ex = New(groups...)
	return
}

// ParseAny parses each text and ORs the results together.
func ParseAny(reg *Registry, texts ...string) (ex Expression, err error) {

	for i, text := range texts {
		var next Expression
		next, err = Parse(reg, text)
		if err != nil {
			ex = Expression{}
			return
		}

		if i == 0 {
			ex = next
			continue
		}
		ex = ex.Combine(next)
	}
	return
}

// Combine ORs other onto ex, appending only groups ex lacks.
func (ex Expression) Combine(other Expression) Expression {

	if ex.IsAll() || other.IsAll() {
		return Expression{}
	}
	return New(append(slices.Clone(ex.groups), other.groups...)...)
}

// Groups returns a copy of the AND-groups.
func (ex Expression) Groups() (groups [][]Atomic) {

	for _, group := range ex.groups {
		groups = append(groups, slices.Clone(group))
	}
	return
}

// IsAll reports whether the expression matches everything.
func (ex Expression) IsAll() bool {
	return len(ex.groups) == 0
}

// Equal compares expressions as sets of sets, ignoring order.
func (ex Expression) Equal(other Expression) bool {

	if len(ex.groups) != len(other.groups) {
		return false
	}

	keys := map[string]bool{}
	for _, group := range ex.groups {
		keys[groupKey(group)] = true
	}
	for _, group := range other.groups {
		if !keys[groupKey(group)] {
			return false
		}
	}
	return true
}

// String returns the canonical form.
func (ex Expression) String() string {

	if ex.IsAll() {
		return All.Name
	}

	ors := make([]string, 0, len(ex.groups))
	for _, group := range ex.groups {
		ands := make([]string, 0, len(group))
		for _, at := range group {
			ands = append(ands, at.String())
		}
		ors = append(ors, strings.Join(ands, "&"))
	}
	return strings.Join(ors, "|")
}

// NeededKeys returns the sorted attributes the expression reads.
func (ex Expression) NeededKeys() (keys []string) {

	for _, group := range ex.groups {
		for _, at := range group {
			for _, key := range at.NeededKeys() {
				if !slices.Contains(keys, key) {
					keys = append(keys, key)
				}
			}
		}
	}

	slices.Sort(keys)
	return
}

// Match reports whether rec satisfies any group, evaluating lazily.
func (ex Expression) Match(rec nt.Record) (ok bool, err error) {

	if ex.IsAll() {
		ok = true
		return
	}

	for _, group := range ex.groups {
		ok, err = matchGroup(group, rec)
		if err != nil || ok {
			return
		}
	}
	return
}

// Apply yields the matching records in order, stopping after the first error.
func (ex Expression) Apply(records iter.Seq[nt.Record]) iter.Seq2[nt.Record, error] {

	return func(yield func(nt.Record, error) bool) {
		for rec := range records {
			ok, err := ex.Match(rec)
			if err != nil {
				yield(nil, err)
				return
			}
			if ok && !yield(rec, nil) {
				return
			}
		}
	}
}

// ApplyKey yields the key attribute of each matching record.
func (ex Expression) ApplyKey(records iter.Seq[nt.Record], key string) iter.Seq2[nt.Value, error] {

	return func(yield func(nt.Value, error) bool) {
		for rec, err := range ex.Apply(records) {
			if err != nil {
				yield(nt.Value{}, err)
				return
			}
			if !yield(rec.Get(key), nil) {
				return
			}
		}
	}
}

// Select collects the matching records of a slice.
func Select[R nt.Record](ex Expression, records []R) (selected []R, err error) {

	for _, rec := range records {
		var ok bool
		ok, err = ex.Match(rec)
		if err != nil {
			selected = nil
			return
		}
		if ok {
			selected = append(selected, rec)
		}
	}
	return
}

// unexported

func matchGroup(group []Atomic, rec nt.Record) (ok bool, err error) {

	for _, at := range group {
		ok, err = at.Match(rec)
		if err != nil || !ok {
			return
		}
	}
	return
}

func groupKey(group []Atomic) string {

	keys := make([]string, 0, len(group))
	for _, at := range group {
		keys = append(keys, at.String())
	}
	slices.Sort(keys)
	return strings.Join(keys, "&")
}

// checkOperators rejects operators at either end or next to each other.
func checkOperators(text string, tokens []Token) error {

	first := tokens[0]
	if first.Type != TEXT {
		return parseError(ErrorCodeLeadingOperator, strings.TrimSpace(text), first.Position)
	}

	last := tokens[len(tokens)-1]
	if last.Type != TEXT {
		return parseError(ErrorCodeTrailingOperator, strings.TrimSpace(text), last.Position)
	}

	for i := 1; i < len(tokens)-1; i++ {
		if tokens[i].Type == TEXT || tokens[i+1].Type == TEXT {
			continue
		}

		next := i + 1
		for tokens[next].Type != TEXT {
			next++
		}

		start := tokens[i-1].Position
		return parseError(ErrorCodeConsecutiveOperators, strings.TrimSpace(text[start:tokens[next].End]), start)
	}
	return nil
}
