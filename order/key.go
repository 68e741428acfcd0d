package order

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	nt "torsift/entity"
)

// Comparator orders two records, returning a negative, zero or positive result.
type Comparator func(a, b nt.Record) (int, error)

// Key describes one named sort key.
type Key struct {
	Name        string
	Aliases     []string
	NeededKeys  []string
	Compare     Comparator
	Description string
}

// collators are natural-order, case-insensitive; a Collator is not safe for concurrent use.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	},
}

// CompareText compares strings so that "file9" sorts before "File10".
func CompareText(a, b string) int {

	col := collators.Get().(*collate.Collator)
	defer collators.Put(col)

	return col.CompareString(a, b)
}

// ByText compares an attribute as text in natural order.
func ByText(attr string) Comparator {
	return func(a, b nt.Record) (int, error) {
		return CompareText(a.Get(attr).String(), b.Get(attr).String()), nil
	}
}

// ByNumber compares an attribute as an exact number; missing values sort first.
func ByNumber(attr string) Comparator {
	return func(a, b nt.Record) (cmp int, err error) {

		va, vb := a.Get(attr), b.Get(attr)
		switch {
		case va.Raw == nil && vb.Raw == nil:
			return
		case va.Raw == nil:
			cmp = -1
			return
		case vb.Raw == nil:
			cmp = 1
			return
		}

		da, err := va.Decimal()
		if err != nil {
			err = errors.Wrapf(err, "cannot sort by %s", attr)
			return
		}
		db, err := vb.Decimal()
		if err != nil {
			err = errors.Wrapf(err, "cannot sort by %s", attr)
			return
		}

		cmp = da.Cmp(db)
		return
	}
}

// BySpan compares an attribute as a timespan; unknown spans sort last.
func BySpan(attr string) Comparator {
	return func(a, b nt.Record) (cmp int, err error) {

		sa, err := a.Get(attr).Span()
		if err != nil {
			err = errors.Wrapf(err, "cannot sort by %s", attr)
			return
		}
		sb, err := b.Get(attr).Span()
		if err != nil {
			err = errors.Wrapf(err, "cannot sort by %s", attr)
			return
		}

		cmp = sa.Compare(sb)
		return
	}
}

// ByStatus compares an attribute as a status list by its liveliest status.
func ByStatus(attr string) Comparator {
	return func(a, b nt.Record) (cmp int, err error) {

		sa, err := a.Get(attr).Statuses()
		if err != nil {
			err = errors.Wrapf(err, "cannot sort by %s", attr)
			return
		}
		sb, err := b.Get(attr).Statuses()
		if err != nil {
			err = errors.Wrapf(err, "cannot sort by %s", attr)
			return
		}

		cmp = nt.Rank(sa) - nt.Rank(sb)
		return
	}
}

// UnknownKeyError is returned for a sort key missing from the registry.
type UnknownKeyError struct {
	Name string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("Invalid sort order: '%s'", e.Name)
}

// Registry holds the keys an order may name.
type Registry struct {
	keys   []*Key
	byName map[string]*Key
}

// NewRegistry creates a registry of keys.
func NewRegistry(keys ...*Key) (reg *Registry, err error) {

	reg = &Registry{byName: map[string]*Key{}}

	for _, key := range keys {
		if key.Name == "" || key.Compare == nil {
			err = errors.Errorf("sort key %q is incomplete", key.Name)
			reg = nil
			return
		}

		for _, name := range append([]string{key.Name}, key.Aliases...) {
			if strings.ContainsAny(name, "!, ") {
				err = errors.Errorf("sort key name %q contains a reserved character", name)
				reg = nil
				return
			}
			if _, ok := reg.byName[name]; ok {
				err = errors.Errorf("sort key name %q is registered twice", name)
				reg = nil
				return
			}
			reg.byName[name] = key
		}
		reg.keys = append(reg.keys, key)
	}
	return
}

// Lookup finds a key by name or alias.
func (reg *Registry) Lookup(name string) (key *Key, ok bool) {
	key, ok = reg.byName[name]
	return
}

// Keys returns the keys in registration order.
func (reg *Registry) Keys() []*Key {
	return slices.Clone(reg.keys)
}

// Help returns a line per key giving its names and description.
func (reg *Registry) Help() (lines []string) {

	for _, key := range reg.keys {
		names := key.Name
		if len(key.Aliases) > 0 {
			names += " (" + strings.Join(key.Aliases, ", ") + ")"
		}

		lines = append(lines, fmt.Sprintf("%-22s %s", names, key.Description))
	}
	return
}
