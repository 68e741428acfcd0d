package order

import (
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	nt "torsift/entity"
)

// Item is a key in an order, optionally reversed.
type Item struct {
	Key     *Key
	Reverse bool
}

func (item Item) String() string {
	if item.Reverse {
		return "!" + item.Key.Name
	}
	return item.Key.Name
}

// Order is a list of sort keys, the first deciding most.
// The zero value leaves records as they are.
type Order struct {
	items []Item
	reset bool
}

// Reset stands in for the order a list started with; its holder swaps that back in.
var Reset = Order{reset: true}

// New builds an order from items. When a key repeats, only its last occurrence is kept.
func New(items ...Item) (ord Order) {

	for i, item := range items {
		later := slices.ContainsFunc(items[i+1:], func(other Item) bool {
			return other.Key == item.Key
		})
		if !later {
			ord.items = append(ord.items, item)
		}
	}
	return
}

// Parse parses key names, each optionally prefixed with "!" to reverse it.
func Parse(reg *Registry, tokens ...string) (ord Order, err error) {

	var items []Item
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		reverse := strings.HasPrefix(token, "!")
		name := strings.TrimSpace(strings.TrimPrefix(token, "!"))

		key, ok := reg.Lookup(name)
		if !ok {
			err = errors.WithStack(&UnknownKeyError{Name: name})
			return
		}
		items = append(items, Item{Key: key, Reverse: reverse})
	}

	ord = New(items...)
	return
}

// ParseText parses keys separated by commas or whitespace.
func ParseText(reg *Registry, text string) (Order, error) {

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return Parse(reg, tokens...)
}

// Combine appends other's keys to ord's.
func (ord Order) Combine(other Order) Order {
	return New(append(slices.Clone(ord.items), other.items...)...)
}

// IsReset reports whether ord is the Reset sentinel.
func (ord Order) IsReset() bool {
	return ord.reset
}

// Items returns a copy of the order's keys.
func (ord Order) Items() []Item {
	return slices.Clone(ord.items)
}

// Equal reports whether both orders sort the same way.
func (ord Order) Equal(other Order) bool {
	return ord.reset == other.reset && ord.String() == other.String()
}

// String returns the canonical form, e.g. "name,!size".
func (ord Order) String() string {

	if ord.reset {
		return "reset"
	}

	names := make([]string, 0, len(ord.items))
	for _, item := range ord.items {
		names = append(names, item.String())
	}
	return strings.Join(names, ",")
}

// NeededKeys returns the sorted attributes the order reads.
func (ord Order) NeededKeys() (keys []string) {

	for _, item := range ord.items {
		for _, key := range item.Key.NeededKeys {
			if !slices.Contains(keys, key) {
				keys = append(keys, key)
			}
		}
	}

	slices.Sort(keys)
	return
}

// Compare orders two records by each key in turn.
func (ord Order) Compare(a, b nt.Record) (cmp int, err error) {

	for _, item := range ord.items {
		cmp, err = item.Key.Compare(a, b)
		if err != nil {
			cmp = 0
			return
		}
		if item.Reverse {
			cmp = -cmp
		}
		if cmp != 0 {
			return
		}
	}
	return
}

// Sort sorts records in place, keeping equal records in their original order.
func (ord Order) Sort(records []nt.Record) error {
	return Sort(ord, records)
}

// Sort sorts a slice of any record type in place; see Order.Sort.
// On a comparison error records are left as they were.
func Sort[R nt.Record](ord Order, records []R) (err error) {

	if len(ord.items) == 0 {
		return
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b R) int {
		if err != nil {
			return 0
		}
		cmp, cmpErr := ord.Compare(a, b)
		if cmpErr != nil {
			err = cmpErr
		}
		return cmp
	})
	if err != nil {
		return
	}

	copy(records, sorted)
	return
}
