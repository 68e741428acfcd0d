package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "torsift/entity"
	"torsift/filter"
)

func testRegistry(t *testing.T) *filter.Registry {
	t.Helper()

	reg, err := filter.NewRegistry(
		&filter.Spec{Name: "title", Aliases: []string{"t"}, Kind: filter.KindString, Key: "title", Implied: true},
		&filter.Spec{Name: "pages", Kind: filter.KindNumber, Key: "pages"},
		&filter.Spec{
			Name: "long", Kind: filter.KindBoolean, NeededKeys: []string{"pages"},
			Default: func(rec nt.Record) (bool, error) {
				dec, err := rec.Get("pages").Decimal()
				return dec.IntPart() > 300, err
			},
		},
	)
	require.NoError(t, err)
	return reg
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	spec, ok := reg.Lookup("t")
	require.True(t, ok)
	assert.Equal(t, "title", spec.Name)
	assert.Same(t, spec, reg.Implied())

	all, ok := reg.Lookup("*")
	require.True(t, ok)
	assert.Same(t, filter.All, all)

	assert.Len(t, reg.Specs(), 4)
	assert.Len(t, reg.Help(), 4)
	assert.Contains(t, reg.Help()[1], "title (t)")
}

func TestNewRegistryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		specs []*filter.Spec
	}{
		{"duplicate", []*filter.Spec{
			{Name: "a", Kind: filter.KindString, Key: "a"},
			{Name: "b", Aliases: []string{"a"}, Kind: filter.KindString, Key: "b"},
		}},
		{"two implied", []*filter.Spec{
			{Name: "a", Kind: filter.KindString, Key: "a", Implied: true},
			{Name: "b", Kind: filter.KindString, Key: "b", Implied: true},
		}},
		{"boolean without default", []*filter.Spec{{Name: "a", Kind: filter.KindBoolean}}},
		{"comparative without key", []*filter.Spec{{Name: "a", Kind: filter.KindNumber}}},
		{"operator in name", []*filter.Spec{{Name: "a=b", Kind: filter.KindString, Key: "a"}}},
		{"clash with all", []*filter.Spec{{Name: "all", Kind: filter.KindString, Key: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := filter.NewRegistry(tt.specs...)
			assert.Error(t, err)
		})
	}
}

func TestParseWithoutImplied(t *testing.T) {
	t.Parallel()

	reg, err := filter.NewRegistry(&filter.Spec{Name: "pages", Kind: filter.KindNumber, Key: "pages"})
	require.NoError(t, err)

	_, err = filter.Parse(reg, "dune")
	assert.Equal(t, filter.ErrorCodeUnknownName, filter.ErrorCodeOf(err))

	_, err = filter.Parse(reg, "=dune")
	assert.Equal(t, filter.ErrorCodeUnknownName, filter.ErrorCodeOf(err))
}

func TestExpressionMatch(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	books := []nt.Torrent{
		{"title": "Dune", "pages": 412},
		{"title": "Solaris", "pages": 204},
		{"title": "Dune Messiah", "pages": 256},
	}

	tests := []struct {
		text string
		want []string
	}{
		{"Dune", []string{"Dune", "Dune Messiah"}},
		{"long", []string{"Dune"}},
		{"Dune&!long", []string{"Dune Messiah"}},
		{"long|pages<210", []string{"Dune", "Solaris"}},
		{"pages>=256&pages<=412", []string{"Dune", "Dune Messiah"}},
		{"t=Dune", []string{"Dune"}},
		{"title>7", []string{"Dune Messiah"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			ex, err := filter.Parse(reg, tt.text)
			require.NoError(t, err)

			got, err := filter.Select(ex, books)
			require.NoError(t, err)

			titles := []string{}
			for _, book := range got {
				titles = append(titles, book.Get("title").String())
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestExpressionNormalized(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	ex, err := filter.Parse(reg, "long&long|Dune|long&long")
	require.NoError(t, err)
	assert.Equal(t, "long|~Dune", ex.String())
	require.Len(t, ex.Groups(), 2)
	assert.Len(t, ex.Groups()[0], 1)

	ex, err = filter.Parse(reg, " ")
	require.NoError(t, err)
	assert.True(t, ex.IsAll())
	assert.Equal(t, "all", ex.String())

	assert.True(t, filter.New().IsAll())
}

func TestNewAtomic(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	pages, _ := reg.Lookup("pages")

	at, err := filter.NewAtomic(pages, filter.OpGe, "1k", false)
	require.NoError(t, err)
	assert.Equal(t, "pages>=1000", at.String())
	assert.Equal(t, []string{"pages"}, at.NeededKeys())

	at, err = filter.NewAtomic(pages, filter.OpEq, "3", true)
	require.NoError(t, err)
	assert.Equal(t, filter.OpNe, at.Operator())
	assert.False(t, at.Inverted())

	_, err = filter.NewAtomic(pages, filter.OpContains, "3", false)
	assert.Equal(t, filter.ErrorCodeInvalidOperator, filter.ErrorCodeOf(err))
}
