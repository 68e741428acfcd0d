package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "torsift/entity"
	"torsift/order"
)

func testRegistry(t *testing.T) *order.Registry {
	t.Helper()

	reg, err := order.NewRegistry(
		&order.Key{Name: "title", Aliases: []string{"t"}, NeededKeys: []string{"title"}, Compare: order.ByText("title")},
		&order.Key{Name: "pages", NeededKeys: []string{"pages"}, Compare: order.ByNumber("pages")},
		&order.Key{Name: "left", NeededKeys: []string{"left"}, Compare: order.BySpan("left")},
		&order.Key{Name: "state", NeededKeys: []string{"state"}, Compare: order.ByStatus("state")},
	)
	require.NoError(t, err)
	return reg
}

func titles(records []nt.Torrent) (got []string) {
	for _, rec := range records {
		got = append(got, rec["title"].(string))
	}
	return
}

func TestParse(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	ord, err := order.Parse(reg, "t", " !pages ")
	require.NoError(t, err)
	assert.Equal(t, "title,!pages", ord.String())
	assert.Equal(t, []string{"pages", "title"}, ord.NeededKeys())

	ord, err = order.ParseText(reg, "title, !pages  left")
	require.NoError(t, err)
	assert.Equal(t, "title,!pages,left", ord.String())

	_, err = order.Parse(reg, "colour")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid sort order: 'colour'")

	var unknown *order.UnknownKeyError
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "colour", unknown.Name)
}

func TestCombineKeepsLaterDuplicate(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	a, err := order.ParseText(reg, "title,pages")
	require.NoError(t, err)
	b, err := order.ParseText(reg, "!title")
	require.NoError(t, err)

	assert.Equal(t, "pages,!title", a.Combine(b).String())
	assert.Equal(t, "title,pages", b.Combine(a).String())
	assert.Equal(t, "!title,pages", mustString(t, reg, "pages,title,!title,pages"))

	same, err := order.ParseText(reg, "pages,!title")
	require.NoError(t, err)
	assert.True(t, a.Combine(b).Equal(same))
}

func mustString(t *testing.T, reg *order.Registry, text string) string {
	t.Helper()

	ord, err := order.ParseText(reg, text)
	require.NoError(t, err)
	return ord.String()
}

func TestSort(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	books := func() []nt.Torrent {
		return []nt.Torrent{
			{"title": "Vol 10", "pages": 300, "left": int64(60), "state": []any{"stopped"}},
			{"title": "vol 9", "pages": 100, "left": nil, "state": []any{"idle", "seeding"}},
			{"title": "Vol 1", "pages": 300, "left": int64(3600), "state": []any{"downloading"}},
		}
	}

	tests := []struct {
		text string
		want []string
	}{
		{"", []string{"Vol 10", "vol 9", "Vol 1"}},
		{"title", []string{"Vol 1", "vol 9", "Vol 10"}},
		{"!title", []string{"Vol 10", "vol 9", "Vol 1"}},
		{"pages", []string{"vol 9", "Vol 10", "Vol 1"}},
		{"!pages", []string{"Vol 10", "Vol 1", "vol 9"}},
		{"!pages,title", []string{"Vol 1", "Vol 10", "vol 9"}},
		{"left", []string{"Vol 10", "Vol 1", "vol 9"}},
		{"state", []string{"Vol 1", "vol 9", "Vol 10"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			ord, err := order.ParseText(reg, tt.text)
			require.NoError(t, err)

			records := books()
			require.NoError(t, order.Sort(ord, records))
			assert.Equal(t, tt.want, titles(records))
		})
	}
}

func TestSortError(t *testing.T) {
	t.Parallel()

	ord, err := order.Parse(testRegistry(t), "pages")
	require.NoError(t, err)

	records := []nt.Record{
		nt.Torrent{"title": "a", "pages": "many"},
		nt.Torrent{"title": "b", "pages": 3},
	}
	assert.Error(t, ord.Sort(records))

	torrents := []nt.Torrent{
		{"title": "c", "pages": 9},
		{"title": "b", "pages": 3},
		{"title": "a", "pages": "many"},
		{"title": "d", "pages": 1},
	}
	require.Error(t, order.Sort(ord, torrents))
	assert.Equal(t, []string{"c", "b", "a", "d"}, titles(torrents))

	torrents[2]["pages"] = 5
	require.NoError(t, order.Sort(ord, torrents))
	assert.Equal(t, []string{"d", "b", "a", "c"}, titles(torrents))
}

func TestReset(t *testing.T) {
	t.Parallel()

	assert.True(t, order.Reset.IsReset())
	assert.False(t, order.Order{}.IsReset())
	assert.False(t, order.Reset.Equal(order.Order{}))
	assert.Equal(t, "reset", order.Reset.String())
}

func TestCompareText(t *testing.T) {
	t.Parallel()

	assert.Negative(t, order.CompareText("file9", "File10"))
	assert.Zero(t, order.CompareText("ABC", "abc"))
	assert.Positive(t, order.CompareText("b", "A"))
}

func TestBySpanUnknownLast(t *testing.T) {
	t.Parallel()

	cmp, err := order.BySpan("left")(nt.Torrent{"left": nil}, nt.Torrent{"left": nt.Known(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)
}

func TestRegistryErrors(t *testing.T) {
	t.Parallel()

	_, err := order.NewRegistry(
		&order.Key{Name: "a", Compare: order.ByText("a")},
		&order.Key{Name: "b", Aliases: []string{"a"}, Compare: order.ByText("b")},
	)
	assert.Error(t, err)

	_, err = order.NewRegistry(&order.Key{Name: "a"})
	assert.Error(t, err)

	_, err = order.NewRegistry(&order.Key{Name: "!a", Compare: order.ByText("a")})
	assert.Error(t, err)
}
