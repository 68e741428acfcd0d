package duck_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torsift/filter"
	"torsift/logger"
	"torsift/order"
	"torsift/store/duck"
	"torsift/torrent"
)

func newDuck(t *testing.T) *duck.Duck {
	t.Helper()

	ctx := context.Background()
	lgr := logger.Config{Level: "error"}.New(io.Discard)

	dk, err := duck.New(ctx, lgr)
	require.NoError(t, err)
	t.Cleanup(dk.Close)

	err = dk.Load(ctx, "testdata/torrents.json")
	require.NoError(t, err)
	return dk
}

func names(t *testing.T, dk *duck.Duck) (got []string) {
	t.Helper()

	_, count, err := dk.GetView()
	require.NoError(t, err)

	page, err := dk.GetPage(0, count)
	require.NoError(t, err)

	for _, tor := range page {
		got = append(got, tor.Get(torrent.KeyName).String())
	}
	return
}

func TestLoad(t *testing.T) {

	dk := newDuck(t)

	keys, count, err := dk.GetView()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, []string{"id", "name"}, keys)
	assert.Equal(t, "testdata/torrents.json", dk.Name())

	assert.Equal(t, []string{
		"big-buck-bunny",
		"debian-12.7.0-amd64-netinst.iso",
		"Sintel",
		"ubuntu-24.10-desktop-amd64.iso",
	}, names(t, dk))
}

func TestSetView(t *testing.T) {

	ctx := context.Background()

	tests := []struct {
		name   string
		filter string
		sort   string
		exp    []string
	}{
		{
			name:   "complete by size",
			filter: "complete",
			sort:   "!size",
			exp:    []string{"ubuntu-24.10-desktop-amd64.iso", "Sintel"},
		},
		{
			name:   "path and status",
			filter: "path=/srv/torrents/films&!stopped|downloading",
			sort:   "id",
			exp:    []string{"debian-12.7.0-amd64-netinst.iso", "Sintel"},
		},
		{
			name:   "eta known",
			filter: "eta<1h",
			sort:   "name",
			exp:    []string{"debian-12.7.0-amd64-netinst.iso"},
		},
		{
			name:   "eta sorts unknown last",
			filter: "",
			sort:   "eta,id",
			exp: []string{
				"debian-12.7.0-amd64-netinst.iso",
				"ubuntu-24.10-desktop-amd64.iso",
				"big-buck-bunny",
				"Sintel",
			},
		},
		{
			name:   "private",
			filter: "private|comment~Blender",
			sort:   "name",
			exp:    []string{"big-buck-bunny"},
		},
		{
			name:   "rates",
			filter: "rate-up>500k|rate-down>=2M",
			sort:   "!rate-down",
			exp:    []string{"debian-12.7.0-amd64-netinst.iso", "ubuntu-24.10-desktop-amd64.iso"},
		},
		{
			name:   "nothing",
			filter: "size>1P",
			sort:   "name",
			exp:    nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dk := newDuck(t)

			flt, err := torrent.ParseFilter(tc.filter)
			require.NoError(t, err)
			ord, err := torrent.ParseSort(tc.sort)
			require.NoError(t, err)

			err = dk.SetView(ctx, flt, ord, []string{torrent.KeySize})
			require.NoError(t, err)

			assert.Equal(t, tc.exp, names(t, dk))

			keys, _, err := dk.GetView()
			require.NoError(t, err)
			assert.Equal(t, torrent.KeyId, keys[0])
			assert.Contains(t, keys, torrent.KeySize)
		})
	}
}

func TestSetViewUnknownColumn(t *testing.T) {

	dk := newDuck(t)

	err := dk.SetView(context.Background(), filter.Expression{}, order.Order{}, []string{"colour"})
	assert.Error(t, err)
}

func TestGetPage(t *testing.T) {

	dk := newDuck(t)

	page, err := dk.GetPage(1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "debian-12.7.0-amd64-netinst.iso", page[0].Get(torrent.KeyName).String())

	page, err = dk.GetPage(3, 10)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, err = dk.GetPage(10, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = dk.GetPage(-1, 10)
	assert.Error(t, err)
}

func TestGetTorrent(t *testing.T) {

	dk := newDuck(t)

	data, err := dk.GetTorrent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ubuntu-24.10-desktop-amd64.iso", data["name"])
	assert.Contains(t, data, "files")

	_, err = dk.GetTorrent(context.Background(), 99)
	assert.Error(t, err)
}
