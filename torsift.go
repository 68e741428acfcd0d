// Package torsift is an interactive, filterable and sortable torrent list.
package torsift

import (
	"context"

	nt "torsift/entity"
	"torsift/filter"
	"torsift/order"
)

// Store specifies a backing datastore.
type Store interface {
	// Name returns the name of the data source
	Name() string
	// SetView filters and sorts, reading at least the given columns
	SetView(ctx context.Context, flt filter.Expression, ord order.Order, columns []string) (err error)
	// GetView returns the keys read and count of torrents in view
	GetView() (keys []string, count int, err error)
	// GetPage of torrents in view
	GetPage(offset, size int) (torrents []nt.Torrent, err error)
	// GetTorrent returns every attribute of a torrent
	GetTorrent(ctx context.Context, id int64) (data map[string]any, err error)
}
