// Package duck is a torrent store backed by an in-memory DuckDB.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "torsift/entity"
	"torsift/filter"
	"torsift/order"
	"torsift/torrent"
)

// Duck loads torrents from newline delimited json and serves filtered, sorted views of them.
type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filename string

	mu sync.RWMutex

	filter filter.Expression
	order  order.Order
	keys   []string
	view   []nt.Torrent
}

// New opens an empty in-memory store.
func New(ctx context.Context, lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		err = errors.Wrapf(err, "failed to ping memo duck")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
		order:  torrent.DefaultSort(),
		keys:   []string{torrent.KeyId},
	}
	return
}

// Close releases the database.
func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the loaded file.
func (dk *Duck) Name() string {
	return dk.filename
}

// Load replaces the stored torrents with those in path and resets the view.
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	err = loadTables(ctx, dk.db, path)
	if err != nil {
		return
	}
	dk.filename = path

	var count int
	err = dk.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM torrents").Scan(&count)
	if err != nil {
		err = errors.Wrapf(err, "failed to count torrents")
		return
	}
	dk.logger.Info(ctx, "loaded torrents", "path", path, "count", count)

	err = dk.SetView(ctx, dk.filter, dk.order, nil)
	return
}

// SetView filters and sorts the stored torrents, reading only the attributes
// the filter, the order and the shown columns need.
func (dk *Duck) SetView(ctx context.Context, flt filter.Expression, ord order.Order, columns []string) (err error) {

	keys := torrent.NeededKeys(flt, ord)
	for _, col := range columns {
		if !slices.Contains(keys, col) {
			keys = append(keys, col)
		}
	}

	records, err := dk.selectKeys(ctx, keys)
	if err != nil {
		return
	}

	selected, err := filter.Select(flt, records)
	if err != nil {
		err = errors.Wrapf(err, "failed to filter torrents")
		return
	}

	err = order.Sort(ord, selected)
	if err != nil {
		err = errors.Wrapf(err, "failed to sort torrents")
		return
	}

	dk.mu.Lock()
	dk.filter = flt
	dk.order = ord
	dk.keys = keys
	dk.view = selected
	dk.mu.Unlock()

	dk.logger.Info(ctx, "set view", "filter", flt.String(), "sort", ord.String(), "count", len(selected))
	return
}

// GetView returns the keys read by the current view and its count.
func (dk *Duck) GetView() (keys []string, count int, err error) {

	dk.mu.RLock()
	defer dk.mu.RUnlock()

	if dk.filename == "" {
		err = errors.Errorf("no torrents loaded")
		return
	}

	keys = slices.Clone(dk.keys)
	count = len(dk.view)
	return
}

// GetPage returns a page of the current view.
func (dk *Duck) GetPage(offset, size int) (torrents []nt.Torrent, err error) {

	if offset < 0 || size < 0 {
		err = errors.Errorf("invalid page offset %d and size %d", offset, size)
		return
	}

	dk.mu.RLock()
	defer dk.mu.RUnlock()

	start := min(offset, len(dk.view))
	end := min(offset+size, len(dk.view))

	for _, tor := range dk.view[start:end] {
		torrents = append(torrents, maps.Clone(tor))
	}
	return
}

// GetTorrent returns every attribute of the torrent with id as found in the loaded file.
func (dk *Duck) GetTorrent(ctx context.Context, id int64) (data map[string]any, err error) {

	query := "SELECT raw FROM torrents_raw WHERE id = ?"

	var raw any
	err = dk.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if err != nil {
		err = errors.Wrapf(err, "failed to query torrent %d", id)
		return
	}

	var ok bool
	data, ok = raw.(map[string]any)
	if !ok {
		err = errors.Errorf("expected map[string]any from driver, got %T", raw)
	}
	return
}

// unexported

func (dk *Duck) selectKeys(ctx context.Context, keys []string) (records []nt.Torrent, err error) {

	if dk.filename == "" {
		return
	}

	cols := make([]string, len(keys))
	for i, key := range keys {
		if _, ok := torrent.Columns[key]; !ok {
			err = errors.Errorf("unknown torrent attribute %q", key)
			return
		}
		cols[i] = quoteIdent(key)
	}

	query := fmt.Sprintf("SELECT %s FROM torrents", strings.Join(cols, ", "))

	rows, err := dk.db.QueryContext(ctx, query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query torrents")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var vals []any
		vals, err = scanRow(rows, len(keys))
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		tor := nt.Torrent{}
		for i, key := range keys {
			tor[key] = vals[i]
			if vals[i] == nil && torrent.Columns[key] == "VARCHAR" {
				tor[key] = ""
			}
		}
		records = append(records, tor)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

func scanRow(rows *sql.Rows, count int) ([]any, error) {

	vals := make([]any, count)
	ptrs := make([]any, count)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}

func loadTables(ctx context.Context, db *sql.DB, path string) (err error) {

	// typed table holds only known attributes
	createTyped := fmt.Sprintf(`
		CREATE OR REPLACE TABLE torrents AS
		SELECT *
		FROM read_json(%s,
			columns=%s,
			format='newline_delimited',
			maximum_object_size=16777216)
	`, quoteLiteral(path), columnsStruct())

	_, err = db.ExecContext(ctx, createTyped)
	if err != nil {
		err = errors.Wrapf(err, "failed to create torrents table from %s", path)
		return
	}

	createRaw := fmt.Sprintf(`
		CREATE OR REPLACE TABLE torrents_raw AS
		SELECT
			CAST(json_extract_string(json_text, '$.id') AS BIGINT) AS id,
			json_text::JSON AS raw
		FROM read_json_objects(%s, format='newline_delimited') AS t(json_text)
	`, quoteLiteral(path))

	_, err = db.ExecContext(ctx, createRaw)
	if err != nil {
		err = errors.Wrapf(err, "failed to create raw torrents table from %s", path)
		return
	}

	_, err = db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_raw_id ON torrents_raw(id)")
	err = errors.Wrapf(err, "failed to create index")
	return
}

// columnsStruct renders torrent.Columns as a read_json columns struct, in key order.
func columnsStruct() string {

	keys := slices.Sorted(maps.Keys(torrent.Columns))

	fields := make([]string, len(keys))
	for i, key := range keys {
		fields[i] = fmt.Sprintf("%s: %s", quoteLiteral(key), quoteLiteral(torrent.Columns[key]))
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(text string) string {
	return "'" + strings.ReplaceAll(text, "'", "''") + "'"
}
