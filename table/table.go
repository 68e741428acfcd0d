// Package table is the torrent list panel.
package table

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pkg/errors"

	nt "torsift/entity"
	"torsift/message"
	"torsift/style"
)

// Todo: extend last column to edge of panel

const (
	headerHeight = 2
)

// TablePanel handles the table view display and navigation state
type TablePanel struct {
	selected int // Absolute position (0 to total-1) of selected torrent
	offset   int // Offset of page shown
	total    int // Total torrents after filtering

	width  int
	height int

	colFmts  []colFmt
	torrents []nt.Torrent
	table    *table.Table

	ctx    context.Context
	logger nt.Logger
}

type colFmt struct {
	field     string
	title     string
	width     int
	formatter func(nt.Value) string
}

func New(ctx context.Context, columns []nt.Column, count int, lgr nt.Logger) TablePanel {

	lgt := table.New()
	style.StyleTable(lgt)

	pnl := TablePanel{
		table:  lgt,
		total:  count,
		ctx:    ctx,
		logger: lgr,
	}

	return pnl.setColumns(columns)
}

func (pnl TablePanel) Init() tea.Cmd {
	return nil
}

func (pnl TablePanel) Update(msg tea.Msg) (TablePanel, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

		pageSize := pnl.PageSize()
		if pageSize > 0 {
			return pnl, message.GetPageCmd(pnl.offset, pageSize)
		}

	case ColumnsMsg:
		pnl = pnl.setColumns(msg.Columns)
		return pnl, message.GetPageCmd(pnl.offset, pnl.PageSize())

	case PageMsg:
		pnl.torrents = msg.Torrents
		pnl.total = msg.Count

		if pnl.selected >= pnl.total {
			pnl.selected = max(0, pnl.total-1)
		}
		return pnl, pnl.selectedCmd()

	case ResetMsg:
		pnl.selected = 0
		pnl.offset = 0
		return pnl, message.GetPageCmd(pnl.offset, pnl.PageSize())

	case tea.KeyPressMsg:
		pageSize := pnl.PageSize()
		if pnl.total == 0 || pageSize <= 0 {
			return pnl, nil
		}

		switch msg.String() {
		case "up", "k":
			if pnl.selected > 0 {
				pnl.selected--
			}

		case "down", "j":
			if pnl.selected < pnl.total-1 {
				pnl.selected++
			}

		case "pgup", "ctrl+u":
			pnl.selected = max(0, pnl.selected-pageSize)

		case "pgdown", "ctrl+d":
			pnl.selected = min(pnl.total-1, pnl.selected+pageSize)

		case "home", "g":
			pnl.selected = 0

		case "end", "G":
			pnl.selected = pnl.total - 1

		default:
			return pnl, nil
		}

		// keep selected visible
		oldOffset := pnl.offset
		if pnl.selected < pnl.offset {
			pnl.offset = pnl.selected
		} else if pnl.selected >= pnl.offset+pageSize {
			pnl.offset = pnl.selected - pageSize + 1
		}

		if pnl.offset != oldOffset {
			return pnl, message.GetPageCmd(pnl.offset, pageSize)
		}
		return pnl, pnl.selectedCmd()
	}

	return pnl, nil
}

func (pnl TablePanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render renders the table with the current page.
func (pnl TablePanel) Render() string {

	pnl.table.StyleFunc(style.RowStyler(pnl.selectedRow()))

	pnl.table.ClearRows()
	for _, tor := range pnl.torrents {
		pnl.table.Row(pnl.row(tor)...)
	}

	return pnl.table.Render()
}

// SelectedId returns the id of the selected torrent.
func (pnl TablePanel) SelectedId() (id int64, err error) {

	selected := pnl.selectedRow()
	count := len(pnl.torrents)

	if count == 0 || selected < 0 || selected >= count {
		err = errors.Errorf("index %d is out of bounds of %d torrents", selected, count)
		return
	}

	id, err = pnl.torrents[selected].Id()
	return
}

// Selected returns the 1-indexed position of the selected torrent, 0 when there are none.
func (pnl TablePanel) Selected() int {
	if pnl.total == 0 {
		return 0
	}
	return pnl.selected + 1
}

// Total returns the number of torrents in the view.
func (pnl TablePanel) Total() int {
	return pnl.total
}

// Offset returns the position of the first torrent shown.
func (pnl TablePanel) Offset() int {
	return pnl.offset
}

// Torrents returns the page shown.
func (pnl TablePanel) Torrents() []nt.Torrent {
	return pnl.torrents
}

// PageSize returns the number of rows that fit on panel
func (pnl TablePanel) PageSize() int {
	return max(0, pnl.height-headerHeight)
}

// Fields returns the attributes of the shown columns.
func (pnl TablePanel) Fields() (fields []string) {
	for _, cf := range pnl.colFmts {
		fields = append(fields, cf.field)
	}
	return
}

// unexported

func (pnl TablePanel) selectedRow() int {
	return pnl.selected - pnl.offset
}

func (pnl TablePanel) selectedCmd() tea.Cmd {

	id, err := pnl.SelectedId()
	if err != nil {
		return nil
	}
	return message.SelectedCmd(pnl.selected+1, id)
}

func (pnl TablePanel) row(tor nt.Torrent) []string {

	ellipsis := style.MutedStyle.Render("…")

	row := make([]string, len(pnl.colFmts))
	for i, cf := range pnl.colFmts {
		formatted := cf.formatter(tor.Get(cf.field))
		row[i] = truncate(formatted, cf.width, ellipsis)
	}
	return row
}

func (pnl TablePanel) setColumns(columns []nt.Column) TablePanel {

	colFmts := []colFmt{}
	for _, col := range columns {
		if col.Hidden {
			continue
		}

		colFmts = append(colFmts, colFmt{
			field:     col.Field,
			title:     col.Header(),
			width:     col.Width,
			formatter: Formatter(col.Format),
		})
	}

	var headers []string
	for _, cf := range colFmts {
		headers = append(headers, fmt.Sprintf("%-*s", cf.width+1, cf.title))
	}

	pnl.table.Headers(headers...)
	pnl.colFmts = colFmts
	pnl.torrents = nil // page we had no longer matches colFmts

	return pnl
}
