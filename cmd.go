package torsift

import (
	tea "charm.land/bubbletea/v2"

	"torsift/detail"
	"torsift/filter"
	"torsift/message"
	"torsift/order"
	"torsift/table"
)

// viewMsg reports a view set on the store
type viewMsg struct {
	filter filter.Expression
	order  order.Order
	count  int
}

// layoutMsg delivers a reloaded layout
type layoutMsg struct {
	layout *Layout
}

// getPage gets a page of torrents from the store
func (m Model) getPage(offset, size int) tea.Cmd {

	return func() tea.Msg {

		_, count, err := m.Store.GetView()
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		torrents, err := m.Store.GetPage(offset, size)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return table.PageMsg{
			Torrents: torrents,
			Count:    count,
		}
	}
}

// getTorrent gets every attribute of a torrent from the store
func (m Model) getTorrent(id int64) tea.Cmd {

	return func() tea.Msg {

		data, err := m.Store.GetTorrent(m.ctx, id)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return detail.TorrentMsg{Torrent: data}
	}
}

// setView sets a new filter and order on the store
func (m Model) setView(flt filter.Expression, ord order.Order) tea.Cmd {

	columns := m.table.Fields()

	return func() tea.Msg {

		err := m.Store.SetView(m.ctx, flt, ord, columns)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		_, count, err := m.Store.GetView()
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return viewMsg{filter: flt, order: ord, count: count}
	}
}

// reloadLayout loads the layout file again, or the sample when there is no file
func (m Model) reloadLayout() tea.Cmd {

	return func() tea.Msg {

		load := LoadLayout
		if m.layoutPath == "" {
			load = func(string) (*Layout, error) { return DefaultLayout() }
		}

		layout, err := load(m.layoutPath)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return layoutMsg{layout: layout}
	}
}
