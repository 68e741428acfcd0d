package torsift

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"torsift/detail"
	nt "torsift/entity"
	"torsift/filter"
	"torsift/message"
	"torsift/order"
	"torsift/prompt"
	"torsift/style"
	"torsift/table"
	"torsift/torrent"
)

const (
	footerHeight = 2

	labelFilter    = "Filter"
	labelAddFilter = "Add filter"
	labelSort      = "Sort"
)

// Model is the bubbletea model for the torrent list TUI.
type Model struct {
	Store       Store
	layoutPath  string
	logger      nt.Logger
	ctx         context.Context
	errorString string

	filter      filter.Expression
	order       order.Order
	initialSort order.Order

	CurrentScreen Screen
	table         table.TablePanel
	detail        detail.DetailPanel

	prompt    prompt.Prompt
	prompting bool

	selectedId  int64
	hasSelected bool

	Width  int
	Height int
}

// NewModel creates a new bt model showing the layout's view of store.
func NewModel(ctx context.Context, store Store, layout *Layout, layoutPath string, lgr nt.Logger) (model Model, err error) {

	flt, ord, err := layout.View()
	if err != nil {
		return
	}

	err = store.SetView(ctx, flt, ord, layout.Fields())
	if err != nil {
		return
	}

	_, count, err := store.GetView()
	if err != nil {
		return
	}

	model = Model{
		Store:         store,
		layoutPath:    layoutPath,
		logger:        lgr,
		ctx:           ctx,
		filter:        flt,
		order:         ord,
		initialSort:   ord,
		CurrentScreen: TableScreen,
		table:         table.New(ctx, layout.Columns, count, lgr),
		detail:        detail.New(),
	}
	return
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.GetPageMsg:
		return m, m.getPage(msg.Offset, msg.Size)

	case table.TableMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case detail.DetailMsg:
		m.detail, _ = m.detail.Update(msg)
		return m, nil

	case message.SelectedMsg:
		m.selectedId = msg.Id
		m.hasSelected = true
		return m, nil

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case viewMsg:
		m.filter = msg.filter
		m.order = msg.order
		m.hasSelected = false
		m.logger.Info(m.ctx, "view changed", "filter", m.filter.String(), "sort", m.order.String(), "count", msg.count)

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(table.ResetMsg{})
		return m, cmd

	case layoutMsg:
		m.table, _ = m.table.Update(table.ColumnsMsg{Columns: msg.layout.Columns})
		return m, m.setView(m.filter, m.order)

	case prompt.SubmitMsg:
		return m.submit(msg)

	case prompt.CancelMsg:
		m.prompting = false
		m.errorString = ""
		return m, nil

	case tea.KeyPressMsg:
		if m.prompting {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
		m.errorString = ""

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.CurrentScreen != TableScreen {
				m.CurrentScreen = TableScreen
				return m, nil
			}
			return m, tea.Quit

		case "enter", "right", "l":
			if m.CurrentScreen == TableScreen && m.hasSelected {
				m.CurrentScreen = DetailScreen
				return m, m.getTorrent(m.selectedId)
			}
			if msg.String() == "enter" {
				m.CurrentScreen = TableScreen
			}
			return m, nil

		case "left", "h":
			m.CurrentScreen = TableScreen
			return m, nil

		case "/":
			return m.openPrompt(labelFilter, filterText(m.filter)), nil

		case "+":
			// all absorbs anything added to it
			if m.filter.IsAll() {
				return m.openPrompt(labelFilter, ""), nil
			}
			return m.openPrompt(labelAddFilter, ""), nil

		case "s":
			return m.openPrompt(labelSort, m.order.String()), nil

		case "F":
			return m, m.setView(filter.Expression{}, m.order)

		case "R":
			return m, m.setView(m.filter, m.initialSort)

		case "r":
			return m, m.reloadLayout()
		}

		var cmd tea.Cmd
		switch m.CurrentScreen {
		case TableScreen:
			m.table, cmd = m.table.Update(msg)
		case DetailScreen:
			m.detail, cmd = m.detail.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		height := max(0, msg.Height-footerHeight)

		var cmd tea.Cmd
		m.detail, _ = m.detail.Update(detail.SizeMsg{Width: msg.Width, Height: height})
		m.table, cmd = m.table.Update(table.SizeMsg{Width: msg.Width, Height: height})
		return m, cmd
	}

	return m, nil
}

func (m Model) View() tea.View {

	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	var screenContent string
	switch m.CurrentScreen {
	case DetailScreen:
		screenContent = m.detail.Render()
	default:
		screenContent = m.table.Render()
	}
	screenLayer := lipgloss.NewLayer("screen", screenContent)

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(screenLayer)
	canvas.Compose(lipgloss.NewLayer("footer", m.footer()).Y(m.Height - footerHeight))

	view := tea.NewView(canvas)
	view.AltScreen = true
	return view
}

// Filter returns the filter in view.
func (m Model) Filter() filter.Expression {
	return m.filter
}

// Order returns the order in view.
func (m Model) Order() order.Order {
	return m.order
}

// unexported

func (m Model) footer() string {

	top := ""
	bottom := RenderFooter(m.table.Selected(), m.table.Total(), m.filter, m.order, m.Store.Name(), m.Width)

	if m.prompting {
		top = m.prompt.Render()
	}

	if m.errorString != "" {
		errLine := style.ErrorStyle.Render(m.errorString)
		if top == "" {
			top = errLine
		} else {
			bottom = errLine
		}
	}

	return strings.Join([]string{top, bottom}, "\n")
}

func (m Model) openPrompt(label, value string) Model {

	m.prompt = prompt.New(label, value, 0)
	m.prompting = true
	return m
}

func (m Model) submit(msg prompt.SubmitMsg) (tea.Model, tea.Cmd) {

	switch msg.Label {
	case labelFilter, labelAddFilter:
		flt, err := torrent.ParseFilter(msg.Value)
		if err != nil {
			m.errorString = err.Error()
			return m, nil
		}

		if msg.Label == labelAddFilter && !m.filter.IsAll() {
			flt = m.filter.Combine(flt)
		}

		m.prompting = false
		m.errorString = ""
		return m, m.setView(flt, m.order)

	case labelSort:
		ord := order.Reset
		if strings.TrimSpace(msg.Value) != ord.String() {
			var err error
			ord, err = torrent.ParseSort(msg.Value)
			if err != nil {
				m.errorString = err.Error()
				return m, nil
			}
		}

		if ord.IsReset() {
			ord = m.initialSort
		}

		m.prompting = false
		m.errorString = ""
		return m, m.setView(m.filter, ord)
	}

	m.prompting = false
	return m, nil
}

func filterText(flt filter.Expression) string {
	if flt.IsAll() {
		return ""
	}
	return flt.String()
}
