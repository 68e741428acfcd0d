// Package detail shows every attribute of a single torrent.
package detail

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"torsift/style"
)

// DetailPanel handles the full torrent view display state
type DetailPanel struct {
	torrent      map[string]any
	contentLines []string

	width        int
	height       int
	ScrollOffset int
}

func New() DetailPanel {
	return DetailPanel{}
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case TorrentMsg:
		pnl.torrent = msg.Torrent
		pnl.contentLines = contentLines(pnl.torrent)
		pnl.ScrollOffset = 0

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = min(pnl.ScrollOffset, pnl.maxScroll())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			pnl.ScrollOffset = max(0, pnl.ScrollOffset-1)

		case "down", "j":
			pnl.ScrollOffset = min(pnl.maxScroll(), pnl.ScrollOffset+1)

		case "pgup", "ctrl+u":
			pnl.ScrollOffset = max(0, pnl.ScrollOffset-pnl.height)

		case "pgdown", "ctrl+d":
			pnl.ScrollOffset = min(pnl.maxScroll(), pnl.ScrollOffset+pnl.height)
		}
	}

	return pnl, nil
}

func (pnl DetailPanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render shows the visible portion of the torrent's attributes.
func (pnl DetailPanel) Render() string {

	if pnl.contentLines == nil {
		return "Loading torrent..."
	}

	visible := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visible) > pnl.height {
		visible = visible[:pnl.height]
	}
	return strings.Join(visible, "\n")
}

// unexported

func (pnl DetailPanel) maxScroll() int {
	if pnl.height <= 0 {
		return 0
	}
	return max(0, len(pnl.contentLines)-pnl.height)
}

// contentLines renders one aligned line per attribute, in key order,
// with composite values as indented json.
func contentLines(torrent map[string]any) (lines []string) {

	if torrent == nil {
		return
	}

	keys := make([]string, 0, len(torrent))
	width := 0
	for key := range torrent {
		keys = append(keys, key)
		width = max(width, lipgloss.Width(key))
	}
	slices.Sort(keys)

	for _, key := range keys {
		label := style.KeyStyle.Render(fmt.Sprintf("%-*s", width, key))

		switch val := torrent[key].(type) {
		case map[string]any, []any:
			data, err := json.MarshalIndent(val, "", "  ")
			if err != nil {
				lines = append(lines, label+"  "+fmt.Sprintf("%v", val))
				continue
			}
			lines = append(lines, label)
			for _, ln := range strings.Split(string(data), "\n") {
				lines = append(lines, "  "+ln)
			}
		case nil:
			lines = append(lines, label+"  "+style.MutedStyle.Render("null"))
		default:
			lines = append(lines, label+"  "+fmt.Sprintf("%v", val))
		}
	}
	return
}
