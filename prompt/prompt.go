// Package prompt is a single line text input.
package prompt

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"torsift/style"
)

const defaultMaxLength = 256

// SubmitMsg carries the text entered at a prompt.
type SubmitMsg struct {
	Label string
	Value string
}

// CancelMsg signals a prompt was abandoned.
type CancelMsg struct {
	Label string
}

// Prompt is an editable line preceded by a label.
type Prompt struct {
	Label     string
	value     []rune
	cursor    int
	maxLength int
}

// New creates a prompt holding value with the cursor at its end.
func New(label, value string, maxLength int) Prompt {

	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}

	runes := []rune(value)
	return Prompt{
		Label:     label,
		value:     runes,
		cursor:    len(runes),
		maxLength: maxLength,
	}
}

func (pr Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return pr, nil
	}

	switch key.String() {
	case "enter":
		value := pr.Value()
		label := pr.Label
		return pr, func() tea.Msg { return SubmitMsg{Label: label, Value: value} }

	case "esc", "ctrl+c":
		label := pr.Label
		return pr, func() tea.Msg { return CancelMsg{Label: label} }

	case "backspace":
		if pr.cursor > 0 {
			pr.value = append(pr.value[:pr.cursor-1:pr.cursor-1], pr.value[pr.cursor:]...)
			pr.cursor--
		}

	case "delete", "ctrl+d":
		if pr.cursor < len(pr.value) {
			pr.value = append(pr.value[:pr.cursor:pr.cursor], pr.value[pr.cursor+1:]...)
		}

	case "left", "ctrl+b":
		if pr.cursor > 0 {
			pr.cursor--
		}

	case "right", "ctrl+f":
		if pr.cursor < len(pr.value) {
			pr.cursor++
		}

	case "home", "ctrl+a":
		pr.cursor = 0

	case "end", "ctrl+e":
		pr.cursor = len(pr.value)

	case "ctrl+u":
		pr.value = pr.value[pr.cursor:]
		pr.cursor = 0

	default:
		text := []rune(key.Text)
		if len(text) == 0 || len(pr.value)+len(text) > pr.maxLength {
			return pr, nil
		}

		value := make([]rune, 0, len(pr.value)+len(text))
		value = append(value, pr.value[:pr.cursor]...)
		value = append(value, text...)
		value = append(value, pr.value[pr.cursor:]...)

		pr.value = value
		pr.cursor += len(text)
	}

	return pr, nil
}

// Value returns the text entered so far.
func (pr Prompt) Value() string {
	return string(pr.value)
}

// Cursor returns the cursor position in runes.
func (pr Prompt) Cursor() int {
	return pr.cursor
}

// Render returns the label and text with the cursor highlighted.
func (pr Prompt) Render() string {

	under := " "
	after := ""
	if pr.cursor < len(pr.value) {
		under = string(pr.value[pr.cursor])
		after = string(pr.value[pr.cursor+1:])
	}

	var sb strings.Builder
	sb.WriteString(style.PromptStyle.Render(pr.Label + ": "))
	sb.WriteString(string(pr.value[:pr.cursor]))
	sb.WriteString(style.CursorStyle.Render(under))
	sb.WriteString(after)

	return sb.String()
}
