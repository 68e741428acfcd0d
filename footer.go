package torsift

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"torsift/filter"
	"torsift/order"
	"torsift/style"
)

// RenderFooter renders position, filter and sort on the left and the file name on the right.
func RenderFooter(current, total int, flt filter.Expression, ord order.Order, filename string, width int) string {

	left := fmt.Sprintf("%d/%d  filter: %s  sort: %s", current, total, flt, ord)
	right := filename

	padding := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return style.FooterStyle.Render(left + strings.Repeat(" ", padding) + right)
}
