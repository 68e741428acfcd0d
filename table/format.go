package table

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"

	nt "torsift/entity"
)

// Column formats.
const (
	FormatSize     = "size"
	FormatRate     = "rate"
	FormatPercent  = "percent"
	FormatTimespan = "timespan"
	FormatList     = "list"
)

// Formatter returns a function rendering values in format,
// falling back to the plain value when it does not fit.
func Formatter(format string) func(nt.Value) string {

	switch format {
	case FormatSize:
		return func(val nt.Value) string {
			if val.Raw == nil {
				return ""
			}
			flt, err := val.Float()
			if err != nil {
				return val.String()
			}
			return units.HumanSize(flt)
		}

	case FormatRate:
		return func(val nt.Value) string {
			flt, err := val.Float()
			if err != nil || flt == 0 {
				return ""
			}
			return units.HumanSize(flt) + "/s"
		}

	case FormatPercent:
		return func(val nt.Value) string {
			if val.Raw == nil {
				return ""
			}
			flt, err := val.Float()
			if err != nil {
				return val.String()
			}
			return fmt.Sprintf("%.1f%%", flt)
		}

	case FormatTimespan:
		return func(val nt.Value) string {
			span, err := val.Span()
			if err != nil {
				return val.String()
			}
			if !span.Known {
				return ""
			}
			return span.String()
		}

	case FormatList:
		return func(val nt.Value) string {
			statuses, err := val.Statuses()
			if err != nil {
				return val.String()
			}
			names := make([]string, len(statuses))
			for i, st := range statuses {
				names[i] = string(st)
			}
			return strings.Join(names, ",")
		}
	}

	return func(val nt.Value) string {
		return val.String()
	}
}

// truncate shortens in to width runes, marking the cut with an ellipsis.
func truncate(in string, width int, ellipsis string) string {

	runes := []rune(in)
	if width <= 0 || len(runes) <= width {
		return in
	}

	return string(runes[:width-1]) + ellipsis
}
