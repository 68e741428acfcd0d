package entity

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

// Timespan is a duration that may be unknown, such as the eta of a stalled torrent.
type Timespan struct {
	Duration time.Duration
	Known    bool
}

// Known returns a known timespan of dur.
func Known(dur time.Duration) Timespan {
	return Timespan{Duration: dur, Known: true}
}

var (
	maxNanos = decimal.NewFromInt(math.MaxInt64)
	minNanos = decimal.NewFromInt(math.MinInt64)
)

// Seconds returns a known timespan of sec seconds, clamped to the range of time.Duration.
func Seconds(sec decimal.Decimal) Timespan {

	nanos := sec.Mul(decimal.NewFromInt(int64(time.Second))).Round(0)
	switch {
	case nanos.GreaterThan(maxNanos):
		return Known(time.Duration(math.MaxInt64))
	case nanos.LessThan(minNanos):
		return Known(time.Duration(math.MinInt64))
	}
	return Known(time.Duration(nanos.IntPart()))
}

// inRange reports whether sec seconds fit in a time.Duration.
func inRange(sec decimal.Decimal) bool {
	return !sec.Mul(decimal.NewFromInt(int64(time.Second))).Round(0).GreaterThan(maxNanos)
}

var spanUnits = map[rune]time.Duration{
	's': time.Second, 'S': time.Second,
	'm': time.Minute,
	'h': time.Hour, 'H': time.Hour,
	'd': day, 'D': day,
	'w': week, 'W': week,
	'M': month,
	'y': year, 'Y': year,
}

// ParseTimespan parses "90", "1h30m", "2d 4h" and the like; a bare number is seconds.
// Units are s, m, h, d, w, M (30 days) and y (365 days).
func ParseTimespan(text string) (span Timespan, err error) {

	text = strings.TrimSpace(text)
	if text == "" {
		err = errors.Errorf("empty timespan")
		return
	}

	sec, err := decimal.NewFromString(text)
	if err == nil {
		if sec.Sign() < 0 {
			err = errors.Errorf("negative timespan: %q", text)
			return
		}
		if !inRange(sec) {
			err = errors.Errorf("timespan out of range: %q", text)
			return
		}
		span = Seconds(sec)
		return
	}
	err = nil

	total := decimal.Zero
	runes := []rune(text)
	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		start := i
		for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
			i++
		}
		if start == i || i == len(runes) {
			err = errors.Errorf("malformed timespan: %q", text)
			return
		}

		var num decimal.Decimal
		num, err = decimal.NewFromString(string(runes[start:i]))
		if err != nil {
			err = errors.Wrapf(err, "malformed timespan: %q", text)
			return
		}

		unit, ok := spanUnits[runes[i]]
		if !ok {
			err = errors.Errorf("unknown timespan unit %q in %q", runes[i], text)
			return
		}
		i++

		total = total.Add(num.Mul(decimal.NewFromInt(int64(unit / time.Second))))
	}

	if !inRange(total) {
		err = errors.Errorf("timespan out of range: %q", text)
		return
	}

	span = Seconds(total)
	return
}

// String renders the timespan with the largest fitting units, e.g. "1d2h" or "1m30s".
func (span Timespan) String() string {

	if !span.Known {
		return "unknown"
	}

	rem := span.Duration
	if rem < 0 {
		rem = -rem
	}

	var sb strings.Builder
	for _, unit := range []struct {
		dur  time.Duration
		name string
	}{{year, "y"}, {day, "d"}, {time.Hour, "h"}, {time.Minute, "m"}} {
		count := rem / unit.dur
		if count > 0 {
			sb.WriteString(decimal.NewFromInt(int64(count)).String())
			sb.WriteString(unit.name)
			rem -= count * unit.dur
		}
	}

	if rem > 0 || sb.Len() == 0 {
		sec := decimal.NewFromInt(int64(rem)).Div(decimal.NewFromInt(int64(time.Second)))
		sb.WriteString(sec.String())
		sb.WriteString("s")
	}

	if span.Duration < 0 {
		return "-" + sb.String()
	}
	return sb.String()
}

// Compare orders known timespans by duration and puts unknown ones after them.
func (span Timespan) Compare(other Timespan) int {

	switch {
	case !span.Known && !other.Known:
		return 0
	case !span.Known:
		return 1
	case !other.Known:
		return -1
	case span.Duration < other.Duration:
		return -1
	case span.Duration > other.Duration:
		return 1
	}
	return 0
}
