package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Value wraps a record attribute and provides type conversion helpers.
type Value struct {
	Raw any
}

// String returns the value as a string.
func (v Value) String() string {
	if v.Raw == nil {
		return ""
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Text returns the value as text, refusing missing and composite values.
func (v Value) Text() (text string, err error) {

	switch raw := v.Raw.(type) {
	case nil:
		err = errors.Errorf("value is missing")
	case string:
		text = raw
	case []any, []string, map[string]any:
		err = errors.Errorf("value is not text: %T", v.Raw)
	default:
		text = v.String()
	}
	return
}

// Decimal returns the value as an exact decimal.
func (v Value) Decimal() (dec decimal.Decimal, err error) {

	switch raw := v.Raw.(type) {
	case decimal.Decimal:
		dec = raw
	case int:
		dec = decimal.NewFromInt(int64(raw))
	case int32:
		dec = decimal.NewFromInt32(raw)
	case int64:
		dec = decimal.NewFromInt(raw)
	case uint32:
		dec = decimal.NewFromInt(int64(raw))
	case float32:
		dec, err = fromFloat(float64(raw))
	case float64:
		dec, err = fromFloat(raw)
	case string:
		dec, err = decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			err = errors.Wrapf(err, "value is not a number: %q", raw)
		}
	default:
		err = errors.Errorf("value is not a number: %T", v.Raw)
	}
	return
}

// Float returns the value as a float64.
func (v Value) Float() (float64, error) {
	dec, err := v.Decimal()
	if err != nil {
		return 0, err
	}
	return dec.InexactFloat64(), nil
}

// Bool returns the value as a bool.
func (v Value) Bool() (flag bool, err error) {

	switch raw := v.Raw.(type) {
	case bool:
		flag = raw
	case string:
		flag, err = strconv.ParseBool(raw)
		if err != nil {
			err = errors.Wrapf(err, "value is not a bool: %q", raw)
		}
	default:
		err = errors.Errorf("value is not a bool: %T", v.Raw)
	}
	return
}

// Span returns the value as a timespan; nil and negative values are unknown.
func (v Value) Span() (span Timespan, err error) {

	switch raw := v.Raw.(type) {
	case nil:
	case Timespan:
		span = raw
	case time.Duration:
		span = Known(raw)
	case string:
		span, err = ParseTimespan(raw)
	default:
		var dec decimal.Decimal
		dec, err = v.Decimal()
		if err != nil {
			err = errors.Errorf("value is not a timespan: %T", v.Raw)
			return
		}
		if dec.Sign() >= 0 {
			span = Seconds(dec)
		}
	}
	return
}

// Statuses returns the value as a list of statuses.
func (v Value) Statuses() (statuses []Status, err error) {

	switch raw := v.Raw.(type) {
	case nil:
	case Status:
		statuses = []Status{raw}
	case []Status:
		statuses = raw
	case []string:
		for _, name := range raw {
			statuses = append(statuses, Status(name))
		}
	case []any:
		for _, elem := range raw {
			name, ok := elem.(string)
			if !ok {
				err = errors.Errorf("status is not a string: %T", elem)
				return
			}
			statuses = append(statuses, Status(name))
		}
	case string:
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				statuses = append(statuses, Status(name))
			}
		}
	default:
		err = errors.Errorf("value is not a status list: %T", v.Raw)
	}
	return
}

// unexported

func fromFloat(flt float64) (dec decimal.Decimal, err error) {

	if math.IsNaN(flt) || math.IsInf(flt, 0) {
		err = errors.Errorf("value is not a finite number: %v", flt)
		return
	}

	dec = decimal.NewFromFloat(flt)
	return
}
