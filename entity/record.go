package entity

import "github.com/pkg/errors"

// Record is anything that can hand out attribute values by key.
type Record interface {
	Get(key string) Value
}

// Torrent is a record backed by a map of attributes.
type Torrent map[string]any

// Get returns the value stored under key, with a nil Raw when absent.
func (tor Torrent) Get(key string) Value {
	return Value{Raw: tor[key]}
}

// Id returns the torrent's id attribute.
func (tor Torrent) Id() (id int64, err error) {

	dec, err := tor.Get("id").Decimal()
	if err != nil {
		err = errors.Wrapf(err, "torrent has no usable id")
		return
	}
	if !dec.IsInteger() {
		err = errors.Errorf("torrent id is not an integer: %s", dec)
		return
	}

	id = dec.IntPart()
	return
}
