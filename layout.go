package torsift

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "torsift/entity"
	"torsift/filter"
	"torsift/order"
	"torsift/torrent"
	"torsift/util"
)

//go:embed layout.yaml
var SampleLayout []byte

// Layout is the columns shown and the view a list starts with.
type Layout struct {
	Columns []nt.Column `yaml:"columns"`
	Filter  string      `yaml:"filter,omitempty"`
	Sort    string      `yaml:"sort,omitempty"`
}

// LoadLayout reads a layout, writing the sample first when there is none at path.
func LoadLayout(path string) (layout *Layout, err error) {

	_, err = util.WriteSample(SampleLayout, path, 0644)
	if err != nil {
		return
	}

	layout = &Layout{}
	err = util.LoadYaml(layout, path)
	if err != nil {
		layout = nil
		return
	}

	err = layout.validate()
	if err != nil {
		layout = nil
		err = errors.Wrapf(err, "invalid layout %s", path)
	}
	return
}

// DefaultLayout returns the sample layout.
func DefaultLayout() (layout *Layout, err error) {

	layout = &Layout{}
	err = yaml.Unmarshal(SampleLayout, layout)
	if err != nil {
		layout = nil
		err = errors.Wrapf(err, "failed to unmarshal sample layout")
		return
	}

	err = layout.validate()
	if err != nil {
		layout = nil
	}
	return
}

// Save writes the layout to path.
func (layout *Layout) Save(path string) error {
	return util.WriteYaml(layout, path, os.FileMode(0644))
}

// View parses the layout's filter and sort, defaulting to all torrents by name.
func (layout *Layout) View() (flt filter.Expression, ord order.Order, err error) {

	flt, err = torrent.ParseFilter(layout.Filter)
	if err != nil {
		return
	}

	ord = torrent.DefaultSort()
	if layout.Sort != "" {
		ord, err = torrent.ParseSort(layout.Sort)
	}
	return
}

// SetFilters replaces the filter with the alternatives in texts, in canonical form.
func (layout *Layout) SetFilters(texts ...string) (err error) {

	flt, err := torrent.ParseFilter(texts...)
	if err != nil {
		return
	}

	layout.Filter = ""
	if !flt.IsAll() {
		layout.Filter = flt.String()
	}
	return
}

// Fields returns the attributes of the layout's columns.
func (layout *Layout) Fields() (fields []string) {
	for _, col := range layout.Columns {
		fields = append(fields, col.Field)
	}
	return
}

// unexported

func (layout *Layout) validate() error {

	if len(layout.Columns) == 0 {
		return errors.Errorf("no columns")
	}

	for _, col := range layout.Columns {
		if _, ok := torrent.Columns[col.Field]; !ok {
			return errors.Errorf("unknown column field %q", col.Field)
		}
		if col.Width < 1 {
			return errors.Errorf("column %q needs a positive width", col.Field)
		}
	}

	_, _, err := layout.View()
	return err
}
