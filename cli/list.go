package cli

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	nt "torsift/entity"
	"torsift/style"
	tbl "torsift/table"
)

func newListCommand(app *app) *cobra.Command {

	var filters []string
	var sort string

	cmd := &cobra.Command{
		Use:   "list FILE",
		Short: "Print matching torrents as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runList(cmd, args[0], filters, sort)
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter, repeat for alternatives")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "sort keys")

	return cmd
}

func (app *app) runList(cmd *cobra.Command, path string, filters []string, sort string) (err error) {

	ctx := cmd.Context()

	layout, err := app.cfg.layout(filters, sort)
	if err != nil {
		return
	}
	flt, ord, err := layout.View()
	if err != nil {
		return
	}

	dk, _, closeLog, err := app.openStore(ctx, path, false)
	if err != nil {
		return
	}
	defer closeLog()
	defer dk.Close()

	err = dk.SetView(ctx, flt, ord, layout.Fields())
	if err != nil {
		return
	}

	_, count, err := dk.GetView()
	if err != nil {
		return
	}

	torrents, err := dk.GetPage(0, count)
	if err != nil {
		return
	}

	var headers []string
	var formats []func(nt.Value) string
	var fields []string
	for _, col := range layout.Columns {
		if col.Hidden {
			continue
		}
		headers = append(headers, col.Header())
		formats = append(formats, tbl.Formatter(col.Format))
		fields = append(fields, col.Field)
	}

	out := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.TableBorderStyle).
		Headers(headers...)

	for _, tor := range torrents {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = formats[i](tor.Get(field))
		}
		out.Row(row...)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Render())
	if err != nil {
		return
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d torrents, filter: %s, sort: %s\n", count, flt, ord)
	return
}
