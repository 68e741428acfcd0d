package cli

import (
	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"torsift"
)

func newViewCommand(app *app) *cobra.Command {

	var filters []string
	var sort string

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse torrents interactively",
		Long: `Browse the torrents in FILE.

Keys: "/" sets the filter, "+" adds an alternative filter, "s" sets
the sort, "F" clears the filter, "R" resets the sort, "r" reloads the
layout, enter shows every attribute of the selected torrent and "q"
quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runView(cmd, args[0], filters, sort)
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter, repeat for alternatives")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "sort keys")

	return cmd
}

func (app *app) runView(cmd *cobra.Command, path string, filters []string, sort string) (err error) {

	ctx := cmd.Context()

	layout, err := app.cfg.layout(filters, sort)
	if err != nil {
		return
	}

	dk, lgr, closeLog, err := app.openStore(ctx, path, true)
	if err != nil {
		return
	}
	defer closeLog()
	defer dk.Close()

	model, err := torsift.NewModel(ctx, dk, layout, app.cfg.Layout, lgr)
	if err != nil {
		return
	}

	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	err = errors.Wrapf(err, "failed to run view")
	return
}
