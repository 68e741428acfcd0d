// Package cli is the torsift command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"torsift/logger"
	"torsift/store/duck"
	"torsift/util"
)

// app carries what every command shares once flags are parsed.
type app struct {
	v   *viper.Viper
	cfg *Config
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {

	app := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Filter and sort torrent lists",
		Long: `Filter and sort lists of torrents read from newline delimited json.

Filters are joined with "&" (and) and "|" (or), for example
"complete&!private|size>1G". Sort keys are separated by commas and
reversed with a leading "!", for example "!size,name".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			path, _ := cmd.Flags().GetString("config")
			app.cfg, err = loadConfig(app.v, path)
			return
		},
	}

	configure(app.v, cmd)

	cmd.AddCommand(newViewCommand(app))
	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newFiltersCommand())
	cmd.AddCommand(newSortsCommand())

	return cmd
}

// openStore loads path into a new store, logging for a terminal ui or not.
func (app *app) openStore(ctx context.Context, path string, tui bool) (dk *duck.Duck, lgr *logger.Logger, closeLog func(), err error) {

	out, err := app.cfg.logOutput(tui)
	if err != nil {
		return
	}
	closeLog = func() { util.CloseLog(out) }

	lgr = app.cfg.Log.Config.New(out)
	ctx = logger.WithFields(ctx, "app", appName)

	dk, err = duck.New(ctx, lgr)
	if err != nil {
		closeLog()
		return
	}

	err = dk.Load(ctx, path)
	if err != nil {
		dk.Close()
		closeLog()
		dk = nil
	}
	return
}
