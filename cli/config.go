package cli

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"torsift"
	"torsift/logger"
	"torsift/util"
)

const (
	appName   = "torsift"
	envPrefix = "TORSIFT"
)

// Config holds any kind of configuration that comes from the outside world.
type Config struct {
	Log struct {
		logger.Config `mapstructure:",squash"`
		File          string `mapstructure:"file"`
	} `mapstructure:"log"`

	// Layout is a path to a layout file, the sample layout is used when empty
	Layout string `mapstructure:"layout"`
	// Filter and Sort override the layout's
	Filter string `mapstructure:"filter"`
	Sort   string `mapstructure:"sort"`
}

// configure sets defaults in v and binds it to cmd's persistent flags.
func configure(v *viper.Viper, cmd *cobra.Command) {

	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	flags := cmd.PersistentFlags()
	flags.SortFlags = false

	flags.String("config", "", "configuration file")

	flags.String("log-level", "info", "log level")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	flags.String("log-format", "text", "log format (text|json)")
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))

	flags.String("log-file", "", "log file, stderr when empty and not viewing")
	_ = v.BindPFlag("log.file", flags.Lookup("log-file"))

	flags.String("layout", "", "layout file, written with a sample when missing")
	_ = v.BindPFlag("layout", flags.Lookup("layout"))

	v.SetDefault("filter", "")
	v.SetDefault("sort", "")
}

// loadConfig reads the config file when there is one and unmarshals the result.
func loadConfig(v *viper.Viper, path string) (cfg *Config, err error) {

	if path != "" {
		v.SetConfigFile(path)
	}

	err = v.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
		err = nil
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read configuration")
		return
	}

	cfg = &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		cfg = nil
		err = errors.Wrapf(err, "failed to unmarshal configuration")
	}
	return
}

// logOutput picks where logs go; a terminal ui owns stdout and stderr.
func (cfg *Config) logOutput(tui bool) (io.Writer, error) {

	if cfg.Log.File == "" && !tui {
		return os.Stderr, nil
	}
	return util.OpenLog(cfg.Log.File, 0644)
}

// layout loads the configured layout and applies filter and sort overrides.
func (cfg *Config) layout(filters []string, sort string) (layout *torsift.Layout, err error) {

	if cfg.Layout == "" {
		layout, err = torsift.DefaultLayout()
	} else {
		layout, err = torsift.LoadLayout(cfg.Layout)
	}
	if err != nil {
		return
	}

	switch {
	case len(filters) > 0:
		err = layout.SetFilters(filters...)
		if err != nil {
			layout = nil
			return
		}
	case cfg.Filter != "":
		layout.Filter = cfg.Filter
	}

	switch {
	case sort != "":
		layout.Sort = sort
	case cfg.Sort != "":
		layout.Sort = cfg.Sort
	}

	_, _, err = layout.View()
	if err != nil {
		layout = nil
	}
	return
}
