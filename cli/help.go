package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"torsift/torrent"
)

func newFiltersCommand() *cobra.Command {

	return &cobra.Command{
		Use:   "filters",
		Short: "List the filters and their value kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(torrent.Filters().Help(), "\n"))
			return
		},
	}
}

func newSortsCommand() *cobra.Command {

	return &cobra.Command{
		Use:   "sorts",
		Short: "List the sort keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(torrent.Sorts().Help(), "\n"))
			return
		},
	}
}
