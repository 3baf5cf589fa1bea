package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orawire/connstring/internal/tnsnames"
)

func newAliasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "List the aliases defined in tnsnames.ora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := &tnsnames.Resolver{Dirs: aliasSearchDirs()}
			entries, err := resolver.Entries()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ALIAS\tDESCRIPTOR")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Descriptor)
			}
			return tw.Flush()
		},
	}
	return cmd
}

// aliasSearchDirs builds the tnsnames.ora search path: the --config-dir flag
// (or bound env), then ORACLE_HOME/network/admin.
func aliasSearchDirs() []string {
	var dirs []string
	if dir := resolveConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	if home := os.Getenv("ORACLE_HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, "network", "admin"))
	}
	return dirs
}
