package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/orawire/connstring"
	"github.com/orawire/connstring/goora"
)

func newDSNCmd() *cobra.Command {
	var noPrompt bool

	cmd := &cobra.Command{
		Use:   "dsn <user/password@connect-string>",
		Short: "Emit the go-ora driver URL for a credential DSN",
		Long: `Resolves a credential DSN and prints the connection URL understood by
the go-ora driver. When the DSN names a user but no password and stdin is a
terminal, the password is prompted for without echo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp := connstring.NewConnectParams()
			if dir := resolveConfigDir(); dir != "" {
				if err := cp.Set("config_dir", dir); err != nil {
					return err
				}
			}
			if err := cp.ParseDSN(args[0]); err != nil {
				return err
			}

			user, password, _ := connstring.ParseDSN(args[0])
			if user != "" && password == "" && !noPrompt {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return fmt.Errorf("no password in DSN and stdin is not a terminal (use --no-prompt to skip)")
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s: ", user)
				pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.ErrOrStderr())
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				if err := cp.Set("password", string(pwBytes)); err != nil {
					return err
				}
			}

			snap, err := cp.Snapshot()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), goora.URL(snap))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "never prompt for a missing password")

	return cmd
}
