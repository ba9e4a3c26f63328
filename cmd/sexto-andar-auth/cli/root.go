package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute creates the root command tree and runs it.
func Execute(version, commit string) error {
	rootCmd := newRootCmd(version, commit)
	return rootCmd.Execute()
}

func newRootCmd(version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sexto-andar-auth",
		Short: "SextoAndar authentication service",
		Long: `SextoAndar authentication service.

Handles account registration, credential login, JWT session issuance,
role-based authorization, and the administrator lifecycle for the
SextoAndar platform.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCreateAdminCmd())
	cmd.AddCommand(newVersionCmd(version, commit))

	return cmd
}

func newVersionCmd(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sexto-andar-auth %s (commit %s)\n", version, commit)
		},
	}
}
