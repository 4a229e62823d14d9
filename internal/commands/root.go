package commands

import (
	"github.com/spf13/cobra"

	"github.com/strongroom-dev/strongroom/internal/buildinfo"
	"github.com/strongroom-dev/strongroom/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it starts the interactive shell.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "strongroom",
		Short:   "Single-user banking session manager",
		Version: buildinfo.String(),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to strongroom.yaml")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newShellCommand(&configPath))

	return rootCmd
}
