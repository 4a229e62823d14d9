package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strongroom-dev/strongroom/internal/bank"
	"github.com/strongroom-dev/strongroom/internal/config"
	"github.com/strongroom-dev/strongroom/internal/logging"
	"github.com/strongroom-dev/strongroom/internal/shell"
	"github.com/strongroom-dev/strongroom/internal/store"
)

func newShellCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive banking session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, *configPath)
		},
	}
}

func runShell(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st := store.NewFile(accountsPath(configPath, cfg))
	if !st.Exists() {
		return ended(fmt.Errorf("accounts file %s not found, run strongroom init first", st.Path()))
	}
	ledger, err := bank.Open(st,
		bank.WithLogger(log.Named("bank")),
		bank.WithAdminPassword(cfg.Admin.DefaultPassword))
	if err != nil {
		log.Error("opening ledger failed", zap.String("path", st.Path()), zap.Error(err))
		return ended(err)
	}

	prompter := shell.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	sh := shell.New(ledger, prompter, cmd.OutOrStdout(),
		shell.WithClearScreen(cfg.Shell.ClearScreen),
		shell.WithLogger(log.Named("shell")))

	if err := sh.Run(); err != nil {
		return ended(err)
	}
	return nil
}

// accountsPath resolves a relative accounts file against the config file's
// directory.
func accountsPath(configPath string, cfg *config.Config) string {
	p := cfg.Data.AccountsFile
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func ended(err error) error {
	return fmt.Errorf("%w. Ending banking process", err)
}
