package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/strongroom-dev/strongroom/internal/bank"
	"github.com/strongroom-dev/strongroom/internal/config"
	"github.com/strongroom-dev/strongroom/internal/id"
	"github.com/strongroom-dev/strongroom/internal/model"
	"github.com/strongroom-dev/strongroom/internal/store"
)

func newInitCommand(configPath *string) *cobra.Command {
	var accountsFile string
	var adminPassword string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file and an accounts file holding only admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), *configPath, accountsFile, adminPassword)
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVar(&accountsFile, "accounts", defaults.Data.AccountsFile,
		"accounts file, relative to the config file's directory")
	cmd.Flags().StringVar(&adminPassword, "admin-password", defaults.Admin.DefaultPassword,
		"initial admin password")

	return cmd
}

func runInit(out io.Writer, configPath, accountsFile, adminPassword string) error {
	if !id.Valid(adminPassword) {
		return errors.New("admin password must be letters and digits only")
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file %s: %w", configPath, fs.ErrExist)
	}

	cfg := config.Default()
	cfg.Data.AccountsFile = accountsFile

	st := store.NewFile(accountsPath(configPath, cfg))
	ledger, err := bank.New(nil, st, bank.WithAdminPassword(adminPassword))
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	accounts := ledger.Accounts()
	records := make([]model.StoredAccount, len(accounts))
	for i, a := range accounts {
		records[i] = a.Stored()
	}
	if err := st.Create(records); err != nil {
		return err
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initialized strongroom at %s (accounts: %s)\n", configPath, st.Path())
	return nil
}
