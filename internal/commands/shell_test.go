package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strongroom-dev/strongroom/internal/config"
)

func initProject(t *testing.T) (cfgPath, accountsPath string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "strongroom.yaml")
	_, err := runStrongroom(t, "", "init", "--config", cfgPath)
	require.NoError(t, err)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Shell.ClearScreen = false
	require.NoError(t, config.Save(cfgPath, cfg))

	return cfgPath, filepath.Join(dir, "accounts.csv")
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestShell_RegisterAndExitPersists(t *testing.T) {
	cfgPath, accounts := initProject(t)

	out, err := runStrongroom(t, script(
		"REGISTER", "alice", "pw1",
		"LOGIN", "alice", "pw1",
		"DEPOSIT", "12.50", "pw1",
		"EXIT",
	), "--config", cfgPath)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Registration successful.")
	assert.Contains(t, out, "[Logged in: alice, Current balance: $12.50]")
	assert.Equal(t, []string{"admin", "alice"}, loadIDs(t, accounts))
}

func TestShell_SubcommandMatchesRoot(t *testing.T) {
	cfgPath, _ := initProject(t)

	out, err := runStrongroom(t, script("HELP", "EXIT"), "shell", "--config", cfgPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "CHANGE PASSWORD: Allows current user to change password")
}

func TestShell_EndOfInputDoesNotSave(t *testing.T) {
	cfgPath, accounts := initProject(t)

	out, err := runStrongroom(t, script("REGISTER", "alice", "pw1"), "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, out, "Ending banking process")
	assert.Equal(t, []string{"admin"}, loadIDs(t, accounts))
}

func TestShell_MissingAccountsFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "strongroom.yaml")
	require.NoError(t, config.Save(cfgPath, config.Default()))

	out, err := runStrongroom(t, script("EXIT"), "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, out, "Ending banking process")
}

func TestShell_CorruptAccountsFileIsFatal(t *testing.T) {
	cfgPath, accounts := initProject(t)
	require.NoError(t, os.WriteFile(accounts, []byte("id,encrypted,key,balance\nalice,!!,??,1.00\n"), 0o600))

	out, err := runStrongroom(t, script("EXIT"), "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, out, "Ending banking process")
}

func TestShell_EnvOverridesAccountsFile(t *testing.T) {
	cfgPath, accounts := initProject(t)
	moved := filepath.Join(filepath.Dir(accounts), "moved.csv")
	require.NoError(t, os.Rename(accounts, moved))

	cmdOut, err := runStrongroomEnv(t, []string{config.EnvPrefix + "ACCOUNTS_FILE=" + moved},
		script("REGISTER", "bob", "pw2", "EXIT"), "--config", cfgPath)
	require.NoError(t, err, cmdOut)
	assert.Equal(t, []string{"admin", "bob"}, loadIDs(t, moved))
}

func TestShell_InvalidConfiguredAdminPasswordIsFatal(t *testing.T) {
	cfgPath, accounts := initProject(t)
	require.NoError(t, os.WriteFile(accounts, []byte("id,encrypted,key,balance\n"), 0o600))

	out, err := runStrongroomEnv(t, []string{config.EnvPrefix + "ADMIN_PASSWORD=a b"},
		script("EXIT"), "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, out, "invalid password")
	assert.Contains(t, out, "Ending banking process")
	assert.Empty(t, loadIDs(t, accounts), "no admin written")
}
