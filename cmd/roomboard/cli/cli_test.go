package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/erazemk/roomboard/internal/config"
	"github.com/erazemk/roomboard/internal/db"
	"github.com/erazemk/roomboard/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCommand(VersionInfo{Version: "1.2.3", Commit: "abc"})
	root.AddCommand(NewVersionCommand(), NewServeCommand(), NewInitCommand(), NewConfigCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "roomboard 1.2.3 (abc)\n", out)
}

func TestConfigCommandDefaults(t *testing.T) {
	out, err := execute(t, "config", "--defaults")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigCommandFlags(t *testing.T) {
	out, err := execute(t, "config", "--db", "/tmp/x.sqlite3", "--log-level", "warn")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "/tmp/x.sqlite3", cfg.DB)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.sqlite3")

	out, err := execute(t, "init", "--db", path, "--user", "keeper")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: keeper")

	_, err = execute(t, "init", "--db", path)
	assert.ErrorContains(t, err, "already initialized")

	database, err := db.Open(path)
	require.NoError(t, err)
	defer database.Close()

	n, err := store.CountTags(t.Context(), database)
	require.NoError(t, err)
	assert.Equal(t, len(store.DefaultTags), n)
}
