package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, info, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.False(t, info.FileFound)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_OverridesFromToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 8088
dev_mode = true

[mock]
seed = 12345
transaction_count = 25

[log]
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, info, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, info.FileFound)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.True(t, cfg.Server.DevMode)
	assert.Equal(t, uint64(12345), cfg.Mock.Seed)
	assert.Equal(t, 25, cfg.Mock.TransactionCount)
	assert.Equal(t, "json", cfg.Log.Format)
	// 未出现的字段保留默认值
	assert.Equal(t, 30, cfg.Mock.DefaultRangeDays)
	assert.Equal(t, "data", cfg.Data.DataDir)
}

func TestLoadFile_PortNotSpecified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\ndev_mode = true\n"), 0644))

	cfg, info, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoadFile_InvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = ="), 0644))

	_, _, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("NEXUS_PORT", "9100")
	t.Setenv("NEXUS_SEED", "7")
	t.Setenv("NEXUS_DEV", "true")
	t.Setenv("NEXUS_LOG_LEVEL", "DEBUG")
	t.Setenv("NEXUS_DATA_DIR", "/tmp/nexus-data")

	cfg, info, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, uint64(7), cfg.Mock.Seed)
	assert.True(t, cfg.Server.DevMode)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/nexus-data", cfg.Data.DataDir)
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 70000
	cfg.Mock.MaxTransactions = 5
	cfg.Mock.TransactionCount = 50
	cfg.Data.ExportTTLMinutes = 0
	cfg.Mock.MaxRangeDays = -1
	cfg.normalize()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 3650, cfg.Mock.MaxRangeDays)
	assert.Equal(t, 5, cfg.Mock.TransactionCount)
	assert.Equal(t, 10, cfg.Data.ExportTTLMinutes)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 6001
	require.NoError(t, SaveConfig(cfg, path))

	loaded, info, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 6001, loaded.Server.Port)
}

func TestEnsureDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	dir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Data.DataDir, dir)
	assert.DirExists(t, filepath.Join(dir, "exports"))
}
