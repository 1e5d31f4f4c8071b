package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/tally/config"
)

type testAppConfig struct {
	Port      int    `json:"port"`
	StoreRoot string `json:"store_root"`
	Strict    bool   `json:"strict"`
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"port": 9090, "store_root": "/var/lib/tally", "strict": true}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var appConfig testAppConfig
	require.NoError(t, config.LoadConfigFromFile(path, &appConfig))

	require.Equal(t, 9090, appConfig.Port)
	require.Equal(t, "/var/lib/tally", appConfig.StoreRoot)
	require.True(t, appConfig.Strict)
}

func TestLoadConfigFromFileMissing(t *testing.T) {
	var appConfig testAppConfig
	err := config.LoadConfigFromFile(filepath.Join(t.TempDir(), "absent.json"), &appConfig)
	require.Error(t, err)
}

func TestFileCheckRejectsEmptyPath(t *testing.T) {
	f := &config.File{}
	require.Error(t, f.Check())
}

func TestFileGet(t *testing.T) {
	f := &config.File{
		ConfigFilePath: "unused",
		Config: map[string]interface{}{
			"store": "fs",
			"port":  float64(8080),
		},
	}

	value, err := f.Get("store")
	require.NoError(t, err)
	require.Equal(t, "fs", value)

	// Non-string values are stringified and flagged.
	value, err = f.Get("port")
	var notString *config.ValueNotStringError
	require.ErrorAs(t, err, &notString)
	require.Equal(t, "8080", value)

	_, err = f.Get("absent")
	var notFound *config.KeyNotFoundError
	require.ErrorAs(t, err, &notFound)
}
