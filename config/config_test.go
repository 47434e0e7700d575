package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "python3", cfg.Interpreter)
	assert.Equal(t, 4, cfg.TabSize)
	assert.False(t, cfg.UseTabs)
	assert.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	cfg := Defaults()

	cfg.Interpreter = ""
	assert.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.TabSize = 0
	assert.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.TabSize = 17
	assert.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.Interpreter = "python3.12"
	cfg.TabSize = 8
	assert.NoError(t, Validate(cfg))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var written map[string]any
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, "python3", written["interpreter"])
	assert.Equal(t, 4, written["tab_size"])

	// A second write must not clobber the existing file.
	assert.Error(t, WriteDefaultConfig(path))
}
