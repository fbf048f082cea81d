/*
File    : volsung/config/config_test.go
*/
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Zero(t, cfg.SampleRate)
}

func TestLoadDecodesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volsung.toml")
	contents := "sample_rate = 48000\nblock_size = 256\nprompt = \"vs> \"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 48000.0, cfg.SampleRate)
	assert.Equal(t, 256, cfg.BlockSize)
	assert.Equal(t, "vs> ", cfg.Prompt)
}

func TestFillDefaultsLeavesSetFieldsAlone(t *testing.T) {
	cfg := Config{SampleRate: 96000}.FillDefaults()
	assert.Equal(t, 96000.0, cfg.SampleRate)
	assert.Equal(t, 512, cfg.BlockSize)
	assert.Equal(t, "volsung> ", cfg.Prompt)
	assert.NotEmpty(t, cfg.Banner)
	assert.Equal(t, "localhost:7654", cfg.ListenAddr)
}
