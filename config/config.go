/*
File    : volsung/config/config.go
*/

// Package config loads Volsung's optional volsung.toml file: the sample
// rate, default block size, and REPL/server presentation strings a
// session runs with. No flag in cmd/volsung overrides a setting read
// here; listen_addr is decoded and defaulted, but server mode takes its
// address from the --server flag instead.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every setting volsung.toml may specify. Zero values mean
// "not set"; FillDefaults resolves them.
type Config struct {
	SampleRate float64 `toml:"sample_rate"`
	BlockSize  int     `toml:"block_size"`
	Inputs     int     `toml:"inputs"`
	Outputs    int     `toml:"outputs"`
	Prompt     string  `toml:"prompt"`
	Banner     string  `toml:"banner"`
	ListenAddr string  `toml:"listen_addr"`
}

// defaultBanner is the ASCII banner shown when volsung.toml doesn't
// override it.
const defaultBanner = `
 _   ____  _     ____  _   _ _   _  ____
| | | / __ \| |   / ___|| | | | \ | |/ ___|
| | | | |  | | |   \___ \| | | |  \| | |  _
| |_| | |__| | |___ ___) | |_| | |\  | |_| |
 \___/ \____/|_____|____/ \___/|_| \_|\____|
`

// FillDefaults returns a copy of cfg with every unset field replaced by
// its default.
func (cfg Config) FillDefaults() Config {
	out := cfg
	if out.SampleRate == 0 {
		out.SampleRate = 44100
	}
	if out.BlockSize == 0 {
		out.BlockSize = 512
	}
	if out.Prompt == "" {
		out.Prompt = "volsung> "
	}
	if out.Banner == "" {
		out.Banner = defaultBanner
	}
	if out.ListenAddr == "" {
		out.ListenAddr = "localhost:7654"
	}
	return out
}

// Load reads and decodes a volsung.toml file at path. A missing file is
// not an error: it returns a zero-valued Config, letting FillDefaults
// supply every setting.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %q: %w", path, err)
	}
	return cfg, nil
}
