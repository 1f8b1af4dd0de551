package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"artistsplit/internal/splitter"
)

// Config holds the splitter settings. Precedence, lowest to highest:
// built-in defaults, TOML config file, ARTISTSPLIT_* environment
// variables, CLI flags (applied by the caller).
type Config struct {
	Input     string `toml:"input" validate:"required"`
	OutputDir string `toml:"output_dir" validate:"required"`
	ChunkSize int    `toml:"chunk_size" validate:"gte=1"`
}

// Default returns the configuration matching the original data
// pipeline's fixed paths and chunk size.
func Default() Config {
	return Config{
		Input:     "client/data/musicbrainz-artists-enriched.json",
		OutputDir: "client/data/musicbrainz-enriched-chunks",
		ChunkSize: splitter.DefaultChunkSize,
	}
}

// Load builds the effective configuration. path may be empty to skip
// file loading.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := validator.New().Struct(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ARTISTSPLIT_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("ARTISTSPLIT_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("ARTISTSPLIT_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = n
		}
	}
}
