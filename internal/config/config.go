// Package config resolves the CLI's Options by layering, lowest to
// highest precedence: built-in defaults, a ".env" file (joho/godotenv),
// an optional YAML config file (gopkg.in/yaml.v3), and finally explicit
// command-line flags. Library callers that embed pkg/operations directly
// never go through this package.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Options is what cmd/patchbundle resolves once per invocation and
// passes down to the CLI commands.
type Options struct {
	BaseDir  string `yaml:"base_dir"`
	LogLevel string `yaml:"log_level"`
}

func defaults() Options {
	return Options{BaseDir: ".", LogLevel: "info"}
}

// Load merges .env defaults and an optional YAML file into Options,
// then applies explicit overrides (non-empty fields in override win).
func Load(configFile string, override Options) (Options, error) {
	_ = godotenv.Load()

	opts := defaults()

	if v := strings.TrimSpace(os.Getenv("PATCHBUNDLE_BASE_DIR")); v != "" {
		opts.BaseDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PATCHBUNDLE_LOG_LEVEL")); v != "" {
		opts.LogLevel = v
	}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Options{}, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		var fromFile Options
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return Options{}, fmt.Errorf("parsing config file %s: %w", configFile, err)
		}
		if fromFile.BaseDir != "" {
			opts.BaseDir = fromFile.BaseDir
		}
		if fromFile.LogLevel != "" {
			opts.LogLevel = fromFile.LogLevel
		}
	}

	if override.BaseDir != "" {
		opts.BaseDir = override.BaseDir
	}
	if override.LogLevel != "" {
		opts.LogLevel = override.LogLevel
	}

	return opts, nil
}
