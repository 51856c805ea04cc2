package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/example/sanename/internal/rename"
	"github.com/example/sanename/internal/sanitize"
	"github.com/example/sanename/pkg/ui"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

const (
	configFileName = "config.json"
	envFileName    = ".env"

	envSeparator = "SANENAME_SEPARATOR"
	envAllow     = "SANENAME_ALLOW"
	envCollision = "SANENAME_COLLISION"
)

// Settings holds the user-tunable parts of the sanitizer and the planner.
type Settings struct {
	Separator string            `json:"separator"`
	Allow     string            `json:"allow"`
	Collision string            `json:"collision"`
	Charmap   map[string]string `json:"charmap,omitempty"` // merged over the built-in table
}

func defaultSettings() Settings {
	return Settings{
		Separator: sanitize.DefaultSeparator,
		Allow:     string(sanitize.DefaultAllowList),
		Collision: string(rename.CollisionFail),
	}
}

// Dir returns ~/.config/sanename.
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sanename"), nil
}

// LoadEnvFile loads the .env file in dir. Variables already set in the
// environment win. A missing file is not an error.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, envFileName)
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ResolvePath expands a leading ~ in path, or returns the default
// ~/.config/sanename/config.json when path is empty.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return homedir.Expand(path)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads settings from path, or from the default location when path is
// empty, then applies SANENAME_* environment overrides. A missing file yields
// the defaults; a malformed one is an error. The .env file next to the
// default config is only read when path is empty; an unreadable one is
// reported as a warning and skipped.
func Load(path string) (Settings, error) {
	s := defaultSettings()

	resolved, err := ResolvePath(path)
	switch {
	case err != nil && path != "":
		return s, fmt.Errorf("failed to expand config path: %w", err)
	case err != nil:
		resolved = ""
	case path == "":
		if err := LoadEnvFile(filepath.Dir(resolved)); err != nil {
			ui.Warn("%v", err)
		}
	}

	if resolved != "" {
		data, err := os.ReadFile(resolved)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := json.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("failed to parse config %s: %w", resolved, err)
			}
		}
	}

	if v, ok := os.LookupEnv(envSeparator); ok {
		s.Separator = v
	}
	if v, ok := os.LookupEnv(envAllow); ok {
		s.Allow = v
	}
	if v := os.Getenv(envCollision); v != "" {
		s.Collision = v
	}

	return s, nil
}

// SanitizerConfig turns the settings into a sanitize.Config. Charmap keys
// must be exactly one character.
func (s Settings) SanitizerConfig() (sanitize.Config, error) {
	cfg := sanitize.DefaultConfig()
	cfg.Separator = s.Separator
	cfg.Allow = sanitize.AllowList(s.Allow)

	if len(s.Charmap) == 0 {
		return cfg, nil
	}

	extra := make(sanitize.Charmap, len(s.Charmap))
	for k, v := range s.Charmap {
		r, size := utf8.DecodeRuneInString(k)
		if r == utf8.RuneError || size != len(k) {
			return cfg, fmt.Errorf("charmap key %q must be a single character", k)
		}
		extra[r] = v
	}
	cfg.Charmap = cfg.Charmap.Merge(extra)
	return cfg, nil
}

// CollisionPolicy parses the configured policy name.
func (s Settings) CollisionPolicy() (rename.CollisionPolicy, error) {
	return rename.ParseCollisionPolicy(s.Collision)
}

// Save writes s as indented JSON to path, creating its directory.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
