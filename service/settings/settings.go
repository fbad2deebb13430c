// Package settings loads the optional YAML settings file that supplies
// defaults for the query flags and tunes operation discovery.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/catalog"
	"github.com/thirukguru/aws-list-all/service/registry"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no settings file is named explicitly.
const DefaultPath = "~/.aws-list-all.yaml"

// EnvPath names an environment variable overriding DefaultPath.
const EnvPath = "AWS_LIST_ALL_CONFIG"

// Settings mirrors the settings file.
type Settings struct {
	Parallel    int           `yaml:"parallel"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	Rate        float64       `yaml:"rate"`
	Directory   string        `yaml:"directory"`
	Profile     string        `yaml:"profile"`
	DBPath      string        `yaml:"db_path"`

	// Deny lists further operations to skip, keyed by service.
	Deny map[string][]string `yaml:"deny"`
	// Parameters overrides default operation parameters:
	// service -> operation -> input field -> value.
	Parameters map[string]map[string]map[string]any `yaml:"parameters"`
}

// Load reads the settings file at path. An empty path falls back to
// $AWS_LIST_ALL_CONFIG and then DefaultPath; a missing default file yields
// empty settings, a missing explicit file is an error.
func Load(path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvPath); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath
		}
	}
	resolved, err := expandHome(path)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", resolved, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings %s: %w", resolved, err)
	}
	slog.Debug("loaded settings", "path", resolved)
	return s, nil
}

// Validate rejects negative tuning values. Unknown services only warn.
func (s Settings) Validate() error {
	switch {
	case s.Parallel < 0:
		return errors.New("parallel must be >= 0")
	case s.MaxAttempts < 0:
		return errors.New("max_attempts must be >= 0")
	case s.Rate < 0:
		return errors.New("rate must be >= 0")
	case s.Timeout < 0:
		return errors.New("timeout must be >= 0")
	}
	for svc := range s.Deny {
		if _, ok := registry.Lookup(svc); !ok {
			slog.Warn("settings deny unknown service", "service", svc)
		}
	}
	for svc := range s.Parameters {
		if _, ok := registry.Lookup(svc); !ok {
			slog.Warn("settings parameters for unknown service", "service", svc)
		}
	}
	return nil
}

// Overrides converts the discovery related settings for the catalog.
func (s Settings) Overrides() catalog.Overrides {
	return catalog.Overrides{
		Parameters: s.Parameters,
		Deny:       s.Deny,
	}
}

func expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home dir: %w", err)
	}
	return filepath.Join(home, p[2:]), nil
}

// Apply copies every value set in the file onto q. Callers apply flags
// given on the command line afterwards.
func (s Settings) Apply(q *model.QueryFlags) {
	if s.Parallel > 0 {
		q.Parallel = s.Parallel
	}
	if s.Timeout > 0 {
		q.Timeout = s.Timeout
	}
	if s.MaxAttempts > 0 {
		q.MaxAttempts = s.MaxAttempts
	}
	if s.Rate > 0 {
		q.Rate = s.Rate
	}
	if s.Directory != "" {
		q.Directory = s.Directory
	}
	if s.Profile != "" {
		q.Profile = s.Profile
	}
	if s.DBPath != "" {
		q.DBPath = s.DBPath
	}
}
