// Package config reads and writes the .rulekit.yaml project file, which
// records what a previous setup run selected so that update runs can repeat
// it without prompting.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/pkg/version"
)

// maxConfigSize caps the config file size to guard against unbounded reads.
const maxConfigSize = 1 * 1024 * 1024 // 1MB

// Sentinel errors for the config package.
var (
	// ErrNotFound indicates no .rulekit.yaml exists at the project root.
	ErrNotFound = errors.New("no rulekit configuration found (run \"rulekit init\" first)")

	// ErrTooLarge indicates the config file exceeds the size cap.
	ErrTooLarge = errors.New("rulekit configuration file too large")
)

// Config is the persisted rulekit project configuration.
type Config struct {
	Version   string   `yaml:"version"`
	Language  string   `yaml:"language,omitempty"`
	Providers []string `yaml:"providers"`
	CreatedAt string   `yaml:"created_at,omitempty"`
	UpdatedAt string   `yaml:"updated_at,omitempty"`
}

// New creates a Config stamped with the current version and time.
func New(language string, providers []string) *Config {
	return &Config{
		Version:   version.GetVersion(),
		Language:  language,
		Providers: providers,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Path returns the config file location for a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, defs.RulekitYAML)
}

// Load reads the configuration from projectRoot. A missing file is
// reported as ErrNotFound.
func Load(projectRoot string) (*Config, error) {
	path := Path(projectRoot)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to projectRoot, stamping UpdatedAt.
func (c *Config) Save(projectRoot string) error {
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path := Path(projectRoot)
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
