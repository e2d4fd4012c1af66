package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/famish99/winampmpd/internal/winamp"
)

// Config represents the application configuration
type Config struct {
	// Winamp instances, by window class name
	Targets []Target `yaml:"targets"`

	// Preferred target name
	PreferredTarget string `yaml:"preferred_target,omitempty"`

	Strings StringsConfig `yaml:"strings"`
	MPD     MPDConfig     `yaml:"mpd"`
	Query   QueryConfig   `yaml:"query"`
	Manager ManagerConfig `yaml:"manager"`
	Art     ArtConfig     `yaml:"art"`
	Logging LoggingConfig `yaml:"logging"`
}

// Target represents one Winamp instance to control
type Target struct {
	Name   string `yaml:"name"`
	Window string `yaml:"window"` // exact main window class name
}

// StringsConfig represents how target strings are encoded
type StringsConfig struct {
	Codepage string `yaml:"codepage"`
}

// MPDConfig represents the MPD front-end settings
type MPDConfig struct {
	Listen string `yaml:"listen"`
}

// QueryConfig represents media library query settings
type QueryConfig struct {
	MaxResults           int `yaml:"max_results"`
	ExtendedInfoCapacity int `yaml:"extended_info_capacity"`
}

// ManagerConfig represents lifecycle manager settings
type ManagerConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

// ArtConfig represents cover art lookup settings
type ArtConfig struct {
	ThumbnailDir    string `yaml:"thumbnail_dir,omitempty"`
	PreferThumbnail bool   `yaml:"prefer_thumbnail"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// DefaultPollInterval is how often the manager checks whether Winamp runs.
const DefaultPollInterval = 5123 * time.Millisecond

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Targets: []Target{
			{Name: "winamp", Window: winamp.DefaultWindow},
		},
		PreferredTarget: "winamp",
		Strings: StringsConfig{
			Codepage: "windows-1252",
		},
		MPD: MPDConfig{
			Listen: "localhost:6600",
		},
		Query: QueryConfig{
			MaxResults:           0,
			ExtendedInfoCapacity: winamp.DefaultInfoCapacity,
		},
		Manager: ManagerConfig{
			PollInterval: DefaultPollInterval,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from file. Values missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	var errs []error
	for i, t := range c.Targets {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("targets[%d]: name is empty", i))
		}
		if t.Window == "" {
			errs = append(errs, fmt.Errorf("targets[%d]: window is empty", i))
		}
	}
	if c.PreferredTarget != "" && c.GetTarget(c.PreferredTarget) == nil {
		errs = append(errs, fmt.Errorf("preferred_target %q is not a configured target", c.PreferredTarget))
	}
	if _, err := winamp.NewCodec(c.Strings.Codepage); err != nil {
		errs = append(errs, fmt.Errorf("strings.codepage: %w", err))
	}
	if c.Manager.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("manager.poll_interval must be positive, got %s", c.Manager.PollInterval))
	}
	if c.Query.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("query.max_results must not be negative"))
	}
	if c.Query.ExtendedInfoCapacity < 0 {
		errs = append(errs, fmt.Errorf("query.extended_info_capacity must not be negative"))
	}
	return errors.Join(errs...)
}

// AddTarget adds a target to the configuration
func (c *Config) AddTarget(target Target) {
	c.Targets = append(c.Targets, target)

	// If this is the first target, make it preferred
	if len(c.Targets) == 1 {
		c.PreferredTarget = target.Name
	}
}

// GetPreferredTarget returns the preferred target, or nil if none set
func (c *Config) GetPreferredTarget() *Target {
	if c.PreferredTarget != "" {
		return c.GetTarget(c.PreferredTarget)
	}

	// If no preferred set, return first target if available
	if len(c.Targets) > 0 {
		return &c.Targets[0]
	}
	return nil
}

// GetTarget returns a target by name
func (c *Config) GetTarget(name string) *Target {
	for i := range c.Targets {
		if c.Targets[i].Name == name {
			return &c.Targets[i]
		}
	}
	return nil
}

// SetPreferredTarget sets the preferred target by name
func (c *Config) SetPreferredTarget(name string) error {
	if c.GetTarget(name) == nil {
		return fmt.Errorf("target not found: %s", name)
	}
	c.PreferredTarget = name
	return nil
}

// RemoveTarget removes a target by name
func (c *Config) RemoveTarget(name string) error {
	for i := range c.Targets {
		if c.Targets[i].Name == name {
			c.Targets = append(c.Targets[:i], c.Targets[i+1:]...)

			// If we removed the preferred target, clear it
			if c.PreferredTarget == name {
				c.PreferredTarget = ""
			}
			return nil
		}
	}
	return fmt.Errorf("target not found: %s", name)
}

// Window returns the window class of the named target, or of the preferred
// target when name is empty.
func (c *Config) Window(name string) (string, error) {
	var t *Target
	if name == "" {
		t = c.GetPreferredTarget()
	} else {
		t = c.GetTarget(name)
	}
	if t == nil {
		if name == "" {
			return winamp.DefaultWindow, nil
		}
		return "", fmt.Errorf("target not found: %s", name)
	}
	return t.Window, nil
}
