package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Artem-Goldenberg/RamFS/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultFileMode is the permission bits applied to a new regular file
	// when a seed manifest entry omits one.
	DefaultFileMode = 0o644

	// DefaultDirMode is the permission bits applied to the root, to a new
	// directory when a seed manifest entry omits one, and to directories
	// the manifest loader creates implicitly.
	DefaultDirMode = 0o755

	// DefaultNameMax bounds a single path segment's length, matching the
	// POSIX NAME_MAX most filesystems advertise.
	DefaultNameMax = 255

	// DefaultMaxFH uses 31 bits (2^31 - 1) to stay compatible with libfuse
	// and avoid signed integer overflow in the wire protocol.
	DefaultMaxFH = (1 << 31) - 1
)

// Config contains runtime configuration values for the in-memory filesystem.
type Config struct {
	MountOptions

	LogLvl util.LogLevel

	DefaultFileMode uint32 // permission bits for new regular files (Default 0644)
	DefaultDirMode  uint32 // permission bits for new directories (Default 0755)
	NameMax         int    // maximum path segment length (Default 255)
	MaxFH           int    // maximum file handle value for FUSE compatibility (Default 2147483647)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	FsName *string `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name   *string `yaml:"name,omitempty" json:"name,omitempty"`
	Debug  *bool   `yaml:"debug,omitempty" json:"debug,omitempty"`

	LogLvl *util.LogLevel `yaml:"log_level,omitempty" json:"log_level,omitempty"`

	DefaultFileMode *uint32 `yaml:"default_file_mode,omitempty" json:"default_file_mode,omitempty"`
	DefaultDirMode  *uint32 `yaml:"default_dir_mode,omitempty" json:"default_dir_mode,omitempty"`
	NameMax         *int    `yaml:"name_max,omitempty" json:"name_max,omitempty"`
	MaxFH           *int    `yaml:"max_fh,omitempty" json:"max_fh,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions:    MountOptions{FsName: "ramfs", Name: "ramfs"},
		LogLvl:          util.InfoLevel,
		DefaultFileMode: DefaultFileMode,
		DefaultDirMode:  DefaultDirMode,
		NameMax:         DefaultNameMax,
		MaxFH:           DefaultMaxFH,
	}
}

// Merge applies non-nil values from override onto this Config. This allows
// partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
	if override.DefaultFileMode != nil {
		c.DefaultFileMode = *override.DefaultFileMode
	}
	if override.DefaultDirMode != nil {
		c.DefaultDirMode = *override.DefaultDirMode
	}
	if override.NameMax != nil {
		c.NameMax = *override.NameMax
	}
	if override.MaxFH != nil {
		c.MaxFH = *override.MaxFH
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults. This is a convenience function that combines NewDefaultConfig,
// LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
