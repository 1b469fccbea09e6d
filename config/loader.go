package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the config file name inside the XDG config directory.
	ConfigFileName = "finscan.yaml"

	// LocalConfigFile is the config file name looked up in the current
	// directory.
	LocalConfigFile = ".finscan.yaml"
)

// Environment variables that override the config file.
const (
	EnvDPI      = "FINSCAN_DPI"
	EnvLanguage = "FINSCAN_LANGUAGE"
	EnvWorkers  = "FINSCAN_WORKERS"
	EnvFormat   = "FINSCAN_FORMAT"
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigExists is returned by WriteDefault when the file already exists.
	ErrConfigExists = errors.New("configuration file already exists")
)

// LoadConfigFile reads the YAML file at path on top of the defaults.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .finscan.yaml in the current directory
// 3. Look for finscan/finscan.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, LocalConfigFile)
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	if _, err := os.Stat(XDGConfigFile()); err == nil {
		return XDGConfigFile()
	}
	return ""
}

// Load builds the configuration from defaults, the config file and the
// environment. An explicit configPath that does not exist is an error; a
// missing default file is not. The result is not validated so that flags
// can still override it.
func Load(configPath string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := NewConfig()
	if path := FindConfigFile(configPath); path != "" {
		loaded, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads the given .env files, or ./.env when none are given,
// without overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any FINSCAN_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := lookup(EnvDPI); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDPI, err)
		}
		cfg.DPI = n
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if v, ok := lookup(EnvLanguage); ok {
		cfg.Language = v
	}
	if v, ok := lookup(EnvFormat); ok {
		cfg.Format = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// WriteDefault writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := NewConfig()
	cfg.Keywords = nil
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	header := "# finscan configuration\n# Environment variables FINSCAN_DPI, FINSCAN_LANGUAGE, FINSCAN_WORKERS\n# and FINSCAN_FORMAT override these values; flags override both.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}
