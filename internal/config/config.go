package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "solevolog"

// DefaultDeck is the deck compiled into the binary.
const DefaultDeck = "universal-waite"

// Environment overrides applied on top of the config file.
const (
	EnvDatabase = "SOLEVOLOG_DATABASE"
	EnvDeck     = "SOLEVOLOG_DECK"
	EnvLogLevel = "SOLEVOLOG_LOG_LEVEL"
)

var ErrDeckNotFound = errors.New("deck not found")

// Config represents the application configuration
type Config struct {
	DefaultDeck     string `toml:"default_deck"`
	DefaultSpread   string `toml:"default_spread"`
	Database        string `toml:"database"`
	LogLevel        string `toml:"log_level"`
	PrimaryLocale   string `toml:"primary_locale"`
	SecondaryLocale string `toml:"secondary_locale"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		DefaultDeck:     DefaultDeck,
		DefaultSpread:   "3-card",
		Database:        GetDatabasePath(),
		LogLevel:        "info",
		PrimaryLocale:   "en",
		SecondaryLocale: "ko",
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{homeDir}, fallback...)...)
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), appName, "decks")
}

// GetDatabasePath returns the default SQLite database path
func GetDatabasePath() string {
	return filepath.Join(GetXDGDataHome(), appName, appName+".db")
}

// GetCacheDir returns the directory for generated files such as ANSI art
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), appName)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if it does
// not exist, and applies environment overrides.
func LoadConfig() (*Config, error) {
	config, err := loadFile(GetConfigFilePath())
	if err != nil {
		return nil, err
	}
	config.applyEnv()
	return config, nil
}

func loadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Default()
		if err := save(configPath, config); err != nil {
			return nil, err
		}
		return config, nil
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDatabase)); v != "" {
		c.Database = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDeck)); v != "" {
		c.DefaultDeck = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

func save(configPath string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// GetDeckPath returns the path to a deck, either in the deck library or a
// relative path. The built-in deck has no path and returns "".
func GetDeckPath(deckName string) (string, error) {
	libraryPath := GetDeckLibraryPath()
	deckPath := filepath.Join(libraryPath, deckName)

	if _, err := os.Stat(deckPath); err == nil {
		return deckPath, nil
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(deckName); err == nil {
		return deckName, nil
	}

	if deckName == DefaultDeck {
		return "", nil
	}
	return "", fmt.Errorf("%w: %s", ErrDeckNotFound, deckName)
}

// SetDefaultDeck sets the default deck in the config file. Environment
// overrides are not written back.
func SetDefaultDeck(deckName string) error {
	configPath := GetConfigFilePath()
	config, err := loadFile(configPath)
	if err != nil {
		return err
	}
	config.DefaultDeck = deckName
	return save(configPath, config)
}
