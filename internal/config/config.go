package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/existflow/notejar/internal/history"
	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	// Storage
	DBPath     string `yaml:"db_path" json:"db_path"`         // SQLite file holding opened notes
	StorageKey string `yaml:"storage_key" json:"storage_key"` // Key the history is stored under

	// Content
	CatalogFile string `yaml:"catalog_file" json:"catalog_file"` // YAML catalog override, empty uses the built-in notes
	PublicDir   string `yaml:"public_dir" json:"public_dir"`     // Directory image paths are resolved against

	// Behavior
	CancelRevealOnReset bool `yaml:"cancel_reveal_on_reset" json:"cancel_reveal_on_reset"` // Drop a pending reveal when the jar is reset

	// HTTP surface
	ServerAddr string `yaml:"server_addr" json:"server_addr"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns the notejar home directory (~/.notejar)
func Dir() (string, error) {
	if dir := os.Getenv("NOTEJAR_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".notejar"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	dbPath, logPath, publicDir := "", "", ""
	if dir != "" {
		dbPath = filepath.Join(dir, "notejar.db")
		logPath = filepath.Join(dir, "logs", "notejar.log")
		publicDir = filepath.Join(dir, "public")
	}

	return &Config{
		DBPath:              getEnv("NOTEJAR_DB", dbPath),
		StorageKey:          getEnv("NOTEJAR_STORAGE_KEY", history.DefaultKey),
		CatalogFile:         getEnv("NOTEJAR_CATALOG", ""),
		PublicDir:           getEnv("NOTEJAR_PUBLIC_DIR", publicDir),
		CancelRevealOnReset: getEnvBool("NOTEJAR_CANCEL_REVEAL_ON_RESET", false),
		ServerAddr:          getEnv("NOTEJAR_ADDR", ":8080"),
		LogLevel:            getEnv("NOTEJAR_LOG_LEVEL", "INFO"),
		LogFile:             getEnv("NOTEJAR_LOG_FILE", logPath),
		LogConsole:          getEnvBool("NOTEJAR_LOG_CONSOLE", false),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// Path returns the config file location (~/.notejar/config.yaml)
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads config from ~/.notejar/config.yaml
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads config from path, returning defaults if it does not exist
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = history.DefaultKey
	}

	return cfg, nil
}

// Save saves config to ~/.notejar/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes config to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ImagePath resolves a note image against the public directory
func (c *Config) ImagePath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.PublicDir, name)
}
