package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/storage"
)

// AppName names the per-user configuration directory.
const AppName = "Pomodoro"

const configFileName = "config.yaml"

// DefaultQuotesURL is the public quote API queried at startup.
const DefaultQuotesURL = "https://api.quotable.io/quotes?limit=50&tags=inspiration|motivation|success|happiness|life|freedom"

// ErrInvalidConfig indicates a config value outside its allowed set.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application options that are not user preferences.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	Quotes  QuotesConfig
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string
	DataDir string
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  slog.Level
	Format string
}

// QuotesConfig configures the motivational quote source.
type QuotesConfig struct {
	URL     string
	Timeout time.Duration
	Offline bool
}

type yamlConfig struct {
	Storage struct {
		Backend string `yaml:"backend"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"storage"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Quotes struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Offline        bool   `yaml:"offline"`
	} `yaml:"quotes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	dataDir := filepath.Join(os.TempDir(), AppName)
	if configDir, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(configDir, AppName, "data")
	}
	return Config{
		Storage: StorageConfig{Backend: storage.BackendFile, DataDir: dataDir},
		Log:     LogConfig{Level: slog.LevelInfo, Format: "text"},
		Quotes:  QuotesConfig{URL: DefaultQuotesURL, Timeout: 5 * time.Second},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, AppName, configFileName), nil
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		resolved, err := Path()
		if err != nil {
			return config, err
		}
		path = resolved
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := applyYamlConfig(&config, fileData); err != nil {
		return Default(), err
	}
	return config, nil
}

// Save writes config to path in YAML.
func Save(path string, config Config) error {
	var fileData yamlConfig
	fileData.Storage.Backend = config.Storage.Backend
	fileData.Storage.DataDir = config.Storage.DataDir
	fileData.Log.Level = strings.ToLower(config.Log.Level.String())
	fileData.Log.Format = config.Log.Format
	fileData.Quotes.URL = config.Quotes.URL
	fileData.Quotes.TimeoutSeconds = int(config.Quotes.Timeout / time.Second)
	fileData.Quotes.Offline = config.Quotes.Offline

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, value)
	}
}

func applyYamlConfig(config *Config, fileData yamlConfig) error {
	if backend := strings.ToLower(fileData.Storage.Backend); backend != "" {
		switch backend {
		case storage.BackendFile, storage.BackendSQLite, storage.BackendPreferences, storage.BackendMemory:
			config.Storage.Backend = backend
		default:
			return fmt.Errorf("%w: storage backend %q", ErrInvalidConfig, fileData.Storage.Backend)
		}
	}
	if fileData.Storage.DataDir != "" {
		config.Storage.DataDir = expandHome(fileData.Storage.DataDir)
	}

	if fileData.Log.Level != "" {
		level, err := ParseLevel(fileData.Log.Level)
		if err != nil {
			return err
		}
		config.Log.Level = level
	}
	switch format := strings.ToLower(fileData.Log.Format); format {
	case "":
	case "text", "json":
		config.Log.Format = format
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, fileData.Log.Format)
	}

	if fileData.Quotes.URL != "" {
		config.Quotes.URL = fileData.Quotes.URL
	}
	if fileData.Quotes.TimeoutSeconds > 0 {
		config.Quotes.Timeout = time.Duration(fileData.Quotes.TimeoutSeconds) * time.Second
	}
	config.Quotes.Offline = fileData.Quotes.Offline
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
