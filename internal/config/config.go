package config

import (
	"fmt"
	"os"

	"github.com/drakos74/free-fit/internal/storage"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the fitting service and its tools.
type Config struct {
	Log     Log     `yaml:"log"`
	Server  Server  `yaml:"server"`
	Storage Storage `yaml:"storage"`
	Render  Render  `yaml:"render"`
	Fit     Fit     `yaml:"fit"`
}

// Log defines the logging options.
type Log struct {
	Level string `yaml:"level"`
}

// Server defines the http server.
type Server struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

// Storage defines where fitted models are kept.
// Type is one of "file", "memory" or "void", the last one discards every model.
type Storage struct {
	Type  string `yaml:"type"`
	Dir   string `yaml:"dir"`
	Table string `yaml:"table"`
}

// Render defines the LaTeX rendering.
type Render struct {
	AllTerms bool `yaml:"all_terms"`
}

// Fit defines the defaults for fitting.
type Fit struct {
	DefaultDegree int `yaml:"default_degree"`
}

const (
	FileStorage   = "file"
	MemoryStorage = "memory"
	VoidStorage   = "void"
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		Log: Log{
			Level: zerolog.InfoLevel.String(),
		},
		Server: Server{
			Name: "free-fit",
			Port: 6122,
		},
		Storage: Storage{
			Type:  FileStorage,
			Dir:   storage.DefaultDir,
			Table: storage.ModelDir,
		},
		Fit: Fit{
			DefaultDegree: 1,
		},
	}
}

// Load reads the config from the given yaml file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file '%s': %w", path, err)
	}
	return Parse(data)
}

// Parse parses the yaml config on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values of the config.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level '%s': %w", c.Log.Level, err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Storage.Type {
	case FileStorage, MemoryStorage, VoidStorage:
	default:
		return fmt.Errorf("invalid storage type '%s'", c.Storage.Type)
	}
	if c.Fit.DefaultDegree < 0 {
		return fmt.Errorf("invalid default degree %d", c.Fit.DefaultDegree)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Marshal encodes the config as yaml.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
