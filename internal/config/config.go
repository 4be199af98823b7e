package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/clasher/internal/game"
)

// Config is the shared configuration of the clasher binaries.
type Config struct {
	Decks    string `yaml:"decks" json:"decks"`         // deck YAML file
	Cards    string `yaml:"cards" json:"cards"`         // optional card YAML file; empty = built-in catalog
	Port     string `yaml:"port" json:"port"`           // TCP advisor port
	WebPort  int    `yaml:"web_port" json:"web_port"`   // HTTP port
	TopN     int    `yaml:"top_n" json:"top_n"`         // moves listed by recommend
	Side     string `yaml:"side" json:"side"`           // default side
	LogLevel string `yaml:"log_level" json:"log_level"` // zap level name
}

func Default() Config {
	return Config{
		Decks:    "decks.yaml",
		Port:     "9000",
		WebPort:  8080,
		TopN:     3,
		Side:     "friendly",
		LogLevel: "info",
	}
}

// Load reads a YAML config over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config YAML: %w", err)
	}
	return cfg, nil
}

// FromEnv applies CLASHER_* environment overrides.
func FromEnv(cfg Config) Config {
	if v := os.Getenv("CLASHER_DECKS"); v != "" {
		cfg.Decks = v
	}
	if v := os.Getenv("CLASHER_CARDS"); v != "" {
		cfg.Cards = v
	}
	if v := os.Getenv("CLASHER_PORT"); v != "" {
		cfg.Port = v
	}
	if val := getEnvInt("CLASHER_WEB_PORT"); val > 0 {
		cfg.WebPort = val
	}
	if val := getEnvInt("CLASHER_TOP_N"); val > 0 {
		cfg.TopN = val
	}
	if v := os.Getenv("CLASHER_SIDE"); v != "" {
		cfg.Side = v
	}
	if v := os.Getenv("CLASHER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return i
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be >= 1, got %d", c.TopN)
	}
	if _, err := game.ParseSide(c.Side); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// PlayerSide returns the parsed default side.
func (c Config) PlayerSide() game.Side {
	s, _ := game.ParseSide(c.Side)
	return s
}

// Catalog loads the configured card file, or the built-in catalog.
func (c Config) Catalog() (*game.Catalog, error) {
	if c.Cards == "" {
		return game.DefaultCatalog(), nil
	}
	return game.LoadCatalogFile(c.Cards)
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
