package config

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/model"
	"gopkg.in/yaml.v3"
)

// Config is the board and server configuration
type Config struct {
	Size      int           `yaml:"size"`               // grid dimension
	Start     *model.Coord  `yaml:"start,omitempty"`    // defaults to (0,0)
	End       *model.Coord  `yaml:"end,omitempty"`      // defaults to (size-1,size-1)
	Layout    string        `yaml:"layout,omitempty"`   // optional text layout file
	Port      string        `yaml:"port"`               // http port
	StepDelay time.Duration `yaml:"stepDelay"`          // pause between streamed steps
	LogLevel  string        `yaml:"logLevel,omitempty"` // logrus level name
}

func Default() *Config {
	return &Config{
		Size:     15,
		Port:     "8080",
		LogLevel: "info",
	}
}

// Load reads a YAML configuration file, fills defaults and applies env overrides.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv lets PORT and LOG_LEVEL override the file.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("stepDelay cannot be negative, got %v", c.StepDelay)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return c.Board().Validate()
}

// Board returns the grid configuration with defaults applied.
func (c *Config) Board() model.Config {
	board := model.SquareConfig(c.Size)
	if c.Start != nil {
		board.Start = *c.Start
	}
	if c.End != nil {
		board.End = *c.End
	}
	return board
}

func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logLevel: %w", err)
	}
	return level, nil
}

// Setup configures the standard logrus logger.
func (c *Config) Setup() {
	level, _ := c.Level()
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
