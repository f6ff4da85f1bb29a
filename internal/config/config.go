package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of every front-end.
type Config struct {
	SSH  SSHConfig  `yaml:"ssh"`
	Web  WebConfig  `yaml:"web"`
	Log  LogConfig  `yaml:"log"`
	Game GameConfig `yaml:"game"`
}

type SSHConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	HostKey string `yaml:"host_key"` // Empty lets wish generate a key
}

type WebConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	DisplayHost string `yaml:"display_host"` // Host shown in the ssh command on the landing page
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type GameConfig struct {
	Sound  bool    `yaml:"sound"`
	Volume float64 `yaml:"volume"`
	Seed   int64   `yaml:"seed"` // 0 seeds from the clock
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SSH: SSHConfig{
			Host:    "::",
			Port:    "2222",
			HostKey: "/app/keys/host_key",
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
		Log:  LogConfig{Level: "info"},
		Game: GameConfig{Sound: true, Volume: 1},
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// not empty) and then with environment variables.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := decode(f, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&c); err != nil {
		return Config{}, fmt.Errorf("config environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromEnv loads the file named by SKYRAID_CONFIG, if any.
func FromEnv() (Config, error) {
	return Load(GetEnv(EnvConfigPath, ""))
}

func decode(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Game.Volume < 0 {
		return fmt.Errorf("game volume %v is negative", c.Game.Volume)
	}
	return nil
}

// LogLevel returns the configured log level, or info if it is invalid.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
