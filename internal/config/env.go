// Package config loads front-end settings from an optional YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Environment variables overriding the file.
const (
	EnvConfigPath  = "SKYRAID_CONFIG"
	EnvSSHHost     = "SSH_HOST"
	EnvSSHPort     = "SSH_PORT"
	EnvSSHHostKey  = "SSH_HOST_KEY"
	EnvWebHost     = "WEB_HOST"
	EnvWebPort     = "WEB_PORT"
	EnvDisplayHost = "SSH_DISPLAY_HOST"
	EnvLogLevel    = "LOG_LEVEL"
	EnvSound       = "SKYRAID_SOUND"
	EnvSeed        = "SKYRAID_SEED"
)

// applyEnv overrides c with any environment variables that are set.
func applyEnv(c *Config) error {
	c.SSH.Host = GetEnv(EnvSSHHost, c.SSH.Host)
	c.SSH.Port = GetEnv(EnvSSHPort, c.SSH.Port)
	c.SSH.HostKey = GetEnv(EnvSSHHostKey, c.SSH.HostKey)
	c.Web.Host = GetEnv(EnvWebHost, c.Web.Host)
	c.Web.Port = GetEnv(EnvWebPort, c.Web.Port)
	c.Web.DisplayHost = GetEnv(EnvDisplayHost, c.Web.DisplayHost)
	c.Log.Level = GetEnv(EnvLogLevel, c.Log.Level)

	if v, ok := os.LookupEnv(EnvSound); ok {
		sound, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSound, err)
		}
		c.Game.Sound = sound
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Game.Seed = seed
	}
	return nil
}
