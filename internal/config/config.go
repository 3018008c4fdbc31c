// Package config loads studyweek settings from defaults, an optional YAML
// file and STUDYWEEK_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Storage    StorageConfig    `koanf:"storage"`
	Server     ServerConfig     `koanf:"server"`
	Reflection ReflectionConfig `koanf:"reflection"`
	User       UserConfig       `koanf:"user"`
	Log        LogConfig        `koanf:"log"`
}

type StorageConfig struct {
	DBPath string `koanf:"db_path"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr is the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type ReflectionConfig struct {
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	CacheSize    int           `koanf:"cache_size"`
}

type UserConfig struct {
	DefaultID string `koanf:"default_id"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"auto", "json", "console"}
)

// Validate rejects settings the rest of the program cannot run with.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Reflection.FetchTimeout <= 0 {
		return fmt.Errorf("reflection.fetch_timeout must be positive")
	}
	if c.Reflection.CacheSize <= 0 {
		return fmt.Errorf("reflection.cache_size must be positive, got %d", c.Reflection.CacheSize)
	}
	if strings.TrimSpace(c.User.DefaultID) == "" {
		return fmt.Errorf("user.default_id is required")
	}
	if !oneOf(c.Log.Level, validLevels) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(validLevels, ", "), c.Log.Level)
	}
	if !oneOf(c.Log.Format, validFormats) {
		return fmt.Errorf("log.format must be one of %s, got %q", strings.Join(validFormats, ", "), c.Log.Format)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
