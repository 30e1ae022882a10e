package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	Liveness        time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	LogDev          bool
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		Liveness:        5 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
	}
}

// Load reads an optional .env file (or the given files) and then the RELAY_*
// environment variables on top of the defaults.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function so tests don't touch the process env.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("RELAY_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("RELAY_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup("RELAY_LOG_DEV"); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RELAY_LOG_DEV %q: %w", v, err)
		}
		cfg.LogDev = dev
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"RELAY_LIVENESS", &cfg.Liveness},
		{"RELAY_READ_TIMEOUT", &cfg.ReadTimeout},
		{"RELAY_WRITE_TIMEOUT", &cfg.WriteTimeout},
		{"RELAY_IDLE_TIMEOUT", &cfg.IdleTimeout},
		{"RELAY_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", d.key, v, err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q: must be positive", d.key, v)
		}
		*d.dst = parsed
	}

	return cfg, nil
}
