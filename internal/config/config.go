// Package config reads the four scalar environment variables this
// service is configured by (spec.md §6): PORT, dothing, watcher_delay,
// and watcher_interval. Kept on the standard library deliberately — see
// SPEC_FULL.md's Ambient Stack / Configuration section for why no pack
// config library (viper is the only one anywhere in _examples/, and only
// as an indirect dependency) is a proportionate fit for four scalars.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort            = 8014
	defaultExecutorBaseURL = "http://dothing:8050"
	defaultWatcherDelay    = 0 * time.Second
	defaultWatcherInterval = 120 * time.Second

	envPort            = "PORT"
	envExecutorBaseURL = "dothing"
	envWatcherDelay    = "watcher_delay"
	envWatcherInterval = "watcher_interval"
)

// Config is the fully-resolved startup configuration.
type Config struct {
	Port            int
	ExecutorBaseURL string
	WatcherDelay    time.Duration
	WatcherInterval time.Duration
}

// Load reads Config from the environment, falling back to the documented
// defaults for any variable that's unset or empty.
func Load() (Config, error) {
	port, err := intEnv(envPort, defaultPort)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", envPort, err)
	}

	delay, err := secondsEnv(envWatcherDelay, defaultWatcherDelay)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", envWatcherDelay, err)
	}

	interval, err := secondsEnv(envWatcherInterval, defaultWatcherInterval)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", envWatcherInterval, err)
	}

	executorBaseURL := os.Getenv(envExecutorBaseURL)
	if executorBaseURL == "" {
		executorBaseURL = defaultExecutorBaseURL
	}

	return Config{
		Port:            port,
		ExecutorBaseURL: executorBaseURL,
		WatcherDelay:    delay,
		WatcherInterval: interval,
	}, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func secondsEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}
