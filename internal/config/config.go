// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken      string
	RegistryPath     string
	DataDir          string
	FetchConcurrency int
}

// Load reads configuration from environment variables and returns a validated
// Config. GITHUB_TOKEN is required; the run aborts before any fetch without
// it. Optional variables with defaults: MAINTDASH_REGISTRY
// (config/repos.json), MAINTDASH_DATA_DIR (public/data),
// MAINTDASH_FETCH_CONCURRENCY (1, the strictly sequential rate-limit-friendly
// policy).
func Load() (*Config, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}

	registryPath := "config/repos.json"
	if v, ok := os.LookupEnv("MAINTDASH_REGISTRY"); ok {
		registryPath = v
	}

	dataDir := "public/data"
	if v, ok := os.LookupEnv("MAINTDASH_DATA_DIR"); ok {
		dataDir = v
	}

	concurrency := 1
	if v, ok := os.LookupEnv("MAINTDASH_FETCH_CONCURRENCY"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("MAINTDASH_FETCH_CONCURRENCY has invalid value %q: must be a positive integer", v)
		}
		concurrency = parsed
	}

	return &Config{
		GitHubToken:      token,
		RegistryPath:     registryPath,
		DataDir:          dataDir,
		FetchConcurrency: concurrency,
	}, nil
}

var maxAgePattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// ParseMaxAge parses a max-age string of the form "30m", "2h", or "1d".
// The format is deliberately narrower than time.ParseDuration: a day unit is
// supported and composite values like "1h30m" are not.
func ParseMaxAge(s string) (time.Duration, error) {
	match := maxAgePattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("invalid duration %q: use e.g. \"30m\", \"2h\", \"1d\"", s)
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch match[2] {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	default:
		return time.Duration(value) * 24 * time.Hour, nil
	}
}
