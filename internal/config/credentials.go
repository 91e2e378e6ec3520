package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrMissingCredential is returned when the token environment variable is unset.
var ErrMissingCredential = errors.New("GitHub token is not set")

// LoadToken reads the GitHub token from the environment variable named in cfg.
func LoadToken(cfg *Config) (string, error) {
	name := DefaultTokenEnv
	if cfg != nil && cfg.GitHub.TokenEnv != "" {
		name = cfg.GitHub.TokenEnv
	}

	token := os.Getenv(name)
	if token == "" {
		return "", fmt.Errorf("%w: export %s=<token>", ErrMissingCredential, name)
	}
	return token, nil
}

// TokenOrDefault returns the token from the environment, or fallback when it is unset.
func TokenOrDefault(cfg *Config, fallback string) string {
	token, err := LoadToken(cfg)
	if err != nil {
		return fallback
	}
	return token
}
