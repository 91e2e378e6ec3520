package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is the global YAML configuration of codeql-client.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	GitHub     GitHub     `yaml:"github"`
}

// Logger holds logging settings.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// HTTPClient holds transport settings for the GitHub API client.
// A zero Timeout means the client does not enforce one.
type HTTPClient struct {
	Debug           *bool           `yaml:"debug"`
	Timeout         time.Duration   `yaml:"timeout"`
	TLSClientConfig TLSClientConfig `yaml:"tls_client_config"`
	Proxy           Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GitHub holds the API endpoint, client identity and default targets.
type GitHub struct {
	BaseURL      string `yaml:"base_url"`
	UserAgent    string `yaml:"user_agent"`
	TokenEnv     string `yaml:"token_env"`
	Owner        string `yaml:"owner"`
	Repository   string `yaml:"repository"`
	Organization string `yaml:"organization"`
}

// ValidateConfigPath checks that path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file and fills unset values with defaults.
// When optional is true a missing file yields the default configuration.
func LoadConfig(configPath string, optional bool) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) && optional {
			ApplyDefaults(cfg)
			return cfg, nil
		}
		if err := LoadYAML(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
		}
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// ApplyDefaults fills the GitHub section with default values where unset.
func ApplyDefaults(cfg *Config) {
	cfg.GitHub.BaseURL = SetThen(cfg.GitHub.BaseURL, DefaultBaseURL)
	cfg.GitHub.UserAgent = SetThen(cfg.GitHub.UserAgent, DefaultUserAgent)
	cfg.GitHub.TokenEnv = SetThen(cfg.GitHub.TokenEnv, DefaultTokenEnv)
	cfg.GitHub.Owner = SetThen(cfg.GitHub.Owner, DefaultOwner)
	cfg.GitHub.Repository = SetThen(cfg.GitHub.Repository, DefaultRepository)
	cfg.GitHub.Organization = SetThen(cfg.GitHub.Organization, DefaultOwner)
}
