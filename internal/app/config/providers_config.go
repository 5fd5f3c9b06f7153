package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	envcfg "memo-whisper/internal/config"
)

// ProvidersConfig is the on-disk registry of transcription backends.
type ProvidersConfig struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig configures a single transcription backend.
type ProviderConfig struct {
	Type        string                 `yaml:"type"`
	Enabled     bool                   `yaml:"enabled"`
	Priority    int                    `yaml:"priority,omitempty"`
	Auth        map[string]interface{} `yaml:"auth,omitempty"`
	Settings    map[string]interface{} `yaml:"settings,omitempty"`
	Performance PerformanceConfig      `yaml:"performance,omitempty"`
	Retry       RetryConfig            `yaml:"retry,omitempty"`
}

// PerformanceConfig bounds a provider's resource usage.
type PerformanceConfig struct {
	TimeoutSec     int `yaml:"timeout_sec,omitempty"`
	MaxConcurrency int `yaml:"max_concurrency,omitempty"`
	RateLimitRPM   int `yaml:"rate_limit_rpm,omitempty"`
}

// RetryConfig controls retry behavior for transient provider failures.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts,omitempty"`
	BackoffSec  int `yaml:"backoff_sec,omitempty"`
}

// validProviderTypes lists the backends the factory can construct.
var validProviderTypes = map[string]bool{
	"whisper_server": true,
	"openai":         true,
	"whisper_cpp":    true,
	"distributed":    true,
}

// LoadProvidersConfig loads the provider registry from a YAML file.
func LoadProvidersConfig(configPath string) (*ProvidersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ProvidersConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.expandEnvironmentVariables()
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadProvidersConfigOrDefault loads the registry from the default path,
// falling back to the built-in environment-driven defaults when no file
// exists.
func LoadProvidersConfigOrDefault() (*ProvidersConfig, error) {
	path := GetDefaultConfigPath()
	if _, err := os.Stat(os.ExpandEnv(path)); os.IsNotExist(err) {
		config := CreateDefaultConfig()
		config.expandEnvironmentVariables()
		config.setDefaults()
		return config, nil
	}
	return LoadProvidersConfig(path)
}

// SaveProvidersConfig writes the provider registry to a YAML file.
func SaveProvidersConfig(config *ProvidersConfig, configPath string) error {
	configPath = os.ExpandEnv(configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandEnvironmentVariables resolves ${VAR} references in auth and settings
// values.
func (c *ProvidersConfig) expandEnvironmentVariables() {
	for _, provider := range c.Providers {
		for key, value := range provider.Auth {
			if strValue, ok := value.(string); ok {
				provider.Auth[key] = expandEnvRef(strValue)
			}
		}
		for key, value := range provider.Settings {
			if strValue, ok := value.(string); ok {
				provider.Settings[key] = expandEnvRef(strValue)
			}
		}
	}
}

func expandEnvRef(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}"))
	}
	return value
}

// setDefaults fills provider selection and performance defaults.
func (c *ProvidersConfig) setDefaults() {
	if c.DefaultProvider == "" && len(c.Providers) > 0 {
		if _, ok := c.Providers["whisper_server"]; ok {
			c.DefaultProvider = "whisper_server"
		} else {
			for name, provider := range c.Providers {
				if provider.Enabled {
					c.DefaultProvider = name
					break
				}
			}
		}
	}

	for name, provider := range c.Providers {
		defaults := envcfg.GetProviderDefaults(provider.Type)
		if provider.Performance.TimeoutSec == 0 {
			provider.Performance.TimeoutSec = int(defaults.Timeout / time.Second)
		}
		if provider.Performance.MaxConcurrency == 0 {
			provider.Performance.MaxConcurrency = defaults.Concurrency
		}
		if provider.Retry.MaxAttempts == 0 {
			provider.Retry.MaxAttempts = defaults.Retries + 1
		}
		if provider.Retry.BackoffSec == 0 {
			provider.Retry.BackoffSec = defaults.RetryDelayMs / 1000
		}
		c.Providers[name] = provider
	}
}

// Validate checks internal consistency of the registry.
func (c *ProvidersConfig) Validate() error {
	hasEnabledProvider := false
	for _, provider := range c.Providers {
		if provider.Enabled {
			hasEnabledProvider = true
			break
		}
	}
	if !hasEnabledProvider {
		return fmt.Errorf("at least one provider must be enabled")
	}

	if c.DefaultProvider != "" {
		provider, exists := c.Providers[c.DefaultProvider]
		if !exists {
			return fmt.Errorf("default provider '%s' does not exist", c.DefaultProvider)
		}
		if !provider.Enabled {
			return fmt.Errorf("default provider '%s' is not enabled", c.DefaultProvider)
		}
	}

	for name, provider := range c.Providers {
		if !validProviderTypes[provider.Type] {
			return fmt.Errorf("invalid provider type '%s' for provider '%s'", provider.Type, name)
		}
		timeout := time.Duration(provider.Performance.TimeoutSec) * time.Second
		retries := provider.Retry.MaxAttempts - 1
		if err := envcfg.ValidateProviderConfig(timeout, provider.Performance.MaxConcurrency, retries, name); err != nil {
			return err
		}
	}

	return nil
}

// GetDefaultConfigPath returns the provider registry location, overridable
// through MEMO_PROVIDERS_CONFIG.
func GetDefaultConfigPath() string {
	if path := os.Getenv("MEMO_PROVIDERS_CONFIG"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "providers.yaml"
	}

	return filepath.Join(home, ".memo-whisper", "providers.yaml")
}

// CreateDefaultConfig builds the environment-driven default registry: a
// hosted whisper server as primary with openai, a local whisper.cpp build
// and the distributed worker pool as alternatives.
func CreateDefaultConfig() *ProvidersConfig {
	return &ProvidersConfig{
		DefaultProvider: "whisper_server",
		Providers: map[string]ProviderConfig{
			"whisper_server": {
				Type:    "whisper_server",
				Enabled: true,
				Auth: map[string]interface{}{
					"api_key": "${WHISPER_API_KEY}",
				},
				Settings: map[string]interface{}{
					"base_url": "${WHISPER_BASE_URL}",
					"model":    "whisper-1",
				},
				Performance: PerformanceConfig{
					TimeoutSec:     300,
					MaxConcurrency: 2,
				},
			},
			"openai": {
				Type:    "openai",
				Enabled: false,
				Auth: map[string]interface{}{
					"api_key": "${OPENAI_API_KEY}",
				},
				Settings: map[string]interface{}{
					"model": "whisper-1",
				},
				Performance: PerformanceConfig{
					TimeoutSec:   60,
					RateLimitRPM: 50,
				},
			},
			"whisper_cpp": {
				Type:    "whisper_cpp",
				Enabled: false,
				Settings: map[string]interface{}{
					"binary_path": "/usr/local/bin/whisper",
					"model_path":  "/models/ggml-large-v2.bin",
				},
				Performance: PerformanceConfig{
					TimeoutSec:     300,
					MaxConcurrency: 2,
				},
			},
			"distributed": {
				Type:    "distributed",
				Enabled: false,
				Settings: map[string]interface{}{
					"host_port": "${TEMPORAL_HOST}",
				},
				Performance: PerformanceConfig{
					TimeoutSec:     1800,
					MaxConcurrency: 4,
				},
			},
		},
	}
}
