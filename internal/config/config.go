// Package config loads the server configuration from defaults, an
// optional YAML file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigFile           = "VOXBRIDGE_CONFIG_FILE"
	EnvHTTPAddr             = "VOXBRIDGE_HTTP_ADDR"
	EnvAutomationWebhookURL = "VOXBRIDGE_AUTOMATION_WEBHOOK_URL"
	EnvCustomWebhookURL     = "VOXBRIDGE_CUSTOM_WEBHOOK_URL"
	EnvDBDriver             = "VOXBRIDGE_DB_DRIVER"
	EnvDBDSN                = "VOXBRIDGE_DB_DSN"
	EnvAgentOverrides       = "VOXBRIDGE_AGENT_OVERRIDES"
)

const (
	DefaultHTTPAddr       = ":8080"
	DefaultDBDriver       = "sqlite"
	defaultConfigFileName = "voxbridge.yaml"
)

// Config is read once at startup and passed by reference into the
// components that need it; nothing reloads it at runtime.
type Config struct {
	HTTPAddr             string
	AutomationWebhookURL string
	CustomWebhookURL     string
	DBDriver             string
	// DBDSN empty disables the persistence handler and survey storage.
	DBDSN string
	// AgentOverrides maps an agent id to the dynamic-variable key used
	// in the compact forwarding envelope for that agent.
	AgentOverrides map[string]string
}

type fileConfig struct {
	HTTPAddr             string            `yaml:"http_addr"`
	AutomationWebhookURL string            `yaml:"automation_webhook_url"`
	CustomWebhookURL     string            `yaml:"custom_webhook_url"`
	DBDriver             string            `yaml:"db_driver"`
	DBDSN                string            `yaml:"db_dsn"`
	AgentOverrides       map[string]string `yaml:"agent_overrides"`
}

func defaultConfig() Config {
	return Config{
		HTTPAddr: DefaultHTTPAddr,
		DBDriver: DefaultDBDriver,
	}
}

// FromYAMLAndEnv resolves the configuration: defaults, then the YAML
// file (if present), then environment variables.
func FromYAMLAndEnv() (Config, error) {
	cfg := defaultConfig()

	fileCfg, err := loadFileConfig()
	if err != nil {
		return Config{}, err
	}
	applyFile(&cfg, fileCfg)
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFileConfig() (fileConfig, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfigFile))
	explicit := path != ""
	if path == "" {
		path = defaultConfigFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return cfg, nil
}

func applyFile(cfg *Config, file fileConfig) {
	if v := strings.TrimSpace(file.HTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(file.AutomationWebhookURL); v != "" {
		cfg.AutomationWebhookURL = v
	}
	if v := strings.TrimSpace(file.CustomWebhookURL); v != "" {
		cfg.CustomWebhookURL = v
	}
	if v := strings.TrimSpace(file.DBDriver); v != "" {
		cfg.DBDriver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(file.DBDSN); v != "" {
		cfg.DBDSN = v
	}
	if len(file.AgentOverrides) > 0 {
		cfg.AgentOverrides = make(map[string]string, len(file.AgentOverrides))
		for agentID, key := range file.AgentOverrides {
			cfg.AgentOverrides[strings.TrimSpace(agentID)] = strings.TrimSpace(key)
		}
	}
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvHTTPAddr)); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAutomationWebhookURL)); v != "" {
		cfg.AutomationWebhookURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCustomWebhookURL)); v != "" {
		cfg.CustomWebhookURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBDriver)); v != "" {
		cfg.DBDriver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBDSN)); v != "" {
		cfg.DBDSN = v
	}
	if raw := strings.TrimSpace(os.Getenv(EnvAgentOverrides)); raw != "" {
		overrides, err := parseAgentOverrides(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAgentOverrides, err)
		}
		cfg.AgentOverrides = overrides
	}
	return nil
}

// parseAgentOverrides parses "agentID=variableKey,agentID=variableKey".
func parseAgentOverrides(raw string) (map[string]string, error) {
	overrides := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		entry := strings.TrimSpace(part)
		if entry == "" {
			continue
		}
		agentID, key, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid entry %q (expected agent_id=variable_key)", entry)
		}
		agentID = strings.TrimSpace(agentID)
		key = strings.TrimSpace(key)
		if agentID == "" || key == "" {
			return nil, fmt.Errorf("invalid entry %q (agent id and variable key are required)", entry)
		}
		overrides[agentID] = key
	}
	return overrides, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("%s must not be empty", EnvHTTPAddr)
	}
	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%s must be sqlite or postgres", EnvDBDriver)
	}
	for agentID, key := range c.AgentOverrides {
		if strings.TrimSpace(agentID) == "" || strings.TrimSpace(key) == "" {
			return fmt.Errorf("agent overrides require both agent id and variable key")
		}
	}
	return nil
}
