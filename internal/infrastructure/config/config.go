package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Otodata bridge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Bridge  BridgeConfig  `yaml:"bridge"`
	History HistoryConfig `yaml:"history"`
	Journal JournalConfig `yaml:"journal"`
	Logging LoggingConfig `yaml:"logging"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	MaxDelay int `yaml:"max_delay"`
}

// BridgeConfig contains the bridge's topic surface.
type BridgeConfig struct {
	// AvailabilityTopic carries the retained online/offline payload for the
	// bridge process. The broker publishes "offline" here via Last Will if
	// the bridge drops off uncleanly.
	AvailabilityTopic string `yaml:"availability_topic"`

	// DiscoveryPrefix is the Home Assistant discovery prefix under which
	// sensor config payloads are published.
	DiscoveryPrefix string `yaml:"discovery_prefix"`
}

// HistoryConfig contains InfluxDB settings for optional reading history.
type HistoryConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// JournalConfig contains SQLite settings for the optional sighting journal.
type JournalConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// A missing config file is not an error: the bridge is fully operable from
// defaults plus environment variables alone. Environment variables follow
// the pattern OTODATA_SECTION_KEY, e.g. OTODATA_MQTT_HOST, OTODATA_MQTT_PORT.
//
// Parameters:
//   - path: Path to the YAML configuration file (may be empty)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file exists but cannot be parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		case os.IsNotExist(err):
			// Defaults + env only.
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "127.0.0.1",
				Port:     1883,
				ClientID: "otodata-bridge",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				MaxDelay: 60,
			},
		},
		Bridge: BridgeConfig{
			AvailabilityTopic: "otodata/bridge/status",
			DiscoveryPrefix:   "homeassistant",
		},
		History: HistoryConfig{
			Enabled:       false,
			URL:           "http://localhost:8086",
			Bucket:        "otodata",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Journal: JournalConfig{
			Enabled:     false,
			Path:        "./data/otodata.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: OTODATA_SECTION_KEY
//
// A set-but-unparsable value is an error, not a silent fall-through to the
// default: a typo'd port override must not point the bridge at the wrong
// broker invisibly.
func applyEnvOverrides(cfg *Config) error {
	// MQTT
	if v := os.Getenv("OTODATA_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("OTODATA_MQTT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OTODATA_MQTT_PORT %q is not a number", v)
		}
		cfg.MQTT.Broker.Port = port
	}
	if v := os.Getenv("OTODATA_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("OTODATA_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Bridge topics
	if v := os.Getenv("OTODATA_BRIDGE_AVAILABILITY_TOPIC"); v != "" {
		cfg.Bridge.AvailabilityTopic = v
	}
	if v := os.Getenv("OTODATA_DISCOVERY_PREFIX"); v != "" {
		cfg.Bridge.DiscoveryPrefix = v
	}

	// History (the token is the usual secret delivered via environment)
	if v := os.Getenv("OTODATA_HISTORY_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OTODATA_HISTORY_ENABLED %q is not a boolean", v)
		}
		cfg.History.Enabled = enabled
	}
	if v := os.Getenv("OTODATA_HISTORY_TOKEN"); v != "" {
		cfg.History.Token = v
	}

	// Journal
	if v := os.Getenv("OTODATA_JOURNAL_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OTODATA_JOURNAL_ENABLED %q is not a boolean", v)
		}
		cfg.Journal.Enabled = enabled
	}
	if v := os.Getenv("OTODATA_JOURNAL_PATH"); v != "" {
		cfg.Journal.Path = v
	}

	return nil
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}
	if c.MQTT.Broker.ClientID == "" {
		errs = append(errs, "mqtt.broker.client_id is required")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.Bridge.AvailabilityTopic == "" {
		errs = append(errs, "bridge.availability_topic is required")
	}
	if strings.ContainsAny(c.Bridge.AvailabilityTopic, "+#") {
		errs = append(errs, "bridge.availability_topic must not contain wildcards")
	}
	if c.Bridge.DiscoveryPrefix == "" {
		errs = append(errs, "bridge.discovery_prefix is required")
	}

	if c.History.Enabled {
		if c.History.URL == "" {
			errs = append(errs, "history.url is required when history is enabled")
		}
		if c.History.Bucket == "" {
			errs = append(errs, "history.bucket is required when history is enabled")
		}
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		errs = append(errs, "journal.path is required when journal is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
