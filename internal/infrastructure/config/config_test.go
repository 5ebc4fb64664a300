package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
mqtt:
  broker:
    host: "broker.lan"
    port: 8883
    tls: true
    client_id: "tank-bridge"
  auth:
    username: "tanks"
    password: "secret"
  qos: 1
bridge:
  availability_topic: "propane/bridge/status"
  discovery_prefix: "ha"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "broker.lan" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.lan")
	}
	if cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT.Broker.Port = %d, want 8883", cfg.MQTT.Broker.Port)
	}
	if !cfg.MQTT.Broker.TLS {
		t.Error("MQTT.Broker.TLS = false, want true")
	}
	if cfg.Bridge.AvailabilityTopic != "propane/bridge/status" {
		t.Errorf("Bridge.AvailabilityTopic = %q, want %q",
			cfg.Bridge.AvailabilityTopic, "propane/bridge/status")
	}
	if cfg.Bridge.DiscoveryPrefix != "ha" {
		t.Errorf("Bridge.DiscoveryPrefix = %q, want %q", cfg.Bridge.DiscoveryPrefix, "ha")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults for missing file", err)
	}

	if cfg.MQTT.Broker.Host != "127.0.0.1" {
		t.Errorf("default MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "127.0.0.1")
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("default MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.Bridge.AvailabilityTopic != "otodata/bridge/status" {
		t.Errorf("default Bridge.AvailabilityTopic = %q, want %q",
			cfg.Bridge.AvailabilityTopic, "otodata/bridge/status")
	}
	if cfg.Bridge.DiscoveryPrefix != "homeassistant" {
		t.Errorf("default Bridge.DiscoveryPrefix = %q, want %q",
			cfg.Bridge.DiscoveryPrefix, "homeassistant")
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true by default, want false")
	}
	if cfg.Journal.Enabled {
		t.Error("Journal.Enabled = true by default, want false")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OTODATA_MQTT_HOST", "mqtt.example.com")
	t.Setenv("OTODATA_MQTT_PORT", "2883")
	t.Setenv("OTODATA_MQTT_USERNAME", "bridge")
	t.Setenv("OTODATA_MQTT_PASSWORD", "hunter2")
	t.Setenv("OTODATA_BRIDGE_AVAILABILITY_TOPIC", "tanks/bridge/up")
	t.Setenv("OTODATA_DISCOVERY_PREFIX", "hass")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want env override", cfg.MQTT.Broker.Host)
	}
	if cfg.MQTT.Broker.Port != 2883 {
		t.Errorf("MQTT.Broker.Port = %d, want 2883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.Auth.Username != "bridge" || cfg.MQTT.Auth.Password != "hunter2" {
		t.Errorf("MQTT.Auth = %+v, want env credentials", cfg.MQTT.Auth)
	}
	if cfg.Bridge.AvailabilityTopic != "tanks/bridge/up" {
		t.Errorf("Bridge.AvailabilityTopic = %q, want env override", cfg.Bridge.AvailabilityTopic)
	}
	if cfg.Bridge.DiscoveryPrefix != "hass" {
		t.Errorf("Bridge.DiscoveryPrefix = %q, want env override", cfg.Bridge.DiscoveryPrefix)
	}
}

func TestLoad_EnvUnparsableValuesRejected(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "OTODATA_MQTT_PORT", "not-a-port"},
		{"bad history enabled", "OTODATA_HISTORY_ENABLED", "yes please"},
		{"bad journal enabled", "OTODATA_JOURNAL_ENABLED", "enable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(""); err == nil {
				t.Errorf("Load() with %s=%q expected error, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_EnvEnablesSubsystems(t *testing.T) {
	t.Setenv("OTODATA_HISTORY_ENABLED", "true")
	t.Setenv("OTODATA_HISTORY_TOKEN", "s3cret")
	t.Setenv("OTODATA_JOURNAL_ENABLED", "1")
	t.Setenv("OTODATA_JOURNAL_PATH", "/var/lib/otodata/journal.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want env-enabled")
	}
	if cfg.History.Token != "s3cret" {
		t.Errorf("History.Token = %q, want env override", cfg.History.Token)
	}
	if !cfg.Journal.Enabled {
		t.Error("Journal.Enabled = false, want env-enabled")
	}
	if cfg.Journal.Path != "/var/lib/otodata/journal.db" {
		t.Errorf("Journal.Path = %q, want env override", cfg.Journal.Path)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid qos", func(c *Config) { c.MQTT.QoS = 3 }},
		{"invalid port", func(c *Config) { c.MQTT.Broker.Port = 0 }},
		{"empty host", func(c *Config) { c.MQTT.Broker.Host = "" }},
		{"empty client id", func(c *Config) { c.MQTT.Broker.ClientID = "" }},
		{"empty availability topic", func(c *Config) { c.Bridge.AvailabilityTopic = "" }},
		{"wildcard availability topic", func(c *Config) { c.Bridge.AvailabilityTopic = "otodata/#" }},
		{"empty discovery prefix", func(c *Config) { c.Bridge.DiscoveryPrefix = "" }},
		{"history enabled without url", func(c *Config) {
			c.History.Enabled = true
			c.History.URL = ""
		}},
		{"journal enabled without path", func(c *Config) {
			c.Journal.Enabled = true
			c.Journal.Path = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}
