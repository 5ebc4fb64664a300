package mqtt

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jterrace/ha-otodata/internal/infrastructure/config"
)

func testMQTTConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.lan",
			Port:     1883,
			ClientID: "otodata-bridge-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			MaxDelay: 60,
		},
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testMQTTConfig()
	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("got %d broker URLs, want 1", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://broker.lan:1883" {
		t.Errorf("broker URL = %q, want %q", got, "tcp://broker.lan:1883")
	}
	if opts.ClientID != "otodata-bridge-test" {
		t.Errorf("ClientID = %q, want %q", opts.ClientID, "otodata-bridge-test")
	}
	if !opts.AutoReconnect {
		t.Error("AutoReconnect = false, want true")
	}

	// The initial connect must either succeed within the timeout or return
	// an error; a background retry loop after a failed Connect would leak.
	if opts.ConnectRetry {
		t.Error("ConnectRetry = true, want false")
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := testMQTTConfig()
	cfg.Broker.TLS = true
	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("broker scheme = %q, want %q", got, "ssl")
	}
	if opts.TLSConfig == nil {
		t.Fatal("TLSConfig = nil, want configured")
	}
}

func TestConfigureLWT(t *testing.T) {
	opts := buildClientOptions(testMQTTConfig())
	configureLWT(opts, "otodata/bridge/status")

	if !opts.WillEnabled {
		t.Fatal("WillEnabled = false, want true")
	}
	if opts.WillTopic != "otodata/bridge/status" {
		t.Errorf("WillTopic = %q, want availability topic", opts.WillTopic)
	}
	if !bytes.Equal(opts.WillPayload, []byte(PayloadOffline)) {
		t.Errorf("WillPayload = %q, want %q", opts.WillPayload, PayloadOffline)
	}
	if !opts.WillRetained {
		t.Error("WillRetained = false, want true")
	}
	if opts.WillQos != 1 {
		t.Errorf("WillQos = %d, want 1", opts.WillQos)
	}
}

func TestPublish_Validation(t *testing.T) {
	// A zero-value client is never connected; validation runs before any
	// network access, so no broker is needed.
	c := &Client{}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", []byte("x"), 1, ErrInvalidTopic},
		{"invalid qos", "otodata/123/state", []byte("x"), 3, ErrInvalidQoS},
		{"oversized payload", "otodata/123/state", make([]byte, maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "otodata/123/state", []byte("x"), 1, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublishString_NotConnected(t *testing.T) {
	c := &Client{}

	if err := c.PublishString("otodata/bridge/status", PayloadOnline, 1, true); !errors.Is(err, ErrNotConnected) {
		t.Errorf("PublishString() error = %v, want ErrNotConnected", err)
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	c := &Client{}

	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestHealthCheck_CancelledContext(t *testing.T) {
	c := &Client{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() error = %v, want context.Canceled", err)
	}
}
