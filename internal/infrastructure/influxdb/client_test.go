package influxdb

import (
	"context"
	"errors"
	"testing"

	"github.com/jterrace/ha-otodata/internal/infrastructure/config"
)

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.HistoryConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() with history disabled: error = %v, want ErrDisabled", err)
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	// A zero-value client reports unhealthy without touching the network.
	c := &Client{}

	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true for zero-value client, want false")
	}
}
