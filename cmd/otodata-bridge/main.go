// ha-otodata — BLE to MQTT bridge for Otodata propane tank monitors
//
// The bridge listens for TM6030 advertisement broadcasts, correlates each
// tank's hardware address with its serial number, and republishes level
// readings to an MQTT broker using the Home Assistant discovery
// convention. It runs until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jterrace/ha-otodata/internal/bridge"
	"github.com/jterrace/ha-otodata/internal/infrastructure/config"
	"github.com/jterrace/ha-otodata/internal/infrastructure/database"
	"github.com/jterrace/ha-otodata/internal/infrastructure/influxdb"
	"github.com/jterrace/ha-otodata/internal/infrastructure/logging"
	"github.com/jterrace/ha-otodata/internal/infrastructure/mqtt"
	"github.com/jterrace/ha-otodata/internal/journal"
	"github.com/jterrace/ha-otodata/internal/scanner"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting ha-otodata bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the sighting journal (optional)
	var sightings *journal.Repository
	var journalDB *database.DB
	if cfg.Journal.Enabled {
		db, openErr := database.Open(database.Config{
			Path:        cfg.Journal.Path,
			WALMode:     cfg.Journal.WALMode,
			BusyTimeout: cfg.Journal.BusyTimeout,
		})
		if openErr != nil {
			return fmt.Errorf("opening journal database: %w", openErr)
		}
		defer func() {
			log.Info("closing journal database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing journal database", "error", closeErr)
			}
		}()

		sightings = journal.NewRepository(db.DB)
		if initErr := sightings.Init(ctx); initErr != nil {
			return fmt.Errorf("initialising journal schema: %w", initErr)
		}
		journalDB = db
		log.Info("sighting journal enabled", "path", db.Path())
	} else {
		log.Info("sighting journal disabled")
	}

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT, cfg.Bridge.AvailabilityTopic)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		// Close() skips the MQTT DISCONNECT on purpose so the broker's
		// Last Will flips the retained availability payload to offline.
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
		"availability_topic", cfg.Bridge.AvailabilityTopic,
	)

	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB reading history (optional)
	var history *influxdb.Client
	if cfg.History.Enabled {
		history, err = influxdb.Connect(cfg.History)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := history.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("reading history enabled",
			"url", cfg.History.URL,
			"bucket", cfg.History.Bucket,
		)

		history.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("reading history disabled")
	}

	// Assemble the bridge controller
	opts := bridge.Options{
		AvailabilityTopic: cfg.Bridge.AvailabilityTopic,
		DiscoveryPrefix:   cfg.Bridge.DiscoveryPrefix,
		QoS:               byte(cfg.MQTT.QoS),
		MQTTClient:        mqttClient,
		Logger:            log.With("component", "bridge"),
	}
	if history != nil {
		opts.History = history
	}
	if sightings != nil {
		opts.Journal = sightings
	}

	br, err := bridge.New(opts)
	if err != nil {
		return fmt.Errorf("creating bridge: %w", err)
	}
	br.Start(ctx)
	defer br.Stop()

	// Keep degraded dependencies visible in the logs while running.
	go healthMonitor(ctx, log, mqttClient, history, journalDB)

	// Start scanning. The scan blocks inside its own goroutine until the
	// context is cancelled; a scan failure tears the whole process down
	// since a bridge that cannot hear tanks is useless.
	scanErr := make(chan error, 1)
	go func() {
		scanErr <- scanner.New().Run(ctx, br.Submit)
	}()
	log.Info("BLE scan started, listening for Otodata broadcasts")

	select {
	case err := <-scanErr:
		if err != nil {
			return fmt.Errorf("BLE scan: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, cleaning up")
	log.Info("ha-otodata bridge stopped")
	return nil
}

// Health monitoring intervals.
const (
	healthInterval     = 60 * time.Second
	healthCheckTimeout = 5 * time.Second
)

// healthMonitor periodically probes the bridge's dependencies and logs any
// that report unhealthy. The bridge keeps running regardless: MQTT
// auto-reconnects, and history/journal failures only lose diagnostics.
// Runs until ctx is cancelled.
func healthMonitor(ctx context.Context, log *logging.Logger, mqttClient *mqtt.Client, history *influxdb.Client, journalDB *database.DB) {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)

			if err := mqttClient.HealthCheck(checkCtx); err != nil {
				log.Warn("mqtt health check failed", "error", err)
			}
			if history != nil {
				if err := history.HealthCheck(checkCtx); err != nil {
					log.Warn("influxdb health check failed", "error", err)
				}
			}
			if journalDB != nil {
				if err := journalDB.HealthCheck(checkCtx); err != nil {
					log.Warn("journal database health check failed", "error", err)
				}
			}

			cancel()
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses OTODATA_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("OTODATA_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
