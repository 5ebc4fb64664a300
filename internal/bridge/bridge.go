package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jterrace/ha-otodata/internal/infrastructure/mqtt"
	"github.com/jterrace/ha-otodata/internal/otodata"
	"github.com/jterrace/ha-otodata/internal/tank"
)

// defaultQueueSize is the advertisement queue depth. BLE broadcast volume
// is bounded by the radio interval, so a shallow queue is plenty; if it
// ever fills, dropped advertisements are superseded by the next broadcast.
const defaultQueueSize = 64

// Bridge correlates tank identity advertisements with level readings and
// republishes them over MQTT using the Home Assistant discovery convention.
//
// All registry and tracker mutation happens on one processing goroutine
// fed by a single-consumer queue, so scanner callbacks may arrive on any
// thread without risking lost updates.
//
// Thread Safety: Submit, Start, and Stop are safe for concurrent use.
type Bridge struct {
	availabilityTopic string
	discoveryPrefix   string
	qos               byte

	mqtt    MQTTClient
	history HistoryWriter // Optional reading history (may be nil)
	journal Journal       // Optional sighting journal (may be nil)

	registry *tank.Registry
	tracker  *tank.Tracker
	topics   mqtt.Topics

	// events is the single-consumer advertisement queue.
	events chan otodata.Advertisement

	// Shutdown coordination
	done      chan struct{}
	wg        sync.WaitGroup
	stopOnce  sync.Once
	ctx       context.Context    // Bridge-level context, cancelled on Stop()
	ctxCancel context.CancelFunc // Cancel function for ctx

	// Logger
	logger   Logger
	loggerMu sync.RWMutex
}

// MQTTClient is the interface for MQTT operations.
// This allows mocking in tests and flexibility in implementation.
type MQTTClient interface {
	// Publish sends a message to a topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error

	// IsConnected returns true if connected to the broker.
	IsConnected() bool
}

// HistoryWriter records readings and discoveries to a time-series store.
// It is optional - if nil, the bridge operates without history.
type HistoryWriter interface {
	// WriteTankReading records one decoded reading (non-blocking).
	WriteTankReading(serial, address string, level float64, rssi int16)

	// WriteDiscovery records a first-sight discovery (non-blocking).
	WriteDiscovery(serial, address string)
}

// Journal appends sightings to durable diagnostics storage.
// It is optional - if nil, the bridge operates without journalling.
type Journal interface {
	// RecordIdentity appends an identity sighting.
	RecordIdentity(ctx context.Context, serial, address string) error

	// RecordDiscovery appends a discovery announcement.
	RecordDiscovery(ctx context.Context, serial, address string) error
}

// Logger is the optional structured logger interface.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options holds configuration for creating a bridge.
type Options struct {
	// AvailabilityTopic is referenced by every discovery config so Home
	// Assistant marks all tank entities unavailable when the bridge dies.
	AvailabilityTopic string

	// DiscoveryPrefix is the Home Assistant discovery prefix.
	DiscoveryPrefix string

	// QoS is the Quality of Service level for all bridge publishes.
	QoS byte

	// MQTTClient is the MQTT client implementation.
	MQTTClient MQTTClient

	// History is optional reading history storage.
	History HistoryWriter

	// Journal is optional sighting journal storage.
	Journal Journal

	// Logger is optional structured logger.
	Logger Logger

	// QueueSize overrides the advertisement queue depth (0 = default).
	QueueSize int
}

// StatePayload is the retained per-tank state publication.
type StatePayload struct {
	Level float64 `json:"level"`
	RSSI  int     `json:"rssi"`
	MAC   string  `json:"mac"`
}

// New creates a new bridge instance.
// Call Start() to begin consuming advertisements.
func New(opts Options) (*Bridge, error) {
	if opts.MQTTClient == nil {
		return nil, fmt.Errorf("MQTT client is required")
	}
	if opts.AvailabilityTopic == "" {
		return nil, fmt.Errorf("availability topic is required")
	}
	if opts.DiscoveryPrefix == "" {
		return nil, fmt.Errorf("discovery prefix is required")
	}

	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	ctx, ctxCancel := context.WithCancel(context.Background())

	return &Bridge{
		availabilityTopic: opts.AvailabilityTopic,
		discoveryPrefix:   opts.DiscoveryPrefix,
		qos:               opts.QoS,
		mqtt:              opts.MQTTClient,
		history:           opts.History, // May be nil (optional)
		journal:           opts.Journal, // May be nil (optional)
		registry:          tank.NewRegistry(),
		tracker:           tank.NewTracker(),
		events:            make(chan otodata.Advertisement, queueSize),
		done:              make(chan struct{}),
		ctx:               ctx,
		ctxCancel:         ctxCancel,
		logger:            opts.Logger,
	}, nil
}

// Start launches the processing loop.
// The loop runs until Stop() is called or ctx is cancelled.
func (b *Bridge) Start(ctx context.Context) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-b.done:
				return
			case <-ctx.Done():
				return
			case adv := <-b.events:
				b.processAdvertisement(adv)
			}
		}
	}()

	b.logInfo("bridge started",
		"availability_topic", b.availabilityTopic,
		"discovery_prefix", b.discoveryPrefix)
}

// Stop gracefully shuts down the bridge.
// Queued advertisements that have not been processed are dropped; the
// tanks rebroadcast everything within one radio cycle anyway.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		b.ctxCancel()
		b.wg.Wait()

		b.logInfo("bridge stopped",
			"known_tanks", b.registry.Len(),
			"announced", b.tracker.Len())
	})
}

// Submit enqueues one raw advertisement for processing. It never blocks:
// if the queue is full the advertisement is dropped with a warning, since
// the tank's periodic rebroadcast supersedes it.
//
// Safe to call from any goroutine, including BLE stack callbacks.
func (b *Bridge) Submit(adv otodata.Advertisement) {
	select {
	case b.events <- adv:
	default:
		b.logWarn("advertisement queue full, dropping", "address", adv.Address)
	}
}

// KnownTanks returns the number of addresses currently mapped to serials.
func (b *Bridge) KnownTanks() int {
	return b.registry.Len()
}

// processAdvertisement runs one advertisement through the decoder and
// applies the outcome. This is the only place registry and tracker state
// is mutated.
func (b *Bridge) processAdvertisement(adv otodata.Advertisement) {
	ev, err := otodata.Decode(adv)
	if err != nil {
		// Malformed but recognisably ours. Drop it; never kill the loop.
		b.logWarn("malformed advertisement dropped",
			"address", adv.Address,
			"error", err)
		return
	}

	switch ev := ev.(type) {
	case otodata.Identity:
		b.handleIdentity(ev)
	case otodata.Reading:
		b.handleReading(ev)
	case nil:
		// Not an Otodata broadcast. The common case.
	}
}

// handleIdentity records the address→serial mapping and, on first sight of
// a serial, publishes the Home Assistant discovery announcement.
func (b *Bridge) handleIdentity(id otodata.Identity) {
	b.registry.Record(id.Address, id.Serial)

	if b.journal != nil {
		if err := b.journal.RecordIdentity(b.ctx, id.Serial, id.Address); err != nil {
			b.logError("journal write failed", "error", err)
		}
	}

	if !b.tracker.ShouldAnnounce(id.Serial) {
		return
	}

	b.announce(id)
}

// announce publishes the two retained discovery configs for a tank serial:
// the level sensor and the signal-strength diagnostic. Both reference the
// bridge availability topic so the entities go unavailable with the bridge.
func (b *Bridge) announce(id otodata.Identity) {
	stateTopic := b.topics.TankState(id.Serial)

	level, err := json.Marshal(levelConfig(id.Serial, stateTopic, b.availabilityTopic))
	if err != nil {
		b.logError("marshalling level config", "serial", id.Serial, "error", err)
		return
	}
	rssi, err := json.Marshal(rssiConfig(id.Serial, stateTopic, b.availabilityTopic))
	if err != nil {
		b.logError("marshalling rssi config", "serial", id.Serial, "error", err)
		return
	}

	levelTopic := b.topics.SensorConfig(b.discoveryPrefix, id.Serial, mqtt.SensorLevel)
	if err := b.mqtt.Publish(levelTopic, level, b.qos, true); err != nil {
		b.logError("publishing level config", "serial", id.Serial, "error", err)
	}

	rssiTopic := b.topics.SensorConfig(b.discoveryPrefix, id.Serial, mqtt.SensorRSSI)
	if err := b.mqtt.Publish(rssiTopic, rssi, b.qos, true); err != nil {
		b.logError("publishing rssi config", "serial", id.Serial, "error", err)
	}

	if b.journal != nil {
		if err := b.journal.RecordDiscovery(b.ctx, id.Serial, id.Address); err != nil {
			b.logError("journal write failed", "error", err)
		}
	}
	if b.history != nil {
		b.history.WriteDiscovery(id.Serial, id.Address)
	}

	b.logInfo("tank discovered",
		"serial", id.Serial,
		"address", id.Address,
		"availability_topic", b.availabilityTopic)
}

// handleReading publishes a retained state payload for an identified tank.
// Readings from addresses with no recorded identity are dropped silently:
// the identity advertisement repeats continuously, so the mapping appears
// within one broadcast cycle.
func (b *Bridge) handleReading(r otodata.Reading) {
	serial, ok := b.registry.Lookup(r.Address)
	if !ok {
		b.logDebug("reading from unidentified address dropped", "address", r.Address)
		return
	}

	payload, err := json.Marshal(StatePayload{
		Level: r.Level,
		RSSI:  int(r.RSSI),
		MAC:   r.Address,
	})
	if err != nil {
		b.logError("marshalling state payload", "serial", serial, "error", err)
		return
	}

	if err := b.mqtt.Publish(b.topics.TankState(serial), payload, b.qos, true); err != nil {
		b.logError("publishing state", "serial", serial, "error", err)
		return
	}

	if b.history != nil {
		b.history.WriteTankReading(serial, r.Address, r.Level, r.RSSI)
	}

	b.logInfo("reading published",
		"serial", serial,
		"level", r.Level,
		"rssi", r.RSSI)
}

// SetLogger sets a logger for bridge events.
func (b *Bridge) SetLogger(logger Logger) {
	b.loggerMu.Lock()
	b.logger = logger
	b.loggerMu.Unlock()
}

func (b *Bridge) getLogger() Logger {
	b.loggerMu.RLock()
	defer b.loggerMu.RUnlock()
	return b.logger
}

func (b *Bridge) logDebug(msg string, args ...any) {
	if l := b.getLogger(); l != nil {
		l.Debug(msg, args...)
	}
}

func (b *Bridge) logInfo(msg string, args ...any) {
	if l := b.getLogger(); l != nil {
		l.Info(msg, args...)
	}
}

func (b *Bridge) logWarn(msg string, args ...any) {
	if l := b.getLogger(); l != nil {
		l.Warn(msg, args...)
	}
}

func (b *Bridge) logError(msg string, args ...any) {
	if l := b.getLogger(); l != nil {
		l.Error(msg, args...)
	}
}
