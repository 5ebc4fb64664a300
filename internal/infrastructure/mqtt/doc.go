// Package mqtt provides the MQTT bus client for the Otodata bridge.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Fire-and-forget retained publishing
//   - Last Will and Testament (LWT) for availability tracking
//   - Topic builders for state and Home Assistant discovery topics
//
// # Availability contract
//
// The bridge's liveness is a single retained payload on the configured
// availability topic: "online" while the bridge runs, "offline" otherwise.
// "online" is published on every (re)connect. "offline" is never published
// by the bridge itself — it is registered as the Last Will and delivered by
// the broker when the connection drops. Close() deliberately skips the MQTT
// DISCONNECT packet so the will also fires on graceful shutdown.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, cfg.Bridge.AvailabilityTopic)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.TankState("20479133")
//	client.Publish(topic, []byte(`{"level":55.5,"rssi":-61,"mac":"AA:BB:CC:DD:EE:FF"}`), 1, true)
package mqtt
