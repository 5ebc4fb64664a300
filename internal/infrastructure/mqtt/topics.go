package mqtt

import "fmt"

// Vendor is the topic namespace for tank state, and the prefix for
// Home Assistant unique IDs and discovery object IDs.
const Vendor = "otodata"

// Sensor object identifiers used in discovery config topics.
const (
	SensorLevel = "level"
	SensorRSSI  = "rssi"
)

// Topics provides builders for the bridge's MQTT topics.
// Using these helpers keeps topic shapes consistent between the publisher
// and the discovery payloads that reference them.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.TankState("20479133")
//	// Returns: "otodata/20479133/state"
type Topics struct{}

// TankState returns the retained state topic for a tank serial.
//
// Example: otodata/20479133/state
func (Topics) TankState(serial string) string {
	return fmt.Sprintf("%s/%s/state", Vendor, serial)
}

// SensorConfig returns the Home Assistant discovery config topic for one
// of a tank's sensors.
//
// Example: homeassistant/sensor/otodata_20479133/level/config
func (Topics) SensorConfig(discoveryPrefix, serial, sensor string) string {
	return fmt.Sprintf("%s/sensor/%s_%s/%s/config", discoveryPrefix, Vendor, serial, sensor)
}

// DeviceID returns the Home Assistant device identifier for a tank serial.
//
// Example: otodata_20479133
func (Topics) DeviceID(serial string) string {
	return fmt.Sprintf("%s_%s", Vendor, serial)
}
