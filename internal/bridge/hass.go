package bridge

import "github.com/jterrace/ha-otodata/internal/infrastructure/mqtt"

// Home Assistant discovery constants for Otodata tank monitors.
const (
	manufacturerName = "Otodata"
	modelName        = "TM6030"

	levelSensorName = "Propane Level"
	rssiSensorName  = "Signal Strength"

	levelIcon = "mdi:propane-tank"
)

// deviceInfo is the nested device object shared by both sensor configs.
// Home Assistant groups entities with the same identifiers into one device.
type deviceInfo struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
}

// sensorConfig is the MQTT discovery payload for one sensor entity.
// Field names and values follow the Home Assistant MQTT sensor schema;
// they must not change without coordinating with downstream consumers.
type sensorConfig struct {
	Name              string     `json:"name"`
	UniqueID          string     `json:"unique_id"`
	StateTopic        string     `json:"state_topic"`
	AvailabilityTopic string     `json:"availability_topic"`
	UnitOfMeasurement string     `json:"unit_of_measurement"`
	ValueTemplate     string     `json:"value_template"`
	DeviceClass       string     `json:"device_class"`
	Icon              string     `json:"icon,omitempty"`
	EntityCategory    string     `json:"entity_category,omitempty"`
	Device            deviceInfo `json:"device"`
}

// tankDevice builds the shared device object for a tank serial.
func tankDevice(serial string) deviceInfo {
	return deviceInfo{
		Identifiers:  []string{mqtt.Topics{}.DeviceID(serial)},
		Name:         "Propane Tank " + serial,
		Manufacturer: manufacturerName,
		Model:        modelName,
	}
}

// levelConfig builds the discovery payload for the propane level sensor.
func levelConfig(serial, stateTopic, availabilityTopic string) sensorConfig {
	return sensorConfig{
		Name:              levelSensorName,
		UniqueID:          mqtt.Topics{}.DeviceID(serial) + "_level",
		StateTopic:        stateTopic,
		AvailabilityTopic: availabilityTopic,
		UnitOfMeasurement: "%",
		ValueTemplate:     "{{ value_json.level }}",
		DeviceClass:       "gas",
		Icon:              levelIcon,
		Device:            tankDevice(serial),
	}
}

// rssiConfig builds the discovery payload for the signal-strength
// diagnostic sensor.
func rssiConfig(serial, stateTopic, availabilityTopic string) sensorConfig {
	return sensorConfig{
		Name:              rssiSensorName,
		UniqueID:          mqtt.Topics{}.DeviceID(serial) + "_rssi",
		StateTopic:        stateTopic,
		AvailabilityTopic: availabilityTopic,
		UnitOfMeasurement: "dBm",
		ValueTemplate:     "{{ value_json.rssi }}",
		DeviceClass:       "signal_strength",
		EntityCategory:    "diagnostic",
		Device:            tankDevice(serial),
	}
}
