package mqtt

import "testing"

func TestTopics_TankState(t *testing.T) {
	got := Topics{}.TankState("20479133")
	want := "otodata/20479133/state"
	if got != want {
		t.Errorf("TankState() = %q, want %q", got, want)
	}
}

func TestTopics_SensorConfig(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		serial string
		sensor string
		want   string
	}{
		{
			name:   "level config",
			prefix: "homeassistant",
			serial: "20479133",
			sensor: SensorLevel,
			want:   "homeassistant/sensor/otodata_20479133/level/config",
		},
		{
			name:   "rssi config",
			prefix: "homeassistant",
			serial: "20479133",
			sensor: SensorRSSI,
			want:   "homeassistant/sensor/otodata_20479133/rssi/config",
		},
		{
			name:   "custom prefix",
			prefix: "hass",
			serial: "123",
			sensor: SensorLevel,
			want:   "hass/sensor/otodata_123/level/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Topics{}.SensorConfig(tt.prefix, tt.serial, tt.sensor)
			if got != tt.want {
				t.Errorf("SensorConfig() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTopics_DeviceID(t *testing.T) {
	if got := (Topics{}).DeviceID("123"); got != "otodata_123" {
		t.Errorf("DeviceID() = %q, want %q", got, "otodata_123")
	}
}
