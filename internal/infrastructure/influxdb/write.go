package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteTankReading records one decoded tank reading.
//
// The write is non-blocking; points are batched and sent asynchronously.
// Each reading becomes a point in the "tank_level" measurement, tagged by
// serial and hardware address so per-tank consumption curves and signal
// quality can be graphed independently.
//
// Parameters:
//   - serial: The tank's persistent serial number
//   - address: The tank's hardware address (MAC)
//   - level: Fill level percentage
//   - rssi: Received signal strength in dBm
func (c *Client) WriteTankReading(serial, address string, level float64, rssi int16) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"tank_level",
		map[string]string{
			"serial": serial,
			"mac":    address,
		},
		map[string]interface{}{
			"level": level,
			"rssi":  int64(rssi),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteDiscovery records the first sighting of a tank serial.
//
// One point per announcement, in the "tank_discovery" measurement. Useful
// for auditing when tanks came into radio range of the bridge.
func (c *Client) WriteDiscovery(serial, address string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"tank_discovery",
		map[string]string{
			"serial": serial,
		},
		map[string]interface{}{
			"mac": address,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
