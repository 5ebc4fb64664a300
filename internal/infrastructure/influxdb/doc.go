// Package influxdb records tank reading history to InfluxDB v2.
//
// History is an optional sidecar to the MQTT bridge: when enabled, every
// published reading is also written as a point in the "tank_level"
// measurement, and every first-sight discovery as a "tank_discovery"
// point. Writes are batched and non-blocking; a slow or absent InfluxDB
// never delays or drops a bus publication.
//
// # Configuration
//
//	history:
//	  enabled: true
//	  url: "http://localhost:8086"
//	  token: ""            # or OTODATA_HISTORY_TOKEN
//	  org: "home"
//	  bucket: "otodata"
//	  batch_size: 100
//	  flush_interval: 10   # seconds
package influxdb
