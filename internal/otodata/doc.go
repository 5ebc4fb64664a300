// Package otodata decodes BLE advertisements from Otodata propane-tank
// telemetry monitors.
//
// A TM6030 monitor broadcasts continuously in two shapes:
//
//   - Identity advertisements carrying the tank's persistent serial number,
//     either as a manufacturer payload ("OTO" tag + little-endian serial)
//     or as a local name ("TM6030 20479133").
//   - Level advertisements carrying the fill percentage in the local name
//     ("level: 80.0 % vertical").
//
// Decode is a pure classification step. Correlating the ephemeral hardware
// address in identity advertisements with the readings that follow is the
// bridge controller's job (see internal/bridge).
package otodata
