package otodata

// ManufacturerID is the Bluetooth SIG company identifier assigned to
// Otodata Wireless Network Inc. (0x03B1).
const ManufacturerID uint16 = 945

// statusTag is the ASCII tag opening the binary status framing of the
// manufacturer payload.
var statusTag = []byte("OTO")

// ModelPrefix is the model number opening the name framing of an identity
// advertisement ("TM6030 <serial>").
const ModelPrefix = "TM6030"

// Byte layout of the binary status framing.
const (
	// serialOffset is where the 4-byte little-endian serial starts.
	serialOffset = 7

	// serialLen is the width of the serial field.
	serialLen = 4
)

// Advertisement is one raw BLE advertisement record as delivered by the
// scanner. It carries everything the decoder needs and nothing else, so
// the decoder stays independent of the BLE stack.
type Advertisement struct {
	// Address is the source hardware address, e.g. "AA:BB:CC:DD:EE:FF".
	// Stable for a given tank for the life of the process.
	Address string

	// ManufacturerData maps Bluetooth company IDs to their payload bytes.
	ManufacturerData map[uint16][]byte

	// LocalName is the advertisement's free-text local name, if any.
	LocalName string

	// RSSI is the received signal strength in dBm.
	RSSI int16
}

// Event is a decoded advertisement outcome: either an Identity or a Reading.
type Event interface {
	isEvent()
}

// Identity links a hardware address to a persistent tank serial number.
// Emitted for both the binary status framing and the name framing.
type Identity struct {
	Address string
	Serial  string
}

func (Identity) isEvent() {}

// Reading is a decoded tank level broadcast. It is ephemeral: published
// immediately and discarded.
type Reading struct {
	Address string
	Level   float64
	RSSI    int16
}

func (Reading) isEvent() {}
