package otodata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// levelToken marks a level broadcast in the advertisement's local name.
// Matching is case-sensitive, per the device's actual broadcast format.
const levelToken = "level:"

// levelRe extracts the numeric percentage following the level token.
// Trailing text ("% vertical" and similar unit words) is ignored.
var levelRe = regexp.MustCompile(`level:\s*([0-9]+(?:\.[0-9]*)?|\.[0-9]+)`)

// Decode classifies one raw advertisement into at most one event.
//
// Outcomes:
//   - (Identity, nil): the manufacturer payload matched the binary status
//     framing, or the local name matched the "TM6030 <serial>" name framing.
//   - (Reading, nil): the local name carried a parsable "level:" broadcast.
//   - (nil, error): the advertisement was recognisably Otodata but the
//     value could not be extracted (e.g. "level:" with no number).
//   - (nil, nil): the advertisement is not relevant to this bridge. This
//     is the common case — most nearby broadcasts belong to other devices.
//
// Decode is a pure function: it never mutates shared state, so it is safe
// to call from any goroutine.
func Decode(adv Advertisement) (Event, error) {
	if serial, ok := decodeBinaryIdentity(adv.ManufacturerData[ManufacturerID]); ok {
		return Identity{Address: adv.Address, Serial: serial}, nil
	}

	if serial, ok := decodeNameIdentity(adv.LocalName); ok {
		return Identity{Address: adv.Address, Serial: serial}, nil
	}

	if strings.Contains(adv.LocalName, levelToken) {
		level, err := parseLevel(adv.LocalName)
		if err != nil {
			return nil, err
		}
		return Reading{Address: adv.Address, Level: level, RSSI: adv.RSSI}, nil
	}

	return nil, nil
}

// decodeBinaryIdentity extracts the serial from the binary status framing:
// an ASCII "OTO" tag followed by a 4-byte little-endian serial at byte 7.
// A short or untagged payload is a silent non-match, not an error — other
// Otodata framings exist that this bridge does not decode.
func decodeBinaryIdentity(payload []byte) (string, bool) {
	if !bytes.HasPrefix(payload, statusTag) {
		return "", false
	}
	if len(payload) < serialOffset+serialLen {
		return "", false
	}

	serial := binary.LittleEndian.Uint32(payload[serialOffset : serialOffset+serialLen])
	return strconv.FormatUint(uint64(serial), 10), true
}

// decodeNameIdentity extracts the serial from the name framing:
// a local name of the form "TM6030 <serial>". The remainder is the serial
// verbatim, trimmed of surrounding whitespace.
func decodeNameIdentity(name string) (string, bool) {
	if !strings.HasPrefix(name, ModelPrefix) {
		return "", false
	}

	serial := strings.TrimSpace(strings.TrimPrefix(name, ModelPrefix))
	if serial == "" {
		return "", false
	}
	return serial, true
}

// parseLevel parses the percentage out of a local name already known to
// contain the level token. A token with no parsable number is a decode
// error: the advertisement was meant for us but is malformed.
func parseLevel(name string) (float64, error) {
	m := levelRe.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLevel, name)
	}

	level, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLevel, name)
	}
	return level, nil
}
