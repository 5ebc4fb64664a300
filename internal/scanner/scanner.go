// Package scanner adapts the BLE stack to the bridge's advertisement
// stream.
//
// It wraps tinygo.org/x/bluetooth's default adapter and converts each
// bluetooth.ScanResult into an otodata.Advertisement before handing it to
// a sink function. The sink is called from the BLE stack's own callback
// goroutine, so sinks must be cheap and non-blocking — the bridge's
// Submit() qualifies.
//
// On Linux this needs BlueZ and either root or cap_net_admin on the
// binary.
package scanner

import (
	"context"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/jterrace/ha-otodata/internal/otodata"
)

// Sink receives converted advertisements. It must not block.
type Sink func(otodata.Advertisement)

// Scanner owns the BLE adapter and the scan lifecycle.
type Scanner struct {
	adapter *bluetooth.Adapter
}

// New creates a scanner on the platform's default BLE adapter.
func New() *Scanner {
	return &Scanner{
		adapter: bluetooth.DefaultAdapter,
	}
}

// Run enables the adapter and scans until ctx is cancelled.
//
// Run blocks for the lifetime of the scan; callers typically run it in a
// goroutine and watch the returned error. Cancellation stops the scan and
// returns nil — scan errors after cancellation are expected teardown
// noise and are swallowed.
//
// Parameters:
//   - ctx: Cancelling this context stops the scan
//   - sink: Receives every observed advertisement, in observation order
//
// Returns:
//   - error: If the adapter cannot be enabled or the scan fails
func (s *Scanner) Run(ctx context.Context, sink Sink) error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("enabling BLE adapter: %w (on Linux, run as root or grant cap_net_admin)", err)
	}

	go func() {
		<-ctx.Done()
		// StopScan unblocks the Scan call below.
		_ = s.adapter.StopScan()
	}()

	err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		sink(convert(result))
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("scanning: %w", err)
	}

	return nil
}

// convert maps a BLE scan result onto the decoder's advertisement type.
func convert(result bluetooth.ScanResult) otodata.Advertisement {
	adv := otodata.Advertisement{
		Address:   result.Address.String(),
		LocalName: result.LocalName(),
		RSSI:      result.RSSI,
	}

	if elements := result.ManufacturerData(); len(elements) > 0 {
		adv.ManufacturerData = make(map[uint16][]byte, len(elements))
		for _, e := range elements {
			adv.ManufacturerData[e.CompanyID] = e.Data
		}
	}

	return adv
}
