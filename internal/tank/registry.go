package tank

import "sync"

// Registry maps hardware addresses to tank serial numbers. It is the
// single source of truth for "is this address a known tank".
//
// Entries are created on the first identity decode for an address and kept
// for the life of the process; the address space is small (tanks within
// radio range) and stable, so there is no eviction.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Registry struct {
	mu      sync.RWMutex
	serials map[string]string // address -> serial
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		serials: make(map[string]string),
	}
}

// Record associates an address with a serial. The upsert is idempotent and
// last-write-wins: if the same address later decodes to a different serial
// (the two advertisement framings are not cross-validated), the newer value
// replaces the older one without a conflict signal.
func (r *Registry) Record(address, serial string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serials[address] = serial
}

// Lookup returns the serial recorded for an address, if any.
func (r *Registry) Lookup(address string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	serial, ok := r.serials[address]
	return serial, ok
}

// Len returns the number of known tank addresses.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.serials)
}
