package tank

import "sync"

// Tracker records which tank serials have already been announced to the
// downstream automation platform, enforcing at-most-once announcement.
//
// Identity advertisements repeat continuously, so the same serial is
// decoded many times per minute; the tracker collapses that stream into a
// single discovery announcement per serial for the life of the process.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Tracker struct {
	mu        sync.Mutex
	announced map[string]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		announced: make(map[string]struct{}),
	}
}

// ShouldAnnounce reports whether a discovery announcement should be sent
// for the serial, atomically marking it announced on the first call.
// Returns true exactly once per serial; false on every subsequent call.
func (t *Tracker) ShouldAnnounce(serial string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, seen := t.announced[serial]; seen {
		return false
	}
	t.announced[serial] = struct{}{}
	return true
}

// Len returns the number of serials announced so far.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.announced)
}
