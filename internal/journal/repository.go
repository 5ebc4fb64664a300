// Package journal appends tank sightings and discovery announcements to
// SQLite for after-the-fact diagnostics.
//
// The journal is write-only from the bridge's point of view: it is never
// read back to seed the registry or the discovery tracker, so deleting the
// file between runs changes nothing about bridge behaviour. What it buys
// is an audit trail — when a tank was first seen, which addresses mapped
// to which serials over time, and whether the two advertisement framings
// ever disagreed on a serial for the same address.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types recorded in the journal.
const (
	// EventIdentity is an identity decode (address↔serial sighting).
	EventIdentity = "identity"

	// EventDiscovery is a first-sight discovery announcement.
	EventDiscovery = "discovery"
)

// Entry is one journal row.
type Entry struct {
	ID        string
	Event     string // identity | discovery
	Serial    string
	Address   string
	CreatedAt time.Time
}

// Repository appends journal entries to SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a journal repository on an open database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init creates the journal schema if it does not exist.
// Safe to call on every startup.
func (r *Repository) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sightings (
			id         TEXT PRIMARY KEY,
			event      TEXT NOT NULL,
			serial     TEXT NOT NULL,
			address    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sightings_serial ON sightings(serial);
		CREATE INDEX IF NOT EXISTS idx_sightings_event ON sightings(event);
	`)
	if err != nil {
		return fmt.Errorf("creating journal schema: %w", err)
	}
	return nil
}

// Record appends one entry. The ID and CreatedAt are generated if empty.
func (r *Repository) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = "sgt-" + uuid.NewString()[:8]
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sightings (id, event, serial, address, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Event, entry.Serial, entry.Address,
		entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// RecordIdentity appends an identity sighting.
func (r *Repository) RecordIdentity(ctx context.Context, serial, address string) error {
	return r.Record(ctx, &Entry{Event: EventIdentity, Serial: serial, Address: address})
}

// RecordDiscovery appends a discovery announcement.
func (r *Repository) RecordDiscovery(ctx context.Context, serial, address string) error {
	return r.Record(ctx, &Entry{Event: EventDiscovery, Serial: serial, Address: address})
}

// CountByEvent returns the number of entries for an event type.
// Used by tests and ad-hoc diagnostics.
func (r *Repository) CountByEvent(ctx context.Context, event string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sightings WHERE event = ?`, event).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting journal entries: %w", err)
	}
	return n, nil
}
