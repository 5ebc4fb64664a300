// Package database provides the SQLite connection backing the bridge's
// optional sighting journal.
//
// The journal is append-only diagnostics, so the setup is deliberately
// small: one file, WAL mode for safe concurrent reads by external tools
// (sqlite3 CLI, Grafana's SQLite datasource), a busy timeout, and 0600
// permissions. Schema creation lives with the journal repository.
package database
