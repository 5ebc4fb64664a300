// Package tank holds the bridge's in-memory device state: the address-to-
// serial registry and the discovery announcement tracker.
//
// Both structures are process-lifetime only. Nothing here is persisted or
// restored across restarts — after a restart the tanks re-identify
// themselves within one broadcast cycle, and Home Assistant deduplicates
// repeated discovery configs by unique_id.
package tank
