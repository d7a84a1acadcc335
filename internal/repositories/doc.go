// Package repositories implements SQLite persistence for the session activity journal.
//
// Key Implementations:
//   - [ActivityRepository] : append-only log of collection changes, queried by kind, song, or session
//   - [SessionRepository] : one row per application run, closed when the TUI exits
//
// Activity sequence numbers provide stable ordering independent of UUIDs and creation timestamps.
// They come from the single-row activity_sequence table and advance in the same transaction as the insert.
package repositories
