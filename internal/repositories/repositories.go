package repositories

import (
	"database/sql"
	"fmt"
)

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// nextActivitySequence bumps the activity_sequence counter inside tx and returns the new value.
//
// The counter only advances when tx commits, so a failed insert never leaves a gap.
func nextActivitySequence(tx *sql.Tx) (int, error) {
	if _, err := tx.Exec("UPDATE activity_sequence SET value = value + 1 WHERE id = 1"); err != nil {
		return 0, fmt.Errorf("failed to increment activity sequence: %w", err)
	}

	var sequence int
	if err := tx.QueryRow("SELECT value FROM activity_sequence WHERE id = 1").Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to read activity sequence: %w", err)
	}
	return sequence, nil
}
