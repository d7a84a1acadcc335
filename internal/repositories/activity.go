package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
)

// ActivityRepository implements models.Repository[*models.Activity] for the session journal.
//
// Entries are append only. Listing orders by sequence so ties in created_at stay deterministic.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new ActivityRepository with the given database connection
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new [models.Activity] with generated ID and sequence.
// The sequence and the row are written in one transaction.
func (r *ActivityRepository) Create(activity *models.Activity) error {
	id := shared.GenerateID()
	activity.SetID(id)
	if err := activity.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := nextActivitySequence(tx)
	if err != nil {
		return err
	}
	activity.SetSequence(sequence)

	query := `
		INSERT INTO activity (id, sequence, kind, song_id, title, artist, detail, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query,
		id,
		sequence,
		activity.Kind(),
		activity.SongID(),
		activity.Title(),
		activity.Artist(),
		activity.Detail(),
		activity.SessionID(),
		activity.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activity: %w", err)
	}
	return nil
}

// Get retrieves an activity entry by ID
func (r *ActivityRepository) Get(id string) (*models.Activity, error) {
	query := `
		SELECT id, sequence, kind, song_id, title, artist, detail, session_id, created_at
		FROM activity
		WHERE id = ?
	`

	activity, err := scanActivity(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity not found: %s", id)
	}
	return activity, err
}

// List retrieves activity entries matching the given criteria in sequence order.
//
// Supported criteria: "kind", "song_id", "session_id" (string) and "limit" (int, newest entries).
func (r *ActivityRepository) List(criteria map[string]any) ([]*models.Activity, error) {
	query := `
		SELECT id, sequence, kind, song_id, title, artist, detail, session_id, created_at
		FROM activity
		WHERE 1 = 1
	`

	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	if songID, ok := criteria["song_id"].(string); ok && songID != "" {
		query += " AND song_id = ?"
		args = append(args, songID)
	}

	if sessionID, ok := criteria["session_id"].(string); ok && sessionID != "" {
		query += " AND session_id = ?"
		args = append(args, sessionID)
	}

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query = "SELECT * FROM (" + query + " ORDER BY sequence DESC LIMIT ?) ORDER BY sequence ASC"
		args = append(args, limit)
	} else {
		query += " ORDER BY sequence ASC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []*models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// CountByKind returns the number of entries per kind.
func (r *ActivityRepository) CountByKind() (map[string]int, error) {
	rows, err := r.db.Query("SELECT kind, COUNT(*) FROM activity GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan activity count: %w", err)
		}
		counts[kind] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// scanActivity scans a single row into a [models.Activity]. A missing row returns [sql.ErrNoRows] unwrapped.
func scanActivity(row scanner) (*models.Activity, error) {
	var (
		id        string
		sequence  int
		kind      string
		songID    string
		title     string
		artist    string
		detail    string
		sessionID string
		createdAt time.Time
	)

	err := row.Scan(&id, &sequence, &kind, &songID, &title, &artist, &detail, &sessionID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}

	activity := models.NewActivity(sequence, kind, songID, title, artist, detail)
	activity.SetID(id)
	activity.SetSessionID(sessionID)
	activity.SetCreatedAt(createdAt)

	return activity, nil
}
