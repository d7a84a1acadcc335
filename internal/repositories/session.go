package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
)

// SessionRepository implements models.Repository[*models.PracticeSession].
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session with a generated ID
func (r *SessionRepository) Create(session *models.PracticeSession) error {
	session.SetID(shared.GenerateID())

	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.db.Exec(
		"INSERT INTO practice_sessions (id, started_at, ended_at) VALUES (?, ?, ?)",
		session.ID(), session.CreatedAt(), nullTime(session.EndedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(id string) (*models.PracticeSession, error) {
	row := r.db.QueryRow("SELECT id, started_at, ended_at FROM practice_sessions WHERE id = ?", id)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return session, err
}

// List retrieves sessions ordered by start time. Set "open" to true to only return sessions not yet ended.
func (r *SessionRepository) List(criteria map[string]any) ([]*models.PracticeSession, error) {
	query := "SELECT id, started_at, ended_at FROM practice_sessions"
	if open, ok := criteria["open"].(bool); ok && open {
		query += " WHERE ended_at IS NULL"
	}
	query += " ORDER BY started_at ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.PracticeSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return sessions, nil
}

// End marks the session as finished at t.
func (r *SessionRepository) End(id string, t time.Time) error {
	result, err := r.db.Exec("UPDATE practice_sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL", t, id)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already ended: %s", id)
	}
	return nil
}

func scanSession(row scanner) (*models.PracticeSession, error) {
	var (
		id        string
		startedAt time.Time
		endedAt   sql.NullTime
	)

	err := row.Scan(&id, &startedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	session := &models.PracticeSession{}
	session.SetID(id)
	session.SetStartedAt(startedAt)
	if endedAt.Valid {
		session.SetEndedAt(&endedAt.Time)
	}
	return session, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
