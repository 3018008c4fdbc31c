package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyweek/internal/db"
	"github.com/alexanderramin/studyweek/internal/domain"
)

const focusSessionColumns = `id, user_id, block_id, occurred_at, actual_minutes, focus_rating, note, created_at`

// SQLiteFocusSessionRepo implements FocusSessionRepo using a SQLite database.
type SQLiteFocusSessionRepo struct {
	db db.DBTX
}

// NewSQLiteFocusSessionRepo creates a new SQLiteFocusSessionRepo.
func NewSQLiteFocusSessionRepo(conn db.DBTX) *SQLiteFocusSessionRepo {
	return &SQLiteFocusSessionRepo{db: conn}
}

func (r *SQLiteFocusSessionRepo) Create(ctx context.Context, s *domain.FocusSession) error {
	query := `INSERT INTO focus_sessions (` + focusSessionColumns + `, occurred_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.BlockID,
		nullableTimeToString(s.OccurredAt, time.RFC3339),
		s.ActualMinutes,
		s.FocusRating,
		s.Note,
		s.CreatedAt.UTC().Format(time.RFC3339),
		occurredOn(s.OccurredAt),
	)
	if err != nil {
		return fmt.Errorf("inserting focus session: %w", err)
	}
	return nil
}

func (r *SQLiteFocusSessionRepo) GetByID(ctx context.Context, id string) (*domain.FocusSession, error) {
	query := `SELECT ` + focusSessionColumns + ` FROM focus_sessions WHERE id = ?`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("focus session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning focus session: %w", err)
	}
	return s, nil
}

func (r *SQLiteFocusSessionRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.FocusSession, error) {
	query := `SELECT ` + focusSessionColumns + ` FROM focus_sessions
		WHERE user_id = ? AND occurred_on BETWEEN ? AND ?
		ORDER BY occurred_on, occurred_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.FocusSession
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning focus session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating focus sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteFocusSessionRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "focus_sessions", "focus session", id)
}

// scanSession tolerates a garbled occurred_at: it comes back as nil and the
// session stays out of the date-derived statistics.
func (r *SQLiteFocusSessionRepo) scanSession(sc scanner) (*domain.FocusSession, error) {
	var s domain.FocusSession
	var occurredAt sql.NullString
	var createdAtStr string

	err := sc.Scan(
		&s.ID, &s.UserID, &s.BlockID, &occurredAt, &s.ActualMinutes, &s.FocusRating, &s.Note, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}
	s.OccurredAt = parseNullableTime(occurredAt, time.RFC3339)
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}
