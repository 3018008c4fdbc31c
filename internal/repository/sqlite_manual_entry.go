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

const manualEntryColumns = `id, user_id, task_id, occurred_at, minutes, focus_rating, note, created_at`

// SQLiteManualEntryRepo implements ManualEntryRepo using a SQLite database.
type SQLiteManualEntryRepo struct {
	db db.DBTX
}

// NewSQLiteManualEntryRepo creates a new SQLiteManualEntryRepo.
func NewSQLiteManualEntryRepo(conn db.DBTX) *SQLiteManualEntryRepo {
	return &SQLiteManualEntryRepo{db: conn}
}

func (r *SQLiteManualEntryRepo) Create(ctx context.Context, e *domain.ManualEntry) error {
	query := `INSERT INTO manual_entries (` + manualEntryColumns + `, occurred_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.TaskID,
		nullableTimeToString(e.OccurredAt, time.RFC3339),
		e.Minutes,
		e.FocusRating,
		e.Note,
		e.CreatedAt.UTC().Format(time.RFC3339),
		occurredOn(e.OccurredAt),
	)
	if err != nil {
		return fmt.Errorf("inserting manual entry: %w", err)
	}
	return nil
}

func (r *SQLiteManualEntryRepo) GetByID(ctx context.Context, id string) (*domain.ManualEntry, error) {
	query := `SELECT ` + manualEntryColumns + ` FROM manual_entries WHERE id = ?`
	e, err := r.scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("manual entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning manual entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteManualEntryRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.ManualEntry, error) {
	query := `SELECT ` + manualEntryColumns + ` FROM manual_entries
		WHERE user_id = ? AND occurred_on BETWEEN ? AND ?
		ORDER BY occurred_on, occurred_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing manual entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ManualEntry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning manual entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manual entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteManualEntryRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "manual_entries", "manual entry", id)
}

func (r *SQLiteManualEntryRepo) scanEntry(sc scanner) (*domain.ManualEntry, error) {
	var e domain.ManualEntry
	var occurredAt sql.NullString
	var createdAtStr string

	err := sc.Scan(
		&e.ID, &e.UserID, &e.TaskID, &occurredAt, &e.Minutes, &e.FocusRating, &e.Note, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}
	e.OccurredAt = parseNullableTime(occurredAt, time.RFC3339)
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
