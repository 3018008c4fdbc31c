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

const scheduleColumns = `id, user_id, task_id, title, week_start, day_of_week, start_hour, duration_hours, created_at`

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
// week_start is stored as a bare date so lookups match regardless of the
// zone the caller computed the week in.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

func (r *SQLiteScheduleRepo) Create(ctx context.Context, b *domain.ScheduleBlock) error {
	query := `INSERT INTO schedule_blocks (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.UserID,
		nullableString(b.TaskID),
		b.Title,
		b.WeekStart.Format(domain.DateLayout),
		int(b.DayOfWeek),
		b.StartHour,
		b.DurationHours,
		b.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule block: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleBlock, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_blocks WHERE id = ?`
	b, err := r.scanBlock(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule block: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule block: %w", err)
	}
	return b, nil
}

func (r *SQLiteScheduleRepo) ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.ScheduleBlock, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_blocks
		WHERE user_id = ? AND week_start = ?
		ORDER BY day_of_week, start_hour, id`
	rows, err := r.db.QueryContext(ctx, query, userID, weekStart.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing schedule blocks by week: %w", err)
	}
	defer rows.Close()
	return r.scanBlocks(rows)
}

func (r *SQLiteScheduleRepo) ListByDay(ctx context.Context, userID string, weekStart time.Time, day domain.DayIndex) ([]*domain.ScheduleBlock, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_blocks
		WHERE user_id = ? AND week_start = ? AND day_of_week = ?
		ORDER BY start_hour, id`
	rows, err := r.db.QueryContext(ctx, query, userID, weekStart.Format(domain.DateLayout), int(day))
	if err != nil {
		return nil, fmt.Errorf("listing schedule blocks by day: %w", err)
	}
	defer rows.Close()
	return r.scanBlocks(rows)
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "schedule_blocks", "schedule block", id)
}

func (r *SQLiteScheduleRepo) scanBlocks(rows *sql.Rows) ([]*domain.ScheduleBlock, error) {
	var blocks []*domain.ScheduleBlock
	for rows.Next() {
		b, err := r.scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule block row: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteScheduleRepo) scanBlock(s scanner) (*domain.ScheduleBlock, error) {
	var b domain.ScheduleBlock
	var taskID sql.NullString
	var weekStartStr, createdAtStr string
	var day int

	err := s.Scan(
		&b.ID, &b.UserID, &taskID, &b.Title, &weekStartStr, &day, &b.StartHour, &b.DurationHours, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}
	b.TaskID = taskID.String
	b.DayOfWeek = domain.DayIndex(day)

	b.WeekStart, err = time.Parse(domain.DateLayout, weekStartStr)
	if err != nil {
		return nil, fmt.Errorf("parsing week_start: %w", err)
	}
	b.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &b, nil
}
