package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

const mysqlErrDuplicateEntry = 1062

const timeLogColumns = `
id, user_id, task_id, subtask_id, started_at, ended_at, duration_minutes, note, created_at`

const getEntryQuery = `
SELECT ` + timeLogColumns + `
FROM time_log_entries
WHERE id = ?`

const findOpenEntryQuery = `
SELECT ` + timeLogColumns + `
FROM time_log_entries
WHERE user_id = ? AND task_id = ? AND subtask_id <=> ? AND ended_at IS NULL`

const findOpenTaskEntryQuery = `
SELECT ` + timeLogColumns + `
FROM time_log_entries
WHERE user_id = ? AND subtask_id IS NULL AND ended_at IS NULL`

const listOpenSubtaskEntriesQuery = `
SELECT ` + timeLogColumns + `
FROM time_log_entries
WHERE user_id = ? AND task_id = ? AND subtask_id IS NOT NULL AND ended_at IS NULL
ORDER BY id`

const listOpenByUserQuery = `
SELECT ` + timeLogColumns + `
FROM time_log_entries
WHERE user_id = ? AND ended_at IS NULL
ORDER BY started_at`

const insertEntryQuery = `
INSERT INTO time_log_entries (user_id, task_id, subtask_id, started_at, duration_minutes)
VALUES (?, ?, ?, ?, 0)`

const sealEntryQuery = `
UPDATE time_log_entries
SET ended_at = ?, duration_minutes = ?, note = COALESCE(?, note)
WHERE id = ? AND ended_at IS NULL`

const sumSealedByTaskQuery = `
SELECT COALESCE(SUM(duration_minutes), 0) AS total_minutes, COUNT(*) AS session_count
FROM time_log_entries
WHERE task_id = ? AND ended_at IS NOT NULL`

const sumSealedBySubtaskQuery = `
SELECT COALESCE(SUM(duration_minutes), 0) AS total_minutes, COUNT(*) AS session_count
FROM time_log_entries
WHERE subtask_id = ? AND ended_at IS NOT NULL`

type TimeLogRepository struct {
	db *sqlx.DB
}

type timeLogRow struct {
	ID              uint64         `db:"id"`
	UserID          uint64         `db:"user_id"`
	TaskID          uint64         `db:"task_id"`
	SubtaskID       sql.NullInt64  `db:"subtask_id"`
	StartedAt       time.Time      `db:"started_at"`
	EndedAt         sql.NullTime   `db:"ended_at"`
	DurationMinutes int            `db:"duration_minutes"`
	Note            sql.NullString `db:"note"`
	CreatedAt       time.Time      `db:"created_at"`
}

var _ ports.TimeLogRepository = (*TimeLogRepository)(nil)

func NewTimeLogRepository(db *sqlx.DB) *TimeLogRepository {
	return &TimeLogRepository{db: db}
}

func (r *TimeLogRepository) InsertEntry(ctx context.Context, entry domain.TimeLogEntry) (domain.TimeLogEntry, error) {
	var subtaskID interface{}
	if entry.SubtaskID != nil {
		subtaskID = *entry.SubtaskID
	}

	result, err := ext(ctx, r.db).ExecContext(ctx, insertEntryQuery,
		entry.UserID, entry.TaskID, subtaskID, entry.StartedAt)
	if err != nil {
		// The unique indexes on open entries are the backstop for start
		// calls racing past the application-level checks.
		return domain.TimeLogEntry{}, r.mapDuplicateKey(ctx, err, entry)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.TimeLogEntry{}, err
	}
	entry.ID = uint64(id)
	return entry, nil
}

// mapDuplicateKey turns a duplicate-key violation on the open-entry
// indexes into the session-conflict error the losing caller would have
// received from the fast-path check.
func (r *TimeLogRepository) mapDuplicateKey(ctx context.Context, err error, entry domain.TimeLogEntry) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlErrDuplicateEntry {
		return err
	}

	if entry.SubtaskID != nil {
		return domain.ErrDuplicateSession
	}

	open, findErr := r.FindOpenTaskEntry(ctx, entry.UserID)
	if findErr != nil || open == nil {
		return domain.ErrDuplicateSession
	}
	if open.TaskID == entry.TaskID {
		return domain.ErrDuplicateSession
	}
	return domain.ConflictingSessionError{TaskID: open.TaskID}
}

func (r *TimeLogRepository) GetEntryForUpdate(ctx context.Context, id uint64) (domain.TimeLogEntry, error) {
	query := getEntryQuery
	if inTx(ctx) {
		query += " FOR UPDATE"
	}

	var row timeLogRow
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TimeLogEntry{}, domain.ErrEntryNotFound
		}
		return domain.TimeLogEntry{}, err
	}
	return mapTimeLogRow(row), nil
}

func (r *TimeLogRepository) FindOpenEntry(ctx context.Context, userID, taskID uint64, subtaskID *uint64) (*domain.TimeLogEntry, error) {
	query := findOpenEntryQuery
	if inTx(ctx) {
		query += " FOR UPDATE"
	}

	var scope interface{}
	if subtaskID != nil {
		scope = *subtaskID
	}

	return r.findOne(ctx, query, userID, taskID, scope)
}

func (r *TimeLogRepository) FindOpenTaskEntry(ctx context.Context, userID uint64) (*domain.TimeLogEntry, error) {
	query := findOpenTaskEntryQuery
	if inTx(ctx) {
		query += " FOR UPDATE"
	}
	return r.findOne(ctx, query, userID)
}

func (r *TimeLogRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.TimeLogEntry, error) {
	var row timeLogRow
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	entry := mapTimeLogRow(row)
	return &entry, nil
}

func (r *TimeLogRepository) ListOpenSubtaskEntries(ctx context.Context, userID, taskID uint64) ([]domain.TimeLogEntry, error) {
	query := listOpenSubtaskEntriesQuery
	if inTx(ctx) {
		query += " FOR UPDATE"
	}
	return r.list(ctx, query, userID, taskID)
}

func (r *TimeLogRepository) ListOpenEntriesByUser(ctx context.Context, userID uint64) ([]domain.TimeLogEntry, error) {
	return r.list(ctx, listOpenByUserQuery, userID)
}

func (r *TimeLogRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.TimeLogEntry, error) {
	var rows []timeLogRow
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, err
	}

	entries := make([]domain.TimeLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapTimeLogRow(row))
	}
	return entries, nil
}

func (r *TimeLogRepository) SealEntry(ctx context.Context, id uint64, endedAt time.Time, durationMinutes int, note *string) error {
	var noteValue interface{}
	if note != nil {
		noteValue = *note
	}

	result, err := ext(ctx, r.db).ExecContext(ctx, sealEntryQuery, endedAt, durationMinutes, noteValue, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSessionAlreadyStopped
	}
	return nil
}

func (r *TimeLogRepository) SumSealedByTask(ctx context.Context, taskID uint64) (domain.HoursSummary, error) {
	return r.sum(ctx, sumSealedByTaskQuery, taskID)
}

func (r *TimeLogRepository) SumSealedBySubtask(ctx context.Context, subtaskID uint64) (domain.HoursSummary, error) {
	return r.sum(ctx, sumSealedBySubtaskQuery, subtaskID)
}

func (r *TimeLogRepository) sum(ctx context.Context, query string, id uint64) (domain.HoursSummary, error) {
	var row struct {
		TotalMinutes int `db:"total_minutes"`
		SessionCount int `db:"session_count"`
	}
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, id); err != nil {
		return domain.HoursSummary{}, err
	}
	return domain.HoursSummary{TotalMinutes: row.TotalMinutes, SessionCount: row.SessionCount}, nil
}

func mapTimeLogRow(row timeLogRow) domain.TimeLogEntry {
	entry := domain.TimeLogEntry{
		ID:              row.ID,
		UserID:          row.UserID,
		TaskID:          row.TaskID,
		StartedAt:       row.StartedAt,
		DurationMinutes: row.DurationMinutes,
		CreatedAt:       row.CreatedAt,
	}

	if row.SubtaskID.Valid {
		value := uint64(row.SubtaskID.Int64)
		entry.SubtaskID = &value
	}

	if row.EndedAt.Valid {
		value := row.EndedAt.Time
		entry.EndedAt = &value
	}

	if row.Note.Valid {
		value := row.Note.String
		entry.Note = &value
	}

	return entry
}
