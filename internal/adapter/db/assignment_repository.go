package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

const getAssignmentQuery = `
SELECT id, task_id, user_id, status, started_at, completed_at, created_at, updated_at
FROM assignments
WHERE task_id = ? AND user_id = ?`

const listAssignmentsQuery = `
SELECT id, task_id, user_id, status, started_at, completed_at, created_at, updated_at
FROM assignments
WHERE task_id = ?
ORDER BY id`

const markAssignmentStartedQuery = `
UPDATE assignments
SET status = 'in_progress', started_at = ?
WHERE id = ? AND started_at IS NULL`

const completeAssignmentQuery = `
UPDATE assignments
SET status = 'completed', completed_at = ?
WHERE id = ?`

const completeOpenAssignmentsQuery = `
UPDATE assignments
SET status = 'completed', completed_at = ?
WHERE task_id = ? AND status <> 'completed'`

type AssignmentRepository struct {
	db *sqlx.DB
}

type assignmentRow struct {
	ID          uint64       `db:"id"`
	TaskID      uint64       `db:"task_id"`
	UserID      uint64       `db:"user_id"`
	Status      string       `db:"status"`
	StartedAt   sql.NullTime `db:"started_at"`
	CompletedAt sql.NullTime `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

var _ ports.AssignmentRepository = (*AssignmentRepository)(nil)

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) GetAssignmentForUpdate(ctx context.Context, taskID, userID uint64) (*domain.Assignment, error) {
	query := getAssignmentQuery
	if inTx(ctx) {
		query += " FOR UPDATE"
	}

	var row assignmentRow
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, taskID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	assignment := mapAssignmentRow(row)
	return &assignment, nil
}

func (r *AssignmentRepository) ListAssignments(ctx context.Context, taskID uint64) ([]domain.Assignment, error) {
	var rows []assignmentRow
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, listAssignmentsQuery, taskID); err != nil {
		return nil, err
	}

	assignments := make([]domain.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, mapAssignmentRow(row))
	}
	return assignments, nil
}

func (r *AssignmentRepository) MarkAssignmentStarted(ctx context.Context, id uint64, at time.Time) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, markAssignmentStartedQuery, at, id)
	return err
}

func (r *AssignmentRepository) CompleteAssignment(ctx context.Context, id uint64, at time.Time) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, completeAssignmentQuery, at, id)
	return err
}

func (r *AssignmentRepository) CompleteOpenAssignments(ctx context.Context, taskID uint64, at time.Time) (int, error) {
	result, err := ext(ctx, r.db).ExecContext(ctx, completeOpenAssignmentsQuery, at, taskID)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func mapAssignmentRow(row assignmentRow) domain.Assignment {
	assignment := domain.Assignment{
		ID:        row.ID,
		TaskID:    row.TaskID,
		UserID:    row.UserID,
		Status:    domain.AssignmentStatus(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.StartedAt.Valid {
		value := row.StartedAt.Time
		assignment.StartedAt = &value
	}

	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		assignment.CompletedAt = &value
	}

	return assignment
}
