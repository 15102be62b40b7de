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

const getSubtaskQuery = `
SELECT id, task_id, title, status, estimated_hours, actual_hours, created_at, updated_at
FROM subtasks
WHERE id = ?`

const listSubtasksQuery = `
SELECT id, task_id, title, status, estimated_hours, actual_hours, created_at, updated_at
FROM subtasks
WHERE task_id = ?
ORDER BY id`

const countSubtasksQuery = `
SELECT COUNT(*) AS total, COALESCE(SUM(status = 'done'), 0) AS done
FROM subtasks
WHERE task_id = ?`

type SubtaskRepository struct {
	db *sqlx.DB
}

type subtaskRow struct {
	ID             uint64    `db:"id"`
	TaskID         uint64    `db:"task_id"`
	Title          string    `db:"title"`
	Status         string    `db:"status"`
	EstimatedHours float64   `db:"estimated_hours"`
	ActualHours    float64   `db:"actual_hours"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

var _ ports.SubtaskRepository = (*SubtaskRepository)(nil)

func NewSubtaskRepository(db *sqlx.DB) *SubtaskRepository {
	return &SubtaskRepository{db: db}
}

func (r *SubtaskRepository) GetSubtask(ctx context.Context, id uint64) (domain.Subtask, error) {
	var row subtaskRow
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, getSubtaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Subtask{}, domain.ErrSubtaskNotFound
		}
		return domain.Subtask{}, err
	}
	return mapSubtaskRow(row), nil
}

func (r *SubtaskRepository) ListSubtasks(ctx context.Context, taskID uint64) ([]domain.Subtask, error) {
	var rows []subtaskRow
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, listSubtasksQuery, taskID); err != nil {
		return nil, err
	}

	subtasks := make([]domain.Subtask, 0, len(rows))
	for _, row := range rows {
		subtasks = append(subtasks, mapSubtaskRow(row))
	}
	return subtasks, nil
}

func (r *SubtaskRepository) CountSubtasks(ctx context.Context, taskID uint64) (int, int, error) {
	var counts struct {
		Total int `db:"total"`
		Done  int `db:"done"`
	}
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &counts, countSubtasksQuery, taskID); err != nil {
		return 0, 0, err
	}
	return counts.Total, counts.Done, nil
}

func (r *SubtaskRepository) UpdateSubtaskStatus(ctx context.Context, id uint64, status domain.SubtaskStatus) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, "UPDATE subtasks SET status = ? WHERE id = ?", string(status), id)
	return err
}

func (r *SubtaskRepository) UpdateSubtaskActualHours(ctx context.Context, id uint64, hours float64) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, "UPDATE subtasks SET actual_hours = ? WHERE id = ?", hours, id)
	return err
}

func mapSubtaskRow(row subtaskRow) domain.Subtask {
	return domain.Subtask{
		ID:             row.ID,
		TaskID:         row.TaskID,
		Title:          row.Title,
		Status:         domain.SubtaskStatus(row.Status),
		EstimatedHours: row.EstimatedHours,
		ActualHours:    row.ActualHours,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
