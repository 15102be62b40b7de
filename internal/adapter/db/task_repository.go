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

const getTaskQuery = `
SELECT id, board_id, title, status, priority, due_date, estimated_hours, actual_hours, created_at, updated_at
FROM tasks
WHERE id = ?`

const listTasksQuery = `
SELECT id, board_id, title, status, priority, due_date, estimated_hours, actual_hours, created_at, updated_at
FROM tasks
ORDER BY id`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID             uint64       `db:"id"`
	BoardID        uint64       `db:"board_id"`
	Title          string       `db:"title"`
	Status         string       `db:"status"`
	Priority       int          `db:"priority"`
	DueDate        sql.NullTime `db:"due_date"`
	EstimatedHours float64      `db:"estimated_hours"`
	ActualHours    float64      `db:"actual_hours"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return r.getTask(ctx, id, false)
}

func (r *TaskRepository) GetTaskForUpdate(ctx context.Context, id uint64) (domain.Task, error) {
	return r.getTask(ctx, id, inTx(ctx))
}

func (r *TaskRepository) getTask(ctx context.Context, id uint64, lock bool) (domain.Task, error) {
	query := getTaskQuery
	if lock {
		query += " FOR UPDATE"
	}

	var row taskRow
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRow(row), nil
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, listTasksQuery); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRow(row))
	}
	return tasks, nil
}

func (r *TaskRepository) UpdateTaskStatus(ctx context.Context, id uint64, status domain.TaskStatus) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, "UPDATE tasks SET status = ? WHERE id = ?", string(status), id)
	return err
}

func (r *TaskRepository) UpdateTaskActualHours(ctx context.Context, id uint64, hours float64) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, "UPDATE tasks SET actual_hours = ? WHERE id = ?", hours, id)
	return err
}

func mapTaskRow(row taskRow) domain.Task {
	task := domain.Task{
		ID:             row.ID,
		BoardID:        row.BoardID,
		Title:          row.Title,
		Status:         domain.TaskStatus(row.Status),
		Priority:       row.Priority,
		EstimatedHours: row.EstimatedHours,
		ActualHours:    row.ActualHours,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	return task
}
