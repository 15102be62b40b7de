package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

const insertReviewQuery = `
INSERT INTO reviews (task_id, reviewer_id, decision, notes, created_at)
VALUES (?, ?, ?, ?, ?)`

const listReviewsQuery = `
SELECT id, task_id, reviewer_id, decision, notes, created_at
FROM reviews
WHERE task_id = ?
ORDER BY id`

type ReviewRepository struct {
	db *sqlx.DB
}

type reviewRow struct {
	ID         uint64         `db:"id"`
	TaskID     uint64         `db:"task_id"`
	ReviewerID uint64         `db:"reviewer_id"`
	Decision   string         `db:"decision"`
	Notes      sql.NullString `db:"notes"`
	CreatedAt  time.Time      `db:"created_at"`
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) InsertReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	var notes interface{}
	if review.Notes != nil {
		notes = *review.Notes
	}

	result, err := ext(ctx, r.db).ExecContext(ctx, insertReviewQuery,
		review.TaskID, review.ReviewerID, string(review.Decision), notes, review.CreatedAt)
	if err != nil {
		return domain.Review{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	review.ID = uint64(id)
	return review, nil
}

func (r *ReviewRepository) ListReviews(ctx context.Context, taskID uint64) ([]domain.Review, error) {
	var rows []reviewRow
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, listReviewsQuery, taskID); err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		review := domain.Review{
			ID:         row.ID,
			TaskID:     row.TaskID,
			ReviewerID: row.ReviewerID,
			Decision:   domain.ReviewDecision(row.Decision),
			CreatedAt:  row.CreatedAt,
		}
		if row.Notes.Valid {
			value := row.Notes.String
			review.Notes = &value
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}
