package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// Membership lives in tables owned by the surrounding application; this
// repository only reads them to answer capability checks.
const roleForTaskQuery = `
SELECT pm.role
FROM project_members pm
JOIN boards b ON b.project_id = pm.project_id
JOIN tasks t ON t.board_id = b.id
WHERE t.id = ? AND pm.user_id = ?`

type MembershipRepository struct {
	db *sqlx.DB
}

var _ ports.MembershipRepository = (*MembershipRepository)(nil)

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) RoleForTask(ctx context.Context, userID, taskID uint64) (domain.Role, error) {
	var role string
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &role, roleForTaskQuery, taskID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RoleNone, nil
		}
		return domain.RoleNone, err
	}
	return domain.Role(role), nil
}
