package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// Save inserts the user or, when the id already exists, refreshes name and
// email only. Role, plan and subscription stay under admin control and are
// read back into user.
func (r *UserRepositoryPG) Save(ctx context.Context, user *domain.User) (string, error) {
	ensureID(&user.ID)
	if user.Role == "" {
		user.Role = domain.UserRoleUser
	}
	if user.SubscriptionStatus == "" {
		user.SubscriptionStatus = domain.SubscriptionInactive
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertUser,
		user.ID, user.Name, user.Email, user.Role, user.PlanID, user.SubscriptionStatus,
	)
	if err := row.Scan(&user.Role, &user.PlanID, &user.SubscriptionStatus, &user.CreatedAt); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (r *UserRepositoryPG) Update(ctx context.Context, user *domain.User) error {
	return execAffecting(ctx, r.sql, sqlinline.QUpdateUser,
		user.ID, user.Name, user.Email, user.Role, user.PlanID, user.SubscriptionStatus,
	)
}

func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepositoryPG) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.sql, sqlinline.QDeleteUser, id)
}

func (r *UserRepositoryPG) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListUsers, string(filter.Status))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PlanID, &u.SubscriptionStatus, &u.CreatedAt)
	return u, err
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
