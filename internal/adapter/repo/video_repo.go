package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/sqlinline"
)

// VideoRepositoryPG implements domain.VideoRepository.
type VideoRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewVideoRepository(sql infra.SQLExecutor) *VideoRepositoryPG {
	return &VideoRepositoryPG{sql: sql}
}

func (r *VideoRepositoryPG) Save(ctx context.Context, v *domain.VideoArtifact) (string, error) {
	ensureID(&v.ID)
	row := r.sql.QueryRow(ctx, sqlinline.QInsertVideo,
		v.ID, v.UserID, v.JobID, v.Prompt, v.URL, v.Delivery, v.AspectRatio, v.Resolution,
	)
	if err := row.Scan(&v.CreatedAt); err != nil {
		return "", err
	}
	return v.ID, nil
}

func (r *VideoRepositoryPG) List(ctx context.Context, userID string) ([]domain.VideoArtifact, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListVideosByUser, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (domain.VideoArtifact, error) {
		var v domain.VideoArtifact
		err := row.Scan(&v.ID, &v.UserID, &v.JobID, &v.Prompt, &v.URL, &v.Delivery, &v.AspectRatio, &v.Resolution, &v.CreatedAt)
		return v, err
	})
}

var _ domain.VideoRepository = (*VideoRepositoryPG)(nil)
