package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/sqlinline"
)

// BrandKitRepositoryPG implements domain.BrandKitRepository.
type BrandKitRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewBrandKitRepository(sql infra.SQLExecutor) *BrandKitRepositoryPG {
	return &BrandKitRepositoryPG{sql: sql}
}

func (r *BrandKitRepositoryPG) Save(ctx context.Context, kit *domain.BrandKit) (string, error) {
	ensureID(&kit.ID)
	row := r.sql.QueryRow(ctx, sqlinline.QInsertBrandKit,
		kit.ID,
		kit.UserID,
		kit.Name,
		kit.LogoURL,
		kit.PrimaryColor,
		kit.SecondaryColor,
		nonNil(kit.AdditionalColors),
		kit.FontFamily,
		kit.ToneOfVoice,
		kit.Industry,
		kit.Language,
	)
	if err := row.Scan(&kit.CreatedAt); err != nil {
		return "", err
	}
	return kit.ID, nil
}

func (r *BrandKitRepositoryPG) Update(ctx context.Context, kit *domain.BrandKit) error {
	return execAffecting(ctx, r.sql, sqlinline.QUpdateBrandKit,
		kit.ID,
		kit.Name,
		kit.LogoURL,
		kit.PrimaryColor,
		kit.SecondaryColor,
		nonNil(kit.AdditionalColors),
		kit.FontFamily,
		kit.ToneOfVoice,
		kit.Industry,
		kit.Language,
	)
}

func (r *BrandKitRepositoryPG) GetByID(ctx context.Context, id string) (*domain.BrandKit, error) {
	kit, err := scanBrandKit(r.sql.QueryRow(ctx, sqlinline.QSelectBrandKitByID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &kit, nil
}

func (r *BrandKitRepositoryPG) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.sql, sqlinline.QDeleteBrandKit, id)
}

func (r *BrandKitRepositoryPG) List(ctx context.Context, filter domain.BrandKitFilter) ([]domain.BrandKit, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListBrandKitsByUser, filter.UserID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBrandKit)
}

func scanBrandKit(row pgx.Row) (domain.BrandKit, error) {
	var k domain.BrandKit
	err := row.Scan(&k.ID, &k.UserID, &k.Name, &k.LogoURL, &k.PrimaryColor, &k.SecondaryColor,
		&k.AdditionalColors, &k.FontFamily, &k.ToneOfVoice, &k.Industry, &k.Language, &k.CreatedAt)
	return k, err
}

var _ domain.BrandKitRepository = (*BrandKitRepositoryPG)(nil)
