package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"markova/internal/domain"
	"markova/internal/domain/jsoncfg"
	"markova/internal/infra"
	"markova/internal/sqlinline"
)

// StrategyRepositoryPG implements domain.StrategyRepository. Each plan section
// is stored as its own JSONB column.
type StrategyRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewStrategyRepository(sql infra.SQLExecutor) *StrategyRepositoryPG {
	return &StrategyRepositoryPG{sql: sql}
}

func (r *StrategyRepositoryPG) Save(ctx context.Context, plan *domain.StrategicPlan) (string, error) {
	ensureID(&plan.ID)
	row := r.sql.QueryRow(ctx, sqlinline.QInsertStrategicPlan,
		plan.ID,
		plan.UserID,
		plan.BrandID,
		plan.Title,
		jsoncfg.MustMarshal(plan.SWOT),
		jsoncfg.MustMarshal(plan.Competitors),
		jsoncfg.MustMarshal(plan.AudiencePersonas),
		jsoncfg.MustMarshal(plan.Roadmap),
	)
	if err := row.Scan(&plan.CreatedAt); err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (r *StrategyRepositoryPG) GetByID(ctx context.Context, id string) (*domain.StrategicPlan, error) {
	p, err := scanStrategicPlan(r.sql.QueryRow(ctx, sqlinline.QSelectStrategicPlanByID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *StrategyRepositoryPG) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.sql, sqlinline.QDeleteStrategicPlan, id)
}

func (r *StrategyRepositoryPG) List(ctx context.Context, userID string) ([]domain.StrategicPlan, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListStrategicPlansByUser, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanStrategicPlan)
}

func scanStrategicPlan(row pgx.Row) (domain.StrategicPlan, error) {
	var (
		p                                  domain.StrategicPlan
		swot, competitors, personas, steps []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.BrandID, &p.Title, &swot, &competitors, &personas, &steps, &p.CreatedAt); err != nil {
		return p, err
	}
	for _, part := range []struct {
		raw []byte
		dst any
	}{
		{swot, &p.SWOT},
		{competitors, &p.Competitors},
		{personas, &p.AudiencePersonas},
		{steps, &p.Roadmap},
	} {
		if err := jsoncfg.Unmarshal(part.raw, part.dst); err != nil {
			return p, err
		}
	}
	return p, nil
}

var _ domain.StrategyRepository = (*StrategyRepositoryPG)(nil)
