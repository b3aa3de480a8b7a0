package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"markova/internal/domain"
	"markova/internal/domain/jsoncfg"
	"markova/internal/infra"
	"markova/internal/sqlinline"
)

// PlanRepositoryPG implements domain.PlanRepository.
type PlanRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewPlanRepository(sql infra.SQLExecutor) *PlanRepositoryPG {
	return &PlanRepositoryPG{sql: sql}
}

func (r *PlanRepositoryPG) Save(ctx context.Context, plan *domain.Plan) (string, error) {
	ensureID(&plan.ID)
	row := r.sql.QueryRow(ctx, sqlinline.QInsertPlan,
		plan.ID, plan.Name, plan.PriceMonthly, plan.PriceYearly, plan.IsActive, jsoncfg.MustMarshal(plan.Features),
	)
	if err := row.Scan(&plan.CreatedAt); err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (r *PlanRepositoryPG) Update(ctx context.Context, plan *domain.Plan) error {
	return execAffecting(ctx, r.sql, sqlinline.QUpdatePlan,
		plan.ID, plan.Name, plan.PriceMonthly, plan.PriceYearly, plan.IsActive, jsoncfg.MustMarshal(plan.Features),
	)
}

func (r *PlanRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	p, err := scanPlan(r.sql.QueryRow(ctx, sqlinline.QSelectPlanByID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PlanRepositoryPG) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.sql, sqlinline.QDeletePlan, id)
}

func (r *PlanRepositoryPG) List(ctx context.Context, filter domain.PlanFilter) ([]domain.Plan, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPlans, filter.ActiveOnly)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlan)
}

func scanPlan(row pgx.Row) (domain.Plan, error) {
	var (
		p        domain.Plan
		features []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.PriceMonthly, &p.PriceYearly, &p.IsActive, &features, &p.CreatedAt); err != nil {
		return p, err
	}
	return p, jsoncfg.Unmarshal(features, &p.Features)
}

var _ domain.PlanRepository = (*PlanRepositoryPG)(nil)
