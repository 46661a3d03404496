package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación de PlanRepository (usable con pool o tx).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, name, tier, price, stripe_price_id, duration_months, max_properties, max_units, description, is_active, created_at, updated_at`

// Create persiste un plan nuevo.
func (r *PlanRepo) Create(plan *entity.SubscriptionPlan) error {
	query := `
		INSERT INTO subscription_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Tier, plan.Price, nullIfEmpty(plan.StripePriceID),
		plan.DurationMonths, plan.MaxProperties, plan.MaxUnits, plan.Description,
		plan.IsActive, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(id string) (*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	return scanPlan(r.q.QueryRow(context.Background(), query, id))
}

// ListActive lista los planes contratables ordenados por precio.
func (r *PlanRepo) ListActive() ([]*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE is_active ORDER BY price`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubscriptionPlan
	for rows.Next() {
		p, err := scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update persiste los campos mutables del plan.
func (r *PlanRepo) Update(plan *entity.SubscriptionPlan) error {
	query := `
		UPDATE subscription_plans
		SET name = $2, price = $3, stripe_price_id = $4, max_properties = $5,
		    max_units = $6, description = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Price, nullIfEmpty(plan.StripePriceID),
		plan.MaxProperties, plan.MaxUnits, plan.Description, plan.IsActive, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

// Deactivate apaga el plan sin eliminarlo.
func (r *PlanRepo) Deactivate(id string) error {
	query := `UPDATE subscription_plans SET is_active = false, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("deactivate plan: %w", err)
	}
	return nil
}

// HasSubscriptions indica si alguna suscripción referencia el plan.
func (r *PlanRepo) HasSubscriptions(planID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM owner_subscriptions WHERE plan_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, planID).Scan(&exists); err != nil {
		return false, fmt.Errorf("plan has subscriptions: %w", err)
	}
	return exists, nil
}

func scanPlan(row pgx.Row) (*entity.SubscriptionPlan, error) {
	var p entity.SubscriptionPlan
	var stripePriceID *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Tier, &p.Price, &stripePriceID, &p.DurationMonths,
		&p.MaxProperties, &p.MaxUnits, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if stripePriceID != nil {
		p.StripePriceID = *stripePriceID
	}
	return &p, nil
}

func scanPlanRow(rows pgx.Rows) (*entity.SubscriptionPlan, error) {
	var p entity.SubscriptionPlan
	var stripePriceID *string
	err := rows.Scan(
		&p.ID, &p.Name, &p.Tier, &p.Price, &stripePriceID, &p.DurationMonths,
		&p.MaxProperties, &p.MaxUnits, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan plan: %w", err)
	}
	if stripePriceID != nil {
		p.StripePriceID = *stripePriceID
	}
	return &p, nil
}
