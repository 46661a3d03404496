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

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación de SubscriptionRepository (usable con pool o tx).
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subColumns = `id, owner_id, plan_id, status, start_date, end_date, payment_status,
	payment_amount, payment_date, cancelled_at, stripe_payment_intent_id,
	stripe_customer_id, stripe_subscription_id, auto_renew, created_at, updated_at`

// Create persiste una suscripción. El índice parcial único (owner_id where
// status=active) convierte una doble activa en ErrConflict.
func (r *SubscriptionRepo) Create(sub *entity.OwnerSubscription) error {
	query := `
		INSERT INTO owner_subscriptions (` + subColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.OwnerID, sub.PlanID, sub.Status, sub.StartDate, sub.EndDate,
		sub.PaymentStatus, sub.PaymentAmount, sub.PaymentDate, sub.CancelledAt,
		nullIfEmpty(sub.StripePaymentIntentID), nullIfEmpty(sub.StripeCustomerID),
		nullIfEmpty(sub.StripeSubscriptionID), sub.AutoRenew, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByID obtiene una suscripción por ID.
func (r *SubscriptionRepo) GetByID(id string) (*entity.OwnerSubscription, error) {
	query := `SELECT ` + subColumns + ` FROM owner_subscriptions WHERE id = $1`
	return scanSubscription(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveByOwner devuelve la suscripción activa y vigente del owner, o nil.
func (r *SubscriptionRepo) GetActiveByOwner(ownerID string) (*entity.OwnerSubscription, error) {
	query := `
		SELECT ` + subColumns + `
		FROM owner_subscriptions
		WHERE owner_id = $1 AND status = 'active' AND end_date > now()
		ORDER BY created_at DESC LIMIT 1`
	return scanSubscription(r.q.QueryRow(context.Background(), query, ownerID))
}

// GetActiveByOwnerForUpdate bloquea la fila con status='active' del owner
// dentro de la transacción de activación. A diferencia de GetActiveByOwner no
// filtra por end_date: una suscripción vencida que nadie marcó expired sigue
// ocupando el índice único de activa, y la activación tiene que encontrarla
// para cancelarla antes de crear la nueva. Solo tiene sentido dentro de una
// transacción.
func (r *SubscriptionRepo) GetActiveByOwnerForUpdate(ownerID string) (*entity.OwnerSubscription, error) {
	query := `
		SELECT ` + subColumns + `
		FROM owner_subscriptions
		WHERE owner_id = $1 AND status = 'active'
		ORDER BY created_at DESC LIMIT 1
		FOR UPDATE`
	return scanSubscription(r.q.QueryRow(context.Background(), query, ownerID))
}

// ListByOwner lista el historial de suscripciones del owner.
func (r *SubscriptionRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.OwnerSubscription, error) {
	query := `
		SELECT ` + subColumns + `
		FROM owner_subscriptions
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.OwnerSubscription
	for rows.Next() {
		s, err := scanSubscriptionRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update persiste los campos mutables de la suscripción.
func (r *SubscriptionRepo) Update(sub *entity.OwnerSubscription) error {
	query := `
		UPDATE owner_subscriptions
		SET status = $2, end_date = $3, payment_status = $4, payment_date = $5,
		    cancelled_at = $6, stripe_subscription_id = $7, auto_renew = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.Status, sub.EndDate, sub.PaymentStatus, sub.PaymentDate,
		sub.CancelledAt, nullIfEmpty(sub.StripeSubscriptionID), sub.AutoRenew, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

func scanSubscription(row pgx.Row) (*entity.OwnerSubscription, error) {
	s, err := scanSubInto(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

func scanSubscriptionRow(rows pgx.Rows) (*entity.OwnerSubscription, error) {
	s, err := scanSubInto(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return s, nil
}

func scanSubInto(scan func(dest ...any) error) (*entity.OwnerSubscription, error) {
	var s entity.OwnerSubscription
	var intentID, customerID, stripeSubID *string
	err := scan(
		&s.ID, &s.OwnerID, &s.PlanID, &s.Status, &s.StartDate, &s.EndDate,
		&s.PaymentStatus, &s.PaymentAmount, &s.PaymentDate, &s.CancelledAt,
		&intentID, &customerID, &stripeSubID, &s.AutoRenew, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if intentID != nil {
		s.StripePaymentIntentID = *intentID
	}
	if customerID != nil {
		s.StripeCustomerID = *customerID
	}
	if stripeSubID != nil {
		s.StripeSubscriptionID = *stripeSubID
	}
	return &s, nil
}
