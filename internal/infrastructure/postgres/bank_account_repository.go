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

var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// BankAccountRepo implementación de BankAccountRepository (usable con pool o tx).
type BankAccountRepo struct {
	q Querier
}

// NewBankAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBankAccountRepository(q Querier) *BankAccountRepo {
	return &BankAccountRepo{q: q}
}

const accountColumns = `id, property_id, title, account_type, status, account_mode, client_id, secret_key, created_at, updated_at`

// Create persiste una cuenta de cobro.
func (r *BankAccountRepo) Create(a *entity.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.PropertyID, a.Title, a.AccountType, a.Status, a.AccountMode,
		a.ClientID, a.SecretKey, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *BankAccountRepo) GetByID(id string) (*entity.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE id = $1`
	return scanBankAccount(r.q.QueryRow(context.Background(), query, id))
}

// ListByProperty lista las cuentas de la propiedad.
func (r *BankAccountRepo) ListByProperty(propertyID string) ([]*entity.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE property_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.BankAccount
	for rows.Next() {
		var a entity.BankAccount
		if err := rows.Scan(
			&a.ID, &a.PropertyID, &a.Title, &a.AccountType, &a.Status, &a.AccountMode,
			&a.ClientID, &a.SecretKey, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// GetActiveByPropertyAndType devuelve la cuenta activa más reciente del tipo
// dado, o nil.
func (r *BankAccountRepo) GetActiveByPropertyAndType(propertyID, accountType string) (*entity.BankAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM bank_accounts
		WHERE property_id = $1 AND account_type = $2 AND status = 'Active'
		ORDER BY created_at DESC LIMIT 1`
	return scanBankAccount(r.q.QueryRow(context.Background(), query, propertyID, accountType))
}

// Update persiste los campos mutables de la cuenta.
func (r *BankAccountRepo) Update(a *entity.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET title = $2, status = $3, account_mode = $4, client_id = $5, secret_key = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Title, a.Status, a.AccountMode, a.ClientID, a.SecretKey, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	return nil
}

// Delete elimina la cuenta.
func (r *BankAccountRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBankAccount(row pgx.Row) (*entity.BankAccount, error) {
	var a entity.BankAccount
	err := row.Scan(
		&a.ID, &a.PropertyID, &a.Title, &a.AccountType, &a.Status, &a.AccountMode,
		&a.ClientID, &a.SecretKey, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return &a, nil
}
