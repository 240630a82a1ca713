package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/imobflow/crm-api/internal/entity"
)

type BrokerRepository struct {
	DB *sql.DB
}

func NewBrokerRepository(db *sql.DB) *BrokerRepository {
	return &BrokerRepository{DB: db}
}

func (r *BrokerRepository) ListByRole(ctx context.Context, role string) ([]*entity.Broker, error) {
	query := `
		SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''), role, active, created_at
		FROM users
		WHERE role = $1 AND active = TRUE
		ORDER BY full_name, id
	`

	rows, err := r.DB.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBrokers(rows)
}

func (r *BrokerRepository) FindByID(ctx context.Context, id string) (*entity.Broker, error) {
	query := `
		SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''), role, active, created_at
		FROM users
		WHERE id = $1
	`

	var b entity.Broker
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.FullName, &b.Email, &b.Phone, &b.Role, &b.Active, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrBrokerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListWithLeads alimenta as opções de origem de desvincular/transferir:
// só corretor com carteira não-vazia aparece.
func (r *BrokerRepository) ListWithLeads(ctx context.Context) ([]*entity.Broker, error) {
	query := `
		SELECT u.id, u.full_name, COALESCE(u.email, ''), COALESCE(u.phone, ''), u.role, u.active, u.created_at
		FROM users u
		WHERE u.role = $1 AND u.active = TRUE
		  AND EXISTS (SELECT 1 FROM leads l WHERE l.broker_id = u.id)
		ORDER BY u.full_name, u.id
	`

	rows, err := r.DB.QueryContext(ctx, query, entity.RoleBroker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBrokers(rows)
}

func scanBrokers(rows *sql.Rows) ([]*entity.Broker, error) {
	var brokers []*entity.Broker
	for rows.Next() {
		var b entity.Broker
		if err := rows.Scan(&b.ID, &b.FullName, &b.Email, &b.Phone, &b.Role, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		brokers = append(brokers, &b)
	}
	return brokers, rows.Err()
}
