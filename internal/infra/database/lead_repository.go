package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/imobflow/crm-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, stage, broker_id, source, notes,
			estimated_value_cents, contact_date, property_of_interest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		lead.Stage,
		nullString(lead.BrokerID),
		nullString(lead.Source),
		nullString(lead.Notes),
		lead.EstimatedValueCents,
		lead.ContactDate,
		nullString(lead.PropertyOfInterest),
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateLead
		}
		log.Printf("❌ Erro crítico no banco ao criar lead: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), stage,
			COALESCE(broker_id, ''), COALESCE(source, ''), COALESCE(notes, ''),
			estimated_value_cents, contact_date, COALESCE(property_of_interest, ''),
			stale, created_at, updated_at
		FROM leads
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Unassigned {
		query += ` AND broker_id IS NULL`
	} else if filter.BrokerID != "" {
		args = append(args, filter.BrokerID)
		query += fmt.Sprintf(` AND broker_id = $%d`, len(args))
	}
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		query += fmt.Sprintf(` AND stage = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)`, n, n, n)
	}

	// Ordem estável: mesma entrada, mesma saída.
	query += ` ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		var contactDate sql.NullTime
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Email, &l.Phone, &l.Stage,
			&l.BrokerID, &l.Source, &l.Notes,
			&l.EstimatedValueCents, &contactDate, &l.PropertyOfInterest,
			&l.Stale, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if contactDate.Valid {
			t := contactDate.Time
			l.ContactDate = &t
		}
		leads = append(leads, &l)
	}

	return leads, rows.Err()
}

// UpdateBrokerBatch é a escrita do lote: um único UPDATE cobrindo todos os
// ids. brokerID vazio vira NULL (desvincular).
func (r *LeadRepository) UpdateBrokerBatch(ctx context.Context, leadIDs []string, brokerID string) error {
	query := `
		UPDATE leads
		SET broker_id = $1, updated_at = NOW()
		WHERE id = ANY($2)
	`

	res, err := r.DB.ExecContext(ctx, query, nullString(brokerID), pq.Array(leadIDs))
	if err != nil {
		log.Printf("❌ Erro crítico no banco ao atualizar lote de leads: %v", err)
		return err
	}

	if n, err := res.RowsAffected(); err == nil && int(n) != len(leadIDs) {
		log.Printf("⚠️ Lote pedia %d leads, banco atualizou %d", len(leadIDs), n)
	}

	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
