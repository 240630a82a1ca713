package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imobflow/crm-api/internal/entity"
)

type PropertyRepository struct {
	DB *sql.DB
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	query := `
		INSERT INTO properties (id, title, kind, price_cents, district, city,
			bedrooms, area_m2, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Kind, p.PriceCents, nullString(p.District), p.City,
		p.Bedrooms, p.AreaM2, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PropertyRepository) List(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	query := `
		SELECT id, title, kind, price_cents, COALESCE(district, ''), city,
			bedrooms, area_m2, status, created_at, updated_at
		FROM properties
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(` AND city = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC, id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []*entity.Property
	for rows.Next() {
		var p entity.Property
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Kind, &p.PriceCents, &p.District, &p.City,
			&p.Bedrooms, &p.AreaM2, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		props = append(props, &p)
	}

	return props, rows.Err()
}
