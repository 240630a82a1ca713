package database

import (
	"context"
	"database/sql"

	"github.com/imobflow/crm-api/internal/entity"
)

type AssignmentRecordRepository struct {
	DB *sql.DB
}

func NewAssignmentRecordRepository(db *sql.DB) *AssignmentRecordRepository {
	return &AssignmentRecordRepository{DB: db}
}

const insertRecordQuery = `
	INSERT INTO lead_assignments (id, lead_id, broker_id, mode, assigned_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *AssignmentRecordRepository) Create(ctx context.Context, rec *entity.AssignmentRecord) error {
	_, err := r.DB.ExecContext(ctx, insertRecordQuery,
		rec.ID, rec.LeadID, nullString(rec.BrokerID), rec.Mode, nullString(rec.AssignedBy), rec.CreatedAt,
	)
	return err
}

// CreateBatch insere o histórico do lote inteiro numa transação só.
func (r *AssignmentRecordRepository) CreateBatch(ctx context.Context, recs []*entity.AssignmentRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, insertRecordQuery,
			rec.ID, rec.LeadID, nullString(rec.BrokerID), rec.Mode, nullString(rec.AssignedBy), rec.CreatedAt,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *AssignmentRecordRepository) ListByLeadID(ctx context.Context, leadID string) ([]*entity.AssignmentRecord, error) {
	query := `
		SELECT id, lead_id, COALESCE(broker_id, ''), mode, COALESCE(assigned_by, ''), created_at
		FROM lead_assignments
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*entity.AssignmentRecord
	for rows.Next() {
		var rec entity.AssignmentRecord
		if err := rows.Scan(&rec.ID, &rec.LeadID, &rec.BrokerID, &rec.Mode, &rec.AssignedBy, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}
