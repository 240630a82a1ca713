package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// StaleLeadWorker marca leads parados: sem contato há mais de 30 dias e
// ainda fora das fases finais do funil. A UI usa a flag para destacar a
// carteira esquecida.
type StaleLeadWorker struct {
	db           *sql.DB
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewStaleLeadWorker(db *sql.DB) *StaleLeadWorker {
	return &StaleLeadWorker{
		db:           db,
		staleWindow:  30 * 24 * time.Hour,
		tickInterval: 10 * time.Minute,
	}
}

func (w *StaleLeadWorker) Start(ctx context.Context) {
	log.Println("🕒 Stale Lead Worker iniciado (janela de 30 dias)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.markStaleLeads(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Stale Lead Worker encerrado")
			return
		case <-ticker.C:
			w.markStaleLeads(ctx)
		}
	}
}

func (w *StaleLeadWorker) markStaleLeads(ctx context.Context) {
	query := `
		UPDATE leads
		SET
			stale = TRUE,
			updated_at = NOW()
		WHERE
			stale = FALSE
			AND stage NOT IN ('CONTRACT', 'CLOSING')
			AND COALESCE(contact_date, created_at) < NOW() - INTERVAL '30 days'
		RETURNING id, name, broker_id
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao buscar leads parados: %v", err)
		return
	}
	defer rows.Close()

	staleCount := 0
	for rows.Next() {
		var id, name string
		var brokerID sql.NullString

		if err := rows.Scan(&id, &name, &brokerID); err != nil {
			log.Printf("⚠️ Erro ao escanear lead parado: %v", err)
			continue
		}

		log.Printf("⏱️ Lead parado: id=%s name=%q broker=%s", id, name, brokerID.String)
		staleCount++
	}

	if staleCount > 0 {
		log.Printf("✅ %d lead(s) marcados como parados", staleCount)
	}
}
