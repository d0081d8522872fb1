package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"agentic_memo/pkg/models"
)

// MemoRepo stores one document per company, upserted by name. The
// document is a single JSONB blob: the topic map is schema-stable and
// always read back whole.
type MemoRepo struct{}

func NewMemoRepo() *MemoRepo { return &MemoRepo{} }

// Schema assumption (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS company_memos (
//	  name TEXT PRIMARY KEY,
//	  run_id TEXT,
//	  doc JSONB,
//	  updated_at TIMESTAMPTZ
//	);

// Save upserts the finished document for its company.
func (r *MemoRepo) Save(ctx context.Context, doc *models.CompanyDoc) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal memo: %w", err)
	}

	query := `
		INSERT INTO company_memos (name, run_id, doc, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name)
		DO UPDATE SET run_id = EXCLUDED.run_id, doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`

	if _, err := pool.Exec(ctx, query, doc.Name, doc.RunID, payload, time.Now()); err != nil {
		return fmt.Errorf("failed to save memo for %s: %w", doc.Name, err)
	}
	return nil
}

// Load returns the latest stored document for a company, or nil when
// none exists.
func (r *MemoRepo) Load(ctx context.Context, name string) (*models.CompanyDoc, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var payload []byte
	err := pool.QueryRow(ctx, `SELECT doc FROM company_memos WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load memo for %s: %w", name, err)
	}

	var doc models.CompanyDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode stored memo for %s: %w", name, err)
	}
	return &doc, nil
}
