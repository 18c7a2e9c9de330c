package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/dataset"
)

// DatasetRepository reads the freelancer table in full.
type DatasetRepository struct {
	db    *sql.DB
	table string
}

func NewDatasetRepository(db *sql.DB, table string) *DatasetRepository {
	return &DatasetRepository{db: db, table: table}
}

// Load implements dataset.Loader.
func (r *DatasetRepository) Load(ctx context.Context) (*earnings.Dataset, error) {
	table, err := quoteTable(r.table)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.table, err)
	}
	return dataset.FromRows(rows)
}

// quoteTable quotes each part of schema.table; the CSV column names are
// mixed case so the table usually is too.
func quoteTable(name string) (string, error) {
	parts := strings.Split(name, ".")
	if name == "" || len(parts) > 2 {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			return "", fmt.Errorf("invalid table name %q", name)
		}
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}
