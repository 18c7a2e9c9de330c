package mysql

import (
	"context"
	"database/sql"
	"fmt"

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
