package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
)

// Loader produces the dataset once at startup.
type Loader interface {
	Load(ctx context.Context) (*earnings.Dataset, error)
}

// ObjectOpener reads an object by key; *storage.Store satisfies it.
type ObjectOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Object loads a CSV stored in an object store.
type Object struct {
	Store ObjectOpener
	Key   string
}

func (o Object) Load(ctx context.Context) (*earnings.Dataset, error) {
	rc, err := o.Store.Open(ctx, o.Key)
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", o.Key, err)
	}
	defer rc.Close()

	ds, err := ReadCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", o.Key, err)
	}
	return ds, nil
}

// FromRows drains a query result into a dataset. Column names come from the
// result set; NULL becomes an empty cell.
func FromRows(rows *sql.Rows) (*earnings.Dataset, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	b := earnings.NewBuilder(cols)

	raw := make([]sql.RawBytes, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rec := make([]string, len(cols))
		for i, v := range raw {
			rec[i] = string(v) // RawBytes is only valid until the next Scan
		}
		if err := b.Append(rec); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return b.Build()
}
