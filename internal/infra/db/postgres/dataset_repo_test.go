package postgres

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/earnings-analyst/internal/infra/db/dbtest"
)

func TestQuoteTable(t *testing.T) {
	got, err := quoteTable("public.Freelancer_Earnings")
	require.NoError(t, err)
	assert.Equal(t, `"public"."Freelancer_Earnings"`, got)

	got, err = quoteTable(`we"ird`)
	require.NoError(t, err)
	assert.Equal(t, `"we""ird"`, got)

	for _, bad := range []string{"", "a.b.c", " .x"} {
		_, err := quoteTable(bad)
		assert.Error(t, err, bad)
	}
}

func TestDatasetRepository_Load(t *testing.T) {
	db, conn := dbtest.Open(dbtest.Result{
		Columns: []string{"Client_Region", "Earnings_USD"},
		Rows:    [][]driver.Value{{"Asia", int64(1000)}, {"Europe", int64(3000)}},
	})
	defer db.Close()

	ds, err := NewDatasetRepository(db, "freelancer_earnings").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{`SELECT * FROM "freelancer_earnings"`}, conn.Queries())
}
