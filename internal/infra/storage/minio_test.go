package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("data/freelancer_earnings_bd.csv"))
	assert.Equal(t, "application/json", contentType("dump.json"))
	assert.Equal(t, "application/octet-stream", contentType("earnings.parquet"))
}
