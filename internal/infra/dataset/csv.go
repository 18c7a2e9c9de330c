package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
)

// ReadCSV parses a CSV stream with a header row into a dataset.
func ReadCSV(r io.Reader) (*earnings.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty")
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	b := earnings.NewBuilder(header)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		if err := b.Append(row); err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
	}
	return b.Build()
}

// File loads a dataset from a CSV file on disk.
type File struct {
	Path string
}

func (f File) Load(_ context.Context) (*earnings.Dataset, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	ds, err := ReadCSV(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return ds, nil
}
