// Package export converts tabular listings into downloadable files.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"golang.org/x/sync/errgroup"

	dErrors "steward/pkg/domain-errors"
)

type Format string

const FormatCSV Format = "csv"

// Converter turns a header row plus data rows into file bytes.
type Converter interface {
	Convert(header []string, rows [][]string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// NewConverter resolves a converter for the requested format.
func NewConverter(format Format) (Converter, error) {
	switch format {
	case FormatCSV:
		return csvConverter{}, nil
	default:
		return nil, dErrors.Newf(dErrors.CodeValidation, "unsupported export format %q", format)
	}
}

type csvConverter struct{}

func (csvConverter) Convert(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

func (csvConverter) ContentType() string   { return "text/csv" }
func (csvConverter) FileExtension() string { return "csv" }

// Table is one exportable listing.
type Table struct {
	Header []string
	Rows   [][]string
}

// Source produces a table for export, scoped to the caller's tenant context.
type Source func(ctx context.Context) (Table, error)

// ConvertAll fetches every source concurrently and converts each table,
// keyed by source name. Any failing source fails the whole export.
func ConvertAll(ctx context.Context, conv Converter, sources map[string]Source) (map[string][]byte, error) {
	results := make(map[string][]byte, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	type converted struct {
		name string
		data []byte
	}
	out := make(chan converted, len(sources))

	for name, source := range sources {
		g.Go(func() error {
			table, err := source(gctx)
			if err != nil {
				return fmt.Errorf("export %s: %w", name, err)
			}
			data, err := conv.Convert(table.Header, table.Rows)
			if err != nil {
				return fmt.Errorf("convert %s: %w", name, err)
			}
			out <- converted{name: name, data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(out)
	for c := range out {
		results[c.name] = c.data
	}
	return results, nil
}
