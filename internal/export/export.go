// Copyright (c) 2026 Patriarchia. All rights reserved.

/*
Package export renders the catalogue as a downloadable CSV snapshot for
offline research and backups.

The export is an administrative operation and includes soft-deleted rows so
a snapshot can restore the full catalogue state. Legacy heresy encodings
are normalized before serialization; the CSV always carries the canonical
semicolon-joined form.
*/
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/copticarchive/patriarchia/internal/patriarch"
)

// header is the fixed CSV column order.
var header = []string{
	"sequence_number", "name", "coptic_name", "start_year", "end_year",
	"era", "heresies_fought", "contributions", "biography", "active",
}

// Service streams catalogue snapshots.
type Service struct {
	repo   patriarch.Repository
	logger *slog.Logger
}

// NewService constructs the export service.
func NewService(repo patriarch.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// WriteCSV streams every record, active and inactive, as CSV.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(row(record)); err != nil {
			return fmt.Errorf("export: write row %d: %w", record.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}

	s.logger.InfoContext(ctx, "catalogue_exported", slog.Int("records", len(records)))
	return nil
}

func row(record *patriarch.Patriarch) []string {
	endYear := ""
	if record.EndYear != nil {
		endYear = strconv.Itoa(*record.EndYear)
	}

	heresies := strings.Join(patriarch.NormalizeHeresies(record.HeresiesFought), "; ")

	return []string{
		strconv.Itoa(record.SequenceNumber),
		record.Name,
		record.CopticName,
		strconv.Itoa(record.StartYear),
		endYear,
		record.Era,
		heresies,
		record.Contributions,
		record.Biography,
		strconv.FormatBool(record.Active),
	}
}
