package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garyjia/expense-journal/internal/application/port"
	"github.com/garyjia/expense-journal/internal/packager"
	"github.com/garyjia/expense-journal/internal/sheet"
	"github.com/garyjia/expense-journal/internal/voucher"
)

// ConversionReport is the outcome of one upload conversion
type ConversionReport struct {
	Archive    *packager.Archive
	Rows       int
	Classified map[voucher.Category]int
	VoucherIDs []string
	Dropped    int
}

// ConversionService converts uploaded expense exports into journal archives
type ConversionService interface {
	Convert(ctx context.Context, filename string, data []byte) (*ConversionReport, error)
}

type conversionServiceImpl struct {
	settings  port.SettingsSource
	converter port.JournalConverter
	packager  port.ArchivePackager
	now       func() time.Time
	logger    Logger
}

// NewConversionService creates a new ConversionService.
// A nil clock defaults to time.Now.
func NewConversionService(
	settings port.SettingsSource,
	converter port.JournalConverter,
	packager port.ArchivePackager,
	clock func() time.Time,
	logger Logger,
) ConversionService {
	if clock == nil {
		clock = time.Now
	}
	return &conversionServiceImpl{
		settings:  settings,
		converter: converter,
		packager:  packager,
		now:       clock,
		logger:    logger,
	}
}

// Convert decodes the upload and builds the archive against one settings
// snapshot, so a concurrent settings save never affects a running conversion.
func (s *conversionServiceImpl) Convert(ctx context.Context, filename string, data []byte) (*ConversionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := s.settings.Current()
	s.logger.Info("Converting upload", "filename", filename, "size", len(data))

	table, err := sheet.Read(data, filename, sheet.Selection{
		Name:     doc.InputSheet.Name,
		Contains: doc.InputSheet.Contains,
	})
	if err != nil {
		s.logger.Error("Failed to read upload", "filename", filename, "error", err)
		return nil, err
	}

	now := s.now()
	result := s.converter.Convert(table, doc, now)

	archive, err := s.packager.Package(result, now)
	if err != nil {
		s.logger.Error("Failed to package journals", "filename", filename, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPackage, err)
	}

	report := &ConversionReport{
		Archive:    archive,
		Rows:       table.Len(),
		Classified: result.Classified,
	}
	for _, v := range result.Vouchers {
		report.Dropped += v.Dropped
		if !v.Empty() {
			report.VoucherIDs = append(report.VoucherIDs, v.ID)
		}
	}

	s.logger.Info("Upload converted",
		"filename", filename,
		"rows", report.Rows,
		"vouchers", report.VoucherIDs,
		"dropped", report.Dropped,
		"archive", archive.Filename,
	)

	return report, nil
}
