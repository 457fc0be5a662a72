// Package packager serializes conversion results to freee import CSV files
// and bundles them into a zip archive.
package packager

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/garyjia/expense-journal/internal/voucher"
	"go.uber.org/zap"
)

const (
	MergedFileName      = "merged_all_freee.csv"
	PlaceholderFileName = "README.txt"
	PlaceholderText     = "②データ貼付から振り分けできませんでした。列名や判定列をご確認ください。"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Archive is a packaged conversion ready for download
type Archive struct {
	Filename string
	Entries  []string
	Data     []byte
}

// Packager builds download archives
type Packager struct {
	logger *zap.Logger
}

// New creates a new Packager
func New(logger *zap.Logger) *Packager {
	return &Packager{logger: logger}
}

// JournalFileName returns the archive entry name of a category journal
func JournalFileName(c voucher.Category) string {
	return fmt.Sprintf("%s_journal_freee.csv", c)
}

// ArchiveName returns the timestamped download name
func ArchiveName(now time.Time) string {
	return fmt.Sprintf("freee_journals_%s.zip", now.Format("20060102_150405"))
}

// Package writes one CSV per non-empty voucher plus a merged CSV of all of
// them. When no voucher has lines the archive holds only a placeholder note.
func (p *Packager) Package(result *voucher.ConversionResult, now time.Time) (*Archive, error) {
	archive := &Archive{Filename: ArchiveName(now)}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	vouchers := result.NonEmpty()
	if len(vouchers) == 0 {
		if err := writeEntry(zw, PlaceholderFileName, []byte(PlaceholderText), now); err != nil {
			return nil, err
		}
		archive.Entries = append(archive.Entries, PlaceholderFileName)
		p.logger.Info("No journal rows produced, writing placeholder",
			zap.String("archive", archive.Filename))
	} else {
		var merged [][]string
		for _, v := range vouchers {
			records := v.Records(result.Columns)
			merged = append(merged, records...)

			content, err := EncodeCSV(result.Columns, records)
			if err != nil {
				return nil, err
			}
			name := JournalFileName(v.Category)
			if err := writeEntry(zw, name, content, now); err != nil {
				return nil, err
			}
			archive.Entries = append(archive.Entries, name)
		}

		content, err := EncodeCSV(result.Columns, merged)
		if err != nil {
			return nil, err
		}
		if err := writeEntry(zw, MergedFileName, content, now); err != nil {
			return nil, err
		}
		archive.Entries = append(archive.Entries, MergedFileName)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	archive.Data = buf.Bytes()

	p.logger.Info("Archive packaged",
		zap.String("archive", archive.Filename),
		zap.Strings("entries", archive.Entries),
		zap.Int("size", len(archive.Data)))

	return archive, nil
}

// EncodeCSV renders a header and records as UTF-8 CSV with a byte order mark
func EncodeCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv records: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, content []byte, now time.Time) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: now,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
