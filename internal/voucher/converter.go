package voucher

import (
	"time"

	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/sheet"
	"go.uber.org/zap"
)

// ConversionResult holds the vouchers built from one upload
type ConversionResult struct {
	// Vouchers has one entry per category with rows, in Categories order.
	// A voucher may be empty when none of its amounts parsed.
	Vouchers []*Voucher

	// Classified counts input rows per category before amount filtering
	Classified map[Category]int

	// Columns is the output column order
	Columns []string
}

// NonEmpty returns the vouchers that have at least one line
func (r *ConversionResult) NonEmpty() []*Voucher {
	var out []*Voucher
	for _, v := range r.Vouchers {
		if !v.Empty() {
			out = append(out, v)
		}
	}
	return out
}

// Converter classifies an upload and builds one voucher per category
type Converter struct {
	logger *zap.Logger
}

// NewConverter creates a new Converter
func NewConverter(logger *zap.Logger) *Converter {
	return &Converter{logger: logger}
}

// Convert runs classification and voucher building against a settings
// snapshot. Ids share one sequence across categories; categories without
// rows consume no id.
func (c *Converter) Convert(table *sheet.Table, doc *settings.Document, now time.Time) *ConversionResult {
	cols := ResolveColumns(table, doc.SourceHeaders)
	c.warnMissingColumns(cols, doc.SourceHeaders)

	partition := Classify(Rows(table), cols)
	seq := NewSequencer(now)

	result := &ConversionResult{
		Classified: make(map[Category]int, len(Categories)),
		Columns:    append([]string(nil), doc.OutputColumns...),
	}

	for _, cat := range Categories {
		rows := partition.Rows(cat)
		result.Classified[cat] = len(rows)
		if len(rows) == 0 {
			continue
		}

		v := BuildVoucher(rows, cols, cat, seq.Next(cat), doc)
		result.Vouchers = append(result.Vouchers, v)

		for _, r := range v.Rejected {
			c.logger.Debug("Row dropped for invalid amount",
				zap.String("voucher_id", v.ID),
				zap.Int("data_row", r.Row+1),
				zap.String("amount", r.Amount))
		}

		c.logger.Info("Voucher built",
			zap.String("category", string(cat)),
			zap.String("voucher_id", v.ID),
			zap.Int("rows", len(rows)),
			zap.Int("lines", len(v.Lines)),
			zap.Int("dropped", v.Dropped),
			zap.String("total", v.DebitTotal().String()))
	}

	return result
}

func (c *Converter) warnMissingColumns(cols Columns, headers settings.SourceHeaders) {
	for _, field := range settings.HeaderFields {
		if cols.Has(field) {
			continue
		}
		label, _ := headers.Get(field)
		c.logger.Debug("Configured column not found in upload",
			zap.String("field", field),
			zap.String("label", label))
	}
}
