package port

import (
	"time"

	"github.com/garyjia/expense-journal/internal/packager"
	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/sheet"
	"github.com/garyjia/expense-journal/internal/voucher"
)

// SettingsSource provides the active settings snapshot
type SettingsSource interface {
	Current() *settings.Document
}

// SettingsRepository reads and persists the settings document
type SettingsRepository interface {
	SettingsSource
	Save(doc *settings.Document) error
}

// JournalConverter turns a decoded table into category vouchers
type JournalConverter interface {
	Convert(table *sheet.Table, doc *settings.Document, now time.Time) *voucher.ConversionResult
}

// ArchivePackager bundles a conversion result for download
type ArchivePackager interface {
	Package(result *voucher.ConversionResult, now time.Time) (*packager.Archive, error)
}
