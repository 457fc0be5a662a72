package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/garyjia/expense-journal/internal/storage"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store owns the active settings document and its persisted YAML file.
// Readers get a snapshot; Save replaces the active document wholesale.
type Store struct {
	path    string
	files   storage.FileStorage
	current atomic.Pointer[Document]
	logger  *zap.Logger
}

// NewStore creates a store backed by the YAML file at path.
// The active document is the built-in default until Load is called.
func NewStore(path string, logger *zap.Logger) *Store {
	return NewStoreWithStorage(path, storage.NewLocalFileStorage(filepath.Dir(path), logger), logger)
}

// NewStoreWithStorage creates a store using the given file storage
func NewStoreWithStorage(path string, files storage.FileStorage, logger *zap.Logger) *Store {
	s := &Store{
		path:   path,
		files:  files,
		logger: logger,
	}
	s.current.Store(Default())
	return s
}

// Path returns the location of the persisted document
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted document, falling back to defaults when the file
// does not exist, and makes it the active document.
func (s *Store) Load() (*Document, error) {
	data, err := s.files.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("Settings file not found, using defaults",
				zap.String("path", s.path))
			doc := Default()
			s.current.Store(doc)
			return doc.Clone(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeSettings, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	s.current.Store(&doc)
	s.logger.Info("Settings loaded",
		zap.String("path", s.path),
		zap.Int("tax_labels", len(doc.TaxMap.Labels)))

	return doc.Clone(), nil
}

// Save persists doc atomically and reloads it as the active document.
// Concurrent saves are not coordinated; the last write wins.
func (s *Store) Save(doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.files.SaveFile(s.path, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("Settings saved", zap.String("path", s.path))

	_, err = s.Load()
	return err
}

// Current returns a copy of the active document
func (s *Store) Current() *Document {
	return s.current.Load().Clone()
}
