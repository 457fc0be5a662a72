package service

import (
	"fmt"
	"strings"

	"github.com/garyjia/expense-journal/internal/application/port"
	"github.com/garyjia/expense-journal/internal/settings"
)

// CreditRuleUpdate carries the credit fields submitted for one category.
// Nil fields keep their current value.
type CreditRuleUpdate struct {
	Account    *string
	SubAccount *string
	Department *string
	TaxCode    *string
}

// SettingsUpdate is a partial change to the settings document
type SettingsUpdate struct {
	// Headers maps source field keys to submitted column labels
	Headers map[string]string

	// Credits maps category keys to submitted credit fields
	Credits map[string]CreditRuleUpdate
}

// SettingsService reads and updates the conversion settings
type SettingsService interface {
	Current() *settings.Document
	Update(update SettingsUpdate) (*settings.Document, error)
}

type settingsServiceImpl struct {
	repo   port.SettingsRepository
	logger Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo port.SettingsRepository, logger Logger) SettingsService {
	return &settingsServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// Current returns a snapshot of the active settings
func (s *settingsServiceImpl) Current() *settings.Document {
	return s.repo.Current()
}

// Update applies the submitted fields on top of the current document,
// persists the result and returns the new active document. Fields absent
// from the update are left untouched.
func (s *settingsServiceImpl) Update(update SettingsUpdate) (*settings.Document, error) {
	doc := s.repo.Current()

	for field, label := range update.Headers {
		if !doc.SourceHeaders.Set(field, strings.TrimSpace(label)) {
			return nil, fmt.Errorf("%w: unknown source field %q", settings.ErrInvalidSettings, field)
		}
	}

	for key, cu := range update.Credits {
		rule, ok := doc.CreditRules[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown credit rule %q", settings.ErrInvalidSettings, key)
		}
		apply(&rule.Account, cu.Account)
		apply(&rule.SubAccount, cu.SubAccount)
		apply(&rule.Department, cu.Department)
		apply(&rule.TaxCode, cu.TaxCode)
		doc.CreditRules[key] = rule
	}

	if err := s.repo.Save(doc); err != nil {
		s.logger.Error("Failed to save settings", "error", err)
		return nil, err
	}

	s.logger.Info("Settings updated",
		"headers", len(update.Headers),
		"credit_rules", len(update.Credits),
	)

	return s.repo.Current(), nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
