package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kitboardapp/kitboard-server/internal/audit"
	"github.com/kitboardapp/kitboard-server/internal/booking"
	"github.com/kitboardapp/kitboard-server/internal/category"
	"github.com/kitboardapp/kitboard-server/internal/errors"
	"github.com/kitboardapp/kitboard-server/internal/normalize"
	"github.com/kitboardapp/kitboard-server/internal/store"
	"github.com/kitboardapp/kitboard-server/internal/validation"
)

// AuditRecorder records override changes. Failures are logged by the
// service, never surfaced to the caller.
type AuditRecorder interface {
	Record(ctx context.Context, kind, key, value string) error
	Recent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// OverrideService manages the technician-controlled surfaces: category
// overrides, status overrides, and the curated lists.
type OverrideService struct {
	store     *store.Store
	audit     AuditRecorder
	validator *validation.Validator
	logger    *slog.Logger
}

// NewOverrideService creates a new override service.
func NewOverrideService(store *store.Store, auditLog AuditRecorder, logger *slog.Logger) *OverrideService {
	return &OverrideService{
		store:     store,
		audit:     auditLog,
		validator: validation.New(),
		logger:    logger,
	}
}

// CategoryOverrides returns the full category-override map.
func (s *OverrideService) CategoryOverrides(ctx context.Context) (map[string]category.Category, error) {
	return s.store.CategoryOverrides(ctx)
}

// SetCategoryOverrideRequest pins one asset name to a category.
type SetCategoryOverrideRequest struct {
	AssetName string `json:"assetName" validate:"required,max=200"`
	Category  string `json:"category" validate:"required,oneof=video sound lighting grip uncategorised"`
}

// SetCategoryOverride pins an asset name to a category. The name is
// canonicalized so every spelling of it hits the same entry.
func (s *OverrideService) SetCategoryOverride(ctx context.Context, req SetCategoryOverrideRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	name := normalize.Canonical(req.AssetName)
	if name == "" {
		return "", errors.Validation("asset name cannot be empty")
	}

	cat, ok := category.Parse(req.Category)
	if !ok {
		return "", errors.Validationf("unknown category %q (valid: %s)", req.Category, categoryLabels())
	}

	if err := s.store.SetCategoryOverride(ctx, name, cat); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "save category override")
	}

	s.recordAudit(ctx, audit.KindCategoryOverride, name, string(cat))
	s.logger.Info("category override set", "asset", name, "category", cat)
	return name, nil
}

// StatusOverrides returns the full status-override map.
func (s *OverrideService) StatusOverrides(ctx context.Context) (map[string]string, error) {
	return s.store.StatusOverrides(ctx)
}

// SetStatusOverrideRequest forces or clears the status for one group.
type SetStatusOverrideRequest struct {
	GroupKey string `json:"groupKey" validate:"required,max=200"`
	Value    string `json:"value" validate:"required"`
}

// SetStatusOverride forces or clears the status for a group key. The
// value "clear" removes the entry so the derived status applies again.
func (s *OverrideService) SetStatusOverride(ctx context.Context, req SetStatusOverrideRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	groupKey := strings.TrimSpace(req.GroupKey)
	if groupKey == "" {
		return errors.Validation("group key cannot be empty")
	}

	value := strings.ToLower(strings.TrimSpace(req.Value))
	if !booking.ValidStatusOverride(value) {
		return errors.Validationf("unknown status override %q (valid: %s)",
			value, strings.Join(booking.StatusOverrideValues, ", "))
	}

	if value == "clear" {
		if err := s.store.DeleteStatusOverride(ctx, groupKey); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "clear status override")
		}
	} else {
		if err := s.store.SetStatusOverride(ctx, groupKey, value); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "save status override")
		}
	}

	s.recordAudit(ctx, audit.KindStatusOverride, groupKey, value)
	s.logger.Info("status override set", "group", groupKey, "value", value)
	return nil
}

// CuratedLists returns the current curated lists.
func (s *OverrideService) CuratedLists(ctx context.Context) (*category.CuratedLists, error) {
	return s.store.CuratedLists(ctx)
}

// UpdateCuratedLists replaces all four lists. Entries keep their display
// casing; blanks are dropped. Comparison happens in canonical form at
// resolve time.
func (s *OverrideService) UpdateCuratedLists(ctx context.Context, lists *category.CuratedLists) (*category.CuratedLists, error) {
	cleaned := category.CuratedLists{
		Video:    cleanEntries(lists.Video),
		Sound:    cleanEntries(lists.Sound),
		Lighting: cleanEntries(lists.Lighting),
		Grip:     cleanEntries(lists.Grip),
	}

	if err := s.store.UpdateCuratedLists(ctx, &cleaned); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "save curated lists")
	}

	s.recordAudit(ctx, audit.KindCuratedLists, "curated-lists", "replaced")
	s.logger.Info("curated lists updated",
		"video", len(cleaned.Video),
		"sound", len(cleaned.Sound),
		"lighting", len(cleaned.Lighting),
		"grip", len(cleaned.Grip),
	)
	return &cleaned, nil
}

// RecentAudit returns the most recent override changes, newest first.
func (s *OverrideService) RecentAudit(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > 500 {
		return nil, errors.Validation("limit must be between 1 and 500")
	}
	entries, err := s.audit.Recent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "load audit entries")
	}
	return entries, nil
}

func (s *OverrideService) recordAudit(ctx context.Context, kind, key, value string) {
	if err := s.audit.Record(ctx, kind, key, value); err != nil {
		s.logger.Error("failed to record audit entry",
			"kind", kind,
			"key", key,
			"error", err,
		)
	}
}

func cleanEntries(entries []string) []string {
	cleaned := make([]string, 0, len(entries))
	for _, e := range entries {
		if normalize.Canonical(e) == "" {
			continue
		}
		cleaned = append(cleaned, strings.TrimSpace(e))
	}
	return cleaned
}

func categoryLabels() string {
	all := category.All()
	labels := make([]string, len(all))
	for i, c := range all {
		labels[i] = string(c)
	}
	return strings.Join(labels, ", ")
}
