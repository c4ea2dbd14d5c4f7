package store

import (
	"context"

	"github.com/kitboardapp/kitboard-server/internal/category"
)

const (
	keyCategoryOverrides = "overrides:category"
	keyStatusOverrides   = "overrides:status"
)

// CategoryOverrides retrieves the full category-override map, keyed by
// canonical asset name. Returns an empty map if none have been set.
func (s *Store) CategoryOverrides(ctx context.Context) (map[string]category.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	overrides := make(map[string]category.Category)
	if _, err := s.getDoc(keyCategoryOverrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// SetCategoryOverride pins the canonical asset name to the given
// category, replacing any previous pin for that name.
func (s *Store) SetCategoryOverride(ctx context.Context, name string, cat category.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := make(map[string]category.Category)
	if _, err := s.getDoc(keyCategoryOverrides, &overrides); err != nil {
		return err
	}
	overrides[name] = cat
	return s.setDoc(keyCategoryOverrides, overrides)
}

// StatusOverrides retrieves the full status-override map, keyed by
// group key. Returns an empty map if none have been set.
func (s *Store) StatusOverrides(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	overrides := make(map[string]string)
	if _, err := s.getDoc(keyStatusOverrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// SetStatusOverride forces the status for a group key.
func (s *Store) SetStatusOverride(ctx context.Context, groupKey, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := make(map[string]string)
	if _, err := s.getDoc(keyStatusOverrides, &overrides); err != nil {
		return err
	}
	overrides[groupKey] = value
	return s.setDoc(keyStatusOverrides, overrides)
}

// DeleteStatusOverride removes a forced status, restoring the derived
// one. Deleting a key that is not present is a no-op.
func (s *Store) DeleteStatusOverride(ctx context.Context, groupKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := make(map[string]string)
	found, err := s.getDoc(keyStatusOverrides, &overrides)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if _, ok := overrides[groupKey]; !ok {
		return nil
	}
	delete(overrides, groupKey)
	return s.setDoc(keyStatusOverrides, overrides)
}
