package store

import (
	"context"

	"github.com/kitboardapp/kitboard-server/internal/category"
)

const keyCuratedLists = "curated:lists"

// CuratedLists retrieves the curated category lists. Returns the seed
// lists if none have been saved yet.
func (s *Store) CuratedLists(ctx context.Context) (*category.CuratedLists, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lists category.CuratedLists
	found, err := s.getDoc(keyCuratedLists, &lists)
	if err != nil {
		return nil, err
	}
	if !found {
		lists = category.DefaultCuratedLists()
	}
	return &lists, nil
}

// UpdateCuratedLists replaces all four curated lists at once.
func (s *Store) UpdateCuratedLists(ctx context.Context, lists *category.CuratedLists) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setDoc(keyCuratedLists, lists)
}
