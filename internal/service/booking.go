package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/kitboardapp/kitboard-server/internal/booking"
	"github.com/kitboardapp/kitboard-server/internal/category"
	"github.com/kitboardapp/kitboard-server/internal/errors"
	"github.com/kitboardapp/kitboard-server/internal/store"
)

// BookingFetcher retrieves the raw booking rows for a day.
type BookingFetcher interface {
	FetchBookings(ctx context.Context, day time.Time) ([]booking.RawRow, error)
}

// BookingService runs the dashboard pipeline: fetch the raw rows,
// resolve categories, bucket by user and time window, derive statuses.
type BookingService struct {
	store   *store.Store
	fetcher BookingFetcher
	logger  *slog.Logger
	window  time.Duration

	// now is swappable so tests can pin "today".
	now func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(store *store.Store, fetcher BookingFetcher, window time.Duration, logger *slog.Logger) *BookingService {
	if window <= 0 {
		window = booking.DefaultWindow
	}
	return &BookingService{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		window:  window,
		now:     time.Now,
	}
}

// Today fetches the current day's bookings and returns the grouped,
// categorized, status-derived view. The result is recomputed on every
// call; only overrides and curated lists persist.
func (s *BookingService) Today(ctx context.Context) ([]booking.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	day := s.now()

	rows, err := s.fetcher.FetchBookings(ctx, day)
	if err != nil {
		return nil, err
	}

	categoryOverrides, err := s.store.CategoryOverrides(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "load category overrides")
	}
	statusOverrides, err := s.store.StatusOverrides(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "load status overrides")
	}
	lists, err := s.store.CuratedLists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "load curated lists")
	}

	groups := booking.BuildGroups(rows, booking.GroupParams{
		Day:               day,
		Window:            s.window,
		Categorizer:       category.NewResolver(*lists),
		CategoryOverrides: categoryOverrides,
		StatusOverrides:   statusOverrides,
	})

	s.logger.Debug("built booking groups",
		"rows", len(rows),
		"groups", len(groups),
	)

	return groups, nil
}
