package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kitboardapp/kitboard-server/internal/booking"
)

func (s *Server) registerBookingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTodaysBookings",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookings/today",
		Summary:     "List today's booking groups",
		Description: "Fetches today's bookings from the upstream API and returns them grouped per user and pickup slot, with resolved categories and statuses",
		Tags:        []string{"Bookings"},
	}, s.handleListTodaysBookings)
}

// TodaysBookingsOutput wraps the grouped bookings for Huma.
type TodaysBookingsOutput struct {
	Body []booking.Group
}

func (s *Server) handleListTodaysBookings(ctx context.Context, _ *struct{}) (*TodaysBookingsOutput, error) {
	groups, err := s.services.Booking.Today(ctx)
	if err != nil {
		s.logger.Error("Failed to build today's bookings", "error", err)
		return nil, err
	}

	return &TodaysBookingsOutput{Body: groups}, nil
}
