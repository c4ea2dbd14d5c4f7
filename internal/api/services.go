package api

import (
	"github.com/kitboardapp/kitboard-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Booking  *service.BookingService
	Override *service.OverrideService
}
