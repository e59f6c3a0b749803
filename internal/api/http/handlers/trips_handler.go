package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/biletfinder/ticketing-service/internal/api/dto"
	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/repository"
	"github.com/biletfinder/ticketing-service/internal/service"
	apperrors "github.com/biletfinder/ticketing-service/pkg/util"
)

// TripsHandler exposes catalog search and seat maps.
type TripsHandler struct {
	service *service.TripService
}

// NewTripsHandler constructs handler.
func NewTripsHandler(tripService *service.TripService) *TripsHandler {
	return &TripsHandler{service: tripService}
}

// SearchTrips GET /trips?from=&to=&date=&vehicle=.
func (h *TripsHandler) SearchTrips(c *fiber.Ctx) error {
	filter := repository.TripFilter{}
	if from := c.Query("from"); from != "" {
		filter.FromCity = &from
	}
	if to := c.Query("to"); to != "" {
		filter.ToCity = &to
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
		}
		filter.Date = &parsed
	}
	if vehicle := c.Query("vehicle"); vehicle != "" {
		v := domain.VehicleType(vehicle)
		if v != domain.VehicleBus && v != domain.VehicleTrain && v != domain.VehicleFerry {
			return apperrors.NewValidationError("vehicle must be bus, train or ferry", nil)
		}
		filter.Vehicle = &v
	}

	trips, err := h.service.Search(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TripResponse, 0, len(trips))
	for i := range trips {
		items = append(items, dto.TripFromDomain(&trips[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTrip GET /trips/:id.
func (h *TripsHandler) GetTrip(c *fiber.Ctx) error {
	trip, err := h.service.GetTrip(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TripFromDomain(trip)})
}

// ListSeats GET /trips/:id/seats.
func (h *TripsHandler) ListSeats(c *fiber.Ctx) error {
	seats, err := h.service.SeatsForTrip(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		items = append(items, dto.SeatFromDomain(seat))
	}
	return c.JSON(fiber.Map{"data": items})
}
