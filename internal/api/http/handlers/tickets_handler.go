package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/biletfinder/ticketing-service/internal/api/dto"
	"github.com/biletfinder/ticketing-service/internal/auth"
	"github.com/biletfinder/ticketing-service/internal/domain"
	"github.com/biletfinder/ticketing-service/internal/service"
	apperrors "github.com/biletfinder/ticketing-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	isForSelf := true
	if req.IsForSelf != nil {
		isForSelf = *req.IsForSelf
	}
	input := service.TicketCreateInput{
		TripID:              req.TripID,
		UserID:              principal.User.ID,
		Seats:               req.Seats,
		TripType:            req.TripType,
		Status:              req.Status,
		PassengerName:       req.PassengerName,
		PassengerEmail:      req.PassengerEmail,
		PassengerPhone:      req.PassengerPhone,
		IsForSelf:           isForSelf,
		RelationToPassenger: req.RelationToPassenger,
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// ListTickets GET /tickets. An optional status query narrows the result;
// the unfiltered listing runs the past-status refresh and reminder scan.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var (
		tickets []domain.Ticket
		err     error
	)
	if status := c.Query("status"); status != "" {
		tickets, err = h.service.ListTicketsByStatus(c.UserContext(), principal.User.ID, domain.TicketStatus(status))
	} else {
		tickets, err = h.service.ListTickets(c.UserContext(), principal.User.ID)
	}
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.TicketFromDomain(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket.UserID != principal.User.ID {
		return apperrors.NewNotFound("ticket", nil)
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// CancelTicket POST /tickets/:id/cancel.
func (h *TicketsHandler) CancelTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket.UserID != principal.User.ID {
		return apperrors.NewNotFound("ticket", nil)
	}
	cancelled, err := h.service.CancelTicket(c.UserContext(), ticket.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(cancelled)})
}

// TransferTicket POST /tickets/:id/transfer.
func (h *TicketsHandler) TransferTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.TransferTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket.UserID != principal.User.ID {
		return apperrors.NewNotFound("ticket", nil)
	}
	transferred, err := h.service.TransferTicket(c.UserContext(), ticket.ID, req.RecipientUserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(transferred)})
}
