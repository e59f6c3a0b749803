package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/biletfinder/ticketing-service/internal/api/dto"
	"github.com/biletfinder/ticketing-service/internal/auth"
	"github.com/biletfinder/ticketing-service/internal/repository"
	"github.com/biletfinder/ticketing-service/internal/service"
	apperrors "github.com/biletfinder/ticketing-service/pkg/util"
)

// NotificationsHandler exposes the per-user notification feed.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// ListNotifications GET /notifications.
func (h *NotificationsHandler) ListNotifications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	entries, err := h.service.ListForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NotificationFromDomain(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.MarkRead(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("notification", nil)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}

// MarkAllRead POST /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.MarkAllRead(c.UserContext(), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}
