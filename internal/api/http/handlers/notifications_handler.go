package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deckflow-admin/internal/service"
)

// NotificationsHandler serves the admin triage feeds.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// DeckNotifications GET /decks/notifications.
// hiddenIds is a comma-separated list of already-dismissed notification ids;
// search and pagination are optional.
func (h *NotificationsHandler) DeckNotifications(c *fiber.Ctx) error {
	var hiddenIDs []string
	if raw := c.Query("hiddenIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				hiddenIDs = append(hiddenIDs, trimmed)
			}
		}
	}

	feed, err := h.notifications.DeckRequestNotifications(c.Context(), hiddenIDs)
	if err != nil {
		return err
	}

	if term := c.Query("search"); term != "" {
		feed = service.SearchNotifications(feed, term)
	}

	page, err := parsePositiveQuery(c, "page")
	if err != nil {
		return err
	}
	pageSize, err := parsePositiveQuery(c, "limit")
	if err != nil {
		return err
	}
	if page > 0 || pageSize > 0 {
		result := service.PaginateNotifications(feed, page, pageSize)
		return c.JSON(fiber.Map{
			"all":         result.Items,
			"totalPages":  result.TotalPages,
			"currentPage": result.CurrentPage,
		})
	}

	return c.JSON(fiber.Map{"all": feed})
}
