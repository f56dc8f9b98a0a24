package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deckflow-admin/internal/api/dto"
	"github.com/spec-kit/deckflow-admin/internal/auth"
	"github.com/spec-kit/deckflow-admin/internal/service"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

// RequestsHandler manages publication request endpoints.
type RequestsHandler struct {
	review  *service.ReviewService
	queries *service.RequestQueryService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(review *service.ReviewService, queries *service.RequestQueryService) *RequestsHandler {
	return &RequestsHandler{review: review, queries: queries}
}

// CreateRequest POST /requests.
func (h *RequestsHandler) CreateRequest(c *fiber.Ctx) error {
	var payload dto.CreateRequestPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}

	request, err := h.review.CreateRequest(c.Context(), service.CreateRequestInput{
		DeckID: payload.DeckID,
		UserID: payload.UserID,
		Status: payload.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Request created successfully",
		"request": dto.FromRequest(request),
	})
}

// ListRequests GET /requests.
func (h *RequestsHandler) ListRequests(c *fiber.Ctx) error {
	page, err := parsePositiveQuery(c, "page")
	if err != nil {
		return err
	}
	limit, err := parsePositiveQuery(c, "limit")
	if err != nil {
		return err
	}

	result, err := h.queries.ListRequests(c.Context(), page, limit)
	if err != nil {
		return err
	}

	items := make([]dto.RequestDetailResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.FromRequestDetail(&result.Items[i]))
	}
	return c.JSON(dto.RequestListResponse{
		Requests:    items,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

// GetRequest GET /requests/:requestId.
func (h *RequestsHandler) GetRequest(c *fiber.Ctx) error {
	detail, err := h.queries.GetRequestByID(c.Context(), c.Params("requestId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"request": dto.FromRequestDetail(detail)})
}

// ReviewRequest PUT /requests/:requestId.
func (h *RequestsHandler) ReviewRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("admin required")
	}

	var payload dto.ReviewRequestPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}

	request, err := h.review.ReviewRequest(c.Context(), c.Params("requestId"), payload.Status, principal.User.ID, payload.ReviewNote)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Request %s successfully", request.Status),
		"request": dto.FromRequest(request),
	})
}

// parsePositiveQuery reads a positive integer query parameter. Absent values
// return zero so services apply their defaults; malformed or non-positive
// values are rejected, not coerced.
func parsePositiveQuery(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return 0, apperrors.NewInvalidArgument(fmt.Sprintf("%s must be a positive integer", key), map[string]any{key: raw})
	}
	return parsed, nil
}
