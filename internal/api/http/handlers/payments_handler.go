package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deckflow-admin/internal/api/dto"
	"github.com/spec-kit/deckflow-admin/internal/service"
	apperrors "github.com/spec-kit/deckflow-admin/pkg/util"
)

// PaymentsHandler serves payout actions and revenue metrics.
type PaymentsHandler struct {
	notifications *service.NotificationService
	payments      *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(notifications *service.NotificationService, payments *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{notifications: notifications, payments: payments}
}

// PendingPayouts GET /payments/payouts/latest.
func (h *PaymentsHandler) PendingPayouts(c *fiber.Ctx) error {
	payouts, err := h.notifications.PendingPayouts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromPayouts(payouts))
}

// PayoutHistory GET /payments/payouts/history.
func (h *PaymentsHandler) PayoutHistory(c *fiber.Ctx) error {
	history, err := h.notifications.PayoutHistory(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromPayouts(history))
}

// RejectPayout POST /payments/payouts/reject.
func (h *PaymentsHandler) RejectPayout(c *fiber.Ctx) error {
	var payload dto.RejectPayoutPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	if err := h.notifications.RejectPayout(c.Context(), payload.TransactionID, payload.Reason); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Payout rejected successfully"})
}

// MonthlyRevenue GET /payments/revenue/monthly.
func (h *PaymentsHandler) MonthlyRevenue(c *fiber.Ctx) error {
	year, err := parseYearQuery(c)
	if err != nil {
		return err
	}
	buckets, err := h.payments.MonthlyRevenue(c.Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromRevenueBuckets(buckets))
}

// QuarterlyRevenue GET /payments/revenue/quarterly.
func (h *PaymentsHandler) QuarterlyRevenue(c *fiber.Ctx) error {
	year, err := parseYearQuery(c)
	if err != nil {
		return err
	}
	buckets, err := h.payments.QuarterlyRevenue(c.Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromRevenueBuckets(buckets))
}

// TotalRevenue GET /payments/revenue/total.
func (h *PaymentsHandler) TotalRevenue(c *fiber.Ctx) error {
	total, err := h.payments.TotalRevenue(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"total": total})
}

// PackageDistribution GET /payments/dashboard-packages.
func (h *PaymentsHandler) PackageDistribution(c *fiber.Ctx) error {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewInvalidArgument("year must be numeric", map[string]any{"year": raw})
		}
		year = parsed
	}
	result, err := h.payments.PackageDistribution(c.Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}

func parseYearQuery(c *fiber.Ctx) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewInvalidArgument("year must be numeric", map[string]any{"year": raw})
	}
	return parsed, nil
}
