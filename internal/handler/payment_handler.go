package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/internal/service"
	"github.com/pawmemo/pawmemo-backend/pkg/payment"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments      *service.PaymentService
	stripe        *payment.StripeService
	webhookSecret string
	validator     *utils.Validator
	logger        *zap.Logger
}

func NewPaymentHandler(payments *service.PaymentService, stripe *payment.StripeService, webhookSecret string, validator *utils.Validator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments:      payments,
		stripe:        stripe,
		webhookSecret: webhookSecret,
		validator:     validator,
		logger:        logger,
	}
}

func (h *PaymentHandler) GetPlans(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.payments.ListPlans(), ""))
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	checkout, err := h.payments.CreateOrder(userID, req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPlan) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unknown plan"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not create order"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(checkout, "Order created"))
}

func (h *PaymentHandler) GetOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	order, err := h.payments.GetOrder(userID, c.Params("orderNo"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Order not found"))
		case errors.Is(err, service.ErrUnauthorized):
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Not your order"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load order"))
	}
	return c.JSON(models.SuccessResponse(order, ""))
}

func (h *PaymentHandler) GetMyOrders(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	orders, err := h.payments.GetUserOrders(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load orders"))
	}
	return c.JSON(models.SuccessResponse(orders, ""))
}

func (h *PaymentHandler) GetLedger(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	entries, err := h.payments.GetLedger(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not load payment history"))
	}
	return c.JSON(models.SuccessResponse(entries, ""))
}

func (h *PaymentHandler) CancelOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := h.payments.CancelOrder(userID, c.Params("orderNo")); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Order not found"))
		case errors.Is(err, service.ErrUnauthorized):
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Not your order"))
		case errors.Is(err, service.ErrNotCancellable):
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("Only pending orders can be cancelled"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not cancel order"))
	}

	return c.JSON(models.SuccessResponse(nil, "Order cancelled"))
}

// StripeWebhook is the gateway callback. Signature first, then the event
// is normalized and applied; anything we have already processed is
// acknowledged again so Stripe stops retrying.
func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	event, err := h.stripe.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid signature"))
	}

	notification, ok, err := h.stripe.NormalizeEvent(&event)
	if err != nil {
		h.logger.Error("webhook payload rejected", zap.String("event_type", string(event.Type)), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid payload"))
	}
	if !ok {
		return c.JSON(models.SuccessResponse(nil, "Event ignored"))
	}

	if err := h.payments.ApplyNotification(notification); err != nil {
		h.logger.Error("failed to apply payment notification",
			zap.String("order_no", notification.OrderNo),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Processing failed"))
	}

	return c.JSON(models.SuccessResponse(nil, "OK"))
}
