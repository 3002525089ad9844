package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/payment"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const OrderExpiry = 30 * time.Minute

// Checkout abstracts the payment gateway for order creation.
type Checkout interface {
	CreateCheckoutSession(userEmail, orderNo, planName, planDescription, currency string, amount float64) (*CheckoutResult, error)
}

// CheckoutResult is what the gateway hands back for a fresh order.
type CheckoutResult struct {
	SessionID string
	URL       string
}

// stripeCheckout adapts the Stripe client to the Checkout interface.
type stripeCheckout struct {
	stripe *payment.StripeService
}

func NewStripeCheckout(s *payment.StripeService) Checkout {
	return &stripeCheckout{stripe: s}
}

func (c *stripeCheckout) CreateCheckoutSession(userEmail, orderNo, planName, planDescription, currency string, amount float64) (*CheckoutResult, error) {
	sess, err := c.stripe.CreateCheckoutSession(userEmail, orderNo, planName, planDescription, currency, amount)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// PaymentService owns the order lifecycle. All status transitions flow
// through ApplyNotification or CancelOrder; nothing else mutates orders.
type PaymentService struct {
	orders   OrderStore
	users    UserStore
	checkout Checkout
	logger   *zap.Logger
	now      func() time.Time
}

func NewPaymentService(orders OrderStore, users UserStore, checkout Checkout, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		orders:   orders,
		users:    users,
		checkout: checkout,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateOrder opens a pending order for the plan and a matching gateway
// checkout session. The order number, not the gateway session id, is our
// identity for the whole lifecycle.
func (s *PaymentService) CreateOrder(userID uint, req models.CreateOrderRequest) (*models.CheckoutSession, error) {
	plan, ok := models.Plans()[req.PlanID]
	if !ok {
		return nil, ErrUnknownPlan
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	orderNo := newOrderNo()
	order := &models.PaymentOrder{
		OrderNo:       orderNo,
		UserID:        user.ID,
		PlanID:        plan.ID,
		TierTarget:    plan.TierTarget,
		Amount:        plan.Price,
		Currency:      plan.Currency,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
		Description:   plan.Description,
		ExpiresAt:     s.now().Add(OrderExpiry),
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	result, err := s.checkout.CreateCheckoutSession(user.Email, orderNo, plan.Name, plan.Description, plan.Currency, plan.Price)
	if err != nil {
		// The order stays pending; the gateway will never confirm it and
		// it lapses at ExpiresAt.
		s.logger.Error("checkout session failed",
			zap.String("order_no", orderNo),
			zap.Error(err))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_no", orderNo),
		zap.Uint("user_id", user.ID),
		zap.String("plan", plan.ID))

	return &models.CheckoutSession{
		OrderNo: orderNo,
		ID:      result.SessionID,
		URL:     result.URL,
	}, nil
}

// ApplyNotification is the single entry point for gateway callbacks. It is
// idempotent: replayed and out-of-order notifications are absorbed as
// no-ops, never errors, so the gateway always gets its acknowledgement.
func (s *PaymentService) ApplyNotification(n payment.Notification) error {
	switch n.Status {
	case payment.NotifyPaid:
		applied, err := s.orders.CompletePending(n.OrderNo, n.PlatformRef, s.now())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("payment notification for unknown order", zap.String("order_no", n.OrderNo))
				return nil
			}
			return err
		}
		if !applied {
			s.logger.Info("duplicate payment notification ignored", zap.String("order_no", n.OrderNo))
			return nil
		}
		s.logger.Info("order paid", zap.String("order_no", n.OrderNo))
		return nil

	case payment.NotifyFailed:
		applied, err := s.orders.TransitionPending(n.OrderNo, models.OrderStatusFailed, n.PlatformRef)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if applied {
			s.logger.Info("order failed", zap.String("order_no", n.OrderNo))
		}
		return nil

	case payment.NotifyRefunded:
		applied, err := s.orders.RefundPaid(n.OrderNo, n.PlatformRef)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if applied {
			s.logger.Info("order refunded", zap.String("order_no", n.OrderNo))
		}
		return nil
	}

	s.logger.Warn("unknown notification status",
		zap.String("order_no", n.OrderNo),
		zap.String("status", string(n.Status)))
	return nil
}

// CancelOrder lets the owner abandon a pending order. Paid and otherwise
// settled orders are not cancellable from here.
func (s *PaymentService) CancelOrder(userID uint, orderNo string) error {
	order, err := s.orders.GetByOrderNo(orderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if order.UserID != userID {
		return ErrUnauthorized
	}
	if order.Status != models.OrderStatusPending {
		return ErrNotCancellable
	}

	applied, err := s.orders.TransitionPending(orderNo, models.OrderStatusCancelled, "")
	if err != nil {
		return err
	}
	if !applied {
		// Someone settled the order between our read and the update.
		return ErrNotCancellable
	}

	s.logger.Info("order cancelled", zap.String("order_no", orderNo), zap.Uint("user_id", userID))
	return nil
}

// GetOrder returns an order to its owner.
func (s *PaymentService) GetOrder(userID uint, orderNo string) (*models.PaymentOrder, error) {
	order, err := s.orders.GetByOrderNo(orderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrUnauthorized
	}
	return order, nil
}

// GetUserOrders lists the user's orders, newest first.
func (s *PaymentService) GetUserOrders(userID uint) ([]models.PaymentOrder, error) {
	return s.orders.GetUserOrders(userID)
}

// GetLedger lists the user's tier-affecting payment history.
func (s *PaymentService) GetLedger(userID uint) ([]models.PaymentLedger, error) {
	return s.orders.GetLedgerEntries(userID)
}

// ListPlans exposes the static plan catalog.
func (s *PaymentService) ListPlans() []models.Plan {
	plans := models.Plans()
	out := make([]models.Plan, 0, len(plans))
	for _, id := range []string{"monthly", "yearly"} {
		if p, ok := plans[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func newOrderNo() string {
	return "PM" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}
