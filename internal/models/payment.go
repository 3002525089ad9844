package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Terminal reports whether no further transition may leave this status.
// Refunded is reachable from paid only; everything else is reachable from
// pending only.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed ||
		s == OrderStatusCancelled || s == OrderStatusRefunded
}

// PaymentOrder rows are never deleted; they are the financial audit trail.
type PaymentOrder struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	OrderNo       string      `json:"order_no" gorm:"unique;not null;size:40"`
	UserID        uint        `json:"user_id" gorm:"not null;index"`
	PlanID        string      `json:"plan_id" gorm:"not null"`
	TierTarget    int         `json:"tier_target" gorm:"not null"`
	Amount        float64     `json:"amount" gorm:"not null"`
	Currency      string      `json:"currency" gorm:"not null;default:'USD'"`
	PaymentMethod string      `json:"payment_method" gorm:"not null"`
	Status        OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	PlatformRef   string      `json:"platform_ref"`
	Description   string      `json:"description"`
	PaidAt        *time.Time  `json:"paid_at"`
	ExpiresAt     time.Time   `json:"expires_at"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// PaymentLedger is the append-only record of every tier-affecting payment
// event. Exactly one entry is written per paid order.
type PaymentLedger struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderNo    string    `json:"order_no" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Amount     float64   `json:"amount" gorm:"not null"`
	TierBefore int       `json:"tier_before" gorm:"not null"`
	TierAfter  int       `json:"tier_after" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Plan is a purchasable membership option. Plans are static configuration,
// not database rows.
type Plan struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Period      string  `json:"period"`
	TierTarget  int     `json:"tier_target"`
	Description string  `json:"description"`
}

func Plans() map[string]Plan {
	return map[string]Plan{
		"monthly": {
			ID:          "monthly",
			Name:        "Monthly membership",
			Price:       29.90,
			Currency:    "USD",
			Period:      "1 month",
			TierTarget:  1,
			Description: "Unlimited memorials and photos, AI letters, data export",
		},
		"yearly": {
			ID:          "yearly",
			Name:        "Yearly membership",
			Price:       299.00,
			Currency:    "USD",
			Period:      "12 months",
			TierTarget:  2,
			Description: "Everything in Premium plus custom domains and themes",
		},
	}
}

type CreateOrderRequest struct {
	PlanID        string `json:"plan_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=stripe"`
}

type CheckoutSession struct {
	OrderNo string `json:"order_no"`
	ID      string `json:"id"`
	URL     string `json:"url"`
}
