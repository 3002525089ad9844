package payment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/price"
	"github.com/stripe/stripe-go/v74/product"
	"github.com/stripe/stripe-go/v74/webhook"
)

// NotificationStatus is the normalized outcome a gateway reports for an
// order. Every gateway callback is reduced to this shape before it reaches
// the payment service.
type NotificationStatus string

const (
	NotifyPaid     NotificationStatus = "paid"
	NotifyFailed   NotificationStatus = "failed"
	NotifyRefunded NotificationStatus = "refunded"
)

// Notification is the gateway-independent payload handed to
// PaymentService.ApplyNotification.
type Notification struct {
	OrderNo     string
	Status      NotificationStatus
	PlatformRef string
}

type StripeService struct {
	secretKey string
}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey: secretKey,
	}
}

// CreateCheckoutSession builds a one-off product/price pair for the plan
// and opens a checkout session carrying our order number in the metadata.
func (s *StripeService) CreateCheckoutSession(userEmail, orderNo, planName, planDescription, currency string, amount float64) (*stripe.CheckoutSession, error) {
	productParams := &stripe.ProductParams{
		Name:        stripe.String(planName),
		Description: stripe.String(planDescription),
	}
	prod, err := product.New(productParams)
	if err != nil {
		return nil, err
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(int64(amount * 100)),
		Currency:   stripe.String(currency),
	}
	p, err := price.New(priceParams)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		CustomerEmail: &userEmail,
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.ID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(os.Getenv("FRONTEND_URL") + "/payment/success?order=" + orderNo),
		CancelURL:  stripe.String(os.Getenv("FRONTEND_URL") + "/payment/cancelled?order=" + orderNo),
	}
	params.AddMetadata("order_no", orderNo)
	params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
		Metadata: map[string]string{
			"order_no": orderNo,
		},
	}

	return session.New(params)
}

// VerifyWebhook checks the Stripe signature before any event is trusted.
func (s *StripeService) VerifyWebhook(payload []byte, signatureHeader, webhookSecret string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signatureHeader, webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
}

// NormalizeEvent maps a verified Stripe event onto the gateway-independent
// notification shape. Events that do not concern our orders return ok=false.
func (s *StripeService) NormalizeEvent(event *stripe.Event) (Notification, bool, error) {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return Notification{}, false, fmt.Errorf("invalid checkout session payload: %w", err)
		}
		orderNo := sess.Metadata["order_no"]
		if orderNo == "" {
			return Notification{}, false, nil
		}
		return Notification{OrderNo: orderNo, Status: NotifyPaid, PlatformRef: sess.ID}, true, nil

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return Notification{}, false, fmt.Errorf("invalid checkout session payload: %w", err)
		}
		orderNo := sess.Metadata["order_no"]
		if orderNo == "" {
			return Notification{}, false, nil
		}
		return Notification{OrderNo: orderNo, Status: NotifyFailed, PlatformRef: sess.ID}, true, nil

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return Notification{}, false, fmt.Errorf("invalid charge payload: %w", err)
		}
		if charge.PaymentIntent == nil || charge.PaymentIntent.Metadata == nil {
			return Notification{}, false, nil
		}
		orderNo := charge.PaymentIntent.Metadata["order_no"]
		if orderNo == "" {
			return Notification{}, false, nil
		}
		return Notification{OrderNo: orderNo, Status: NotifyRefunded, PlatformRef: charge.ID}, true, nil
	}

	return Notification{}, false, nil
}
