package payment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
)

func checkoutEvent(t *testing.T, eventType string, metadata map[string]string) *stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":       "cs_test_1",
		"metadata": metadata,
	})
	require.NoError(t, err)
	return &stripe.Event{
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestNormalizeCheckoutCompleted(t *testing.T) {
	s := &StripeService{}

	n, ok, err := s.NormalizeEvent(checkoutEvent(t, "checkout.session.completed", map[string]string{"order_no": "PM123"}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PM123", n.OrderNo)
	assert.Equal(t, NotifyPaid, n.Status)
	assert.Equal(t, "cs_test_1", n.PlatformRef)
}

func TestNormalizeCheckoutFailed(t *testing.T) {
	s := &StripeService{}

	for _, eventType := range []string{"checkout.session.expired", "checkout.session.async_payment_failed"} {
		n, ok, err := s.NormalizeEvent(checkoutEvent(t, eventType, map[string]string{"order_no": "PM123"}))
		require.NoError(t, err)
		require.True(t, ok, eventType)
		assert.Equal(t, NotifyFailed, n.Status)
	}
}

func TestNormalizeChargeRefunded(t *testing.T) {
	s := &StripeService{}

	raw, err := json.Marshal(map[string]interface{}{
		"id": "ch_1",
		"payment_intent": map[string]interface{}{
			"id":       "pi_1",
			"metadata": map[string]string{"order_no": "PM123"},
		},
	})
	require.NoError(t, err)

	n, ok, err := s.NormalizeEvent(&stripe.Event{
		Type: "charge.refunded",
		Data: &stripe.EventData{Raw: raw},
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PM123", n.OrderNo)
	assert.Equal(t, NotifyRefunded, n.Status)
	assert.Equal(t, "ch_1", n.PlatformRef)
}

func TestNormalizeIgnoresForeignEvents(t *testing.T) {
	s := &StripeService{}

	// No order number means the session is not one of ours.
	_, ok, err := s.NormalizeEvent(checkoutEvent(t, "checkout.session.completed", nil))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.NormalizeEvent(checkoutEvent(t, "customer.created", map[string]string{"order_no": "PM123"}))
	require.NoError(t, err)
	assert.False(t, ok)
}
