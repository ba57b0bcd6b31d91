package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/mailer"
)

func TestSender_OrderConfirmation(t *testing.T) {
	m := &mailer.Mock{}
	s := NewSender(m, "shop@example.com", "Salt & Scoville", nil)

	err := s.OrderConfirmation(context.Background(), "ana@example.com", "Ana", OrderMail{
		Number:   "SS-20260101-ABC123",
		Lines:    []OrderLine{{Name: "Ghost <Reaper>", Qty: 2, LineTotal: "$25.98"}},
		Subtotal: "$25.98",
		Shipping: "$7.99",
		Total:    "$33.97",
		Points:   33,
	})
	require.NoError(t, err)

	sent := m.Messages()
	require.Len(t, sent, 1)
	e := sent[0]
	assert.Equal(t, []string{"ana@example.com"}, e.To)
	assert.Equal(t, "Order confirmed: SS-20260101-ABC123", e.Subject)
	assert.Contains(t, e.TextBody, "Total:    $33.97")
	assert.Contains(t, e.TextBody, "33 loyalty points")
	assert.NotContains(t, e.TextBody, "Discount")
	assert.Contains(t, e.HTMLBody, "Ghost &lt;Reaper&gt;")
}

func TestSender_WelcomeFallsBackOnEmptyName(t *testing.T) {
	m := &mailer.Mock{}
	s := NewSender(m, "shop@example.com", "", nil)

	require.NoError(t, s.Welcome(context.Background(), "x@example.com", "  "))
	assert.Contains(t, m.Messages()[0].TextBody, "Hi there,")
}

func TestSender_PropagatesMailerError(t *testing.T) {
	m := &mailer.Mock{Err: assert.AnError}
	s := NewSender(m, "shop@example.com", "", nil)

	err := s.Welcome(context.Background(), "x@example.com", "X")
	assert.ErrorIs(t, err, assert.AnError)
}
