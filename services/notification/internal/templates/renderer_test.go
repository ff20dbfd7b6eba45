package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)
	return r
}

func TestRenderer_OrderConfirmationInterpolatesOrderID(t *testing.T) {
	// Arrange
	r := newRenderer(t)

	// Act
	rendered, err := r.Render("order_confirmation", map[string]any{"order_id": "ord_9f3b21ac07de"})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Order Confirmation - #ord_9f3b21ac07de", rendered.Subject)
	require.Equal(t, "Thank you for your order! Your order #ord_9f3b21ac07de has been confirmed.", rendered.Body)
}

func TestRenderer_PaymentReceiptInterpolatesAmount(t *testing.T) {
	// Arrange
	r := newRenderer(t)

	// Act
	rendered, err := r.Render("payment_receipt", map[string]any{"amount": 109.98})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Payment Receipt - $109.98", rendered.Subject)
	require.Equal(t, "Your payment of $109.98 has been processed successfully.", rendered.Body)
}

func TestRenderer_LowStockAlertInterpolatesProductID(t *testing.T) {
	// Arrange
	r := newRenderer(t)

	// Act
	rendered, err := r.Render("low_stock_alert", map[string]any{"product_id": "prod_002", "current_stock": float64(3)})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Low Stock Alert - prod_002", rendered.Subject)
	require.Equal(t, "Product prod_002 is running low on stock.", rendered.Body)
}

func TestRenderer_StaticTemplatesIgnoreData(t *testing.T) {
	// Arrange
	r := newRenderer(t)

	// Act
	rendered, err := r.Render("profile_updated", nil)

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Profile Updated", rendered.Subject)
	require.Equal(t, "Your profile has been updated successfully.", rendered.Body)
}

func TestRenderer_UnknownNameFallsBackToWelcome(t *testing.T) {
	// Arrange
	r := newRenderer(t)

	// Act
	rendered, err := r.Render("black_friday_blast", nil)

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Welcome to GoShopSim!", rendered.Subject)
	require.Equal(t, "Thank you for signing up!", rendered.Body)
}

func TestRenderer_NamesKeepDeclarationOrder(t *testing.T) {
	// Arrange
	r := newRenderer(t)

	// Act
	names := r.Names()

	// Assert
	require.Equal(t, []string{
		"order_confirmation",
		"payment_receipt",
		"profile_updated",
		"password_reset",
		"welcome",
		"low_stock_alert",
	}, names)
}

func TestRenderer_Has(t *testing.T) {
	// Arrange
	r := newRenderer(t)

	// Assert
	require.True(t, r.Has("welcome"))
	require.True(t, r.Has(FallbackName))
	require.False(t, r.Has("black_friday_blast"))
}
