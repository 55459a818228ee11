// Package checkout drives order submission: Idle → IntentCreated →
// PaymentConfirmed → OrderSaved, with PaymentFailed as the terminal failure
// state. Nothing is retried automatically; a failed step leaves the cart
// untouched and the user must resubmit.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"techfix/cartstore"
	"techfix/models"
	"techfix/payment"
	"techfix/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type State string

const (
	StateIdle             State = "idle"
	StateIntentCreated    State = "intent_created"
	StatePaymentConfirmed State = "payment_confirmed"
	StateOrderSaved       State = "order_saved"
	StatePaymentFailed    State = "payment_failed"
)

var (
	ErrCartEmpty           = errors.New("Cart is empty.")
	ErrNoIdentity          = errors.New("customer name and email are required")
	ErrPaymentNotConfirmed = errors.New("payment has not been confirmed")
	ErrBelowMinimum        = errors.New("amount below minimum charge")
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c Customer) resolved() bool {
	return c.Name != "" && c.Email != ""
}

type Flow struct {
	db       *gorm.DB
	carts    cartstore.Store
	provider payment.Provider
	minCents int64
}

func NewFlow(db *gorm.DB, carts cartstore.Store, provider payment.Provider, minChargeCents int64) *Flow {
	return &Flow{db: db, carts: carts, provider: provider, minCents: minChargeCents}
}

// CartTotal recomputes the cart total from the snapshots currently stored for
// the client. Sale prices take precedence over list prices.
func (f *Flow) CartTotal(ctx context.Context, clientID string) (decimal.Decimal, []pricing.Line, error) {
	items, err := f.carts.GetCart(ctx, clientID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		unit := item.Price
		if item.SalePrice.IsPositive() {
			unit = item.SalePrice
		}
		lines = append(lines, pricing.Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: unit,
		})
	}
	return pricing.Total(lines), lines, nil
}

// CreateIntent moves the flow from Idle to IntentCreated. Guards run in
// order: non-empty cart, resolved identity, minimum charge. All of them are
// checked before any call to the payment collaborator.
func (f *Flow) CreateIntent(ctx context.Context, clientID string, customer Customer) (*payment.Intent, error) {
	total, lines, err := f.CartTotal(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	if !customer.resolved() {
		return nil, ErrNoIdentity
	}

	amountCents := toCents(total)
	if amountCents < f.minCents {
		return nil, fmt.Errorf("%w: got %d cents, minimum is %d cents", ErrBelowMinimum, amountCents, f.minCents)
	}

	return f.provider.CreateIntent(ctx, amountCents, "usd", map[string]string{
		"client_id":      clientID,
		"customer_email": customer.Email,
	})
}

// SaveOrder completes the flow. It requires the provider to report the intent
// as succeeded, then writes the order and its items in one transaction,
// decrementing stock per line, and finally clears the cart. A payment that is
// not confirmed leaves the cart untouched.
func (f *Flow) SaveOrder(ctx context.Context, clientID, intentID string, customer Customer) (*models.Order, error) {
	if !customer.resolved() {
		return nil, ErrNoIdentity
	}

	status, err := f.provider.ConfirmResult(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if status != payment.StatusSucceeded {
		return nil, fmt.Errorf("%w: provider status %q", ErrPaymentNotConfirmed, status)
	}

	total, lines, err := f.CartTotal(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	order := models.Order{
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		Total:           total,
		Status:          models.OrderStatusPending,
		PaymentIntentID: intentID,
	}

	tx := f.db.WithContext(ctx).Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	var orderItems []models.OrderItem
	for _, line := range lines {
		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("product %d not found", line.ProductID)
		}
		if uint(line.Quantity) > product.Stock {
			tx.Rollback()
			return nil, fmt.Errorf("insufficient stock for product %d", line.ProductID)
		}
		orderItems = append(orderItems, models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := tx.Create(&orderItems).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	for _, item := range orderItems {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update product stock: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	// The order is durable at this point; a cart-clear failure is not worth
	// failing the request over.
	if err := f.carts.ClearCart(ctx, clientID); err != nil {
		log.Printf("order %d saved but cart %s not cleared: %v", order.ID, clientID, err)
	}

	var fullOrder models.Order
	if err := f.db.WithContext(ctx).Preload("OrderItems").First(&fullOrder, order.ID).Error; err != nil {
		return nil, fmt.Errorf("order created but failed to load full details: %w", err)
	}
	return &fullOrder, nil
}

// StateFor maps a provider status onto the flow's state machine.
func StateFor(status payment.Status) State {
	switch status {
	case payment.StatusSucceeded:
		return StatePaymentConfirmed
	case payment.StatusCanceled:
		return StatePaymentFailed
	default:
		return StateIntentCreated
	}
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
