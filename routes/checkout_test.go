package routes

import (
	"net/http"
	"testing"

	"techfix/models"
	"techfix/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillCart(t *testing.T, ts *testSetup, clientID string, items []fiber.Map) {
	t.Helper()
	resp := ts.request(t, http.MethodPut, "/api/cart/"+clientID, fiber.Map{"items": items})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatePaymentIntent_EmptyCart(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	resp := ts.request(t, http.MethodPost, "/api/create-payment-intent", fiber.Map{
		"client_id": "c1",
		"name":      "Ada",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Cart is empty.", body.Error)
	assert.Equal(t, 0, ts.provider.CreateCalls)
}

func TestCreatePaymentIntent_BelowMinimum(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	fillCart(t, ts, "c1", []fiber.Map{
		{"product_id": 1, "name": "Washer", "price": "0.20", "quantity": 1},
	})

	resp := ts.request(t, http.MethodPost, "/api/create-payment-intent", fiber.Map{
		"client_id": "c1",
		"name":      "Ada",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Error, "minimum")
	assert.Equal(t, 0, ts.provider.CreateCalls, "no external call before the threshold check")
}

func TestCreatePaymentIntent_Succeeds(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	fillCart(t, ts, "c1", []fiber.Map{
		{"product_id": 1, "name": "SSD", "price": "100", "quantity": 2},
	})

	resp := ts.request(t, http.MethodPost, "/api/create-payment-intent", fiber.Map{
		"client_id": "c1",
		"name":      "Ada",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		PaymentIntentID string `json:"payment_intent_id"`
		ClientSecret    string `json:"client_secret"`
		AmountCents     int64  `json:"amount_cents"`
		State           string `json:"state"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.PaymentIntentID)
	assert.NotEmpty(t, body.ClientSecret)
	assert.Equal(t, int64(20000), body.AmountCents)
	assert.Equal(t, "intent_created", body.State)
}

func TestSaveOrder_EndToEnd(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	product := seedProduct(t, "SSD", "storage", "100", 10)
	fillCart(t, ts, "c1", []fiber.Map{
		{"product_id": product.ID, "name": "SSD", "price": "100", "quantity": 2},
	})

	resp := ts.request(t, http.MethodPost, "/api/create-payment-intent", fiber.Map{
		"client_id": "c1",
		"name":      "Ada",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var intent struct {
		PaymentIntentID string `json:"payment_intent_id"`
	}
	decodeBody(t, resp, &intent)

	resp = ts.request(t, http.MethodPost, "/api/save-order", fiber.Map{
		"client_id":         "c1",
		"payment_intent_id": intent.PaymentIntentID,
		"name":              "Ada",
		"email":             "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Order models.Order `json:"order"`
		State string       `json:"state"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "order_saved", body.State)
	assert.Equal(t, models.OrderStatusPending, body.Order.Status)
	require.Len(t, body.Order.OrderItems, 1)

	// Cart cleared after the order is durable.
	resp = ts.request(t, http.MethodGet, "/api/cart/c1", nil)
	var cart struct {
		Items []fiber.Map `json:"items"`
	}
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)
}

func TestSaveOrder_UnconfirmedPaymentLeavesCart(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	product := seedProduct(t, "SSD", "storage", "100", 10)
	fillCart(t, ts, "c1", []fiber.Map{
		{"product_id": product.ID, "name": "SSD", "price": "100", "quantity": 1},
	})

	resp := ts.request(t, http.MethodPost, "/api/create-payment-intent", fiber.Map{
		"client_id": "c1",
		"name":      "Ada",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var intent struct {
		PaymentIntentID string `json:"payment_intent_id"`
	}
	decodeBody(t, resp, &intent)

	ts.provider.ConfirmStatus = payment.StatusRequiresPaymentMethod
	resp = ts.request(t, http.MethodPost, "/api/save-order", fiber.Map{
		"client_id":         "c1",
		"payment_intent_id": intent.PaymentIntentID,
		"name":              "Ada",
		"email":             "ada@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.request(t, http.MethodGet, "/api/cart/c1", nil)
	var cart struct {
		Items []fiber.Map `json:"items"`
	}
	decodeBody(t, resp, &cart)
	assert.Len(t, cart.Items, 1, "failure leaves the cart untouched")
}
