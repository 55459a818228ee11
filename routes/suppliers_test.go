package routes

import (
	"net/http"
	"testing"

	"techfix/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(code, email string) fiber.Map {
	return fiber.Map{
		"code":     code,
		"name":     "Acme Components",
		"email":    email,
		"password": "super-secret-1",
		"address":  "1 Factory Rd",
		"phone":    "+100000000000",
	}
}

func TestRegisterSupplier(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	resp := ts.request(t, http.MethodPost, "/api/suppliers/register", registerBody("ACME", "acme@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var supplier models.Supplier
	decodeBody(t, resp, &supplier)
	assert.Equal(t, "ACME", supplier.Code)
	assert.Empty(t, supplier.PasswordHash, "hash never serialized")
}

func TestRegisterSupplier_DuplicateEmailOrCode(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	resp := ts.request(t, http.MethodPost, "/api/suppliers/register", registerBody("ACME", "acme@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same email, different code.
	resp = ts.request(t, http.MethodPost, "/api/suppliers/register", registerBody("OTHER", "acme@example.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Same code, different email.
	resp = ts.request(t, http.MethodPost, "/api/suppliers/register", registerBody("ACME", "other@example.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSupplierLogin(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	resp := ts.request(t, http.MethodPost, "/api/suppliers/register", registerBody("ACME", "acme@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.request(t, http.MethodPost, "/api/suppliers/login", fiber.Map{
		"email":    "acme@example.com",
		"password": "super-secret-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body SupplierLoginResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "acme@example.com", body.Supplier.Email)

	resp = ts.request(t, http.MethodPost, "/api/suppliers/login", fiber.Map{
		"email":    "acme@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminLogin(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	resp := ts.request(t, http.MethodPost, "/api/login", fiber.Map{
		"email":    "admin@techfix.local",
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)

	resp = ts.request(t, http.MethodPost, "/api/login", fiber.Map{
		"email":    "admin@techfix.local",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetSupplier_NotFound(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	resp := ts.request(t, http.MethodGet, "/api/suppliers/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
