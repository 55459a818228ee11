package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"techfix/auth"
	"techfix/cartstore"
	"techfix/checkout"
	"techfix/config"
	"techfix/db"
	"techfix/models"
	"techfix/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminPassword = "admin-secret-123"

type testSetup struct {
	app      *fiber.App
	carts    cartstore.Store
	provider *payment.Fake
	jwt      *auth.JWTManager
	cleanup  func()
}

func setupTest(t *testing.T) *testSetup {
	t.Helper()

	dbPath := "test_routes_" + t.Name() + ".db"
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Supplier{}, &models.Product{}, &models.Quotation{}, &models.QuotationItem{},
		&models.Review{}, &models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	db.DB = gdb

	hasher := auth.NewPasswordHasher()
	adminHash, err := hasher.Hash(testAdminPassword)
	if err != nil {
		t.Fatalf("Failed to hash admin password: %v", err)
	}

	carts := cartstore.NewMemoryStore()
	provider := payment.NewFake()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	cfg := config.Config{
		UploadsDir:     t.TempDir(),
		JWTSecret:      "test-secret",
		MinChargeCents: 50,
		Admin: config.AdminConfig{
			Email:        "admin@techfix.local",
			PasswordHash: adminHash,
		},
	}

	app := fiber.New()
	SetupRoutes(app, Deps{
		Cfg:    cfg,
		Carts:  carts,
		Flow:   checkout.NewFlow(gdb, carts, provider, cfg.MinChargeCents),
		JWT:    jwtManager,
		Hasher: hasher,
	})

	cleanup := func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return &testSetup{app: app, carts: carts, provider: provider, jwt: jwtManager, cleanup: cleanup}
}

func (ts *testSetup) request(t *testing.T, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (ts *testSetup) authedRequest(t *testing.T, method, target string, body interface{}) *http.Response {
	t.Helper()

	token, err := ts.jwt.Generate(0, "admin@techfix.local", auth.RoleAdmin)
	require.NoError(t, err)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func dbUpdateAttributes(id uint, attrs map[string]string) error {
	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		return err
	}
	product.Attributes = attrs
	return db.DB.Save(&product).Error
}

func seedProduct(t *testing.T, name, category, price string, stock uint) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
	require.NoError(t, db.DB.Create(&product).Error)
	return product
}
