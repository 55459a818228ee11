package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"techfix/auth"
	"techfix/cartstore"
	"techfix/checkout"
	"techfix/config"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected clients map with mutex for thread safety
var clients = make(map[*websocket.Conn]bool)
var broadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
var mutex = &sync.Mutex{}
var validate = validator.New()

// Deps carries everything the handlers need beyond the global DB handle.
type Deps struct {
	Cfg    config.Config
	Carts  cartstore.Store
	Flow   *checkout.Flow
	JWT    *auth.JWTManager
	Hasher *auth.PasswordHasher
}

var deps Deps

func SetupRoutes(app *fiber.App, d Deps) {
	deps = d

	wsHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		mutex.Lock()
		clients[conn] = true
		mutex.Unlock()
		log.Println("Client connected:", conn.RemoteAddr())

		// The hub only pushes change events; reads exist to detect closes.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				mutex.Lock()
				delete(clients, conn)
				mutex.Unlock()
				log.Println("Client disconnected:", conn.RemoteAddr())
				break
			}
		}
	})

	// Handle broadcasting change events to all clients
	go func() {
		for message := range broadcast {
			mutex.Lock()
			for client := range clients {
				err := client.WriteMessage(websocket.TextMessage, message)
				if err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
			mutex.Unlock()
		}
	}()

	// Mount WebSocket endpoint
	app.Get("/ws", wsHandler)
	// Image upload route
	app.Post("/upload", uploadImage)

	api := app.Group("/api")

	api.Post("/login", loginHandler)
	api.Post("/clients", issueClient)

	// Supplier routes
	suppliers := api.Group("/suppliers")
	suppliers.Post("/register", registerSupplier)
	suppliers.Post("/login", supplierLogin)
	suppliers.Get("/", getAllSuppliers)
	suppliers.Get("/:id", getSupplier)
	suppliers.Put("/:id", updateSupplier)
	suppliers.Delete("/:id", deleteSupplier)

	// Product routes
	products := api.Group("/products")
	products.Get("/search", searchProducts)
	products.Post("/", createProduct)
	products.Get("/", getAllProducts)
	products.Get("/:id", getProduct)
	products.Put("/:id", updateProduct)
	products.Delete("/:id", deleteProduct)

	// Quotation routes
	quotations := api.Group("/quotation")
	quotations.Post("/", createQuotation)
	quotations.Get("/", getAllQuotations)
	quotations.Get("/:id", getQuotation)
	quotations.Put("/:id", updateQuotation)
	quotations.Delete("/:id", deleteQuotation)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Post("/:productId", createReview)
	reviews.Get("/:productId", getReviews)
	reviews.Delete("/:id", deleteReview)

	// Cart routes
	cart := api.Group("/cart")
	cart.Get("/:clientId", getCart)
	cart.Put("/:clientId", putCart)
	cart.Delete("/:clientId", clearCart)

	// Compare routes
	compareGroup := api.Group("/compare")
	compareGroup.Get("/:clientId/table", getCompareTable)
	compareGroup.Get("/:clientId", getCompare)
	compareGroup.Post("/:clientId", addCompare)
	compareGroup.Delete("/:clientId/:productId", removeCompare)
	compareGroup.Delete("/:clientId", clearCompare)

	// Checkout routes
	api.Post("/create-payment-intent", createPaymentIntent)
	api.Post("/save-order", saveOrder)

	// Admin routes
	admin := api.Group("/admin", requireAdmin)
	adminOrders := admin.Group("/orders")
	adminOrders.Get("/", getAllOrders)
	adminOrders.Get("/:id", getOrder)
	adminOrders.Put("/:id", updateOrder)
	adminOrders.Delete("/:id", deleteOrder)
}

// NotifyChange pushes a cart/compare change event into the websocket hub.
// Delivery is best effort; events are dropped when the hub is saturated.
func NotifyChange(clientID, collection string) {
	event, err := json.Marshal(fiber.Map{
		"client_id":  clientID,
		"collection": collection,
	})
	if err != nil {
		return
	}
	select {
	case broadcast <- event:
	default:
	}
}

func requireAdmin(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing or malformed token",
		})
	}

	claims, err := deps.JWT.Validate(strings.TrimPrefix(header, prefix))
	if err != nil || claims.Role != auth.RoleAdmin {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}
	return c.Next()
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginHandler authenticates the admin identity configured through the
// environment. There is no hardcoded credential.
func loginHandler(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	admin := deps.Cfg.Admin
	if admin.PasswordHash == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Admin login is not configured",
		})
	}

	if req.Email != admin.Email || !deps.Hasher.Verify(req.Password, admin.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	token, err := deps.JWT.Generate(0, admin.Email, auth.RoleAdmin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// issueClient hands out the opaque id that keys a browser's cart and compare
// lists.
func issueClient(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"client_id": uuid.New().String(),
	})
}

// Image upload handler
func uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	// Generate unique filename
	ext := filepath.Ext(file.Filename)
	uniqueID := uuid.New().String()
	filename := uniqueID + ext
	dest := filepath.Join(deps.Cfg.UploadsDir, filename)

	// Save the file
	if err := c.SaveFile(file, dest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}

	// Return the file path that can be stored in the database
	return c.JSON(fiber.Map{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}
