package routes

import (
	"techfix/db"
	"techfix/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

type SearchResponse struct {
	Products []models.Product `json:"products"`
}

func createProduct(c *fiber.Ctx) error {
	product := new(models.Product)
	if err := c.BodyParser(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if product.Price.IsNegative() || product.SalePrice.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price cannot be negative",
		})
	}

	// Validate the SupplierID if provided
	if product.SupplierID != 0 {
		var supplier models.Supplier
		if err := db.DB.First(&supplier, product.SupplierID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Supplier not found",
			})
		}
	}

	if err := db.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func searchProducts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter 'q' is required",
		})
	}

	var products []models.Product

	// Step 1: Search by product name
	if err := db.DB.Preload("Supplier").
		Where("name LIKE ?", "%"+query+"%").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products: " + err.Error(),
		})
	}

	if len(products) > 0 {
		return c.JSON(SearchResponse{Products: products})
	}

	// Step 2: Search by category
	if err := db.DB.Preload("Supplier").
		Where("category LIKE ?", "%"+query+"%").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products by category: " + err.Error(),
		})
	}

	if len(products) > 0 {
		return c.JSON(SearchResponse{Products: products})
	}

	// Step 3: Search by supplier name
	var supplierIDs []uint
	if err := db.DB.Model(&models.Supplier{}).
		Where("name LIKE ?", "%"+query+"%").
		Pluck("id", &supplierIDs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search suppliers: " + err.Error(),
		})
	}

	if len(supplierIDs) > 0 {
		if err := db.DB.Preload("Supplier").
			Where("supplier_id IN ?", supplierIDs).Find(&products).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to get products by supplier: " + err.Error(),
			})
		}
	}

	// Return the products (could be empty if no matches found)
	return c.JSON(SearchResponse{Products: products})
}

func getAllProducts(c *fiber.Ctx) error {
	var total int64
	var products []models.Product

	limitStr := c.Query("limit")
	skipStr := c.Query("skip")
	category := c.Query("category")
	supplierID := c.Query("supplier_id")

	var limit, skip int

	// Default values
	limit = -1 // No limit unless specified
	skip = 0   // Default skip to 0

	if limitStr != "" {
		limit = c.QueryInt("limit", 0)
		if limit < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid limit parameter",
			})
		}
	}

	if skipStr != "" {
		skip = c.QueryInt("skip", 0)
		if skip < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid skip parameter",
			})
		}
	}

	dbQuery := db.DB.Preload("Supplier")

	if category != "" {
		dbQuery = dbQuery.Where("category = ?", category)
	}
	if supplierID != "" {
		dbQuery = dbQuery.Where("supplier_id = ?", supplierID)
	}

	if err := dbQuery.Model(&models.Product{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count products: " + err.Error(),
		})
	}

	if skip > 0 {
		dbQuery = dbQuery.Offset(skip)
	}
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	} else {
		dbQuery = dbQuery.Limit(int(total)) // Fetch all after skip
	}

	if err := dbQuery.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products: " + err.Error(),
		})
	}

	return c.JSON(ProductResponse{
		Products: products,
		Total:    int(total),
		Skip:     skip,
		Limit:    limit,
	})
}

func getProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	var product models.Product

	if err := db.DB.Preload("Supplier").First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(product)
}

func updateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	product := new(models.Product)

	if err := c.BodyParser(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var existingProduct models.Product
	if err := db.DB.First(&existingProduct, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	if product.Price.IsNegative() || product.SalePrice.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price cannot be negative",
		})
	}

	// Validate the SupplierID if provided
	if product.SupplierID != 0 {
		var supplier models.Supplier
		if err := db.DB.First(&supplier, product.SupplierID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Supplier not found",
			})
		}
	}

	db.DB.Model(&models.Product{}).Where("id = ?", id).Updates(product)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
	})
}

func deleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := db.DB.Delete(&models.Product{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
