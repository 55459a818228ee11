package routes

import (
	"techfix/cartstore"
	"techfix/compare"
	"techfix/db"
	"techfix/models"

	"github.com/gofiber/fiber/v2"
)

type CartRequest struct {
	Items []cartstore.CartItem `json:"items" validate:"dive"`
}

func getCart(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	total, _, err := deps.Flow.CartTotal(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	items, err := deps.Carts.GetCart(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
		"total": total,
	})
}

// putCart replaces the cart wholesale; the snapshots sent by the client are
// stored as-is and never reconciled against live product rows.
func putCart(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	var req CartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	if err := deps.Carts.SetCart(c.Context(), clientID, req.Items); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save cart: " + err.Error(),
		})
	}

	total, _, err := deps.Flow.CartTotal(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recompute cart total: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"items": req.Items,
		"total": total,
	})
}

func clearCart(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	if err := deps.Carts.ClearCart(c.Context(), clientID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear cart: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart cleared successfully",
	})
}

type CompareAddRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

// addCompare snapshots the product server-side at add time; later edits to
// the product do not touch the stored snapshot.
func addCompare(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	var req CompareAddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "product_id is required",
		})
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	snapshot := cartstore.ProductSnapshot{
		ProductID:  product.ID,
		Name:       product.Name,
		Category:   product.Category,
		Price:      product.Price,
		SalePrice:  product.SalePrice,
		Stock:      product.Stock,
		Image:      product.Image,
		Attributes: product.Attributes,
	}

	if err := deps.Carts.AddCompare(c.Context(), clientID, snapshot); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add to compare list: " + err.Error(),
		})
	}

	snapshots, err := deps.Carts.GetCompare(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get compare list: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(snapshots)
}

func getCompare(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	snapshots, err := deps.Carts.GetCompare(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get compare list: " + err.Error(),
		})
	}

	return c.JSON(snapshots)
}

func getCompareTable(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	snapshots, err := deps.Carts.GetCompare(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get compare list: " + err.Error(),
		})
	}

	return c.JSON(compare.BuildTable(snapshots))
}

func removeCompare(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	productID, err := c.ParamsInt("productId")
	if err != nil || productID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	if err := deps.Carts.RemoveCompare(c.Context(), clientID, uint(productID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove from compare list: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product removed from compare list",
	})
}

func clearCompare(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	if err := deps.Carts.ClearCompare(c.Context(), clientID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear compare list: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Compare list cleared successfully",
	})
}
