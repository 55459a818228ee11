package routes

import (
	"techfix/db"
	"techfix/models"

	"github.com/gofiber/fiber/v2"
)

func createReview(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	var product models.Product
	if err := db.DB.First(&product, productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	review := new(models.Review)
	if err := c.BodyParser(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	review.ProductID = uint(productID)

	if err := validate.Struct(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	if err := db.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// getReviews lists a product's reviews, newest first. No rollup (average
// rating etc.) is computed here; that is left to presentation code.
func getReviews(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	var reviews []models.Review
	if err := db.DB.Where("product_id = ?", productID).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reviews: " + err.Error(),
		})
	}

	return c.JSON(reviews)
}

// deleteReview removes a review by id unconditionally; there is no ownership
// check. An unknown id is an explicit 404.
func deleteReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	if err := db.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete review: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted successfully",
	})
}
