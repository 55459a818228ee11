package routes

import (
	"fmt"
	"time"

	"techfix/db"
	"techfix/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type QuotationItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

type QuotationRequest struct {
	Items []QuotationItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuotationResponse carries the persisted items plus the total derived from
// them. The total is never stored.
type QuotationResponse struct {
	ID        uint                   `json:"id"`
	Items     []models.QuotationItem `json:"items"`
	Total     decimal.Decimal        `json:"total"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func quotationResponse(q models.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:        q.ID,
		Items:     q.Items,
		Total:     q.Total(),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func orderedItems(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC")
}

// buildQuotationItems snapshots the product name and effective unit price for
// every requested line, preserving request order via Position.
func buildQuotationItems(tx *gorm.DB, quotationID uint, items []QuotationItemRequest) ([]models.QuotationItem, error) {
	out := make([]models.QuotationItem, 0, len(items))
	for i, item := range items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			return nil, fmt.Errorf("Product %d not found", item.ProductID)
		}
		out = append(out, models.QuotationItem{
			QuotationID: quotationID,
			ProductID:   product.ID,
			Name:        product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.EffectivePrice(),
			Position:    i,
		})
	}
	return out, nil
}

func createQuotation(c *fiber.Ctx) error {
	var req QuotationRequest
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

	quotation := models.Quotation{}

	tx := db.DB.Begin()
	if err := tx.Create(&quotation).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create quotation: " + err.Error(),
		})
	}

	items, err := buildQuotationItems(tx, quotation.ID, req.Items)
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create quotation items: " + err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	var fullQuotation models.Quotation
	if err := db.DB.Preload("Items", orderedItems).First(&fullQuotation, quotation.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Quotation created but failed to load full details",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(quotationResponse(fullQuotation))
}

func getAllQuotations(c *fiber.Ctx) error {
	var quotations []models.Quotation

	if err := db.DB.Preload("Items", orderedItems).Find(&quotations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get quotations: " + err.Error(),
		})
	}

	responses := make([]QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		responses = append(responses, quotationResponse(q))
	}
	return c.JSON(responses)
}

func getQuotation(c *fiber.Ctx) error {
	id := c.Params("id")
	var quotation models.Quotation

	if err := db.DB.Preload("Items", orderedItems).First(&quotation, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quotation not found",
		})
	}

	return c.JSON(quotationResponse(quotation))
}

// updateQuotation is a full edit-and-resubmit: the line items are replaced
// wholesale, there is no partial save.
func updateQuotation(c *fiber.Ctx) error {
	id := c.Params("id")

	var quotation models.Quotation
	if err := db.DB.First(&quotation, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quotation not found",
		})
	}

	var req QuotationRequest
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

	tx := db.DB.Begin()
	if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&models.QuotationItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to replace quotation items: " + err.Error(),
		})
	}

	items, err := buildQuotationItems(tx, quotation.ID, req.Items)
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create quotation items: " + err.Error(),
		})
	}

	if err := tx.Model(&quotation).Update("updated_at", time.Now()).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update quotation: " + err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	var fullQuotation models.Quotation
	if err := db.DB.Preload("Items", orderedItems).First(&fullQuotation, quotation.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Quotation updated but failed to load full details",
		})
	}

	return c.JSON(quotationResponse(fullQuotation))
}

func deleteQuotation(c *fiber.Ctx) error {
	id := c.Params("id")

	tx := db.DB.Begin()
	if err := tx.Where("quotation_id = ?", id).Delete(&models.QuotationItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete quotation items: " + err.Error(),
		})
	}
	if err := tx.Delete(&models.Quotation{}, id).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete quotation: " + err.Error(),
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Quotation deleted successfully",
	})
}
