package routes

import (
	"techfix/db"
	"techfix/models"

	"github.com/gofiber/fiber/v2"
)

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int            `json:"total"`
	Skip   int            `json:"skip"`
	Limit  int            `json:"limit"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func getAllOrders(c *fiber.Ctx) error {
	var total int64
	var orders []models.Order

	limitStr := c.Query("limit")
	skipStr := c.Query("skip")
	status := c.Query("status")

	limit := -1
	skip := 0

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

	dbQuery := db.DB.Preload("OrderItems")
	if status != "" {
		if !models.ValidOrderStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status filter",
			})
		}
		dbQuery = dbQuery.Where("status = ?", status)
	}

	if err := dbQuery.Model(&models.Order{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count orders: " + err.Error(),
		})
	}

	if skip > 0 {
		dbQuery = dbQuery.Offset(skip)
	}
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	} else {
		dbQuery = dbQuery.Limit(int(total))
	}

	if err := dbQuery.Order("created_at DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders: " + err.Error(),
		})
	}

	return c.JSON(OrderListResponse{
		Orders: orders,
		Total:  int(total),
		Skip:   skip,
		Limit:  limit,
	})
}

func getOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	var order models.Order

	if err := db.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(order)
}

// updateOrder sets the status directly; there is no transition workflow.
func updateOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	var req OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil || !models.ValidOrderStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be one of Pending, Processing, Delivered, Cancelled",
		})
	}

	if err := db.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order updated successfully",
	})
}

func deleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	tx := db.DB.Begin()
	if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order items: " + err.Error(),
		})
	}
	if err := tx.Delete(&models.Order{}, id).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order: " + err.Error(),
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}
