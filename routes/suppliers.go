package routes

import (
	"techfix/auth"
	"techfix/db"
	"techfix/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierRegisterRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type SupplierLoginResponse struct {
	Message  string          `json:"message"`
	Token    string          `json:"token"`
	Supplier models.Supplier `json:"supplier"`
}

func registerSupplier(c *fiber.Ctx) error {
	var req SupplierRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	// Email and supplier code are unique across all suppliers
	var existing models.Supplier
	if err := db.DB.Where("email = ? OR code = ?", req.Email, req.Code).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check supplier: " + err.Error(),
			})
		}
	} else {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email or supplier code already in use",
		})
	}

	hash, err := deps.Hasher.Hash(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password: " + err.Error(),
		})
	}

	supplier := models.Supplier{
		Code:         req.Code,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		Phone:        req.Phone,
	}

	if err := db.DB.Create(&supplier).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email or supplier code already in use",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create supplier: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(supplier)
}

func supplierLogin(c *fiber.Ctx) error {
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

	var supplier models.Supplier
	if err := db.DB.Where("email = ?", req.Email).First(&supplier).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	if !deps.Hasher.Verify(req.Password, supplier.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	token, err := deps.JWT.Generate(supplier.ID, supplier.Email, auth.RoleSupplier)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token: " + err.Error(),
		})
	}

	return c.JSON(SupplierLoginResponse{
		Message:  "Login successful",
		Token:    token,
		Supplier: supplier,
	})
}

func getAllSuppliers(c *fiber.Ctx) error {
	var suppliers []models.Supplier

	if err := db.DB.Find(&suppliers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get suppliers: " + err.Error(),
		})
	}

	return c.JSON(suppliers)
}

func getSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	var supplier models.Supplier

	if err := db.DB.Preload("Products").First(&supplier, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Supplier not found",
		})
	}

	return c.JSON(supplier)
}

func updateSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	supplier := new(models.Supplier)

	if err := c.BodyParser(supplier); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var existingSupplier models.Supplier
	if err := db.DB.First(&existingSupplier, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Supplier not found",
		})
	}

	// Check uniqueness when email or code changes
	if supplier.Email != "" || supplier.Code != "" {
		var conflicting models.Supplier
		if err := db.DB.Where("(email = ? OR code = ?) AND id != ?", supplier.Email, supplier.Code, id).
			First(&conflicting).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to check supplier: " + err.Error(),
				})
			}
		} else {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email or supplier code already in use by another supplier",
			})
		}
	}

	// Password changes go through the hasher, never straight into the column.
	supplier.PasswordHash = ""

	if err := db.DB.Model(&existingSupplier).Updates(supplier).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update supplier: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Supplier updated successfully",
	})
}

func deleteSupplier(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := db.DB.Delete(&models.Supplier{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete supplier: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Supplier deleted successfully",
	})
}
