package routes

import (
	"errors"

	"techfix/checkout"

	"github.com/gofiber/fiber/v2"
)

type PaymentIntentRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type SaveOrderRequest struct {
	ClientID        string `json:"client_id" validate:"required"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
}

func createPaymentIntent(c *fiber.Ctx) error {
	var req PaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "client_id is required",
		})
	}

	customer := checkout.Customer{Name: req.Name, Email: req.Email}
	intent, err := deps.Flow.CreateIntent(c.Context(), req.ClientID, customer)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCartEmpty),
			errors.Is(err, checkout.ErrNoIdentity),
			errors.Is(err, checkout.ErrBelowMinimum):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			// Provider failures are surfaced verbatim.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
		"amount_cents":      intent.AmountCents,
		"state":             checkout.StateIntentCreated,
	})
}

func saveOrder(c *fiber.Ctx) error {
	var req SaveOrderRequest
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

	customer := checkout.Customer{Name: req.Name, Email: req.Email}
	order, err := deps.Flow.SaveOrder(c.Context(), req.ClientID, req.PaymentIntentID, customer)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCartEmpty),
			errors.Is(err, checkout.ErrNoIdentity),
			errors.Is(err, checkout.ErrPaymentNotConfirmed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order": order,
		"state": checkout.StateOrderSaved,
	})
}
