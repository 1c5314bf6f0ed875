// Package response writes the JSON bodies shared by every handler.
package response

import (
	domainErrors "shipfee/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// Domain writes a DomainError as {"error", "code", "field"}.
func Domain(c *fiber.Ctx, status int, err *domainErrors.DomainError) error {
	body := fiber.Map{
		"error": err.Message,
		"code":  err.Code,
	}
	if err.Field != "" {
		body["field"] = err.Field
	}
	return c.Status(status).JSON(body)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// UnprocessableEntity writes a 422 with message as "error" plus any extra
// fields.
func UnprocessableEntity(c *fiber.Ctx, message string, extra fiber.Map) error {
	body := fiber.Map{"error": message}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
}
