package handlers

import "github.com/gofiber/fiber/v2"

// Responses mirror the public contract: every body carries "mensaje".

func errNoDB(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"mensaje": "Sin base de datos",
	})
}

// errInterno never echoes the underlying error; details stay in the log.
func errInterno(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"mensaje": "Error interno",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"mensaje": msg,
	})
}
