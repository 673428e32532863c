package responses

import "github.com/gofiber/fiber/v2"

// ApiResponse is the envelope every endpoint returns. List endpoints carry
// their pagination metadata (page, pages, count) inside Result.
type ApiResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Result  *fiber.Map `json:"result,omitempty"`
}

// Error writes a failure envelope with the given status and message.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ApiResponse{
		Success: false,
		Message: message,
	})
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, message string, result *fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(ApiResponse{
		Success: true,
		Message: message,
		Result:  result,
	})
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, message string, result *fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(ApiResponse{
		Success: true,
		Message: message,
		Result:  result,
	})
}
