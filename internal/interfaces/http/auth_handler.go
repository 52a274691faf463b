package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fogafin/sief-api/internal/application/auth"
	"github.com/fogafin/sief-api/internal/application/dto"
)

// AuthHandler maneja la emisión de tokens.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login emite un token para un usuario autorizado.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := h.uc.Login(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
