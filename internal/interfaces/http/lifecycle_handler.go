package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/application/lifecycle"
)

// LifecycleHandler maneja las transiciones de estado del trámite.
type LifecycleHandler struct {
	uc *lifecycle.UseCase
}

// NewLifecycleHandler construye el handler.
func NewLifecycleHandler(uc *lifecycle.UseCase) *LifecycleHandler {
	return &LifecycleHandler{uc: uc}
}

type lifecycleOp func(ctx context.Context, in dto.LifecycleRequest, actingUser string) (*dto.LifecycleResponse, error)

// handle parsea y valida el cuerpo común de todas las transiciones.
func (h *LifecycleHandler) handle(c *fiber.Ctx, op lifecycleOp) error {
	var in dto.LifecycleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := op(c.Context(), in, GetUserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ApproveDocuments aprueba la validación documental (12 -> 13).
// POST /api/AprobarDocumentos
func (h *LifecycleHandler) ApproveDocuments(c *fiber.Ctx) error {
	return h.handle(c, h.uc.ApproveDocuments)
}

// ConfirmPayment confirma el pago de la prima (13 -> 14).
// POST /api/ConfirmarPago
func (h *LifecycleHandler) ConfirmPayment(c *fiber.Ctx) error {
	return h.handle(c, h.uc.ConfirmPayment)
}

// ApproveInscription aprueba la inscripción definitiva (14 -> 15).
// POST /api/AprobarInscripcion
func (h *LifecycleHandler) ApproveInscription(c *fiber.Ctx) error {
	return h.handle(c, h.uc.ApproveInscription)
}

// Reject rechaza la solicitud desde cualquier estado no terminal (-> 1).
// POST /api/RechazarInscripcion
func (h *LifecycleHandler) Reject(c *fiber.Ctx) error {
	return h.handle(c, h.uc.Reject)
}
