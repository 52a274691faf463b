package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/application/enrollment"
)

// EnrollmentHandler maneja el registro de entidades, la actualización de
// capital y la carga de soportes y pagos.
type EnrollmentHandler struct {
	register *enrollment.RegisterEntityUseCase
	capital  *enrollment.UpdateCapitalUseCase
	upload   *enrollment.UploadUseCase
}

// NewEnrollmentHandler construye el handler.
func NewEnrollmentHandler(
	register *enrollment.RegisterEntityUseCase,
	capital *enrollment.UpdateCapitalUseCase,
	upload *enrollment.UploadUseCase,
) *EnrollmentHandler {
	return &EnrollmentHandler{register: register, capital: capital, upload: upload}
}

// Register registra una solicitud de inscripción.
// POST /api/RegistrarEntidad
func (h *EnrollmentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterEntityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := h.register.Register(c.Context(), in, GetUserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateCapital actualiza el capital suscrito y recalcula el valor pagado.
// PUT /api/ActualizarCapital
func (h *EnrollmentHandler) UpdateCapital(c *fiber.Ctx) error {
	var in dto.UpdateCapitalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := h.capital.Update(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UploadAttachment carga un soporte documental al blob storage.
// POST /api/CargarSoporte
func (h *EnrollmentHandler) UploadAttachment(c *fiber.Ctx) error {
	var in dto.UploadAttachmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := h.upload.UploadAttachment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterPayment registra un pago reportado, con soporte opcional.
// POST /api/RegistrarPago
func (h *EnrollmentHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := h.upload.RegisterPayment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
