package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/application/query"
)

// QueryHandler maneja las consultas de solo lectura.
type QueryHandler struct {
	uc *query.UseCase
}

// NewQueryHandler construye el handler.
func NewQueryHandler(uc *query.UseCase) *QueryHandler {
	return &QueryHandler{uc: uc}
}

// Detail detalle denormalizado de la entidad con soportes y pagos.
// GET /api/ConsultarDetalleEntidad/:codigo
func (h *QueryHandler) Detail(c *fiber.Ctx) error {
	code, err := parseCode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}
	resp, err := h.uc.Detail(code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// History historial de gestión de la entidad en orden cronológico.
// GET /api/ConsultarHistorialGestion/:codigo
func (h *QueryHandler) History(c *fiber.Ctx) error {
	code, err := parseCode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}
	resp, err := h.uc.History(code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List lista entidades con filtro opcional por estado (?estado=) y paginación.
// GET /api/ConsultarEntidades
func (h *QueryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	if err := validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}

	var statusID *int
	if raw := c.Query("estado"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
		}
		statusID = &n
	}

	resp, err := h.uc.List(statusID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Download descarga el contenido binario de un soporte.
// GET /api/DescargarSoporte/:id
func (h *QueryHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	a, content, err := h.uc.DownloadAttachment(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", a.Filename))
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(content)
}

// Users lista los usuarios de la tabla de autorización.
// GET /api/ConsultarUsuarios
func (h *QueryHandler) Users(c *fiber.Ctx) error {
	resp, err := h.uc.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ValidateUser verifica que un email esté autorizado y activo.
// GET /api/ValidarUsuario/:email
func (h *QueryHandler) ValidateUser(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email requerido"})
	}
	resp, err := h.uc.ValidateUser(email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func parseCode(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("codigo"))
}
