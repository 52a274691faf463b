package dto

import "github.com/shopspring/decimal"

// AttachmentPayload archivo codificado en base64 dentro del cuerpo JSON.
type AttachmentPayload struct {
	TipoDocumento   string `json:"tipo_documento" validate:"required"`
	NombreArchivo   string `json:"nombre_archivo" validate:"required"`
	ContenidoBase64 string `json:"contenido_base64" validate:"required"`
}

// PaymentPayload pago reportado (opcionalmente con su soporte).
type PaymentPayload struct {
	Valor     decimal.Decimal    `json:"valor" validate:"required"`
	FechaPago string             `json:"fecha_pago" validate:"required"` // YYYY-MM-DD
	Soporte   *AttachmentPayload `json:"soporte,omitempty"`
}

// RegisterEntityRequest body para POST /api/RegistrarEntidad.
type RegisterEntityRequest struct {
	Nombre              string              `json:"nombre" validate:"required"`
	NIT                 string              `json:"nit" validate:"required"`
	Sector              string              `json:"sector" validate:"required"`
	TipoEntidad         string              `json:"tipo_entidad" validate:"required"`
	FechaConstitucion   string              `json:"fecha_constitucion" validate:"required"` // YYYY-MM-DD
	CapitalSuscrito     decimal.Decimal     `json:"capital_suscrito" validate:"required"`
	RepresentanteNombre string              `json:"representante_nombre" validate:"required"`
	RepresentanteEmail  string              `json:"representante_email" validate:"required,email"`
	Telefono            string              `json:"telefono,omitempty"`
	Direccion           string              `json:"direccion,omitempty"`
	Ciudad              string              `json:"ciudad,omitempty"`
	Soportes            []AttachmentPayload `json:"soportes" validate:"omitempty,dive"`
	PagoInicial         *PaymentPayload     `json:"pago_inicial,omitempty"`
}

// RegisterEntityResponse identificadores asignados al trámite.
type RegisterEntityResponse struct {
	Codigo        int    `json:"codigo"`
	NumeroTramite int    `json:"numero_tramite"`
	Anio          int    `json:"anio"`
	Tramite       string `json:"tramite"` // "TR-<año>-<consecutivo>"
	EstadoID      int    `json:"estado_id"`
	ResumenPDFURL string `json:"resumen_pdf_url,omitempty"`
}

// UpdateCapitalRequest body para PUT /api/ActualizarCapital.
type UpdateCapitalRequest struct {
	Codigo          int             `json:"codigo" validate:"required"`
	CapitalSuscrito decimal.Decimal `json:"capital_suscrito" validate:"required"`
}

// UpdateCapitalResponse capital y valor pagado recalculado.
type UpdateCapitalResponse struct {
	Codigo          int             `json:"codigo"`
	CapitalSuscrito decimal.Decimal `json:"capital_suscrito"`
	ValorPagado     decimal.Decimal `json:"valor_pagado"`
}

// UploadAttachmentRequest body para POST /api/CargarSoporte.
type UploadAttachmentRequest struct {
	Codigo  int               `json:"codigo" validate:"required"`
	Soporte AttachmentPayload `json:"soporte" validate:"required"`
	PagoID  string            `json:"pago_id,omitempty"`
}

// UploadAttachmentResponse referencia del soporte almacenado.
type UploadAttachmentResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	NombreArchivo string `json:"nombre_archivo"`
}

// RegisterPaymentRequest body para POST /api/RegistrarPago.
type RegisterPaymentRequest struct {
	Codigo int            `json:"codigo" validate:"required"`
	Pago   PaymentPayload `json:"pago" validate:"required"`
}

// RegisterPaymentResponse identificadores del pago (y soporte, si se cargó).
type RegisterPaymentResponse struct {
	ID         string `json:"id"`
	SoporteID  string `json:"soporte_id,omitempty"`
	SoporteURL string `json:"soporte_url,omitempty"`
}
