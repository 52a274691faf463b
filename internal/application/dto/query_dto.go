package dto

import "github.com/shopspring/decimal"

// AttachmentResponse soporte en respuestas de consulta.
type AttachmentResponse struct {
	ID            string `json:"id"`
	TipoDocumento string `json:"tipo_documento"`
	NombreArchivo string `json:"nombre_archivo"`
	URL           string `json:"url"`
	PagoID        string `json:"pago_id,omitempty"`
}

// PaymentResponse pago en respuestas de consulta.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Valor     decimal.Decimal `json:"valor"`
	FechaPago string          `json:"fecha_pago"`
	SoporteID string          `json:"soporte_id,omitempty"`
}

// EntityDetailResponse vista denormalizada para GET /api/ConsultarDetalleEntidad/:codigo.
// El estado actual sale de la columna de la entidad (fuente única de verdad).
type EntityDetailResponse struct {
	Codigo              int                  `json:"codigo"`
	Tramite             string               `json:"tramite"`
	Nombre              string               `json:"nombre"`
	NIT                 string               `json:"nit"`
	Sector              string               `json:"sector"`
	TipoEntidad         string               `json:"tipo_entidad"`
	FechaConstitucion   string               `json:"fecha_constitucion"`
	CapitalSuscrito     decimal.Decimal      `json:"capital_suscrito"`
	ValorPagado         decimal.Decimal      `json:"valor_pagado"`
	RepresentanteNombre string               `json:"representante_nombre"`
	RepresentanteEmail  string               `json:"representante_email"`
	Telefono            string               `json:"telefono,omitempty"`
	Direccion           string               `json:"direccion,omitempty"`
	Ciudad              string               `json:"ciudad,omitempty"`
	EstadoID            int                  `json:"estado_id"`
	Estado              string               `json:"estado"`
	FechaInscripcion    string               `json:"fecha_inscripcion,omitempty"`
	Soportes            []AttachmentResponse `json:"soportes"`
	Pagos               []PaymentResponse    `json:"pagos"`
}

// HistoryEntryResponse fila del historial de gestión.
type HistoryEntryResponse struct {
	EstadoAnteriorID int    `json:"estado_anterior_id"`
	EstadoAnterior   string `json:"estado_anterior"`
	EstadoNuevoID    int    `json:"estado_nuevo_id"`
	EstadoNuevo      string `json:"estado_nuevo"`
	Usuario          string `json:"usuario"`
	Observaciones    string `json:"observaciones,omitempty"`
	Fecha            string `json:"fecha"`
}

// EntitySummaryResponse fila de GET /api/ConsultarEntidades.
type EntitySummaryResponse struct {
	Codigo   int    `json:"codigo"`
	Tramite  string `json:"tramite"`
	Nombre   string `json:"nombre"`
	NIT      string `json:"nit"`
	EstadoID int    `json:"estado_id"`
	Estado   string `json:"estado"`
}

// UserResponse usuario de la tabla de autorización.
type UserResponse struct {
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	Area   string `json:"area"`
	Activo bool   `json:"activo"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido tras verificar las credenciales contra la tabla de autorización.
type LoginResponse struct {
	Token string `json:"token"`
	Rol   string `json:"rol"`
	Area  string `json:"area"`
}
