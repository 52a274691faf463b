package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attachment soporte documental asociado a la entidad, almacenado en blob storage
// y referenciado por URL. Puede estar ligado a un pago.
type Attachment struct {
	ID           string
	EntityCode   int
	DocumentType string // "certificado_constitucion", "estados_financieros", "soporte_pago", ...
	Filename     string
	BlobURL      string
	PaymentID    string // opcional
	CreatedAt    time.Time
}

// Payment pago reportado por la entidad (prima de inscripción u otros).
type Payment struct {
	ID           string
	EntityCode   int
	Amount       decimal.Decimal
	PaymentDate  time.Time
	AttachmentID string // opcional: soporte del pago
	CreatedAt    time.Time
}
