package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fogafin/sief-api/internal/domain/entity"
)

// EntityRepository define el puerto de persistencia para las entidades financieras.
type EntityRepository interface {
	Create(e *entity.FinancialEntity) error
	GetByCode(code int) (*entity.FinancialEntity, error)
	// GetByCodeForUpdate bloquea la fila (SELECT ... FOR UPDATE) dentro de la
	// transacción activa; serializa transiciones concurrentes sobre la misma entidad.
	GetByCodeForUpdate(code int) (*entity.FinancialEntity, error)
	GetByNIT(nit string) (*entity.FinancialEntity, error)
	// NextCode asigna MAX(codigo)+1 dentro de la banda reservada. Debe llamarse
	// dentro de la transacción de registro para no repartir el mismo código dos veces.
	NextCode(bandStart, bandEnd int) (int, error)
	// NextTramiteNumber consecutivo anual del trámite.
	NextTramiteNumber(year int) (int, error)
	UpdateStatus(code, statusID int) error
	// SetInscribed fija estado y fecha de inscripción en una sola sentencia.
	SetInscribed(code, statusID int, inscriptionDate time.Time) error
	UpdateNIT(code int, nit string) error
	UpdateCapital(code int, capital, paidValue decimal.Decimal) error
	List(statusID *int, limit, offset int) ([]*entity.FinancialEntity, error)
}

// HistoryRepository historial de gestión append-only.
type HistoryRepository interface {
	Append(h *entity.StatusHistory) error
	ListByEntity(code int) ([]*entity.StatusHistory, error)
}

// AttachmentRepository soportes documentales.
type AttachmentRepository interface {
	Create(a *entity.Attachment) error
	GetByID(id string) (*entity.Attachment, error)
	ListByEntity(code int) ([]*entity.Attachment, error)
}

// PaymentRepository pagos reportados.
type PaymentRepository interface {
	Create(p *entity.Payment) error
	ListByEntity(code int) ([]*entity.Payment, error)
}

// EmailLogRepository log de correos (solo escritura).
type EmailLogRepository interface {
	Create(l *entity.EmailLog) error
}

// QuarterlyNoticeRepository notificaciones trimestrales pendientes.
type QuarterlyNoticeRepository interface {
	CreateBatch(notices []*entity.QuarterlyNotice) error
	DeletePendingByEntity(code int) error
}

// UserRepository tabla externa de autorización (solo lectura).
type UserRepository interface {
	GetByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
}
