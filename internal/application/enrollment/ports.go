package enrollment

import (
	"context"

	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

// TxRunner puerto de transacciones para el registro: asignación de código,
// entidad, soportes, pago inicial e historial inicial se confirman juntos.
type TxRunner interface {
	RunEnrollment(ctx context.Context, fn func(
		entities repository.EntityRepository,
		history repository.HistoryRepository,
		attachments repository.AttachmentRepository,
		payments repository.PaymentRepository,
	) error) error
}

// SummaryPDFGenerator puerto del generador del resumen PDF de la solicitud.
// La implementación concreta usa Maroto; para tests se puede inyectar un mock.
type SummaryPDFGenerator interface {
	GenerateSummary(ctx context.Context, e *entity.FinancialEntity, attachments []*entity.Attachment) ([]byte, error)
}
