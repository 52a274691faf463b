package lifecycle

import (
	"context"

	"github.com/fogafin/sief-api/internal/domain/repository"
)

// TxRunner puerto de transacciones de las transiciones de estado: cambio de
// estado, fila de historial y limpieza de notificaciones pendientes se
// confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entities repository.EntityRepository,
		history repository.HistoryRepository,
		notices repository.QuarterlyNoticeRepository,
	) error) error
}
