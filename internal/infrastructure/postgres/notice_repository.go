package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ repository.QuarterlyNoticeRepository = (*QuarterlyNoticeRepo)(nil)

// QuarterlyNoticeRepo notificaciones trimestrales sobre PostgreSQL (usable con pool o tx).
type QuarterlyNoticeRepo struct {
	q Querier
}

// NewQuarterlyNoticeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuarterlyNoticeRepository(q Querier) *QuarterlyNoticeRepo {
	return &QuarterlyNoticeRepo{q: q}
}

// CreateBatch inserta las notificaciones generadas tras el registro.
func (r *QuarterlyNoticeRepo) CreateBatch(notices []*entity.QuarterlyNotice) error {
	query := `
		INSERT INTO notificaciones_trimestrales (id, entidad_codigo, trimestre, anio, pendiente, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, n := range notices {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}
		if _, err := r.q.Exec(context.Background(), query,
			n.ID, n.EntityCode, n.Quarter, n.Year, n.Pending, n.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert notificacion trimestral: %w", err)
		}
	}
	return nil
}

// DeletePendingByEntity elimina las notificaciones pendientes de la entidad
// (al aprobar documentos o rechazar la solicitud).
func (r *QuarterlyNoticeRepo) DeletePendingByEntity(code int) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM notificaciones_trimestrales WHERE entidad_codigo = $1 AND pendiente = true`, code)
	if err != nil {
		return fmt.Errorf("delete notificaciones pendientes: %w", err)
	}
	return nil
}
