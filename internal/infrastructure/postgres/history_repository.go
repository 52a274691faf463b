package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial de gestión sobre PostgreSQL (usable con pool o tx).
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Append inserta una fila del historial. La tabla es append-only: no hay Update ni Delete.
func (r *HistoryRepo) Append(h *entity.StatusHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO historial_estados (id, entidad_codigo, estado_anterior_id, estado_nuevo_id, usuario, observaciones, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.EntityCode, h.PreviousStatusID, h.NewStatusID, h.ActingUser, h.Observations, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert historial: %w", err)
	}
	return nil
}

// ListByEntity devuelve el historial de la entidad en orden cronológico,
// con los nombres de estado resueltos contra la tabla de consulta.
func (r *HistoryRepo) ListByEntity(code int) ([]*entity.StatusHistory, error) {
	query := `
		SELECT h.id, h.entidad_codigo, h.estado_anterior_id, sa.nombre, h.estado_nuevo_id, sn.nombre,
			h.usuario, h.observaciones, h.created_at
		FROM historial_estados h
		JOIN estados sa ON sa.id = h.estado_anterior_id
		JOIN estados sn ON sn.id = h.estado_nuevo_id
		WHERE h.entidad_codigo = $1
		ORDER BY h.created_at`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusHistory
	for rows.Next() {
		var h entity.StatusHistory
		if err := rows.Scan(
			&h.ID, &h.EntityCode, &h.PreviousStatusID, &h.PreviousStatusName,
			&h.NewStatusID, &h.NewStatusName, &h.ActingUser, &h.Observations, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
