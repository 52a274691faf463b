package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos reportados sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago. El monto viaja como NUMERIC vía el codec de decimal.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	attachmentID := (*string)(nil)
	if p.AttachmentID != "" {
		attachmentID = &p.AttachmentID
	}
	query := `
		INSERT INTO pagos (id, entidad_codigo, valor, fecha_pago, soporte_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.EntityCode, p.Amount, p.PaymentDate, attachmentID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// ListByEntity pagos de una entidad.
func (r *PaymentRepo) ListByEntity(code int) ([]*entity.Payment, error) {
	query := `
		SELECT id, entidad_codigo, valor, fecha_pago, COALESCE(soporte_id, ''), created_at
		FROM pagos WHERE entidad_codigo = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.EntityCode, &p.Amount, &p.PaymentDate, &p.AttachmentID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
