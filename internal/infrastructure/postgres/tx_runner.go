package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fogafin/sief-api/internal/application/enrollment"
	"github.com/fogafin/sief-api/internal/application/lifecycle"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ lifecycle.TxRunner = (*TxRunner)(nil)
var _ enrollment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es el camino de las transiciones de estado: entidad + historial + notificaciones
// pendientes se escriben juntos o no se escriben.
func (r *TxRunner) Run(ctx context.Context, fn func(
	entities repository.EntityRepository,
	history repository.HistoryRepository,
	notices repository.QuarterlyNoticeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entities := NewEntityRepository(tx)
	history := NewHistoryRepository(tx)
	notices := NewQuarterlyNoticeRepository(tx)

	if err := fn(entities, history, notices); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunEnrollment inicia una transacción con los repos del registro de entidades
// (asignación de código, entidad, soportes, pago inicial e historial inicial).
func (r *TxRunner) RunEnrollment(ctx context.Context, fn func(
	entities repository.EntityRepository,
	history repository.HistoryRepository,
	attachments repository.AttachmentRepository,
	payments repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entities := NewEntityRepository(tx)
	history := NewHistoryRepository(tx)
	attachments := NewAttachmentRepository(tx)
	payments := NewPaymentRepository(tx)

	if err := fn(entities, history, attachments, payments); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
