package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ repository.AttachmentRepository = (*AttachmentRepo)(nil)

// AttachmentRepo soportes documentales sobre PostgreSQL (usable con pool o tx).
type AttachmentRepo struct {
	q Querier
}

// NewAttachmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

// Create persiste la referencia del soporte (el contenido vive en blob storage).
func (r *AttachmentRepo) Create(a *entity.Attachment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	paymentID := (*string)(nil)
	if a.PaymentID != "" {
		paymentID = &a.PaymentID
	}
	query := `
		INSERT INTO soportes (id, entidad_codigo, tipo_documento, nombre_archivo, blob_url, pago_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.EntityCode, a.DocumentType, a.Filename, a.BlobURL, paymentID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert soporte: %w", err)
	}
	return nil
}

// GetByID obtiene un soporte por su identificador.
func (r *AttachmentRepo) GetByID(id string) (*entity.Attachment, error) {
	query := `
		SELECT id, entidad_codigo, tipo_documento, nombre_archivo, blob_url, COALESCE(pago_id, ''), created_at
		FROM soportes WHERE id = $1`
	var a entity.Attachment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.EntityCode, &a.DocumentType, &a.Filename, &a.BlobURL, &a.PaymentID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get soporte: %w", err)
	}
	return &a, nil
}

// ListByEntity soportes de una entidad.
func (r *AttachmentRepo) ListByEntity(code int) ([]*entity.Attachment, error) {
	query := `
		SELECT id, entidad_codigo, tipo_documento, nombre_archivo, blob_url, COALESCE(pago_id, ''), created_at
		FROM soportes WHERE entidad_codigo = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("list soportes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attachment
	for rows.Next() {
		var a entity.Attachment
		if err := rows.Scan(&a.ID, &a.EntityCode, &a.DocumentType, &a.Filename, &a.BlobURL, &a.PaymentID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan soporte: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
