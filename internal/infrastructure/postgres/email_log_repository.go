package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ repository.EmailLogRepository = (*EmailLogRepo)(nil)

// bodyExcerptLimit longitud máxima del cuerpo que se guarda en el log.
const bodyExcerptLimit = 500

// EmailLogRepo log de correos sobre PostgreSQL. Solo escritura: la aplicación
// nunca lee esta tabla.
type EmailLogRepo struct {
	q Querier
}

// NewEmailLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmailLogRepository(q Querier) *EmailLogRepo {
	return &EmailLogRepo{q: q}
}

// Create inserta la fila de auditoría del envío.
func (r *EmailLogRepo) Create(l *entity.EmailLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	excerpt := truncateExcerpt(l.BodyExcerpt)
	query := `
		INSERT INTO log_correos (id, entidad_codigo, destinatarios, asunto, cuerpo, resultado, detalle_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.EntityCode, strings.Join(l.Recipients, ";"), l.Subject, excerpt, l.Outcome, l.ErrorDetail, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log_correos: %w", err)
	}
	return nil
}

// truncateExcerpt recorta el cuerpo al límite sin partir una runa: los cuerpos
// llevan texto en español (multibyte) y un corte por bytes produce UTF-8
// inválido que PostgreSQL rechaza.
func truncateExcerpt(body string) string {
	if len(body) <= bodyExcerptLimit {
		return body
	}
	cut := bodyExcerptLimit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
