package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ repository.EntityRepository = (*EntityRepo)(nil)

// EntityRepo implementación de EntityRepository sobre PostgreSQL (usable con pool o tx).
type EntityRepo struct {
	q Querier
}

// NewEntityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntityRepository(q Querier) *EntityRepo {
	return &EntityRepo{q: q}
}

const entityColumns = `codigo, numero_tramite, anio_tramite, nombre, nit, sector, tipo_entidad,
		fecha_constitucion, capital_suscrito, valor_pagado, representante_nombre, representante_email,
		telefono, direccion, ciudad, estado_id, fecha_inscripcion, created_at, updated_at`

// Create persiste una nueva entidad. NIT duplicado -> domain.ErrNITAlreadyExists.
func (r *EntityRepo) Create(e *entity.FinancialEntity) error {
	query := `
		INSERT INTO entidades (` + entityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		e.Code, e.TramiteNumber, e.TramiteYear, e.Name, e.NIT, e.Sector, e.EntityType,
		e.ConstitutionDate, e.Capital, e.PaidValue, e.RepresentativeName, e.RepresentativeEmail,
		e.ContactPhone, e.Address, e.City, e.StatusID, e.InscriptionDate, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNITAlreadyExists
		}
		return fmt.Errorf("insert entidad: %w", err)
	}
	return nil
}

// GetByCode obtiene la entidad con el nombre de su estado actual.
func (r *EntityRepo) GetByCode(code int) (*entity.FinancialEntity, error) {
	query := `
		SELECT e.codigo, e.numero_tramite, e.anio_tramite, e.nombre, e.nit, e.sector, e.tipo_entidad,
			e.fecha_constitucion, e.capital_suscrito, e.valor_pagado, e.representante_nombre, e.representante_email,
			e.telefono, e.direccion, e.ciudad, e.estado_id, s.nombre, e.fecha_inscripcion, e.created_at, e.updated_at
		FROM entidades e
		JOIN estados s ON s.id = e.estado_id
		WHERE e.codigo = $1`
	var e entity.FinancialEntity
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&e.Code, &e.TramiteNumber, &e.TramiteYear, &e.Name, &e.NIT, &e.Sector, &e.EntityType,
		&e.ConstitutionDate, &e.Capital, &e.PaidValue, &e.RepresentativeName, &e.RepresentativeEmail,
		&e.ContactPhone, &e.Address, &e.City, &e.StatusID, &e.StatusName, &e.InscriptionDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("get entidad: %w", err)
	}
	return &e, nil
}

// GetByCodeForUpdate bloquea la fila de la entidad dentro de la transacción activa.
// Serializa transiciones concurrentes: dos aprobaciones simultáneas sobre la misma
// entidad se ejecutan una después de la otra.
func (r *EntityRepo) GetByCodeForUpdate(code int) (*entity.FinancialEntity, error) {
	query := `SELECT ` + entityColumns + ` FROM entidades WHERE codigo = $1 FOR UPDATE`
	var e entity.FinancialEntity
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&e.Code, &e.TramiteNumber, &e.TramiteYear, &e.Name, &e.NIT, &e.Sector, &e.EntityType,
		&e.ConstitutionDate, &e.Capital, &e.PaidValue, &e.RepresentativeName, &e.RepresentativeEmail,
		&e.ContactPhone, &e.Address, &e.City, &e.StatusID, &e.InscriptionDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("get entidad for update: %w", err)
	}
	return &e, nil
}

// GetByNIT busca una entidad por NIT (sin sufijo de rechazo).
func (r *EntityRepo) GetByNIT(nit string) (*entity.FinancialEntity, error) {
	query := `SELECT ` + entityColumns + ` FROM entidades WHERE nit = $1`
	var e entity.FinancialEntity
	err := r.q.QueryRow(context.Background(), query, nit).Scan(
		&e.Code, &e.TramiteNumber, &e.TramiteYear, &e.Name, &e.NIT, &e.Sector, &e.EntityType,
		&e.ConstitutionDate, &e.Capital, &e.PaidValue, &e.RepresentativeName, &e.RepresentativeEmail,
		&e.ContactPhone, &e.Address, &e.City, &e.StatusID, &e.InscriptionDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entidad por nit: %w", err)
	}
	return &e, nil
}

// NextCode asigna MAX(codigo)+1 dentro de la banda reservada. Debe ejecutarse en la
// transacción de registro; fuera de ella dos registros simultáneos pueden recibir el mismo código.
func (r *EntityRepo) NextCode(bandStart, bandEnd int) (int, error) {
	query := `SELECT COALESCE(MAX(codigo), $1 - 1) + 1 FROM entidades WHERE codigo BETWEEN $1 AND $2`
	var next int
	if err := r.q.QueryRow(context.Background(), query, bandStart, bandEnd).Scan(&next); err != nil {
		return 0, fmt.Errorf("next codigo: %w", err)
	}
	if next > bandEnd {
		return 0, domain.ErrCodeBandExhausted
	}
	return next, nil
}

// NextTramiteNumber consecutivo anual del trámite.
func (r *EntityRepo) NextTramiteNumber(year int) (int, error) {
	query := `SELECT COALESCE(MAX(numero_tramite), 0) + 1 FROM entidades WHERE anio_tramite = $1`
	var next int
	if err := r.q.QueryRow(context.Background(), query, year).Scan(&next); err != nil {
		return 0, fmt.Errorf("next numero_tramite: %w", err)
	}
	return next, nil
}

// UpdateStatus cambia el estado actual. Cero filas afectadas -> ErrEntityNotFound.
func (r *EntityRepo) UpdateStatus(code, statusID int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE entidades SET estado_id = $2, updated_at = $3 WHERE codigo = $1`,
		code, statusID, time.Now())
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

// SetInscribed fija estado y fecha de inscripción en una sola sentencia dentro
// de la transacción; no requiere tocar constraints.
func (r *EntityRepo) SetInscribed(code, statusID int, inscriptionDate time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE entidades SET estado_id = $2, fecha_inscripcion = $3, updated_at = $4 WHERE codigo = $1`,
		code, statusID, inscriptionDate, time.Now())
	if err != nil {
		return fmt.Errorf("update inscripcion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

// UpdateNIT reemplaza el NIT almacenado (marca de rechazo).
func (r *EntityRepo) UpdateNIT(code int, nit string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE entidades SET nit = $2, updated_at = $3 WHERE codigo = $1`,
		code, nit, time.Now())
	if err != nil {
		return fmt.Errorf("update nit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

// UpdateCapital actualiza capital suscrito y valor pagado derivado.
func (r *EntityRepo) UpdateCapital(code int, capital, paidValue decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE entidades SET capital_suscrito = $2, valor_pagado = $3, updated_at = $4 WHERE codigo = $1`,
		code, capital, paidValue, time.Now())
	if err != nil {
		return fmt.Errorf("update capital: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

// List lista entidades con filtro opcional de estado y paginación.
func (r *EntityRepo) List(statusID *int, limit, offset int) ([]*entity.FinancialEntity, error) {
	query := `
		SELECT e.codigo, e.numero_tramite, e.anio_tramite, e.nombre, e.nit, e.sector, e.tipo_entidad,
			e.fecha_constitucion, e.capital_suscrito, e.valor_pagado, e.representante_nombre, e.representante_email,
			e.telefono, e.direccion, e.ciudad, e.estado_id, s.nombre, e.fecha_inscripcion, e.created_at, e.updated_at
		FROM entidades e
		JOIN estados s ON s.id = e.estado_id
		WHERE ($1::int IS NULL OR e.estado_id = $1)
		ORDER BY e.codigo
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, statusID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entidades: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinancialEntity
	for rows.Next() {
		var e entity.FinancialEntity
		if err := rows.Scan(
			&e.Code, &e.TramiteNumber, &e.TramiteYear, &e.Name, &e.NIT, &e.Sector, &e.EntityType,
			&e.ConstitutionDate, &e.Capital, &e.PaidValue, &e.RepresentativeName, &e.RepresentativeEmail,
			&e.ContactPhone, &e.Address, &e.City, &e.StatusID, &e.StatusName, &e.InscriptionDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entidad: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
