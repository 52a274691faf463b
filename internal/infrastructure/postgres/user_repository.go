package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo lectura de la tabla externa de autorización. Esta aplicación nunca
// escribe en ella.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByEmail busca un usuario autorizado (case-insensitive).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `
		SELECT email, nombre, contrasena_hash, rol, area, activo
		FROM usuarios_autorizados WHERE LOWER(email) = $1`
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Area, &u.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// List devuelve todos los usuarios autorizados.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := `SELECT email, nombre, rol, area, activo FROM usuarios_autorizados ORDER BY email`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Email, &u.Name, &u.Role, &u.Area, &u.Active); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
