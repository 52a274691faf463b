package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fogafin/sief-api/internal/application/auth"
	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/pkg/config"
	pkgjwt "github.com/fogafin/sief-api/pkg/jwt"
	"github.com/fogafin/sief-api/pkg/logger"
)

type stubUserRepo struct{ users map[string]*entity.User }

func (r *stubUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List() ([]*entity.User, error) { return nil, nil }

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthUC(users map[string]*entity.User) *auth.UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return auth.NewUseCase(&stubUserRepo{users: users}, config.JWTConfig{
		Secret:     "secret-de-prueba",
		Expiration: 60,
		Issuer:     "sief-api-test",
	}, log)
}

func TestLogin_EmiteTokenConRolYArea(t *testing.T) {
	uc := newAuthUC(map[string]*entity.User{
		"aprobador@fogafin.gov.co": {
			Email: "aprobador@fogafin.gov.co", PasswordHash: hashPassword(t, "clave-segura"),
			Role: "aprobador", Area: "DGC", Active: true,
		},
	})

	resp, err := uc.Login(&dto.LoginRequest{Email: "aprobador@fogafin.gov.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "aprobador", resp.Rol)
	assert.Equal(t, "DGC", resp.Area)

	email, role, area, err := pkgjwt.Parse("secret-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "aprobador@fogafin.gov.co", email)
	assert.Equal(t, "aprobador", role)
	assert.Equal(t, "DGC", area)
}

// El email se normaliza antes de buscar en la tabla de autorización.
func TestLogin_EmailConMayusculas(t *testing.T) {
	uc := newAuthUC(map[string]*entity.User{
		"analista@fogafin.gov.co": {
			Email: "analista@fogafin.gov.co", PasswordHash: hashPassword(t, "clave-segura"),
			Role: "analista", Area: "SSD", Active: true,
		},
	})

	resp, err := uc.Login(&dto.LoginRequest{Email: "  Analista@Fogafin.gov.co ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "analista", resp.Rol)
}

// Una contraseña incorrecta no emite token: sin verificación de credenciales,
// conocer un email autorizado bastaría para obtener un rol de aprobador.
func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	uc := newAuthUC(map[string]*entity.User{
		"aprobador@fogafin.gov.co": {
			Email: "aprobador@fogafin.gov.co", PasswordHash: hashPassword(t, "clave-segura"),
			Role: "aprobador", Area: "DGC", Active: true,
		},
	})

	resp, err := uc.Login(&dto.LoginRequest{Email: "aprobador@fogafin.gov.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, resp)
}

// Usuario inactivo recibe el mismo error que uno inexistente.
func TestLogin_UsuarioInactivo(t *testing.T) {
	uc := newAuthUC(map[string]*entity.User{
		"exfuncionaria@fogafin.gov.co": {
			Email: "exfuncionaria@fogafin.gov.co", PasswordHash: hashPassword(t, "clave-segura"),
			Role: "consulta", Area: "DOT", Active: false,
		},
	})

	_, err := uc.Login(&dto.LoginRequest{Email: "exfuncionaria@fogafin.gov.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(nil)
	_, err := uc.Login(&dto.LoginRequest{Email: "nadie@fogafin.gov.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
