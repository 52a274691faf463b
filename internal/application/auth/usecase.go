// Package auth autentica a los usuarios autorizados del SIEF: verifica las
// credenciales contra la tabla de autorización (hash bcrypt) y emite el token
// con rol y área que las rutas protegidas exigen.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/repository"
	"github.com/fogafin/sief-api/pkg/config"
	"github.com/fogafin/sief-api/pkg/jwt"
	"github.com/fogafin/sief-api/pkg/logger"
)

// UseCase emisión de tokens contra la tabla de usuarios autorizados.
type UseCase struct {
	userRepo repository.UserRepository
	cfg      config.JWTConfig
	log      *logger.Logger
}

// NewUseCase crea el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, cfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, cfg: cfg, log: log}
}

// Login verifica email y contraseña contra la tabla de autorización y emite
// un token con rol y área. Un usuario inactivo recibe el mismo error que uno
// inexistente para no revelar su existencia.
func (uc *UseCase) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	u, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		uc.log.Warn().Str("email", email).Msg("intento de login con contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}
	if !u.Active {
		uc.log.Warn().Str("email", email).Msg("intento de login de usuario inactivo")
		return nil, domain.ErrUserNotFound
	}

	token, err := jwt.Generate(uc.cfg.Secret, u.Email, u.Role, u.Area, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Rol: u.Role, Area: u.Area}, nil
}
