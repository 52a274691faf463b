package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrEntityNotFound    = errors.New("entidad no encontrada")
	ErrUserNotFound      = errors.New("usuario no autorizado no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrNITAlreadyExists  = errors.New("ya existe una entidad con ese NIT")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidTransition = errors.New("la entidad no está en un estado válido para esta operación")
	ErrCodeBandExhausted = errors.New("banda de códigos de entidad agotada")
)
