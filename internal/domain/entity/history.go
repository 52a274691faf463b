package entity

import "time"

// StatusHistory fila del historial de gestión (append-only).
// PreviousStatusID debe ser el estado que la entidad tenía inmediatamente antes
// de la escritura, leído en la misma transacción; exactamente una fila por transición.
type StatusHistory struct {
	ID               string
	EntityCode       int
	PreviousStatusID int
	NewStatusID      int
	ActingUser       string // email del usuario que ejecutó la operación
	Observations     string
	CreatedAt        time.Time

	// Nombres resueltos contra la tabla de estados (solo en lecturas).
	PreviousStatusName string
	NewStatusName      string
}
