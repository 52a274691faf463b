package entity

import "time"

// Resultados registrados en el log de correos.
const (
	EmailOutcomeSent  = "ENVIADO"
	EmailOutcomeError = "ERROR"
)

// EmailLog fila de auditoría de envíos (write-only: la aplicación nunca la lee).
// Se escribe siempre, incluso cuando la llamada al servicio de correo falla.
type EmailLog struct {
	ID          string
	EntityCode  int
	Recipients  []string
	Subject     string
	BodyExcerpt string // cuerpo truncado
	Outcome     string // ENVIADO | ERROR
	ErrorDetail string
	CreatedAt   time.Time
}

// QuarterlyNotice fila del subsistema de notificaciones trimestrales, creada de
// forma asíncrona tras el registro. Se eliminan las pendientes al aprobar
// documentos o rechazar la solicitud.
type QuarterlyNotice struct {
	ID         string
	EntityCode int
	Quarter    int // 1..4
	Year       int
	Pending    bool
	CreatedAt  time.Time
}

// User usuario de la tabla externa de autorización (solo lectura).
type User struct {
	Email        string
	Name         string
	PasswordHash string // bcrypt; nunca sale en respuestas
	Role         string // "consulta" | "analista" | "aprobador"
	Area         string // SSD, DOT, DIF, DGC
	Active       bool
}
