package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del trámite de inscripción. Los valores numéricos pertenecen a la
// tabla de consulta `estados`; aquí se nombran para eliminar los enteros
// sueltos repetidos en cada operación.
const (
	StatusRejected          = 1  // Rechazada (terminal)
	StatusRegistered        = 12 // Solicitud registrada, pendiente validación documental
	StatusDocsApproved      = 13 // Documentos aprobados, pendiente validación de pago
	StatusPaymentConfirmed  = 14 // Pago confirmado, pendiente aprobación final
	StatusInscribed         = 15 // Inscrita en el seguro de depósitos
)

// PaidValueFactor es el porcentaje fijo que se aplica al capital suscrito para
// obtener el valor pagado (prima de inscripción). Compartido por el registro
// y la actualización de capital: ambos caminos deben calcular igual.
var PaidValueFactor = decimal.RequireFromString("0.000115")

// PaidValue calcula el valor pagado derivado del capital suscrito.
func PaidValue(capital decimal.Decimal) decimal.Decimal {
	return capital.Mul(PaidValueFactor)
}

// FinancialEntity representa la entidad financiera que solicita inscripción
// en el seguro de depósitos. Nunca se borra; el rechazo marca el NIT con "-R"
// y deja el estado terminal.
type FinancialEntity struct {
	Code             int // código secuencial asignado dentro de la banda reservada
	TramiteNumber    int // consecutivo anual del trámite
	TramiteYear      int
	Name             string
	NIT              string
	Sector           string
	EntityType       string
	ConstitutionDate time.Time
	Capital          decimal.Decimal // capital suscrito
	PaidValue        decimal.Decimal // Capital × PaidValueFactor
	RepresentativeName  string
	RepresentativeEmail string
	ContactPhone     string
	Address          string
	City             string
	StatusID         int
	StatusName       string     // resuelto contra la tabla de estados (solo en lecturas)
	InscriptionDate  *time.Time // se fija al aprobar la inscripción
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TramiteID identificador legible del trámite, p.ej. "TR-2026-0042".
func (e *FinancialEntity) TramiteID() string {
	return fmt.Sprintf("TR-%d-%04d", e.TramiteYear, e.TramiteNumber)
}

// IsTerminal indica si la entidad llegó a un estado final del trámite.
func (e *FinancialEntity) IsTerminal() bool {
	return e.StatusID == StatusRejected || e.StatusID == StatusInscribed
}

// Status nombre de un estado en la tabla de consulta.
type Status struct {
	ID   int
	Name string
}
