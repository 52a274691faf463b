// Package nit implementa utilidades para el NIT colombiano: normalización,
// dígito de verificación (algoritmo módulo 11 de la DIAN) y el sufijo "-R"
// que marca los NIT de entidades con solicitud rechazada.
package nit

import (
	"fmt"
	"strings"
	"unicode"
)

// RejectionSuffix marca el NIT de una entidad cuya solicitud fue rechazada.
// La fila nunca se borra; el sufijo libera el NIT original para un nuevo registro.
const RejectionSuffix = "-R"

// pesos para el cálculo del dígito de verificación NIT (Orden Administrativa 4 de 1989, DIAN).
// Se aplican a los 9 primeros dígitos del NIT, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalize elimina puntos, guiones y espacios dejando solo los dígitos del NIT.
// El sufijo de rechazo, si existe, se descarta.
func Normalize(taxID string) string {
	var b strings.Builder
	for _, r := range taxID {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateVerificationDigit valida que el NIT (con o sin puntos/guiones) tenga
// un dígito de verificación correcto según el algoritmo módulo 11 de la DIAN.
// taxID puede ser "900123456-8", "900.123.456-8" o "9001234568".
func ValidateVerificationDigit(taxID string) error {
	digits := Normalize(taxID)
	if len(digits) != 10 {
		return fmt.Errorf("nit: persona jurídica debe incluir dígito de verificación (10 dígitos), se recibieron %d", len(digits))
	}
	expected, err := ComputeVerificationDigit(digits)
	if err != nil {
		return err
	}
	if digits[9] != expected {
		return fmt.Errorf("nit: dígito de verificación inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

// ComputeVerificationDigit calcula el dígito de verificación para los 9 primeros dígitos del NIT.
func ComputeVerificationDigit(taxID string) (byte, error) {
	digits := Normalize(taxID)
	if len(digits) < 9 {
		return 0, fmt.Errorf("nit: se requieren al menos 9 dígitos, se encontraron %d", len(digits))
	}
	return computeDigit(digits[:9]), nil
}

// HasRejectionSuffix indica si el NIT almacenado ya lleva la marca de rechazo.
func HasRejectionSuffix(taxID string) bool {
	return strings.HasSuffix(strings.ToUpper(strings.TrimSpace(taxID)), RejectionSuffix)
}

// WithRejectionSuffix agrega el sufijo de rechazo una sola vez.
// Un segundo rechazo sobre la misma entidad no duplica la marca.
func WithRejectionSuffix(taxID string) string {
	trimmed := strings.TrimSpace(taxID)
	if HasRejectionSuffix(trimmed) {
		return trimmed
	}
	return trimmed + RejectionSuffix
}

func computeDigit(base string) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder)
	}
	return byte('0' + (11 - remainder))
}
