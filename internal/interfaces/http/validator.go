package http

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia única; los validadores de go-playground son seguros para
// uso concurrente y cachean la metadata de cada struct.
var validate = validator.New()

// validationMessage arma un mensaje legible a partir de los campos que fallaron.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	ok := false
	if v, isV := err.(validator.ValidationErrors); isV {
		verrs, ok = v, true
	}
	if !ok {
		return "datos inválidos"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "campos inválidos o faltantes: " + strings.Join(fields, ", ")
}
