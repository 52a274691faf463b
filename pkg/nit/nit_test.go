package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fogafin/sief-api/pkg/nit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dígito de verificación (módulo 11 DIAN)
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeVerificationDigit(t *testing.T) {
	cases := []struct {
		base string
		want byte
	}{
		{"900123456", '8'},
		{"800987654", '4'},
		{"123456789", '6'},
		{"860034313", '7'},
		{"900373913", '4'},
	}
	for _, tc := range cases {
		got, err := nit.ComputeVerificationDigit(tc.base)
		require.NoError(t, err, "base %s", tc.base)
		assert.Equal(t, tc.want, got, "dígito de verificación para %s", tc.base)
	}
}

func TestValidateVerificationDigit_Valido(t *testing.T) {
	// El mismo NIT en los formatos que llegan en la práctica.
	for _, taxID := range []string{"900123456-8", "900.123.456-8", "9001234568", " 900123456-8 "} {
		assert.NoError(t, nit.ValidateVerificationDigit(taxID), "formato %q", taxID)
	}
}

func TestValidateVerificationDigit_DigitoIncorrecto(t *testing.T) {
	err := nit.ValidateVerificationDigit("900123456-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dígito de verificación inválido")
}

func TestValidateVerificationDigit_SinDigito(t *testing.T) {
	// 9 dígitos sin DV: se exige el dígito de verificación explícito.
	assert.Error(t, nit.ValidateVerificationDigit("900123456"))
}

func TestValidateVerificationDigit_MuyCorto(t *testing.T) {
	assert.Error(t, nit.ValidateVerificationDigit("12345"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sufijo de rechazo
// ──────────────────────────────────────────────────────────────────────────────

func TestWithRejectionSuffix_AgregaUnaVez(t *testing.T) {
	marked := nit.WithRejectionSuffix("900123456-8")
	assert.Equal(t, "900123456-8-R", marked)

	// Un segundo rechazo no duplica la marca.
	assert.Equal(t, marked, nit.WithRejectionSuffix(marked))
}

func TestHasRejectionSuffix(t *testing.T) {
	assert.False(t, nit.HasRejectionSuffix("900123456-8"))
	assert.True(t, nit.HasRejectionSuffix("900123456-8-R"))
	assert.True(t, nit.HasRejectionSuffix("900123456-8-r"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "9001234568", nit.Normalize("900.123.456-8"))
	// El sufijo de rechazo se descarta al normalizar.
	assert.Equal(t, "9001234568", nit.Normalize("900123456-8-R"))
}
