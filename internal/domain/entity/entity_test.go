package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fogafin/sief-api/internal/domain/entity"
)

// El valor pagado debe calcularse con aritmética decimal exacta: un capital de
// mil millones de pesos por el factor 0.000115 da exactamente 115.000.
func TestPaidValue_Exacto(t *testing.T) {
	capital := decimal.NewFromInt(1_000_000_000)
	got := entity.PaidValue(capital)
	assert.True(t, got.Equal(decimal.NewFromInt(115_000)),
		"valor pagado esperado 115000, obtenido %s", got)
}

func TestPaidValue_CapitalConCentavos(t *testing.T) {
	capital := decimal.RequireFromString("2500000000.50")
	want := decimal.RequireFromString("287500.0000575")
	assert.True(t, entity.PaidValue(capital).Equal(want))
}

func TestTramiteID_Formato(t *testing.T) {
	e := &entity.FinancialEntity{TramiteYear: 2026, TramiteNumber: 42}
	assert.Equal(t, "TR-2026-0042", e.TramiteID())
}

func TestIsTerminal(t *testing.T) {
	now := time.Now()
	cases := []struct {
		status   int
		terminal bool
	}{
		{entity.StatusRegistered, false},
		{entity.StatusDocsApproved, false},
		{entity.StatusPaymentConfirmed, false},
		{entity.StatusInscribed, true},
		{entity.StatusRejected, true},
	}
	for _, tc := range cases {
		e := &entity.FinancialEntity{StatusID: tc.status, CreatedAt: now}
		assert.Equal(t, tc.terminal, e.IsTerminal(), "estado %d", tc.status)
	}
}
