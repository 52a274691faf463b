package enrollment_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/application/enrollment"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/pkg/config"
)

func uploadFixture(t *testing.T) (*enrollment.UploadUseCase, *enrollment.UpdateCapitalUseCase, *fixture) {
	t.Helper()
	f := newFixture(t)
	f.entities.entities[9001] = &entity.FinancialEntity{
		Code:     9001,
		NIT:      "900123456-8",
		Capital:  decimal.NewFromInt(1_000_000_000),
		StatusID: entity.StatusRegistered,
	}
	uploadUC := enrollment.NewUploadUseCase(f.entities, f.attachments, f.payments, f.storage,
		config.BlobConfig{SupportsContainer: "soportes"})
	capitalUC := enrollment.NewUpdateCapitalUseCase(f.entities)
	return uploadUC, capitalUC, f
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga de soportes
// ──────────────────────────────────────────────────────────────────────────────

func TestUploadAttachment_OK(t *testing.T) {
	uc, _, f := uploadFixture(t)

	resp, err := uc.UploadAttachment(context.Background(), dto.UploadAttachmentRequest{
		Codigo: 9001,
		Soporte: dto.AttachmentPayload{
			TipoDocumento:   "estados_financieros",
			NombreArchivo:   "estados.pdf",
			ContenidoBase64: base64.StdEncoding.EncodeToString([]byte("%PDF-estados")),
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Contains(t, resp.URL, "/soportes/")
	assert.Equal(t, "estados.pdf", resp.NombreArchivo)

	require.Len(t, f.attachments.rows, 1)
	assert.Equal(t, 9001, f.attachments.rows[0].EntityCode)
	assert.Equal(t, []byte("%PDF-estados"), f.storage.uploads["soportes/"+resp.ID+"_estados.pdf"])
}

func TestUploadAttachment_EntidadInexistente(t *testing.T) {
	uc, _, _ := uploadFixture(t)

	_, err := uc.UploadAttachment(context.Background(), dto.UploadAttachmentRequest{
		Codigo: 9999,
		Soporte: dto.AttachmentPayload{
			TipoDocumento:   "estados_financieros",
			NombreArchivo:   "estados.pdf",
			ContenidoBase64: base64.StdEncoding.EncodeToString([]byte("x")),
		},
	})
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestUploadAttachment_Base64Invalido(t *testing.T) {
	uc, _, f := uploadFixture(t)

	_, err := uc.UploadAttachment(context.Background(), dto.UploadAttachmentRequest{
		Codigo: 9001,
		Soporte: dto.AttachmentPayload{
			TipoDocumento:   "otro",
			NombreArchivo:   "x.pdf",
			ContenidoBase64: "no-es-base64 !!!",
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.attachments.rows)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPayment_ConSoporte(t *testing.T) {
	uc, _, f := uploadFixture(t)

	resp, err := uc.RegisterPayment(context.Background(), dto.RegisterPaymentRequest{
		Codigo: 9001,
		Pago: dto.PaymentPayload{
			Valor:     decimal.NewFromInt(115_000),
			FechaPago: "2026-08-15",
			Soporte: &dto.AttachmentPayload{
				TipoDocumento:   "soporte_pago",
				NombreArchivo:   "consignacion.pdf",
				ContenidoBase64: base64.StdEncoding.EncodeToString([]byte("%PDF-pago")),
			},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.SoporteID)

	require.Len(t, f.payments.rows, 1)
	require.Len(t, f.attachments.rows, 1)
	assert.Equal(t, f.payments.rows[0].ID, f.attachments.rows[0].PaymentID,
		"el soporte debe quedar ligado al pago")
	assert.Equal(t, f.attachments.rows[0].ID, f.payments.rows[0].AttachmentID)
}

func TestRegisterPayment_SinSoporte(t *testing.T) {
	uc, _, f := uploadFixture(t)

	resp, err := uc.RegisterPayment(context.Background(), dto.RegisterPaymentRequest{
		Codigo: 9001,
		Pago:   dto.PaymentPayload{Valor: decimal.NewFromInt(50_000), FechaPago: "2026-08-15"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.SoporteID)
	assert.Len(t, f.payments.rows, 1)
	assert.Empty(t, f.attachments.rows)
}

func TestRegisterPayment_ValorCero(t *testing.T) {
	uc, _, _ := uploadFixture(t)

	_, err := uc.RegisterPayment(context.Background(), dto.RegisterPaymentRequest{
		Codigo: 9001,
		Pago:   dto.PaymentPayload{Valor: decimal.Zero, FechaPago: "2026-08-15"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización de capital
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateCapital_RecalculaValorPagado(t *testing.T) {
	_, uc, f := uploadFixture(t)

	resp, err := uc.Update(context.Background(), dto.UpdateCapitalRequest{
		Codigo:          9001,
		CapitalSuscrito: decimal.NewFromInt(2_000_000_000),
	})
	require.NoError(t, err)
	assert.True(t, resp.ValorPagado.Equal(decimal.NewFromInt(230_000)),
		"valor pagado recalculado con el mismo factor del registro")

	stored := f.entities.entities[9001]
	assert.True(t, stored.Capital.Equal(decimal.NewFromInt(2_000_000_000)))
	assert.True(t, stored.PaidValue.Equal(decimal.NewFromInt(230_000)))
}

func TestUpdateCapital_CapitalInvalido(t *testing.T) {
	_, uc, _ := uploadFixture(t)

	_, err := uc.Update(context.Background(), dto.UpdateCapitalRequest{
		Codigo:          9001,
		CapitalSuscrito: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCapital_EntidadInexistente(t *testing.T) {
	_, uc, _ := uploadFixture(t)

	_, err := uc.Update(context.Background(), dto.UpdateCapitalRequest{
		Codigo:          9999,
		CapitalSuscrito: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}
