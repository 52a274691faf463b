package postgres_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/infrastructure/postgres"
)

func TestEmailLogRepo_Create_OK(t *testing.T) {
	mock := newMockPool(t)
	repo := postgres.NewEmailLogRepository(mock)

	mock.ExpectExec("INSERT INTO log_correos").
		WithArgs(pgxmock.AnyArg(), 9001, "ssd@fogafin.gov.co;dot@fogafin.gov.co",
			"asunto de prueba", "cuerpo corto", entity.EmailOutcomeSent, "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(&entity.EmailLog{
		EntityCode:  9001,
		Recipients:  []string{"ssd@fogafin.gov.co", "dot@fogafin.gov.co"},
		Subject:     "asunto de prueba",
		BodyExcerpt: "cuerpo corto",
		Outcome:     entity.EmailOutcomeSent,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// El recorte del cuerpo respeta los límites de runa: un corte por bytes en
// medio de un carácter acentuado deja UTF-8 inválido que PostgreSQL rechaza,
// y la fila de auditoría se perdería.
func TestEmailLogRepo_Create_RecortaSinPartirRunas(t *testing.T) {
	mock := newMockPool(t)
	repo := postgres.NewEmailLogRepository(mock)

	// 499 bytes ASCII + "á" (2 bytes): el byte 500 cae en mitad de la runa.
	body := strings.Repeat("a", 499) + "á"
	wantExcerpt := strings.Repeat("a", 499)
	assert.True(t, utf8.ValidString(wantExcerpt))

	mock.ExpectExec("INSERT INTO log_correos").
		WithArgs(pgxmock.AnyArg(), 9001, "dif@fogafin.gov.co",
			"asunto", wantExcerpt, entity.EmailOutcomeError, "detalle", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(&entity.EmailLog{
		EntityCode:  9001,
		Recipients:  []string{"dif@fogafin.gov.co"},
		Subject:     "asunto",
		BodyExcerpt: body,
		Outcome:     entity.EmailOutcomeError,
		ErrorDetail: "detalle",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
