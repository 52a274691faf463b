package enrollment

import (
	"context"
	"fmt"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
)

// UpdateCapitalUseCase actualiza el capital suscrito sin tocar el estado.
// El valor pagado se recalcula con entity.PaidValue, la misma función que usa
// el registro: ambos caminos deben producir el mismo derivado.
type UpdateCapitalUseCase struct {
	entityRepo repository.EntityRepository
}

// NewUpdateCapitalUseCase construye el caso de uso.
func NewUpdateCapitalUseCase(entityRepo repository.EntityRepository) *UpdateCapitalUseCase {
	return &UpdateCapitalUseCase{entityRepo: entityRepo}
}

// Update recalcula y persiste capital y valor pagado.
func (uc *UpdateCapitalUseCase) Update(ctx context.Context, in dto.UpdateCapitalRequest) (*dto.UpdateCapitalResponse, error) {
	if in.CapitalSuscrito.IsNegative() || in.CapitalSuscrito.IsZero() {
		return nil, fmt.Errorf("%w: capital_suscrito debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if _, err := uc.entityRepo.GetByCode(in.Codigo); err != nil {
		return nil, err
	}
	paidValue := entity.PaidValue(in.CapitalSuscrito)
	if err := uc.entityRepo.UpdateCapital(in.Codigo, in.CapitalSuscrito, paidValue); err != nil {
		return nil, err
	}
	return &dto.UpdateCapitalResponse{
		Codigo:          in.Codigo,
		CapitalSuscrito: in.CapitalSuscrito,
		ValorPagado:     paidValue,
	}, nil
}
