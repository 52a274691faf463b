// Package lifecycle implementa las transiciones de estado del trámite:
// aprobación documental, confirmación de pago, aprobación de la inscripción y
// rechazo. Toda transición corre en una transacción con la fila de la entidad
// bloqueada (FOR UPDATE) y valida el estado previo: una segunda aprobación
// sobre el mismo estado recibe ErrInvalidTransition en lugar de duplicar el
// historial.
package lifecycle

import (
	"context"
	"time"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/application/notification"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
	"github.com/fogafin/sief-api/pkg/logger"
	"github.com/fogafin/sief-api/pkg/nit"
)

// UseCase operaciones del ciclo de vida del trámite.
type UseCase struct {
	txRunner   TxRunner
	dispatcher *notification.Dispatcher
	log        *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, dispatcher *notification.Dispatcher, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, dispatcher: dispatcher, log: log}
}

// transitionHook permite a cada operación agregar escrituras dentro de la misma
// transacción (limpiar notificaciones, marcar el NIT, fijar fecha de inscripción).
type transitionHook func(
	current *entity.FinancialEntity,
	entities repository.EntityRepository,
	notices repository.QuarterlyNoticeRepository,
) error

// transition ejecuta el patrón común: bloquear la fila, validar el estado
// previo, aplicar el cambio, agregar exactamente una fila de historial.
func (uc *UseCase) transition(
	ctx context.Context,
	code int,
	allowedFrom []int,
	newStatus int,
	actingUser, observations string,
	hook transitionHook,
) (*entity.FinancialEntity, error) {
	var snapshot *entity.FinancialEntity

	err := uc.txRunner.Run(ctx, func(
		entities repository.EntityRepository,
		history repository.HistoryRepository,
		notices repository.QuarterlyNoticeRepository,
	) error {
		current, err := entities.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if !statusIn(current.StatusID, allowedFrom) {
			return domain.ErrInvalidTransition
		}

		previous := current.StatusID

		if hook != nil {
			if err := hook(current, entities, notices); err != nil {
				return err
			}
		} else {
			if err := entities.UpdateStatus(code, newStatus); err != nil {
				return err
			}
		}

		if err := history.Append(&entity.StatusHistory{
			EntityCode:       code,
			PreviousStatusID: previous,
			NewStatusID:      newStatus,
			ActingUser:       actingUser,
			Observations:     observations,
		}); err != nil {
			return err
		}

		current.StatusID = newStatus
		snapshot = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("entidad", code).Int("estado_nuevo", newStatus).
		Str("usuario", actingUser).Msg("transición de estado aplicada")
	return snapshot, nil
}

// ApproveDocuments valida los documentos: 12 -> 13. Limpia las notificaciones
// trimestrales pendientes y avisa al área de validación de pagos.
func (uc *UseCase) ApproveDocuments(ctx context.Context, in dto.LifecycleRequest, actingUser string) (*dto.LifecycleResponse, error) {
	e, err := uc.transition(ctx, in.Codigo,
		[]int{entity.StatusRegistered}, entity.StatusDocsApproved,
		actingUser, in.Observaciones,
		func(current *entity.FinancialEntity, entities repository.EntityRepository, notices repository.QuarterlyNoticeRepository) error {
			if err := notices.DeletePendingByEntity(in.Codigo); err != nil {
				return err
			}
			return entities.UpdateStatus(in.Codigo, entity.StatusDocsApproved)
		})
	if err != nil {
		return nil, err
	}
	uc.dispatcher.NotifyDocsApproved(ctx, e)
	return response(e, entity.StatusRegistered, "documentos aprobados"), nil
}

// ConfirmPayment confirma el pago: 13 -> 14. Avisa al área de aprobación final.
func (uc *UseCase) ConfirmPayment(ctx context.Context, in dto.LifecycleRequest, actingUser string) (*dto.LifecycleResponse, error) {
	e, err := uc.transition(ctx, in.Codigo,
		[]int{entity.StatusDocsApproved}, entity.StatusPaymentConfirmed,
		actingUser, in.Observaciones, nil)
	if err != nil {
		return nil, err
	}
	uc.dispatcher.NotifyPaymentConfirmed(ctx, e)
	return response(e, entity.StatusDocsApproved, "pago confirmado"), nil
}

// ApproveInscription aprueba la inscripción: 14 -> 15. Estado y fecha de
// inscripción se fijan en la misma sentencia dentro de la transacción.
func (uc *UseCase) ApproveInscription(ctx context.Context, in dto.LifecycleRequest, actingUser string) (*dto.LifecycleResponse, error) {
	inscriptionDate := time.Now()
	e, err := uc.transition(ctx, in.Codigo,
		[]int{entity.StatusPaymentConfirmed}, entity.StatusInscribed,
		actingUser, in.Observaciones,
		func(current *entity.FinancialEntity, entities repository.EntityRepository, _ repository.QuarterlyNoticeRepository) error {
			return entities.SetInscribed(in.Codigo, entity.StatusInscribed, inscriptionDate)
		})
	if err != nil {
		return nil, err
	}
	e.InscriptionDate = &inscriptionDate
	uc.dispatcher.NotifyInscribed(ctx, e)
	return response(e, entity.StatusPaymentConfirmed, "inscripción aprobada"), nil
}

// Reject rechaza la solicitud desde cualquier estado no terminal. Marca el NIT
// con el sufijo de rechazo (una sola vez), limpia notificaciones pendientes y
// deja el estado terminal 1.
func (uc *UseCase) Reject(ctx context.Context, in dto.LifecycleRequest, actingUser string) (*dto.LifecycleResponse, error) {
	var previous int
	e, err := uc.transition(ctx, in.Codigo,
		[]int{entity.StatusRegistered, entity.StatusDocsApproved, entity.StatusPaymentConfirmed},
		entity.StatusRejected,
		actingUser, in.Observaciones,
		func(current *entity.FinancialEntity, entities repository.EntityRepository, notices repository.QuarterlyNoticeRepository) error {
			previous = current.StatusID
			marked := nit.WithRejectionSuffix(current.NIT)
			if marked != current.NIT {
				if err := entities.UpdateNIT(in.Codigo, marked); err != nil {
					return err
				}
				current.NIT = marked
			}
			if err := notices.DeletePendingByEntity(in.Codigo); err != nil {
				return err
			}
			return entities.UpdateStatus(in.Codigo, entity.StatusRejected)
		})
	if err != nil {
		return nil, err
	}
	uc.dispatcher.NotifyRejected(ctx, e, in.Observaciones)
	resp := response(e, previous, "solicitud rechazada")
	return resp, nil
}

func statusIn(status int, allowed []int) bool {
	for _, a := range allowed {
		if status == a {
			return true
		}
	}
	return false
}

func response(e *entity.FinancialEntity, previous int, msg string) *dto.LifecycleResponse {
	return &dto.LifecycleResponse{
		Codigo:         e.Code,
		EstadoAnterior: previous,
		EstadoNuevo:    e.StatusID,
		Mensaje:        msg,
	}
}
