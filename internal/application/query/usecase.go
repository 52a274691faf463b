// Package query implementa las operaciones de solo lectura del SIEF: detalle
// de entidad, historial de gestión, listados y descarga de soportes. Ninguna
// operación de este paquete modifica estado.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
	"github.com/fogafin/sief-api/internal/infrastructure/blob"
	"github.com/fogafin/sief-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// UseCase consultas sobre entidades, historial, soportes y usuarios.
type UseCase struct {
	entityRepo     repository.EntityRepository
	historyRepo    repository.HistoryRepository
	attachmentRepo repository.AttachmentRepository
	paymentRepo    repository.PaymentRepository
	userRepo       repository.UserRepository
	storage        blob.Storage
	log            *logger.Logger
}

// NewUseCase crea el caso de uso de consultas.
func NewUseCase(
	entityRepo repository.EntityRepository,
	historyRepo repository.HistoryRepository,
	attachmentRepo repository.AttachmentRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	storage blob.Storage,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		entityRepo:     entityRepo,
		historyRepo:    historyRepo,
		attachmentRepo: attachmentRepo,
		paymentRepo:    paymentRepo,
		userRepo:       userRepo,
		storage:        storage,
		log:            log,
	}
}

// Detail arma la vista denormalizada de la entidad: datos básicos, estado
// actual (columna de la entidad), soportes y pagos.
func (uc *UseCase) Detail(code int) (*dto.EntityDetailResponse, error) {
	e, err := uc.entityRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}

	attachments, err := uc.attachmentRepo.ListByEntity(code)
	if err != nil {
		return nil, fmt.Errorf("consultando soportes: %w", err)
	}
	payments, err := uc.paymentRepo.ListByEntity(code)
	if err != nil {
		return nil, fmt.Errorf("consultando pagos: %w", err)
	}

	resp := &dto.EntityDetailResponse{
		Codigo:              e.Code,
		Tramite:             e.TramiteID(),
		Nombre:              e.Name,
		NIT:                 e.NIT,
		Sector:              e.Sector,
		TipoEntidad:         e.EntityType,
		FechaConstitucion:   e.ConstitutionDate.Format(dateLayout),
		CapitalSuscrito:     e.Capital,
		ValorPagado:         e.PaidValue,
		RepresentanteNombre: e.RepresentativeName,
		RepresentanteEmail:  e.RepresentativeEmail,
		Telefono:            e.ContactPhone,
		Direccion:           e.Address,
		Ciudad:              e.City,
		EstadoID:            e.StatusID,
		Estado:              e.StatusName,
		Soportes:            make([]dto.AttachmentResponse, 0, len(attachments)),
		Pagos:               make([]dto.PaymentResponse, 0, len(payments)),
	}
	if e.InscriptionDate != nil {
		resp.FechaInscripcion = e.InscriptionDate.Format(dateLayout)
	}
	for _, a := range attachments {
		resp.Soportes = append(resp.Soportes, dto.AttachmentResponse{
			ID:            a.ID,
			TipoDocumento: a.DocumentType,
			NombreArchivo: a.Filename,
			URL:           a.BlobURL,
			PagoID:        a.PaymentID,
		})
	}
	for _, p := range payments {
		resp.Pagos = append(resp.Pagos, dto.PaymentResponse{
			ID:        p.ID,
			Valor:     p.Amount,
			FechaPago: p.PaymentDate.Format(dateLayout),
			SoporteID: p.AttachmentID,
		})
	}
	return resp, nil
}

// History devuelve el historial de gestión de la entidad en orden cronológico.
// Verifica primero que la entidad exista para distinguir 404 de historial vacío.
func (uc *UseCase) History(code int) ([]dto.HistoryEntryResponse, error) {
	if _, err := uc.entityRepo.GetByCode(code); err != nil {
		return nil, err
	}
	rows, err := uc.historyRepo.ListByEntity(code)
	if err != nil {
		return nil, fmt.Errorf("consultando historial: %w", err)
	}
	out := make([]dto.HistoryEntryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, dto.HistoryEntryResponse{
			EstadoAnteriorID: h.PreviousStatusID,
			EstadoAnterior:   h.PreviousStatusName,
			EstadoNuevoID:    h.NewStatusID,
			EstadoNuevo:      h.NewStatusName,
			Usuario:          h.ActingUser,
			Observaciones:    h.Observations,
			Fecha:            h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// List lista entidades con filtro opcional por estado y paginación.
func (uc *UseCase) List(statusID *int, page dto.PageRequest) ([]dto.EntitySummaryResponse, error) {
	page.DefaultPage()
	entities, err := uc.entityRepo.List(statusID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("consultando entidades: %w", err)
	}
	out := make([]dto.EntitySummaryResponse, 0, len(entities))
	for _, e := range entities {
		out = append(out, dto.EntitySummaryResponse{
			Codigo:   e.Code,
			Tramite:  e.TramiteID(),
			Nombre:   e.Name,
			NIT:      e.NIT,
			EstadoID: e.StatusID,
			Estado:   e.StatusName,
		})
	}
	return out, nil
}

// DownloadAttachment recupera el contenido binario de un soporte desde el
// blob storage, junto con el nombre de archivo original.
func (uc *UseCase) DownloadAttachment(ctx context.Context, id string) (*entity.Attachment, []byte, error) {
	a, err := uc.attachmentRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	content, err := uc.storage.Download(ctx, a.BlobURL)
	if err != nil {
		uc.log.Error().Err(err).Str("soporte", id).Msg("fallo la descarga del blob")
		return nil, nil, fmt.Errorf("descargando soporte %s: %w", id, err)
	}
	return a, content, nil
}

// ListUsers devuelve los usuarios de la tabla de autorización.
func (uc *UseCase) ListUsers() ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("consultando usuarios: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// ValidateUser verifica que el email esté autorizado y activo.
func (uc *UseCase) ValidateUser(email string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, domain.ErrForbidden
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Email:  u.Email,
		Nombre: u.Name,
		Rol:    u.Role,
		Area:   u.Area,
		Activo: u.Active,
	}
}
