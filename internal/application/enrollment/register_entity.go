package enrollment

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/application/notification"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
	"github.com/fogafin/sief-api/internal/infrastructure/blob"
	"github.com/fogafin/sief-api/pkg/config"
	"github.com/fogafin/sief-api/pkg/logger"
	"github.com/fogafin/sief-api/pkg/nit"
)

// RegisterEntityUseCase radica la solicitud de inscripción: asigna código y
// consecutivo de trámite, persiste entidad + soportes + pago inicial +
// historial en una transacción, y después del commit genera el resumen PDF,
// despacha los correos y programa las notificaciones trimestrales.
type RegisterEntityUseCase struct {
	txRunner   TxRunner
	entityRepo repository.EntityRepository
	noticeRepo repository.QuarterlyNoticeRepository
	storage    blob.Storage
	pdfGen     SummaryPDFGenerator
	dispatcher *notification.Dispatcher
	blobCfg    config.BlobConfig
	cfg        config.EnrollmentConfig
	log        *logger.Logger
}

// NewRegisterEntityUseCase construye el caso de uso.
func NewRegisterEntityUseCase(
	txRunner TxRunner,
	entityRepo repository.EntityRepository,
	noticeRepo repository.QuarterlyNoticeRepository,
	storage blob.Storage,
	pdfGen SummaryPDFGenerator,
	dispatcher *notification.Dispatcher,
	blobCfg config.BlobConfig,
	cfg config.EnrollmentConfig,
	log *logger.Logger,
) *RegisterEntityUseCase {
	return &RegisterEntityUseCase{
		txRunner:   txRunner,
		entityRepo: entityRepo,
		noticeRepo: noticeRepo,
		storage:    storage,
		pdfGen:     pdfGen,
		dispatcher: dispatcher,
		blobCfg:    blobCfg,
		cfg:        cfg,
		log:        log,
	}
}

// Register radica la solicitud. NIT duplicado -> domain.ErrNITAlreadyExists (409, sin fila nueva).
func (uc *RegisterEntityUseCase) Register(ctx context.Context, in dto.RegisterEntityRequest, actingUser string) (*dto.RegisterEntityResponse, error) {
	// La prevalidación de duplicado va antes que la del dígito de verificación:
	// un NIT ya marcado con el sufijo de rechazo no pasa la validación de formato
	// y aun así debe responder conflicto, no entrada inválida. El constraint único
	// de la tabla es el respaldo contra dos registros simultáneos con el mismo NIT.
	if existing, err := uc.entityRepo.GetByNIT(in.NIT); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrNITAlreadyExists
	}

	if err := nit.ValidateVerificationDigit(in.NIT); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	constitutionDate, err := time.Parse("2006-01-02", in.FechaConstitucion)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha_constitucion debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if in.CapitalSuscrito.IsNegative() || in.CapitalSuscrito.IsZero() {
		return nil, fmt.Errorf("%w: capital_suscrito debe ser mayor que cero", domain.ErrInvalidInput)
	}

	// Los soportes se suben al blob antes de la transacción: si la subida
	// falla no queda ninguna fila a medias.
	uploaded, err := uc.uploadAttachments(ctx, in.Soportes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	e := &entity.FinancialEntity{
		TramiteYear:         now.Year(),
		Name:                in.Nombre,
		NIT:                 in.NIT,
		Sector:              in.Sector,
		EntityType:          in.TipoEntidad,
		ConstitutionDate:    constitutionDate,
		Capital:             in.CapitalSuscrito,
		PaidValue:           entity.PaidValue(in.CapitalSuscrito),
		RepresentativeName:  in.RepresentanteNombre,
		RepresentativeEmail: in.RepresentanteEmail,
		ContactPhone:        in.Telefono,
		Address:             in.Direccion,
		City:                in.Ciudad,
		StatusID:            entity.StatusRegistered,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = uc.txRunner.RunEnrollment(ctx, func(
		entities repository.EntityRepository,
		history repository.HistoryRepository,
		attachments repository.AttachmentRepository,
		payments repository.PaymentRepository,
	) error {
		code, err := entities.NextCode(uc.cfg.CodeBandStart, uc.cfg.CodeBandEnd)
		if err != nil {
			return err
		}
		tramite, err := entities.NextTramiteNumber(e.TramiteYear)
		if err != nil {
			return err
		}
		e.Code = code
		e.TramiteNumber = tramite

		if err := entities.Create(e); err != nil {
			return err
		}

		for _, a := range uploaded {
			a.EntityCode = code
			if err := attachments.Create(a); err != nil {
				return err
			}
		}

		if in.PagoInicial != nil {
			if err := uc.createInitialPayment(ctx, code, in.PagoInicial, attachments, payments); err != nil {
				return err
			}
		}

		// Fila inicial del historial: no existe estado previo, se registra 12 -> 12.
		return history.Append(&entity.StatusHistory{
			EntityCode:       code,
			PreviousStatusID: entity.StatusRegistered,
			NewStatusID:      entity.StatusRegistered,
			ActingUser:       actingUser,
			Observations:     "registro de la solicitud de inscripción",
		})
	})
	if err != nil {
		return nil, err
	}

	// Camino post-commit: resumen PDF y correos son best-effort.
	summaryURL, summaryPDF := uc.publishSummary(ctx, e, uploaded)
	uc.dispatcher.NotifyRegistered(ctx, e, summaryPDF)
	uc.scheduleQuarterlyNotices(e.Code, e.TramiteYear)

	return &dto.RegisterEntityResponse{
		Codigo:        e.Code,
		NumeroTramite: e.TramiteNumber,
		Anio:          e.TramiteYear,
		Tramite:       fmt.Sprintf("TR-%d-%04d", e.TramiteYear, e.TramiteNumber),
		EstadoID:      e.StatusID,
		ResumenPDFURL: summaryURL,
	}, nil
}

// uploadAttachments decodifica y sube cada soporte; devuelve las referencias listas para insertar.
func (uc *RegisterEntityUseCase) uploadAttachments(ctx context.Context, payloads []dto.AttachmentPayload) ([]*entity.Attachment, error) {
	var out []*entity.Attachment
	for _, p := range payloads {
		content, err := base64.StdEncoding.DecodeString(p.ContenidoBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: soporte %q no es base64 válido", domain.ErrInvalidInput, p.NombreArchivo)
		}
		id := uuid.New().String()
		url, err := uc.storage.Upload(ctx, uc.blobCfg.SupportsContainer, id+"_"+p.NombreArchivo, content, "application/octet-stream")
		if err != nil {
			return nil, fmt.Errorf("subir soporte %q: %w", p.NombreArchivo, err)
		}
		out = append(out, &entity.Attachment{
			ID:           id,
			DocumentType: p.TipoDocumento,
			Filename:     p.NombreArchivo,
			BlobURL:      url,
		})
	}
	return out, nil
}

// createInitialPayment inserta el pago inicial y su soporte si viene adjunto.
func (uc *RegisterEntityUseCase) createInitialPayment(
	ctx context.Context,
	code int,
	p *dto.PaymentPayload,
	attachments repository.AttachmentRepository,
	payments repository.PaymentRepository,
) error {
	paymentDate, err := time.Parse("2006-01-02", p.FechaPago)
	if err != nil {
		return fmt.Errorf("%w: fecha_pago debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		EntityCode:  code,
		Amount:      p.Valor,
		PaymentDate: paymentDate,
	}
	if p.Soporte != nil {
		content, err := base64.StdEncoding.DecodeString(p.Soporte.ContenidoBase64)
		if err != nil {
			return fmt.Errorf("%w: soporte de pago no es base64 válido", domain.ErrInvalidInput)
		}
		id := uuid.New().String()
		url, err := uc.storage.Upload(ctx, uc.blobCfg.SupportsContainer, id+"_"+p.Soporte.NombreArchivo, content, "application/octet-stream")
		if err != nil {
			return fmt.Errorf("subir soporte de pago: %w", err)
		}
		if err := attachments.Create(&entity.Attachment{
			ID:           id,
			EntityCode:   code,
			DocumentType: p.Soporte.TipoDocumento,
			Filename:     p.Soporte.NombreArchivo,
			BlobURL:      url,
			PaymentID:    payment.ID,
		}); err != nil {
			return err
		}
		payment.AttachmentID = id
	}
	return payments.Create(payment)
}

// publishSummary genera el resumen PDF y lo sube al contenedor de resúmenes.
// Los fallos se registran y no afectan el registro ya confirmado.
func (uc *RegisterEntityUseCase) publishSummary(ctx context.Context, e *entity.FinancialEntity, attachments []*entity.Attachment) (string, []byte) {
	pdfBytes, err := uc.pdfGen.GenerateSummary(ctx, e, attachments)
	if err != nil {
		uc.log.Error().Err(err).Int("entidad", e.Code).Msg("no se pudo generar el resumen PDF")
		return "", nil
	}
	name := fmt.Sprintf("resumen_TR-%d-%04d.pdf", e.TramiteYear, e.TramiteNumber)
	url, err := uc.storage.Upload(ctx, uc.blobCfg.SummariesContainer, name, pdfBytes, "application/pdf")
	if err != nil {
		uc.log.Error().Err(err).Int("entidad", e.Code).Msg("no se pudo subir el resumen PDF")
		return "", pdfBytes
	}
	return url, pdfBytes
}

// scheduleQuarterlyNotices crea las filas del subsistema trimestral tras la
// espera configurada, fuera del ciclo de la petición.
func (uc *RegisterEntityUseCase) scheduleQuarterlyNotices(code, year int) {
	delay := time.Duration(uc.cfg.QuarterlyNoticeDelay) * time.Second
	time.AfterFunc(delay, func() {
		notices := make([]*entity.QuarterlyNotice, 0, 4)
		for q := 1; q <= 4; q++ {
			notices = append(notices, &entity.QuarterlyNotice{
				EntityCode: code,
				Quarter:    q,
				Year:       year,
				Pending:    true,
			})
		}
		if err := uc.noticeRepo.CreateBatch(notices); err != nil {
			uc.log.Error().Err(err).Int("entidad", code).
				Msg("no se pudieron crear las notificaciones trimestrales")
		}
	})
}
