package enrollment

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fogafin/sief-api/internal/application/dto"
	"github.com/fogafin/sief-api/internal/domain"
	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
	"github.com/fogafin/sief-api/internal/infrastructure/blob"
	"github.com/fogafin/sief-api/pkg/config"
)

// UploadUseCase carga de soportes y registro de pagos posteriores al registro.
type UploadUseCase struct {
	entityRepo     repository.EntityRepository
	attachmentRepo repository.AttachmentRepository
	paymentRepo    repository.PaymentRepository
	storage        blob.Storage
	blobCfg        config.BlobConfig
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(
	entityRepo repository.EntityRepository,
	attachmentRepo repository.AttachmentRepository,
	paymentRepo repository.PaymentRepository,
	storage blob.Storage,
	blobCfg config.BlobConfig,
) *UploadUseCase {
	return &UploadUseCase{
		entityRepo:     entityRepo,
		attachmentRepo: attachmentRepo,
		paymentRepo:    paymentRepo,
		storage:        storage,
		blobCfg:        blobCfg,
	}
}

// UploadAttachment decodifica el soporte, lo sube al contenedor y persiste la referencia.
func (uc *UploadUseCase) UploadAttachment(ctx context.Context, in dto.UploadAttachmentRequest) (*dto.UploadAttachmentResponse, error) {
	if _, err := uc.entityRepo.GetByCode(in.Codigo); err != nil {
		return nil, err
	}
	content, err := base64.StdEncoding.DecodeString(in.Soporte.ContenidoBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: contenido_base64 inválido", domain.ErrInvalidInput)
	}
	id := uuid.New().String()
	url, err := uc.storage.Upload(ctx, uc.blobCfg.SupportsContainer, id+"_"+in.Soporte.NombreArchivo, content, "application/octet-stream")
	if err != nil {
		return nil, fmt.Errorf("subir soporte: %w", err)
	}
	if err := uc.attachmentRepo.Create(&entity.Attachment{
		ID:           id,
		EntityCode:   in.Codigo,
		DocumentType: in.Soporte.TipoDocumento,
		Filename:     in.Soporte.NombreArchivo,
		BlobURL:      url,
		PaymentID:    in.PagoID,
	}); err != nil {
		return nil, err
	}
	return &dto.UploadAttachmentResponse{ID: id, URL: url, NombreArchivo: in.Soporte.NombreArchivo}, nil
}

// RegisterPayment persiste el pago reportado y, si viene, su soporte.
func (uc *UploadUseCase) RegisterPayment(ctx context.Context, in dto.RegisterPaymentRequest) (*dto.RegisterPaymentResponse, error) {
	if _, err := uc.entityRepo.GetByCode(in.Codigo); err != nil {
		return nil, err
	}
	if in.Pago.Valor.IsNegative() || in.Pago.Valor.IsZero() {
		return nil, fmt.Errorf("%w: valor del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	paymentDate, err := time.Parse("2006-01-02", in.Pago.FechaPago)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha_pago debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}

	payment := &entity.Payment{
		ID:          uuid.New().String(),
		EntityCode:  in.Codigo,
		Amount:      in.Pago.Valor,
		PaymentDate: paymentDate,
	}
	resp := &dto.RegisterPaymentResponse{ID: payment.ID}

	if in.Pago.Soporte != nil {
		content, err := base64.StdEncoding.DecodeString(in.Pago.Soporte.ContenidoBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: soporte de pago no es base64 válido", domain.ErrInvalidInput)
		}
		id := uuid.New().String()
		url, err := uc.storage.Upload(ctx, uc.blobCfg.SupportsContainer, id+"_"+in.Pago.Soporte.NombreArchivo, content, "application/octet-stream")
		if err != nil {
			return nil, fmt.Errorf("subir soporte de pago: %w", err)
		}
		if err := uc.attachmentRepo.Create(&entity.Attachment{
			ID:           id,
			EntityCode:   in.Codigo,
			DocumentType: in.Pago.Soporte.TipoDocumento,
			Filename:     in.Pago.Soporte.NombreArchivo,
			BlobURL:      url,
			PaymentID:    payment.ID,
		}); err != nil {
			return nil, err
		}
		payment.AttachmentID = id
		resp.SoporteID = id
		resp.SoporteURL = url
	}

	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return resp, nil
}
