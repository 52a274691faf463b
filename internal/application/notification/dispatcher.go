// Package notification compone y despacha los correos de cada operación del
// trámite: un correo por área responsable, con el cuerpo propio de esa área, y
// una confirmación aparte al solicitante cuando la etapa lo amerita. El envío
// es best-effort: la operación principal ya quedó confirmada en base de datos
// cuando el despachador corre, y cada envío, éxito o fallo, queda como una
// fila propia en el log de correos.
package notification

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/fogafin/sief-api/internal/domain/entity"
	"github.com/fogafin/sief-api/internal/domain/repository"
	"github.com/fogafin/sief-api/internal/infrastructure/mail"
	"github.com/fogafin/sief-api/pkg/config"
	"github.com/fogafin/sief-api/pkg/logger"
)

// Áreas responsables (claves de enrutamiento de buzones).
const (
	AreaSSD = "SSD"
	AreaDOT = "DOT"
	AreaDIF = "DIF"
	AreaDGC = "DGC"
)

var allAreas = []string{AreaSSD, AreaDOT, AreaDIF, AreaDGC}

// Tarea que el registro de una solicitud deja en manos de cada área.
var registeredAreaTasks = map[string]string{
	AreaSSD: "Corresponde al área SSD incorporar la solicitud al seguimiento del seguro de depósitos.",
	AreaDOT: "Corresponde al área DOT iniciar la validación documental.",
	AreaDIF: "Corresponde al área DIF preparar la verificación del pago.",
	AreaDGC: "Corresponde al área DGC abrir el expediente del trámite.",
}

// Dispatcher arma la lista de destinatarios de cada envío, aplica la supresión
// de dominios configurada y entrega los mensajes al servicio de correo.
type Dispatcher struct {
	sender  mail.Sender
	logRepo repository.EmailLogRepository
	cfg     config.MailConfig
	log     *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(sender mail.Sender, logRepo repository.EmailLogRepository, cfg config.MailConfig, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logRepo: logRepo, cfg: cfg, log: log}
}

// NotifyRegistered correos del registro: uno por área responsable con la tarea
// que le corresponde, y la confirmación al solicitante. Todos llevan el
// resumen PDF adjunto.
func (d *Dispatcher) NotifyRegistered(ctx context.Context, e *entity.FinancialEntity, summaryPDF []byte) {
	tramite := e.TramiteID()
	subject := fmt.Sprintf("SIEF - Nueva solicitud de inscripción %s (%s)", tramite, e.Name)

	var attachments []mail.Attachment
	if len(summaryPDF) > 0 {
		attachments = append(attachments, mail.Attachment{
			Filename:      fmt.Sprintf("resumen_%s.pdf", tramite),
			ContentBase64: base64.StdEncoding.EncodeToString(summaryPDF),
		})
	}

	intro := fmt.Sprintf(
		"La entidad %s (NIT %s) radicó la solicitud de inscripción %s en el seguro de depósitos.",
		e.Name, e.NIT, tramite)
	for _, area := range allAreas {
		d.dispatch(ctx, e.Code, d.areaRecipients(area), subject, intro+" "+registeredAreaTasks[area], attachments)
	}

	if e.RepresentativeEmail != "" {
		confirm := fmt.Sprintf(
			"Su solicitud de inscripción %s en el seguro de depósitos fue radicada. "+
				"Recibirá un aviso en cada etapa del trámite.", tramite)
		d.dispatch(ctx, e.Code, d.submitterRecipients(e.RepresentativeEmail), subject, confirm, attachments)
	}
}

// NotifyDocsApproved aviso al área de validación de pagos.
func (d *Dispatcher) NotifyDocsApproved(ctx context.Context, e *entity.FinancialEntity) {
	subject := fmt.Sprintf("SIEF - Documentos aprobados %s (%s)", e.TramiteID(), e.Name)
	body := fmt.Sprintf(
		"Los documentos de la entidad %s (NIT %s) fueron aprobados. "+
			"Corresponde al área DOT validar el pago del trámite.", e.Name, e.NIT)
	d.dispatch(ctx, e.Code, d.areaRecipients(AreaDOT), subject, body, nil)
}

// NotifyPaymentConfirmed aviso al área de aprobación final.
func (d *Dispatcher) NotifyPaymentConfirmed(ctx context.Context, e *entity.FinancialEntity) {
	subject := fmt.Sprintf("SIEF - Pago confirmado %s (%s)", e.TramiteID(), e.Name)
	body := fmt.Sprintf(
		"El pago de la entidad %s (NIT %s) fue confirmado. "+
			"Corresponde al área DIF decidir la aprobación final de la inscripción.", e.Name, e.NIT)
	d.dispatch(ctx, e.Code, d.areaRecipients(AreaDIF), subject, body, nil)
}

// NotifyInscribed confirmación de inscripción: aviso al área de gestión y
// confirmación aparte al solicitante.
func (d *Dispatcher) NotifyInscribed(ctx context.Context, e *entity.FinancialEntity) {
	tramite := e.TramiteID()
	subject := fmt.Sprintf("SIEF - Inscripción aprobada %s (%s)", tramite, e.Name)

	areaBody := fmt.Sprintf(
		"La entidad %s (NIT %s) quedó inscrita en el seguro de depósitos. "+
			"Corresponde al área DGC cerrar el expediente del trámite.", e.Name, e.NIT)
	d.dispatch(ctx, e.Code, d.areaRecipients(AreaDGC), subject, areaBody, nil)

	if e.RepresentativeEmail != "" {
		confirm := fmt.Sprintf(
			"La entidad %s quedó inscrita en el seguro de depósitos bajo el trámite %s.", e.Name, tramite)
		d.dispatch(ctx, e.Code, d.submitterRecipients(e.RepresentativeEmail), subject, confirm, nil)
	}
}

// NotifyRejected aviso de rechazo: un correo por área para cerrar sus
// actuaciones y la notificación al solicitante con las observaciones.
func (d *Dispatcher) NotifyRejected(ctx context.Context, e *entity.FinancialEntity, observations string) {
	tramite := e.TramiteID()
	subject := fmt.Sprintf("SIEF - Solicitud rechazada %s (%s)", tramite, e.Name)
	obs := nonEmptyObs(observations)

	for _, area := range allAreas {
		body := fmt.Sprintf(
			"La solicitud de inscripción %s de la entidad %s fue rechazada. Observaciones: %s "+
				"El área %s debe archivar las actuaciones pendientes del trámite.",
			tramite, e.Name, obs, area)
		d.dispatch(ctx, e.Code, d.areaRecipients(area), subject, body, nil)
	}

	if e.RepresentativeEmail != "" {
		body := fmt.Sprintf(
			"Su solicitud de inscripción %s fue rechazada. Observaciones: %s", tramite, obs)
		d.dispatch(ctx, e.Code, d.submitterRecipients(e.RepresentativeEmail), subject, body, nil)
	}
}

// areaRecipients buzones del área más la dirección institucional.
func (d *Dispatcher) areaRecipients(area string) []string {
	raw := append([]string{}, d.cfg.AreaMailboxes[area]...)
	return d.clean(append(raw, d.cfg.InstitutionalAddr))
}

// submitterRecipients solicitante más la dirección institucional.
func (d *Dispatcher) submitterRecipients(submitter string) []string {
	return d.clean([]string{submitter, d.cfg.InstitutionalAddr})
}

// clean deduplica (case-insensitive), descarta vacíos y filtra los dominios suprimidos.
func (d *Dispatcher) clean(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, addr := range raw {
		key := strings.ToLower(strings.TrimSpace(addr))
		if key == "" || seen[key] {
			continue
		}
		if d.suppressed(key) {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(addr))
	}
	return out
}

// suppressed indica si el dominio del destinatario está en la lista de supresión.
func (d *Dispatcher) suppressed(addr string) bool {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return false
	}
	domain := addr[at+1:]
	for _, s := range d.cfg.SuppressedDomains {
		if strings.EqualFold(domain, s) {
			return true
		}
	}
	return false
}

// dispatch envía el mensaje y registra el resultado. El log se escribe siempre,
// incluso cuando la llamada al servicio de correo falla; si el propio log falla
// solo queda constancia en el logger.
func (d *Dispatcher) dispatch(ctx context.Context, entityCode int, to []string, subject, body string, attachments []mail.Attachment) {
	if len(to) == 0 {
		d.log.Warn().Int("entidad", entityCode).Str("asunto", subject).
			Msg("sin destinatarios tras deduplicación y supresión; no se envía")
		return
	}

	msg := &mail.Message{
		To:          to,
		Subject:     subject,
		HTMLBody:    "<p>" + body + "</p>",
		TextBody:    body,
		Attachments: attachments,
	}
	sendErr := d.sender.Send(ctx, msg)

	logRow := &entity.EmailLog{
		EntityCode:  entityCode,
		Recipients:  to,
		Subject:     subject,
		BodyExcerpt: body,
		Outcome:     entity.EmailOutcomeSent,
	}
	if sendErr != nil {
		logRow.Outcome = entity.EmailOutcomeError
		logRow.ErrorDetail = sendErr.Error()
		d.log.Error().Err(sendErr).Int("entidad", entityCode).Str("asunto", subject).
			Msg("fallo el envío de correo")
	}
	if err := d.logRepo.Create(logRow); err != nil {
		d.log.Error().Err(err).Int("entidad", entityCode).Msg("no se pudo escribir el log de correos")
	}
}

func nonEmptyObs(s string) string {
	if strings.TrimSpace(s) == "" {
		return "sin observaciones"
	}
	return s
}
