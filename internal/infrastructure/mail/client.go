// Package mail implementa el cliente del microservicio centralizado de envío de
// correos. El contrato es un único POST JSON autenticado con API key estática;
// no hay reintentos: el envío es best-effort y la operación principal nunca
// depende de su resultado.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fogafin/sief-api/pkg/config"
)

// Attachment adjunto del correo, contenido en base64.
type Attachment struct {
	Filename      string `json:"filename"`
	ContentBase64 string `json:"content"`
}

// Message payload aceptado por el servicio de correo.
type Message struct {
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTMLBody    string       `json:"htmlBody"`
	TextBody    string       `json:"textBody"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Sender define el puerto de salida hacia el servicio de correo.
// Para tests se puede inyectar un mock.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// HTTPSender implementa Sender contra el microservicio HTTP.
type HTTPSender struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Sender = (*HTTPSender)(nil)

// NewHTTPSender construye el cliente con un timeout de 30 s; el servicio de
// correo puede demorar cuando adjunta archivos grandes.
func NewHTTPSender(cfg config.MailConfig) *HTTPSender {
	return &HTTPSender{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send entrega el mensaje al servicio. Cualquier respuesta distinta de 2xx es error.
func (s *HTTPSender) Send(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mail: marshal mensaje: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: enviar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail: el servicio respondió %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
