// Package blob implementa el cliente del servicio externo de almacenamiento de
// blobs. Dos contenedores lógicos: resúmenes PDF generados y soportes cargados
// por el usuario; los blobs se direccionan por URL.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fogafin/sief-api/pkg/config"
)

// Storage define el puerto de salida hacia el almacenamiento de blobs.
type Storage interface {
	// Upload sube el contenido al contenedor y devuelve la URL del blob.
	Upload(ctx context.Context, container, name string, content []byte, contentType string) (string, error)
	// Download descarga el blob direccionado por su URL.
	Download(ctx context.Context, blobURL string) ([]byte, error)
}

// HTTPStorage implementa Storage contra el servicio HTTP.
type HTTPStorage struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Storage = (*HTTPStorage)(nil)

// NewHTTPStorage construye el cliente con timeout de 60 s (los soportes pueden
// pesar varios MB).
func NewHTTPStorage(cfg config.BlobConfig) *HTTPStorage {
	return &HTTPStorage{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload sube el blob con PUT {base}/{container}/{name} y devuelve esa URL.
func (s *HTTPStorage) Upload(ctx context.Context, container, name string, content []byte, contentType string) (string, error) {
	blobURL, err := url.JoinPath(s.baseURL, container, name)
	if err != nil {
		return "", fmt.Errorf("blob: construir URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, blobURL, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("blob: crear request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob: subir %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("blob: el servicio respondió %d al subir %s: %s", resp.StatusCode, name, string(detail))
	}
	return blobURL, nil
}

// Download descarga el blob por su URL.
func (s *HTTPStorage) Download(ctx context.Context, blobURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, blobURL, nil)
	if err != nil {
		return nil, fmt.Errorf("blob: crear request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob: descargar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("blob: no existe %s", blobURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("blob: el servicio respondió %d al descargar", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
