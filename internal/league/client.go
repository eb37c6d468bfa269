package league

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrUnauthorized se devuelve ante un 401 del backend: el token dejó de
	// ser aceptado y la sesión debe cerrarse.
	ErrUnauthorized = errors.New("backend rechazó el token")
	// ErrNotFound se devuelve ante un 404.
	ErrNotFound = errors.New("recurso no encontrado")
)

// APIError describe una respuesta no-2xx del backend de la liga. Message
// conserva el cuerpo enviado por el backend cuando existe, o un texto
// genérico en su defecto.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend liga: status %d: %s", e.Status, e.Message)
}

// Client encapsula las llamadas HTTP al backend REST de la liga. Es
// stateless: sin caché, sin reintentos; cada pantalla vuelve a consultar.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New crea el cliente apuntando a la base configurada (p. ej. https://host/api).
func New(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("league: base URL vacía")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}, nil
}

// boundaryChecked lo implementan los DTOs que validan campos obligatorios al
// decodificar, para que una respuesta malformada falle rápido y tipada.
type boundaryChecked interface {
	checkBoundary() error
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do ejecuta la petición y decodifica el JSON de respuesta en out (si out no
// es nil). Las respuestas no-2xx se convierten en error sin tocar out.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("league %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("league %s %s: respuesta malformada: %w", method, path, err)
	}
	if checked, ok := out.(boundaryChecked); ok {
		if err := checked.checkBoundary(); err != nil {
			return fmt.Errorf("league %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, token, body, out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// getBlob trae una respuesta binaria (exportes PDF/Excel, reglamento).
func (c *Client) getBlob(ctx context.Context, method, path, token string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, method, path, token, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Del("Accept")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("league %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", errorFromResponse(resp)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return blob, resp.Header.Get("Content-Type"), nil
}

// postMultipart sube un archivo con el nombre de campo indicado.
func (c *Client) postMultipart(ctx context.Context, path, token, field, filename string, content io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("league POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	message := ""
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		message = strings.TrimSpace(string(body))
		var decoded struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &decoded) == nil && decoded.Message != "" {
			message = decoded.Message
		}
	}
	if message == "" || strings.HasPrefix(message, "<") {
		message = "error del servidor"
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

func pathID(base string, id int64) string {
	return fmt.Sprintf("%s/%d", base, id)
}

func withQuery(path string, values url.Values) string {
	if encoded := values.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}
