package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/mateocampo1004/olimpiatec-portal/internal/http/middleware"
	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// SessionEnder elimina la sesión del navegador cuando el backend
// rechaza el token.
type SessionEnder interface {
	Delete(ctx context.Context, sid string) error
}

// Handler expone reportes, auditoría y administración del reglamento.
type Handler struct {
	service  *Service
	sessions SessionEnder
	cookie   string
}

func NewHandler(service *Service, sessions SessionEnder, cookieName string) *Handler {
	return &Handler{service: service, sessions: sessions, cookie: cookieName}
}

// RegisterRoutes monta la superficie de administrador.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate", h.generate)
	r.Get("/history", h.history)
	r.Get("/history/{id}/export", h.export)
	r.Get("/audit-logs", h.auditLogs)
	r.Post("/regulations", h.uploadRegulation)
	r.Get("/regulations/history", h.regulationHistory)
}

// RegisterPublicRoutes monta la consulta pública del reglamento.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/latest", h.latestRegulation)
	r.Get("/{id}/download", h.downloadRegulation)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var filter league.ReportFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	rows, err := h.service.Generate(r.Context(), httpmiddleware.GetToken(r.Context()), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.History(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// export retransmite el binario del backend tal cual al navegador.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	blob, contentType, err := h.service.Export(r.Context(), httpmiddleware.GetToken(r.Context()), id, r.URL.Query().Get("format"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeBlob(w, blob, contentType)
}

func (h *Handler) auditLogs(w http.ResponseWriter, r *http.Request) {
	filter := league.AuditLogFilter{
		UserEmail: r.URL.Query().Get("userEmail"),
		Action:    r.URL.Query().Get("action"),
		From:      r.URL.Query().Get("from"),
		To:        r.URL.Query().Get("to"),
	}
	logs, err := h.service.AuditLogs(r.Context(), httpmiddleware.GetToken(r.Context()), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *Handler) uploadRegulation(w http.ResponseWriter, r *http.Request) {
	// 10 MB alcanza para un reglamento en PDF.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "formulario inválido", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "Selecciona un archivo", nil)
		return
	}
	defer file.Close()

	token := httpmiddleware.GetToken(r.Context())
	if err := h.service.UploadRegulation(r.Context(), token, header.Filename, file); err != nil {
		h.fail(w, r, err)
		return
	}

	history, err := h.service.RegulationHistory(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) regulationHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.RegulationHistory(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) latestRegulation(w http.ResponseWriter, r *http.Request) {
	blob, contentType, err := h.service.LatestRegulation(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeBlob(w, blob, contentType)
}

func (h *Handler) downloadRegulation(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	blob, contentType, err := h.service.DownloadRegulation(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeBlob(w, blob, contentType)
}

func writeBlob(w http.ResponseWriter, blob []byte, contentType string) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, league.ErrUnauthorized) {
		h.logout(w, r)
		return
	}

	var invalid *util.InvalidInputError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, "VALIDATION", invalid.Message, nil)
		return
	}
	if errors.Is(err, util.ErrBusy) {
		writeError(w, http.StatusConflict, "BUSY", "La acción anterior sigue en curso", nil)
		return
	}
	if errors.Is(err, league.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Recurso no encontrado", nil)
		return
	}

	var apiErr *league.APIError
	if errors.As(err, &apiErr) {
		writeError(w, http.StatusBadGateway, "BACKEND", apiErr.Message, nil)
		return
	}
	writeError(w, http.StatusBadGateway, "BACKEND", "Error de conexión con el servidor", nil)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if sid := httpmiddleware.GetSessionID(r.Context()); sid != "" {
		_ = h.sessions.Delete(r.Context(), sid)
	}
	http.SetCookie(w, &http.Cookie{Name: h.cookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type successEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

type errorEnvelope struct {
	Data  any        `json:"data"`
	Error *errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Data:  nil,
		Error: &errorBody{Code: code, Message: message, Details: details},
	})
}
