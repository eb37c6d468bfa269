package myteam

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/mateocampo1004/olimpiatec-portal/internal/http/middleware"
	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
	"github.com/mateocampo1004/olimpiatec-portal/internal/view"
)

// SessionEnder elimina la sesión del navegador cuando el backend
// rechaza el token.
type SessionEnder interface {
	Delete(ctx context.Context, sid string) error
}

// Handler expone la superficie del representante de equipo.
type Handler struct {
	service  *Service
	sessions SessionEnder
	cookie   string
}

func NewHandler(service *Service, sessions SessionEnder, cookieName string) *Handler {
	return &Handler{service: service, sessions: sessions, cookie: cookieName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/roster", h.getRoster)
	r.Post("/players", h.createPlayer)
	r.Put("/players/{id}", h.updatePlayer)
	r.Delete("/players/{id}", h.deletePlayer)
	r.Get("/matches", h.myMatches)
	r.Get("/matches/{id}/report", h.getReport)
	r.Post("/matches/{id}/report", h.submitReport)
}

func (h *Handler) getRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.Roster(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func (h *Handler) createPlayer(w http.ResponseWriter, r *http.Request) {
	h.savePlayer(w, r, 0)
}

func (h *Handler) updatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	h.savePlayer(w, r, id)
}

func (h *Handler) savePlayer(w http.ResponseWriter, r *http.Request, id int64) {
	var req league.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}

	token := httpmiddleware.GetToken(r.Context())
	roster, err := h.service.Roster(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.SavePlayer(r.Context(), token, id, req, roster); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token)
}

// deletePlayer pasa por el diálogo de confirmación en dos pasos.
func (h *Handler) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var payload struct {
		Confirm bool `json:"confirm"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	token := httpmiddleware.GetToken(r.Context())

	dialog := &view.ConfirmDialog{}
	dialog.Open("Eliminar jugador", "¿Seguro que quieres eliminar este jugador de tu equipo?",
		view.SeverityDanger, func(ctx context.Context) error {
			return h.service.DeletePlayer(ctx, token, id)
		})

	if !payload.Confirm {
		writeJSON(w, http.StatusOK, dialogState(dialog))
		return
	}

	if err := dialog.Confirm(r.Context()); err != nil {
		if errors.Is(err, league.ErrUnauthorized) {
			h.logout(w, r)
			return
		}
		writeError(w, http.StatusConflict, "DIALOG", err.Error(), dialogState(dialog))
		return
	}
	h.reload(w, r, token)
}

func (h *Handler) myMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.MyMatches(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	views := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		views = append(views, map[string]any{
			"match": m,
			"badge": view.MatchBadge(m.Status, m.Validated),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	report, err := h.service.Report(r.Context(), httpmiddleware.GetToken(r.Context()), matchID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) submitReport(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var report league.MatchReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	report.MatchID = matchID

	token := httpmiddleware.GetToken(r.Context())
	roster, err := h.service.Roster(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.SubmitReport(r.Context(), token, report, roster); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Alineación presentada correctamente"})
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request, token string) {
	roster, err := h.service.Roster(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func dialogState(dialog *view.ConfirmDialog) map[string]any {
	open, title, message, severity, lastErr := dialog.State()
	state := map[string]any{
		"open":     open,
		"title":    title,
		"message":  message,
		"severity": severity,
		"icon":     severity.Icon(),
	}
	if lastErr != nil {
		state["error"] = lastErr.Error()
	}
	return state
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
