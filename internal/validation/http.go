package validation

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

// Handler expone la pantalla de validación de pendientes.
type Handler struct {
	service  *Service
	sessions SessionEnder
	cookie   string
}

func NewHandler(service *Service, sessions SessionEnder, cookieName string) *Handler {
	return &Handler{service: service, sessions: sessions, cookie: cookieName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/pending", h.listPending)
	r.Get("/history", h.history)
	r.Post("/teams/{id}/validate", h.validateTeam)
	r.Post("/players/{id}/validate", h.validatePlayer)
	r.Put("/teams/{id}", h.editTeam)
	r.Put("/players/{id}", h.editPlayer)
	r.Post("/teams/{id}/reject", h.rejectTeam)
	r.Post("/players/{id}/reject", h.rejectPlayer)
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	lists, err := h.service.LoadPending(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if term := r.URL.Query().Get("q"); term != "" {
		lists = h.service.Search(lists, term)
	}
	writeJSON(w, http.StatusOK, pendingView(lists))
}

// pendingView acompaña cada fila pendiente con su insignia de estado.
func pendingView(lists *PendingLists) map[string]any {
	teams := make([]map[string]any, 0, len(lists.Teams))
	for _, team := range lists.Teams {
		teams = append(teams, map[string]any{
			"team":  team,
			"badge": view.PendingBadge(team.Validated),
		})
	}
	players := make([]map[string]any, 0, len(lists.Players))
	for _, player := range lists.Players {
		players = append(players, map[string]any{
			"player": player,
			"badge":  view.PendingBadge(player.Validated),
		})
	}
	return map[string]any{"teams": teams, "players": players}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) validateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	token := httpmiddleware.GetToken(r.Context())
	if err := h.service.ValidateTeam(r.Context(), token, id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token)
}

func (h *Handler) validatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	token := httpmiddleware.GetToken(r.Context())
	if err := h.service.ValidatePlayer(r.Context(), token, id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token)
}

func (h *Handler) editTeam(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var patch league.TeamPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}

	token := httpmiddleware.GetToken(r.Context())
	if err := h.service.EditTeam(r.Context(), token, id, patch); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token)
}

func (h *Handler) editPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var patch league.PlayerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}

	token := httpmiddleware.GetToken(r.Context())

	// La unicidad se verifica contra los pendientes recién cargados.
	lists, err := h.service.LoadPending(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.EditPlayer(r.Context(), token, id, patch, lists.Players); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token)
}

func (h *Handler) rejectTeam(w http.ResponseWriter, r *http.Request) {
	h.confirmReject(w, r, "Rechazar equipo",
		"¿Seguro que quieres rechazar este equipo? Esta acción no se puede deshacer.",
		h.service.RejectTeam)
}

func (h *Handler) rejectPlayer(w http.ResponseWriter, r *http.Request) {
	h.confirmReject(w, r, "Rechazar jugador",
		"¿Seguro que quieres rechazar este jugador? Esta acción no se puede deshacer.",
		h.service.RejectPlayer)
}

// confirmReject arma el diálogo de confirmación en dos pasos: sin
// confirm devuelve el descriptor del diálogo; con confirm ejecuta la
// acción, y si falla el diálogo queda abierto con el error.
func (h *Handler) confirmReject(w http.ResponseWriter, r *http.Request, title, message string, action func(context.Context, string, int64) error) {
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
	dialog.Open(title, message, view.SeverityDanger, func(ctx context.Context) error {
		return action(ctx, token, id)
	})

	if !payload.Confirm {
		writeJSON(w, http.StatusOK, dialogState(dialog))
		return
	}

	if err := dialog.Confirm(r.Context()); err != nil {
		open, _, _, _, lastErr := dialog.State()
		if open && lastErr != nil {
			h.failInDialog(w, r, dialog, err)
			return
		}
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token)
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request, token string) {
	lists, err := h.service.LoadPending(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pendingView(lists))
}

// failInDialog responde el estado del diálogo aún abierto junto al error.
func (h *Handler) failInDialog(w http.ResponseWriter, r *http.Request, dialog *view.ConfirmDialog, err error) {
	if errors.Is(err, league.ErrUnauthorized) {
		h.logout(w, r)
		return
	}
	writeError(w, http.StatusConflict, "DIALOG", err.Error(), dialogState(dialog))
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

// fail traduce errores de dominio; un 401 del backend cierra la sesión
// y manda a la raíz pública.
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
