package matchdesk

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

// Handler expone la mesa de registro de eventos de un partido.
type Handler struct {
	service  *Service
	sessions SessionEnder
	cookie   string
}

func NewHandler(service *Service, sessions SessionEnder, cookieName string) *Handler {
	return &Handler{service: service, sessions: sessions, cookie: cookieName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/{matchID}", h.getBoard)
	r.Post("/{matchID}/events", h.addEvent)
	r.Put("/{matchID}/events/{eventID}", h.updateEvent)
	r.Delete("/{matchID}/events/{eventID}", h.deleteEvent)
	r.Post("/{matchID}/finish", h.finish)
	r.Post("/{matchID}/events/{eventID}/edit", h.startEdit)
	r.Post("/{matchID}/edit/cancel", h.cancelEdit)
}

func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	board, err := h.service.Load(r.Context(), httpmiddleware.GetToken(r.Context()), httpmiddleware.GetSessionID(r.Context()), matchID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boardView(board))
}

func (h *Handler) addEvent(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req league.MatchEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	req.MatchID = matchID

	token := httpmiddleware.GetToken(r.Context())
	sid := httpmiddleware.GetSessionID(r.Context())

	board, err := h.service.Load(r.Context(), token, sid, matchID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.AddEvent(r.Context(), token, board.Match, req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token, sid, matchID)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	eventID, err := util.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req league.MatchEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	req.MatchID = matchID

	token := httpmiddleware.GetToken(r.Context())
	sid := httpmiddleware.GetSessionID(r.Context())

	board, err := h.service.Load(r.Context(), token, sid, matchID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.UpdateEvent(r.Context(), token, sid, board.Match, eventID, req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token, sid, matchID)
}

// deleteEvent pasa por el diálogo de confirmación en dos pasos.
func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	eventID, err := util.ParseID(chi.URLParam(r, "eventID"))
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
	sid := httpmiddleware.GetSessionID(r.Context())

	dialog := &view.ConfirmDialog{}
	dialog.Open("Eliminar evento", "¿Seguro que quieres eliminar este evento? El marcador se recalculará.",
		view.SeverityDanger, func(ctx context.Context) error {
			board, err := h.service.Load(ctx, token, sid, matchID)
			if err != nil {
				return err
			}
			return h.service.DeleteEvent(ctx, token, board.Match, eventID, matchID)
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
		writeError(w, http.StatusConflict, "DIALOG", failMessage(err), dialogState(dialog))
		return
	}
	h.reload(w, r, token, sid, matchID)
}

func (h *Handler) finish(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	token := httpmiddleware.GetToken(r.Context())
	sid := httpmiddleware.GetSessionID(r.Context())

	board, err := h.service.Load(r.Context(), token, sid, matchID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.Finish(r.Context(), token, board.Match); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reload(w, r, token, sid, matchID)
}

func (h *Handler) startEdit(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	eventID, err := util.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	h.service.StartEdit(httpmiddleware.GetSessionID(r.Context()), matchID, eventID)
	writeJSON(w, http.StatusOK, map[string]any{"editing": eventID})
}

func (h *Handler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	matchID, err := util.ParseID(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	h.service.CancelEdit(httpmiddleware.GetSessionID(r.Context()), matchID)
	writeJSON(w, http.StatusOK, map[string]any{"editing": int64(0)})
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request, token, sid string, matchID int64) {
	board, err := h.service.Load(r.Context(), token, sid, matchID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boardView(board))
}

// boardView decora los eventos con su icono antes de mandarlos al
// navegador.
func boardView(board *Board) map[string]any {
	events := make([]map[string]any, 0, len(board.Events))
	for _, e := range board.Events {
		events = append(events, map[string]any{
			"id":         e.ID,
			"type":       e.Type,
			"detail":     e.Detail,
			"minute":     e.Minute,
			"playerId":   e.PlayerID,
			"playerName": e.PlayerName,
			"teamName":   e.TeamName,
			"icon":       view.EventIcon(e.Type, e.Detail),
		})
	}
	return map[string]any{
		"match":    board.Match,
		"events":   events,
		"editable": board.Editable,
		"editing":  board.Editing,
	}
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
	if errors.Is(err, ErrLocked) {
		writeError(w, http.StatusConflict, "LOCKED", ErrLocked.Error(), nil)
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

func failMessage(err error) string {
	var invalid *util.InvalidInputError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	var apiErr *league.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrLocked) {
		return ErrLocked.Error()
	}
	return "Error de conexión con el servidor"
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
