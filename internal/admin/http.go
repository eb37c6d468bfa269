package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

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

// Handler expone las pantallas CRUD del administrador.
type Handler struct {
	service  *Service
	sessions SessionEnder
	cookie   string
}

func NewHandler(service *Service, sessions SessionEnder, cookieName string) *Handler {
	return &Handler{service: service, sessions: sessions, cookie: cookieName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	r.Post("/users", h.registerUser)
	r.Put("/users/{id}", h.updateUser)
	r.Delete("/users/{id}", h.deleteUser)
	r.Post("/users/{id}/disable", h.disableUser)

	r.Get("/teams", h.teamBoard)
	r.Post("/teams", h.createTeam)
	r.Put("/teams/{id}", h.updateTeam)
	r.Delete("/teams/{id}", h.deleteTeam)
	r.Post("/teams/{id}/disable", h.disableTeam)

	r.Get("/players", h.listPlayers)
	r.Get("/teams/{id}/players", h.listTeamPlayers)
	r.Post("/players", h.createPlayer)
	r.Put("/players/{id}", h.updatePlayer)
	r.Delete("/players/{id}", h.deletePlayer)

	r.Get("/matches", h.listMatches)
	r.Get("/matches/to-validate", h.listToValidate)
	r.Post("/matches", h.createMatch)
	r.Put("/matches/{id}", h.updateMatch)
	r.Delete("/matches/{id}", h.deleteMatch)
	r.Post("/matches/{id}/validate", h.validateMatch)
	r.Post("/matches/{id}/cancel-validation", h.cancelValidation)
}

// --- usuarios ---

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Users(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userListView(users, r.URL.Query()))
}

// userListView estrecha y ordena la lista en memoria según los query
// params de la pantalla (search, role, sort, dir).
func userListView(users []league.User, query url.Values) []league.User {
	roleFilter := &view.Select[league.User]{
		Key:     "role",
		Options: []string{"ADMIN", "JUGADOR", "MESA"},
		Value:   func(u league.User) string { return u.Role },
	}
	bar := view.NewFilterBar(func(u league.User) []string {
		return []string{u.Name, u.Email}
	}, nil, roleFilter)
	bar.Search = query.Get("search")
	roleFilter.Set(query.Get("role"))

	table := view.NewTable([]view.Column[league.User]{
		{Key: "name", Label: "Nombre", Sortable: true, Value: func(u league.User) any { return u.Name }},
		{Key: "email", Label: "Correo", Sortable: true, Value: func(u league.User) any { return u.Email }},
		{Key: "role", Label: "Rol", Sortable: true, Value: func(u league.User) any { return u.Role }},
	})
	applySort(table, query)

	return table.Rows(bar.Apply(users))
}

func applySort[T any](table *view.Table[T], query url.Values) {
	key := query.Get("sort")
	if key == "" {
		return
	}
	table.Toggle(key)
	if query.Get("dir") == "desc" {
		table.Toggle(key)
	}
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req league.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	if err := h.service.RegisterUser(r.Context(), httpmiddleware.GetToken(r.Context()), req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reloadUsers(w, r)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	var user league.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	if err := h.service.UpdateUser(r.Context(), httpmiddleware.GetToken(r.Context()), id, user); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reloadUsers(w, r)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Eliminar usuario",
		"¿Seguro que quieres eliminar este usuario? Esta acción no se puede deshacer.",
		h.service.DeleteUser, h.reloadUsers)
}

func (h *Handler) disableUser(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Desactivar usuario",
		"El usuario no podrá iniciar sesión hasta reactivarlo.",
		h.service.DisableUser, h.reloadUsers)
}

// --- equipos ---

func (h *Handler) teamBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.TeamBoard(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *Handler) createTeam(w http.ResponseWriter, r *http.Request) {
	h.saveTeam(w, r, 0)
}

func (h *Handler) updateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	h.saveTeam(w, r, id)
}

func (h *Handler) saveTeam(w http.ResponseWriter, r *http.Request, id int64) {
	var req league.TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}

	token := httpmiddleware.GetToken(r.Context())
	board, err := h.service.TeamBoard(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.SaveTeam(r.Context(), token, id, req, board.Teams); err != nil {
		h.fail(w, r, err)
		return
	}

	message := "Equipo creado correctamente"
	if id != 0 {
		message = "Equipo actualizado correctamente"
	}
	board, err = h.service.TeamBoard(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"board": board, "message": message})
}

func (h *Handler) deleteTeam(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Eliminar equipo",
		"¿Seguro que quieres eliminar este equipo? Esta acción no se puede deshacer.",
		h.service.DeleteTeam, h.reloadTeams)
}

func (h *Handler) disableTeam(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Desactivar equipo",
		"El equipo dejará de aparecer en las vistas públicas.",
		h.service.DisableTeam, h.reloadTeams)
}

// --- jugadores ---

func (h *Handler) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.Players(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playerListView(players, r.URL.Query()))
}

// playerListView aplica búsqueda por nombre/cédula y ordenamiento.
func playerListView(players []league.Player, query url.Values) []league.Player {
	bar := view.NewFilterBar(func(p league.Player) []string {
		return []string{p.Name, p.Cedula}
	}, nil)
	bar.Search = query.Get("search")

	table := view.NewTable([]view.Column[league.Player]{
		{Key: "name", Label: "Nombre", Sortable: true, Value: func(p league.Player) any { return p.Name }},
		{Key: "dorsal", Label: "Dorsal", Sortable: true, Align: view.AlignRight, Value: func(p league.Player) any { return int64(p.Dorsal) }},
		{Key: "carrera", Label: "Carrera", Sortable: true, Value: func(p league.Player) any { return p.Carrera }},
	})
	applySort(table, query)

	return table.Rows(bar.Apply(players))
}

func (h *Handler) listTeamPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	players, err := h.service.PlayersByTeam(r.Context(), httpmiddleware.GetToken(r.Context()), teamID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
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

	var teammates []league.Player
	if req.TeamID != 0 {
		var err error
		teammates, err = h.service.PlayersByTeam(r.Context(), token, req.TeamID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
	}
	if err := h.service.SavePlayer(r.Context(), token, id, req, teammates); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reloadPlayers(w, r)
}

func (h *Handler) deletePlayer(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Eliminar jugador",
		"¿Seguro que quieres eliminar este jugador? Esta acción no se puede deshacer.",
		h.service.DeletePlayer, h.reloadPlayers)
}

// --- partidos ---

func (h *Handler) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.Matches(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchViews(matches))
}

func (h *Handler) listToValidate(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.MatchesToValidate(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchViews(matches))
}

func (h *Handler) createMatch(w http.ResponseWriter, r *http.Request) {
	h.saveMatch(w, r, 0)
}

func (h *Handler) updateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	h.saveMatch(w, r, id)
}

func (h *Handler) saveMatch(w http.ResponseWriter, r *http.Request, id int64) {
	var req league.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	if err := h.service.SaveMatch(r.Context(), httpmiddleware.GetToken(r.Context()), id, req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.reloadMatches(w, r)
}

func (h *Handler) deleteMatch(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Eliminar partido",
		"¿Seguro que quieres eliminar este partido? Esta acción no se puede deshacer.",
		h.service.DeleteMatch, h.reloadMatches)
}

func (h *Handler) validateMatch(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Validar resultado",
		"El resultado quedará confirmado y el partido cerrado a cambios.",
		h.service.ValidateMatch, h.reloadToValidate)
}

func (h *Handler) cancelValidation(w http.ResponseWriter, r *http.Request) {
	h.confirmAction(w, r, "Revertir validación",
		"El partido volverá a admitir cambios en sus eventos.",
		h.service.CancelMatchValidation, h.reloadToValidate)
}

// confirmAction es el flujo de dos pasos del diálogo de confirmación:
// sin confirm devuelve el descriptor; con confirm ejecuta y, si falla,
// el diálogo queda abierto con el error.
func (h *Handler) confirmAction(w http.ResponseWriter, r *http.Request, title, message string, action func(context.Context, string, int64) error, reload func(http.ResponseWriter, *http.Request)) {
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
		if errors.Is(err, league.ErrUnauthorized) {
			h.logout(w, r)
			return
		}
		writeError(w, http.StatusConflict, "DIALOG", err.Error(), dialogState(dialog))
		return
	}
	reload(w, r)
}

func (h *Handler) reloadUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Users(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) reloadTeams(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.TeamBoard(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *Handler) reloadPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.Players(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *Handler) reloadMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.Matches(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchViews(matches))
}

func (h *Handler) reloadToValidate(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.MatchesToValidate(r.Context(), httpmiddleware.GetToken(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchViews(matches))
}

// matchViews decora cada partido con su badge de estado.
func matchViews(matches []league.Match) []map[string]any {
	views := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		badge := view.MatchBadge(m.Status, m.Validated)
		views = append(views, map[string]any{
			"match": m,
			"badge": badge,
		})
	}
	return views
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
