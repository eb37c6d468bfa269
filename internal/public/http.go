package public

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// Handler expone la superficie pública del campeonato. Ninguna ruta
// exige sesión.
type Handler struct {
	service *Service
	poller  *ResultsPoller
}

func NewHandler(service *Service, poller *ResultsPoller) *Handler {
	return &Handler{service: service, poller: poller}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/standings", h.standings)
	r.Get("/stats", h.globalStats)
	r.Get("/teams", h.teams)
	r.Get("/teams/{id}/stats", h.teamStats)
	r.Get("/players", h.players)
	r.Get("/players/{id}", h.playerProfile)
	r.Get("/players/{id}/stats", h.playerStats)
	r.Get("/calendar", h.calendar)
	r.Get("/matches/{id}/stats", h.matchStats)
	r.Get("/results", h.results)
}

func (h *Handler) standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *Handler) globalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GlobalStats(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.Teams(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *Handler) teamStats(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	stats, err := h.service.TeamStats(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) players(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.Players(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *Handler) playerProfile(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	profile, err := h.service.PlayerProfile(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) playerStats(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	stats, err := h.service.GlobalPlayerStats(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.Calendar(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (h *Handler) matchStats(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	stats, err := h.service.MatchStats(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// results sirve el snapshot del poller; si aún no corrió se resuelve en
// línea para no dejar la pantalla vacía.
func (h *Handler) results(w http.ResponseWriter, r *http.Request) {
	if h.poller != nil {
		if snapshot := h.poller.Snapshot(); snapshot != nil {
			writeJSON(w, http.StatusOK, snapshot)
			return
		}
	}

	standings, err := h.service.Standings(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	matches, err := h.service.Calendar(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"standings": standings,
		"matches":   matches,
	})
}

func fail(w http.ResponseWriter, err error) {
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
