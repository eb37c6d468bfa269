package matchdesk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// ErrLocked indica que el partido ya no admite registrar eventos.
var ErrLocked = errors.New("el partido ya no admite cambios")

// ErrBusy indica una acción duplicada mientras la anterior sigue en curso.
var ErrBusy = util.ErrBusy

// DeskClient son las llamadas del backend que usa la mesa de eventos.
type DeskClient interface {
	Match(ctx context.Context, token string, id int64) (*league.MatchDetail, error)
	MatchEvents(ctx context.Context, token string, matchID int64) ([]league.MatchEvent, error)
	CreateMatchEvent(ctx context.Context, token string, req league.MatchEventRequest) error
	UpdateMatchEvent(ctx context.Context, token string, eventID int64, req league.MatchEventRequest) error
	DeleteMatchEvent(ctx context.Context, token string, eventID int64) error
	RecalculateScore(ctx context.Context, token string, matchID int64) error
	FinishMatch(ctx context.Context, token string, matchID int64) error
}

// Board es el estado de la pantalla de la mesa: el partido, sus eventos y
// si aún puede modificarse.
type Board struct {
	Match    *league.MatchDetail  `json:"match"`
	Events   []league.MatchEvent  `json:"events"`
	Editable bool                 `json:"editable"`
	Editing  int64                `json:"editing,omitempty"`
}

// Service registra goles y tarjetas manteniendo el marcador consistente:
// cada mutación de eventos va seguida de un recálculo en el backend. El
// portal nunca calcula el marcador por su cuenta.
type Service struct {
	client   DeskClient
	inflight *util.Inflight

	mu      sync.Mutex
	editing map[string]int64
}

// NewService crea el servicio.
func NewService(client DeskClient) *Service {
	return &Service{
		client:   client,
		inflight: util.NewInflight(),
		editing:  make(map[string]int64),
	}
}

// Editable reporta si el partido admite registrar eventos: mientras está
// PENDING, o terminado pero aún sin validar (ventana de gracia).
func Editable(match *league.MatchDetail) bool {
	if match == nil {
		return false
	}
	return match.Status == league.MatchPending ||
		(match.Status == league.MatchCompleted && !match.Validated)
}

// Load trae el partido y sus eventos en paralelo. Join estricto: si una de
// las dos consultas falla se descarta el lote completo.
func (s *Service) Load(ctx context.Context, token, sid string, matchID int64) (*Board, error) {
	type eventsResult struct {
		events []league.MatchEvent
		err    error
	}
	eventsCh := make(chan eventsResult, 1)
	go func() {
		events, err := s.client.MatchEvents(ctx, token, matchID)
		eventsCh <- eventsResult{events: events, err: err}
	}()

	match, matchErr := s.client.Match(ctx, token, matchID)
	events := <-eventsCh

	if matchErr != nil {
		return nil, fmt.Errorf("cargar partido: %w", matchErr)
	}
	if events.err != nil {
		return nil, fmt.Errorf("cargar eventos: %w", events.err)
	}

	return &Board{
		Match:    match,
		Events:   events.events,
		Editable: Editable(match),
		Editing:  s.currentEdit(sid, matchID),
	}, nil
}

// AddEvent registra un evento y pide el recálculo del marcador, en ese
// orden. El backend es el único que suma goles.
func (s *Service) AddEvent(ctx context.Context, token string, match *league.MatchDetail, req league.MatchEventRequest) error {
	if !Editable(match) {
		return ErrLocked
	}
	if err := checkEvent(req); err != nil {
		return err
	}
	return s.run(fmt.Sprintf("match:%d:add", req.MatchID), func() error {
		if err := s.client.CreateMatchEvent(ctx, token, req); err != nil {
			return err
		}
		return s.client.RecalculateScore(ctx, token, req.MatchID)
	})
}

// UpdateEvent edita un evento existente y recalcula. Cierra el modo de
// edición de la sesión.
func (s *Service) UpdateEvent(ctx context.Context, token, sid string, match *league.MatchDetail, eventID int64, req league.MatchEventRequest) error {
	if !Editable(match) {
		return ErrLocked
	}
	if err := checkEvent(req); err != nil {
		return err
	}
	return s.run(fmt.Sprintf("event:%d:update", eventID), func() error {
		if err := s.client.UpdateMatchEvent(ctx, token, eventID, req); err != nil {
			return err
		}
		if err := s.client.RecalculateScore(ctx, token, req.MatchID); err != nil {
			return err
		}
		s.CancelEdit(sid, req.MatchID)
		return nil
	})
}

// DeleteEvent elimina un evento y recalcula. El llamador ya pasó por el
// diálogo de confirmación.
func (s *Service) DeleteEvent(ctx context.Context, token string, match *league.MatchDetail, eventID, matchID int64) error {
	if !Editable(match) {
		return ErrLocked
	}
	return s.run(fmt.Sprintf("event:%d:delete", eventID), func() error {
		if err := s.client.DeleteMatchEvent(ctx, token, eventID); err != nil {
			return err
		}
		return s.client.RecalculateScore(ctx, token, matchID)
	})
}

// Finish pasa el partido de PENDING a COMPLETED. Es de una sola vía desde
// esta pantalla; revertir la validación es una acción de administrador en
// otro lado.
func (s *Service) Finish(ctx context.Context, token string, match *league.MatchDetail) error {
	if !Editable(match) {
		return ErrLocked
	}
	return s.run(fmt.Sprintf("match:%d:finish", match.ID), func() error {
		return s.client.FinishMatch(ctx, token, match.ID)
	})
}

// StartEdit pone una fila en modo edición. Solo puede haber una a la vez:
// abrir una edición nueva cancela la anterior sin guardarla.
func (s *Service) StartEdit(sid string, matchID, eventID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing[editKey(sid, matchID)] = eventID
}

// CancelEdit cierra el modo edición de la sesión para ese partido.
func (s *Service) CancelEdit(sid string, matchID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.editing, editKey(sid, matchID))
}

func (s *Service) currentEdit(sid string, matchID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing[editKey(sid, matchID)]
}

func editKey(sid string, matchID int64) string {
	return fmt.Sprintf("%s:%d", sid, matchID)
}

func checkEvent(req league.MatchEventRequest) error {
	if req.PlayerID <= 0 {
		return util.Invalid("Selecciona un jugador")
	}
	if req.Minute < 0 {
		return util.Invalid("El minuto no puede ser negativo")
	}
	switch req.Type {
	case league.EventGoal:
		if req.Detail != "" {
			return util.Invalid("Un gol no lleva detalle")
		}
	case league.EventCard:
		if req.Detail != league.CardYellow && req.Detail != league.CardRed {
			return util.Invalid("La tarjeta debe ser amarilla o roja")
		}
	default:
		return util.Invalid("Tipo de evento inválido")
	}
	return nil
}

func (s *Service) run(key string, action func() error) error {
	if !s.inflight.Begin(key) {
		return ErrBusy
	}
	defer s.inflight.End(key)
	return action()
}
