package matchdesk

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

type stubDeskClient struct {
	mu    sync.Mutex
	calls []string

	match     *league.MatchDetail
	events    []league.MatchEvent
	matchErr  error
	eventsErr error
	createErr error
}

func (s *stubDeskClient) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func (s *stubDeskClient) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *stubDeskClient) Match(ctx context.Context, token string, id int64) (*league.MatchDetail, error) {
	s.record("match")
	return s.match, s.matchErr
}
func (s *stubDeskClient) MatchEvents(ctx context.Context, token string, matchID int64) ([]league.MatchEvent, error) {
	s.record("events")
	return s.events, s.eventsErr
}
func (s *stubDeskClient) CreateMatchEvent(ctx context.Context, token string, req league.MatchEventRequest) error {
	s.record("create")
	return s.createErr
}
func (s *stubDeskClient) UpdateMatchEvent(ctx context.Context, token string, eventID int64, req league.MatchEventRequest) error {
	s.record("update")
	return nil
}
func (s *stubDeskClient) DeleteMatchEvent(ctx context.Context, token string, eventID int64) error {
	s.record("delete")
	return nil
}
func (s *stubDeskClient) RecalculateScore(ctx context.Context, token string, matchID int64) error {
	s.record("recalculate")
	return nil
}
func (s *stubDeskClient) FinishMatch(ctx context.Context, token string, id int64) error {
	s.record("finish")
	return nil
}

func pendingMatch() *league.MatchDetail {
	return &league.MatchDetail{ID: 1, Status: league.MatchPending, HomeTeamID: 5, AwayTeamID: 9}
}

func goal() league.MatchEventRequest {
	return league.MatchEventRequest{MatchID: 1, PlayerID: 3, Minute: 12, Type: league.EventGoal}
}

func TestEditable(t *testing.T) {
	cases := []struct {
		name  string
		match *league.MatchDetail
		want  bool
	}{
		{"pendiente", &league.MatchDetail{Status: league.MatchPending}, true},
		{"completado sin validar", &league.MatchDetail{Status: league.MatchCompleted}, true},
		{"completado validado", &league.MatchDetail{Status: league.MatchCompleted, Validated: true}, false},
		{"cancelado", &league.MatchDetail{Status: league.MatchCancelled}, false},
		{"nulo", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Editable(tc.match); got != tc.want {
				t.Errorf("Editable = %v, esperaba %v", got, tc.want)
			}
		})
	}
}

func TestAddEventThenRecalculate(t *testing.T) {
	stub := &stubDeskClient{match: pendingMatch()}
	svc := NewService(stub)

	if err := svc.AddEvent(context.Background(), "tok", pendingMatch(), goal()); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	calls := stub.recorded()
	if len(calls) != 2 || calls[0] != "create" || calls[1] != "recalculate" {
		t.Errorf("orden de llamadas = %v, esperaba [create recalculate]", calls)
	}
}

func TestAddEventFailureSkipsRecalculate(t *testing.T) {
	stub := &stubDeskClient{createErr: errors.New("boom")}
	svc := NewService(stub)

	if err := svc.AddEvent(context.Background(), "tok", pendingMatch(), goal()); err == nil {
		t.Fatal("esperaba error")
	}
	for _, call := range stub.recorded() {
		if call == "recalculate" {
			t.Error("no debe recalcular si el alta falló")
		}
	}
}

func TestAddEventLockedMatch(t *testing.T) {
	stub := &stubDeskClient{}
	svc := NewService(stub)

	validated := &league.MatchDetail{ID: 1, Status: league.MatchCompleted, Validated: true}
	if err := svc.AddEvent(context.Background(), "tok", validated, goal()); !errors.Is(err, ErrLocked) {
		t.Errorf("err = %v, esperaba ErrLocked", err)
	}
	if len(stub.recorded()) != 0 {
		t.Error("un partido cerrado no debe tocar la red")
	}
}

func TestCheckEventMessages(t *testing.T) {
	svc := NewService(&stubDeskClient{})
	match := pendingMatch()

	cases := []struct {
		name    string
		req     league.MatchEventRequest
		message string
	}{
		{"sin jugador", league.MatchEventRequest{MatchID: 1, Minute: 5, Type: league.EventGoal}, "Selecciona un jugador"},
		{"minuto negativo", league.MatchEventRequest{MatchID: 1, PlayerID: 3, Minute: -1, Type: league.EventGoal}, "El minuto no puede ser negativo"},
		{"gol con detalle", league.MatchEventRequest{MatchID: 1, PlayerID: 3, Minute: 5, Type: league.EventGoal, Detail: league.CardYellow}, "Un gol no lleva detalle"},
		{"tarjeta sin color", league.MatchEventRequest{MatchID: 1, PlayerID: 3, Minute: 5, Type: league.EventCard}, "La tarjeta debe ser amarilla o roja"},
		{"tarjeta verde", league.MatchEventRequest{MatchID: 1, PlayerID: 3, Minute: 5, Type: league.EventCard, Detail: "VERDE"}, "La tarjeta debe ser amarilla o roja"},
		{"tipo desconocido", league.MatchEventRequest{MatchID: 1, PlayerID: 3, Minute: 5, Type: "PENALTI"}, "Tipo de evento inválido"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.AddEvent(context.Background(), "tok", match, tc.req)
			var invalid *util.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, esperaba validación", err)
			}
			if invalid.Message != tc.message {
				t.Errorf("mensaje = %q, esperaba %q", invalid.Message, tc.message)
			}
		})
	}

	// El minuto cero es válido: un gol al arranque existe.
	req := goal()
	req.Minute = 0
	if err := svc.AddEvent(context.Background(), "tok", match, req); err != nil {
		t.Errorf("minuto 0: %v", err)
	}
}

func TestUpdateEventRecalculatesAndClosesEdit(t *testing.T) {
	stub := &stubDeskClient{match: pendingMatch()}
	svc := NewService(stub)

	svc.StartEdit("sid", 1, 44)
	req := goal()
	if err := svc.UpdateEvent(context.Background(), "tok", "sid", pendingMatch(), 44, req); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	calls := stub.recorded()
	if len(calls) != 2 || calls[0] != "update" || calls[1] != "recalculate" {
		t.Errorf("orden = %v", calls)
	}
	if got := svc.currentEdit("sid", 1); got != 0 {
		t.Errorf("la edición debería cerrarse al guardar, editing = %d", got)
	}
}

func TestNewEditCancelsPrevious(t *testing.T) {
	svc := NewService(&stubDeskClient{})

	svc.StartEdit("sid", 1, 10)
	svc.StartEdit("sid", 1, 20)
	if got := svc.currentEdit("sid", 1); got != 20 {
		t.Errorf("editing = %d, la edición nueva reemplaza a la anterior", got)
	}

	// Sesiones y partidos distintos no comparten el modo edición.
	if got := svc.currentEdit("otra", 1); got != 0 {
		t.Errorf("otra sesión = %d", got)
	}
	if got := svc.currentEdit("sid", 2); got != 0 {
		t.Errorf("otro partido = %d", got)
	}

	svc.CancelEdit("sid", 1)
	if got := svc.currentEdit("sid", 1); got != 0 {
		t.Errorf("tras cancelar = %d", got)
	}
}

func TestDeleteEventRecalculates(t *testing.T) {
	stub := &stubDeskClient{match: pendingMatch()}
	svc := NewService(stub)

	if err := svc.DeleteEvent(context.Background(), "tok", pendingMatch(), 44, 1); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	calls := stub.recorded()
	if len(calls) != 2 || calls[0] != "delete" || calls[1] != "recalculate" {
		t.Errorf("orden = %v", calls)
	}
}

func TestFinishOnlyWhileEditable(t *testing.T) {
	stub := &stubDeskClient{}
	svc := NewService(stub)

	if err := svc.Finish(context.Background(), "tok", pendingMatch()); err != nil {
		t.Fatalf("Finish pendiente: %v", err)
	}

	validated := &league.MatchDetail{ID: 1, Status: league.MatchCompleted, Validated: true}
	if err := svc.Finish(context.Background(), "tok", validated); !errors.Is(err, ErrLocked) {
		t.Errorf("Finish validado = %v, esperaba ErrLocked", err)
	}
}

func TestLoadJoinDiscardsBoth(t *testing.T) {
	stub := &stubDeskClient{match: pendingMatch(), eventsErr: errors.New("boom")}
	svc := NewService(stub)

	if _, err := svc.Load(context.Background(), "tok", "sid", 1); err == nil {
		t.Fatal("esperaba error si los eventos fallan")
	}

	stub = &stubDeskClient{matchErr: errors.New("boom"), events: []league.MatchEvent{{ID: 1}}}
	if _, err := NewService(stub).Load(context.Background(), "tok", "sid", 1); err == nil {
		t.Fatal("esperaba error si el partido falla")
	}
}
