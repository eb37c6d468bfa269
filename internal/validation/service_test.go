package validation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

type stubPendingClient struct {
	mu    sync.Mutex
	calls []string

	teams      []league.PendingTeam
	players    []league.PendingPlayer
	teamsErr   error
	playersErr error
	editErr    error
	block      chan struct{}
	entered    chan struct{}
}

func (s *stubPendingClient) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func (s *stubPendingClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubPendingClient) PendingTeams(ctx context.Context, token string) ([]league.PendingTeam, error) {
	s.record("pendingTeams")
	return s.teams, s.teamsErr
}
func (s *stubPendingClient) PendingPlayers(ctx context.Context, token string) ([]league.PendingPlayer, error) {
	s.record("pendingPlayers")
	return s.players, s.playersErr
}
func (s *stubPendingClient) ValidateTeam(ctx context.Context, token string, id int64) error {
	s.record("validateTeam")
	if s.entered != nil {
		close(s.entered)
		s.entered = nil
	}
	if s.block != nil {
		<-s.block
	}
	return nil
}
func (s *stubPendingClient) ValidatePlayer(ctx context.Context, token string, id int64) error {
	s.record("validatePlayer")
	return nil
}
func (s *stubPendingClient) EditPendingTeam(ctx context.Context, token string, id int64, patch league.TeamPatch) error {
	s.record("editTeam")
	return s.editErr
}
func (s *stubPendingClient) EditPendingPlayer(ctx context.Context, token string, id int64, patch league.PlayerPatch) error {
	s.record("editPlayer")
	return s.editErr
}
func (s *stubPendingClient) RejectTeam(ctx context.Context, token string, id int64) error {
	s.record("rejectTeam")
	return nil
}
func (s *stubPendingClient) RejectPlayer(ctx context.Context, token string, id int64) error {
	s.record("rejectPlayer")
	return nil
}
func (s *stubPendingClient) ValidationHistory(ctx context.Context, token string) ([]league.ValidationRecord, error) {
	s.record("history")
	return nil, nil
}

var pendingPlayers = []league.PendingPlayer{
	{ID: 1, Name: "Carlos Vera", Cedula: "0912345678", Dorsal: 10, Carrera: "Sistemas", TeamID: 5, TeamName: "Sistemas FC"},
	{ID: 2, Name: "Luis Mora", Cedula: "0998765432", Dorsal: 7, Carrera: "Sistemas", TeamID: 5, TeamName: "Sistemas FC"},
	{ID: 3, Name: "Pedro Paz", Cedula: "0912345678", Dorsal: 10, Carrera: "Mecánica", TeamID: 9, TeamName: "Mecánica United"},
}

func TestLoadPendingJoin(t *testing.T) {
	stub := &stubPendingClient{
		teams:   []league.PendingTeam{{ID: 1, Name: "Sistemas FC"}},
		players: pendingPlayers,
	}
	svc := NewService(stub)

	lists, err := svc.LoadPending(context.Background(), "tok")
	if err != nil {
		t.Fatalf("LoadPending: %v", err)
	}
	if len(lists.Teams) != 1 || len(lists.Players) != 3 {
		t.Errorf("lists = %d equipos, %d jugadores", len(lists.Teams), len(lists.Players))
	}
}

func TestLoadPendingDiscardsBothHalves(t *testing.T) {
	boom := errors.New("timeout")

	for _, tc := range []struct {
		name string
		stub *stubPendingClient
	}{
		{"fallan equipos", &stubPendingClient{teamsErr: boom, players: pendingPlayers}},
		{"fallan jugadores", &stubPendingClient{playersErr: boom, teams: []league.PendingTeam{{ID: 1, Name: "X"}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lists, err := NewService(tc.stub).LoadPending(context.Background(), "tok")
			if err == nil {
				t.Fatal("esperaba error")
			}
			if lists != nil {
				t.Error("un fallo parcial debe descartar el lote completo")
			}
		})
	}
}

func TestSearch(t *testing.T) {
	svc := NewService(&stubPendingClient{})
	lists := &PendingLists{
		Teams: []league.PendingTeam{
			{ID: 1, Name: "Sistemas FC", RepresentativeName: "Ana Coro"},
			{ID: 2, Name: "Mecánica United", RepresentativeName: "Beto Díaz"},
		},
		Players: pendingPlayers,
	}

	got := svc.Search(lists, "  MECÁNICA ")
	if len(got.Teams) != 1 || got.Teams[0].ID != 2 {
		t.Errorf("equipos filtrados = %v", got.Teams)
	}
	if len(got.Players) != 1 || got.Players[0].ID != 3 {
		t.Errorf("jugadores filtrados = %v", got.Players)
	}

	// La búsqueda también cubre al representante.
	got = svc.Search(lists, "ana coro")
	if len(got.Teams) != 1 || got.Teams[0].ID != 1 {
		t.Errorf("búsqueda por representante = %v", got.Teams)
	}

	// Término vacío devuelve las listas intactas.
	if got := svc.Search(lists, "   "); got != lists {
		t.Error("término vacío no debería filtrar")
	}
}

func TestEditPlayerBlocksBeforeNetwork(t *testing.T) {
	stub := &stubPendingClient{}
	svc := NewService(stub)

	cases := []struct {
		name    string
		patch   league.PlayerPatch
		message string
	}{
		{
			"campos vacíos",
			league.PlayerPatch{Name: "", Cedula: "0912345678", Dorsal: 9, Carrera: "Sistemas"},
			"Todos los campos son obligatorios",
		},
		{
			"cédula corta",
			league.PlayerPatch{Name: "Juan", Cedula: "12345", Dorsal: 9, Carrera: "Sistemas"},
			"La cédula debe tener exactamente 10 dígitos numéricos",
		},
		{
			"cédula con letras",
			league.PlayerPatch{Name: "Juan", Cedula: "09123456AB", Dorsal: 9, Carrera: "Sistemas"},
			"La cédula debe tener exactamente 10 dígitos numéricos",
		},
		{
			"dorsal cero",
			league.PlayerPatch{Name: "Juan", Cedula: "0911111111", Dorsal: 0, Carrera: "Sistemas"},
			"El dorsal debe ser mayor a 0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.EditPlayer(context.Background(), "tok", 1, tc.patch, pendingPlayers)
			var invalid *util.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, esperaba validación", err)
			}
			if invalid.Message != tc.message {
				t.Errorf("mensaje = %q, esperaba %q", invalid.Message, tc.message)
			}
		})
	}

	if stub.callCount() != 0 {
		t.Errorf("la validación local no debe tocar la red, hubo %d llamadas", stub.callCount())
	}
}

func TestEditPlayerUniquenessWithinTeam(t *testing.T) {
	stub := &stubPendingClient{}
	svc := NewService(stub)

	// La cédula del jugador 2 choca con la del jugador 1 (mismo equipo).
	err := svc.EditPlayer(context.Background(), "tok", 2,
		league.PlayerPatch{Name: "Luis Mora", Cedula: "0912345678", Dorsal: 7, Carrera: "Sistemas"}, pendingPlayers)
	var invalid *util.InvalidInputError
	if !errors.As(err, &invalid) || invalid.Message != "Ya existe un jugador con esa cédula en ese equipo" {
		t.Errorf("cédula duplicada: err = %v", err)
	}

	// El dorsal del jugador 2 choca con el del jugador 1.
	err = svc.EditPlayer(context.Background(), "tok", 2,
		league.PlayerPatch{Name: "Luis Mora", Cedula: "0998765432", Dorsal: 10, Carrera: "Sistemas"}, pendingPlayers)
	if !errors.As(err, &invalid) || invalid.Message != "Ya existe un jugador con ese dorsal en ese equipo" {
		t.Errorf("dorsal duplicado: err = %v", err)
	}

	// El jugador 3 comparte cédula y dorsal con el 1 pero en OTRO equipo:
	// no choca.
	if err := svc.EditPlayer(context.Background(), "tok", 3,
		league.PlayerPatch{Name: "Pedro Paz", Cedula: "0912345678", Dorsal: 10, Carrera: "Mecánica"}, pendingPlayers); err != nil {
		t.Errorf("otro equipo no debería chocar: %v", err)
	}

	if stub.callCount() != 1 {
		t.Errorf("solo la edición válida llega a la red, hubo %d llamadas", stub.callCount())
	}
}

func TestEditTeamRequiresAllFields(t *testing.T) {
	stub := &stubPendingClient{}
	svc := NewService(stub)

	err := svc.EditTeam(context.Background(), "tok", 1, league.TeamPatch{Name: "Sistemas FC", ContactNumber: " "})
	var invalid *util.InvalidInputError
	if !errors.As(err, &invalid) || invalid.Message != "Todos los campos son obligatorios" {
		t.Errorf("err = %v", err)
	}
	if stub.callCount() != 0 {
		t.Error("la validación fallida no debe llegar al backend")
	}
}

func TestValidateTeamReentrancyGuard(t *testing.T) {
	entered := make(chan struct{})
	stub := &stubPendingClient{block: make(chan struct{}), entered: entered}
	svc := NewService(stub)

	done := make(chan error, 1)
	go func() {
		done <- svc.ValidateTeam(context.Background(), "tok", 7)
	}()
	<-entered

	// Segundo clic sobre la misma acción mientras la primera sigue en
	// curso: reporta ocupado sin duplicar la llamada.
	if err := svc.ValidateTeam(context.Background(), "tok", 7); !errors.Is(err, ErrBusy) {
		t.Errorf("segunda llamada = %v, esperaba ErrBusy", err)
	}

	// Acciones sobre OTRO id no comparten el guard.
	idle := &stubPendingClient{}
	if err := NewService(idle).ValidateTeam(context.Background(), "tok", 8); err != nil {
		t.Errorf("otro id: %v", err)
	}

	close(stub.block)
	if err := <-done; err != nil {
		t.Errorf("primera llamada: %v", err)
	}
	if stub.callCount() != 1 {
		t.Errorf("el backend debe recibir una sola llamada, hubo %d", stub.callCount())
	}
}
