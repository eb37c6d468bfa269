package admin

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

type stubAdminClient struct {
	mu    sync.Mutex
	calls int

	teams    []league.Team
	teamsErr error
	reps     []league.User
	repsErr  error
}

func (s *stubAdminClient) hit() error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return nil
}

func (s *stubAdminClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubAdminClient) Users(ctx context.Context, token string) ([]league.User, error) {
	return nil, s.hit()
}
func (s *stubAdminClient) UpdateUser(ctx context.Context, token string, id int64, user league.User) error {
	return s.hit()
}
func (s *stubAdminClient) DeleteUser(ctx context.Context, token string, id int64) error {
	return s.hit()
}
func (s *stubAdminClient) DisableUser(ctx context.Context, token string, id int64) error {
	return s.hit()
}
func (s *stubAdminClient) RepresentativeUsers(ctx context.Context, token string) ([]league.User, error) {
	s.hit()
	return s.reps, s.repsErr
}
func (s *stubAdminClient) Register(ctx context.Context, token string, req league.RegisterRequest) error {
	return s.hit()
}
func (s *stubAdminClient) Teams(ctx context.Context, token string) ([]league.Team, error) {
	s.hit()
	return s.teams, s.teamsErr
}
func (s *stubAdminClient) CreateTeam(ctx context.Context, token string, req league.TeamRequest) error {
	return s.hit()
}
func (s *stubAdminClient) UpdateTeam(ctx context.Context, token string, id int64, req league.TeamRequest) error {
	return s.hit()
}
func (s *stubAdminClient) DeleteTeam(ctx context.Context, token string, id int64) error {
	return s.hit()
}
func (s *stubAdminClient) DisableTeam(ctx context.Context, token string, id int64) error {
	return s.hit()
}
func (s *stubAdminClient) Players(ctx context.Context, token string) ([]league.Player, error) {
	return nil, s.hit()
}
func (s *stubAdminClient) PlayersByTeam(ctx context.Context, token string, teamID int64) ([]league.Player, error) {
	return nil, s.hit()
}
func (s *stubAdminClient) CreatePlayer(ctx context.Context, token string, req league.PlayerRequest) error {
	return s.hit()
}
func (s *stubAdminClient) UpdatePlayer(ctx context.Context, token string, id int64, req league.PlayerRequest) error {
	return s.hit()
}
func (s *stubAdminClient) DeletePlayer(ctx context.Context, token string, id int64) error {
	return s.hit()
}
func (s *stubAdminClient) Matches(ctx context.Context, token string) ([]league.Match, error) {
	return nil, s.hit()
}
func (s *stubAdminClient) MatchesToValidate(ctx context.Context, token string) ([]league.Match, error) {
	return nil, s.hit()
}
func (s *stubAdminClient) CreateMatch(ctx context.Context, token string, req league.MatchRequest) error {
	return s.hit()
}
func (s *stubAdminClient) UpdateMatch(ctx context.Context, token string, id int64, req league.MatchRequest) error {
	return s.hit()
}
func (s *stubAdminClient) DeleteMatch(ctx context.Context, token string, id int64) error {
	return s.hit()
}
func (s *stubAdminClient) ValidateMatch(ctx context.Context, token string, id int64) error {
	return s.hit()
}
func (s *stubAdminClient) CancelMatchValidation(ctx context.Context, token string, id int64) error {
	return s.hit()
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var invalid *util.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, esperaba validación local", err)
	}
	return invalid.Message
}

func loadedTeams() []league.Team {
	return []league.Team{
		{ID: 1, Name: "Sistemas FC", ContactNumber: "0991112233", Representative: league.User{ID: 10}},
		{ID: 2, Name: "Civil United", ContactNumber: "0994445566", Representative: league.User{ID: 20}},
	}
}

func TestSaveTeamValidation(t *testing.T) {
	stub := &stubAdminClient{}
	svc := NewService(stub)
	teams := loadedTeams()

	cases := []struct {
		name    string
		id      int64
		req     league.TeamRequest
		message string
	}{
		{"sin nombre", 0, league.TeamRequest{ContactNumber: "099", RepresentativeID: 30}, "El nombre del equipo es obligatorio"},
		{"nombre en blanco", 0, league.TeamRequest{Name: "   ", ContactNumber: "099", RepresentativeID: 30}, "El nombre del equipo es obligatorio"},
		{"sin contacto", 0, league.TeamRequest{Name: "Mecánica", RepresentativeID: 30}, "El número de contacto es obligatorio"},
		{"sin representante", 0, league.TeamRequest{Name: "Mecánica", ContactNumber: "099"}, "Debe seleccionar un representante"},
		{"nombre repetido", 0, league.TeamRequest{Name: "sistemas fc", ContactNumber: "099", RepresentativeID: 30}, "Ya existe un equipo con ese nombre"},
		{"nombre repetido con espacios", 0, league.TeamRequest{Name: "  Sistemas FC ", ContactNumber: "099", RepresentativeID: 30}, "Ya existe un equipo con ese nombre"},
		{"representante ocupado", 0, league.TeamRequest{Name: "Mecánica", ContactNumber: "099", RepresentativeID: 20}, "Este representante ya está asignado a otro equipo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SaveTeam(context.Background(), "tok", tc.id, tc.req, teams)
			if got := validationMessage(t, err); got != tc.message {
				t.Errorf("mensaje = %q, esperaba %q", got, tc.message)
			}
		})
	}
	if stub.callCount() != 0 {
		t.Errorf("la validación local no debe tocar la red, hubo %d llamadas", stub.callCount())
	}
}

func TestSaveTeamIgnoresOwnRow(t *testing.T) {
	stub := &stubAdminClient{}
	svc := NewService(stub)

	// Al actualizar, el propio equipo no cuenta como duplicado.
	req := league.TeamRequest{Name: "Sistemas FC", ContactNumber: "099", RepresentativeID: 10}
	if err := svc.SaveTeam(context.Background(), "tok", 1, req, loadedTeams()); err != nil {
		t.Fatalf("SaveTeam: %v", err)
	}
	if stub.callCount() != 1 {
		t.Errorf("llamadas = %d, esperaba 1", stub.callCount())
	}
}

func TestSavePlayerValidation(t *testing.T) {
	stub := &stubAdminClient{}
	svc := NewService(stub)
	teammates := []league.Player{
		{ID: 7, Name: "Luis Pico", Cedula: "1804567890", Dorsal: 9, TeamID: 1},
		{ID: 8, Name: "Otro Equipo", Cedula: "1800000001", Dorsal: 10, TeamID: 2},
	}

	cases := []struct {
		name    string
		id      int64
		req     league.PlayerRequest
		message string
	}{
		{"campos vacíos", 0, league.PlayerRequest{Cedula: "1804567891", Dorsal: 4, TeamID: 1}, "Todos los campos son obligatorios"},
		{"cédula corta", 0, league.PlayerRequest{Name: "Ana", Carrera: "Sistemas", Cedula: "123", Dorsal: 4, TeamID: 1}, "La cédula debe tener exactamente 10 dígitos numéricos"},
		{"dorsal cero", 0, league.PlayerRequest{Name: "Ana", Carrera: "Sistemas", Cedula: "1804567891", TeamID: 1}, "El dorsal debe ser mayor a 0"},
		{"sin equipo", 0, league.PlayerRequest{Name: "Ana", Carrera: "Sistemas", Cedula: "1804567891", Dorsal: 4}, "Debe seleccionar un equipo"},
		{"cédula repetida en el equipo", 0, league.PlayerRequest{Name: "Ana", Carrera: "Sistemas", Cedula: "1804567890", Dorsal: 4, TeamID: 1}, "Ya existe un jugador con esa cédula en ese equipo"},
		{"dorsal repetido en el equipo", 0, league.PlayerRequest{Name: "Ana", Carrera: "Sistemas", Cedula: "1804567891", Dorsal: 9, TeamID: 1}, "Ya existe un jugador con ese dorsal en ese equipo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SavePlayer(context.Background(), "tok", tc.id, tc.req, teammates)
			if got := validationMessage(t, err); got != tc.message {
				t.Errorf("mensaje = %q, esperaba %q", got, tc.message)
			}
		})
	}

	// La misma cédula en otro equipo no es conflicto.
	req := league.PlayerRequest{Name: "Ana", Carrera: "Sistemas", Cedula: "1800000001", Dorsal: 4, TeamID: 1}
	if err := svc.SavePlayer(context.Background(), "tok", 0, req, teammates); err != nil {
		t.Errorf("cédula de otro equipo: %v", err)
	}

	// Al editar, la propia fila no cuenta.
	own := league.PlayerRequest{Name: "Luis Pico", Carrera: "Sistemas", Cedula: "1804567890", Dorsal: 9, TeamID: 1}
	if err := svc.SavePlayer(context.Background(), "tok", 7, own, teammates); err != nil {
		t.Errorf("editar sin cambios: %v", err)
	}
}

func TestSaveMatchValidation(t *testing.T) {
	stub := &stubAdminClient{}
	svc := NewService(stub)

	base := league.MatchRequest{
		HomeTeamID: 1,
		AwayTeamID: 2,
		Date:       "2026-09-12",
		StartTime:  "10:00",
		EndTime:    "11:30",
		Location:   "Cancha 1",
		Status:     league.MatchPending,
	}

	cases := []struct {
		name    string
		mutate  func(*league.MatchRequest)
		message string
	}{
		{"sin local", func(r *league.MatchRequest) { r.HomeTeamID = 0 }, "Selecciona ambos equipos."},
		{"sin visitante", func(r *league.MatchRequest) { r.AwayTeamID = 0 }, "Selecciona ambos equipos."},
		{"equipos iguales", func(r *league.MatchRequest) { r.AwayTeamID = 1 }, "Los equipos no pueden ser iguales."},
		{"sin fecha", func(r *league.MatchRequest) { r.Date = " " }, "Selecciona una fecha."},
		{"sin horas", func(r *league.MatchRequest) { r.StartTime = "" }, "Selecciona la hora inicio y fin."},
		{"horas invertidas", func(r *league.MatchRequest) { r.StartTime = "12:00" }, "La hora de inicio debe ser antes de la hora de fin."},
		{"horas iguales", func(r *league.MatchRequest) { r.StartTime = "11:30" }, "La hora de inicio debe ser antes de la hora de fin."},
		{"sin lugar", func(r *league.MatchRequest) { r.Location = "" }, "Ingresa el lugar del partido."},
		{"estado inválido", func(r *league.MatchRequest) { r.Status = "EN_JUEGO" }, "Selecciona el estado."},
		{"sin estado", func(r *league.MatchRequest) { r.Status = "" }, "Selecciona el estado."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			err := svc.SaveMatch(context.Background(), "tok", 0, req)
			if got := validationMessage(t, err); got != tc.message {
				t.Errorf("mensaje = %q, esperaba %q", got, tc.message)
			}
		})
	}
	if stub.callCount() != 0 {
		t.Errorf("la validación local no debe tocar la red, hubo %d llamadas", stub.callCount())
	}

	if err := svc.SaveMatch(context.Background(), "tok", 0, base); err != nil {
		t.Fatalf("partido válido: %v", err)
	}
	if stub.callCount() != 1 {
		t.Errorf("llamadas = %d, esperaba 1", stub.callCount())
	}
}

func TestRegisterUserRole(t *testing.T) {
	stub := &stubAdminClient{}
	svc := NewService(stub)

	req := league.RegisterRequest{Name: "Ana", Email: "ana@uta.edu.ec", Password: "segura123", Role: "SUPERVISOR"}
	err := svc.RegisterUser(context.Background(), "tok", req)
	if got := validationMessage(t, err); got != "Selecciona un rol válido" {
		t.Errorf("mensaje = %q", got)
	}

	for _, role := range []string{"ADMIN", "JUGADOR", "MESA"} {
		req.Role = role
		req.Email = role + "@uta.edu.ec"
		if err := svc.RegisterUser(context.Background(), "tok", req); err != nil {
			t.Errorf("rol %s: %v", role, err)
		}
	}
}

func TestTeamBoardJoin(t *testing.T) {
	stub := &stubAdminClient{teams: loadedTeams(), reps: []league.User{{ID: 10, Name: "Rep"}}}
	board, err := NewService(stub).TeamBoard(context.Background(), "tok")
	if err != nil {
		t.Fatalf("TeamBoard: %v", err)
	}
	if len(board.Teams) != 2 || len(board.Representatives) != 1 {
		t.Errorf("board = %d equipos, %d representantes", len(board.Teams), len(board.Representatives))
	}

	// Si cualquiera de las dos mitades falla se descarta el lote entero.
	cases := []struct {
		name string
		stub *stubAdminClient
	}{
		{"fallan equipos", &stubAdminClient{teamsErr: errors.New("boom"), reps: []league.User{{ID: 10}}}},
		{"fallan representantes", &stubAdminClient{teams: loadedTeams(), repsErr: errors.New("boom")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewService(tc.stub).TeamBoard(context.Background(), "tok"); err == nil {
				t.Fatal("esperaba error")
			}
		})
	}
}
