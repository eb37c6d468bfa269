package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// AdminClient son las llamadas del backend que usan las pantallas CRUD.
type AdminClient interface {
	Users(ctx context.Context, token string) ([]league.User, error)
	UpdateUser(ctx context.Context, token string, id int64, user league.User) error
	DeleteUser(ctx context.Context, token string, id int64) error
	DisableUser(ctx context.Context, token string, id int64) error
	RepresentativeUsers(ctx context.Context, token string) ([]league.User, error)
	Register(ctx context.Context, token string, req league.RegisterRequest) error

	Teams(ctx context.Context, token string) ([]league.Team, error)
	CreateTeam(ctx context.Context, token string, req league.TeamRequest) error
	UpdateTeam(ctx context.Context, token string, id int64, req league.TeamRequest) error
	DeleteTeam(ctx context.Context, token string, id int64) error
	DisableTeam(ctx context.Context, token string, id int64) error

	Players(ctx context.Context, token string) ([]league.Player, error)
	PlayersByTeam(ctx context.Context, token string, teamID int64) ([]league.Player, error)
	CreatePlayer(ctx context.Context, token string, req league.PlayerRequest) error
	UpdatePlayer(ctx context.Context, token string, id int64, req league.PlayerRequest) error
	DeletePlayer(ctx context.Context, token string, id int64) error

	Matches(ctx context.Context, token string) ([]league.Match, error)
	MatchesToValidate(ctx context.Context, token string) ([]league.Match, error)
	CreateMatch(ctx context.Context, token string, req league.MatchRequest) error
	UpdateMatch(ctx context.Context, token string, id int64, req league.MatchRequest) error
	DeleteMatch(ctx context.Context, token string, id int64) error
	ValidateMatch(ctx context.Context, token string, id int64) error
	CancelMatchValidation(ctx context.Context, token string, id int64) error
}

// Service orquesta las pantallas CRUD de administración: usuarios,
// equipos, jugadores y programación de partidos. Cada pantalla carga su
// lista, muta vía backend y recarga; no hay caché entre pantallas.
type Service struct {
	client   AdminClient
	inflight *util.Inflight
}

// NewService crea el servicio.
func NewService(client AdminClient) *Service {
	return &Service{client: client, inflight: util.NewInflight()}
}

// --- usuarios ---

func (s *Service) Users(ctx context.Context, token string) ([]league.User, error) {
	return s.client.Users(ctx, token)
}

func (s *Service) RegisterUser(ctx context.Context, token string, req league.RegisterRequest) error {
	if err := util.RequireString(req.Name, "El nombre"); err != nil {
		return err
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		return err
	}
	switch req.Role {
	case "ADMIN", "JUGADOR", "MESA":
	default:
		return util.Invalid("Selecciona un rol válido")
	}
	return s.run(fmt.Sprintf("user:register:%s", req.Email), func() error {
		return s.client.Register(ctx, token, req)
	})
}

func (s *Service) UpdateUser(ctx context.Context, token string, id int64, user league.User) error {
	if err := util.RequireString(user.Name, "El nombre"); err != nil {
		return err
	}
	if err := util.ValidateEmail(user.Email); err != nil {
		return err
	}
	return s.run(fmt.Sprintf("user:%d:update", id), func() error {
		return s.client.UpdateUser(ctx, token, id, user)
	})
}

func (s *Service) DeleteUser(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("user:%d:delete", id), func() error {
		return s.client.DeleteUser(ctx, token, id)
	})
}

func (s *Service) DisableUser(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("user:%d:disable", id), func() error {
		return s.client.DisableUser(ctx, token, id)
	})
}

// --- equipos ---

// TeamBoard junta la lista de equipos con los representantes candidatos,
// cargados en paralelo como un join estricto.
type TeamBoard struct {
	Teams           []league.Team `json:"teams"`
	Representatives []league.User `json:"representatives"`
}

func (s *Service) TeamBoard(ctx context.Context, token string) (*TeamBoard, error) {
	type repsResult struct {
		reps []league.User
		err  error
	}
	repsCh := make(chan repsResult, 1)
	go func() {
		reps, err := s.client.RepresentativeUsers(ctx, token)
		repsCh <- repsResult{reps: reps, err: err}
	}()

	teams, teamsErr := s.client.Teams(ctx, token)
	reps := <-repsCh

	if teamsErr != nil {
		return nil, fmt.Errorf("cargar equipos: %w", teamsErr)
	}
	if reps.err != nil {
		return nil, fmt.Errorf("cargar representantes: %w", reps.err)
	}
	return &TeamBoard{Teams: teams, Representatives: reps.reps}, nil
}

// SaveTeam crea (id == 0) o actualiza un equipo, validando contra los
// equipos ya cargados: nombre único y representante sin otro equipo.
func (s *Service) SaveTeam(ctx context.Context, token string, id int64, req league.TeamRequest, loaded []league.Team) error {
	if strings.TrimSpace(req.Name) == "" {
		return util.Invalid("El nombre del equipo es obligatorio")
	}
	if strings.TrimSpace(req.ContactNumber) == "" {
		return util.Invalid("El número de contacto es obligatorio")
	}
	if req.RepresentativeID == 0 {
		return util.Invalid("Debe seleccionar un representante")
	}
	for _, t := range loaded {
		if t.ID == id {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(req.Name)) {
			return util.Invalid("Ya existe un equipo con ese nombre")
		}
		if t.Representative.ID == req.RepresentativeID {
			return util.Invalid("Este representante ya está asignado a otro equipo")
		}
	}

	if id == 0 {
		return s.run(fmt.Sprintf("team:create:%s", req.Name), func() error {
			return s.client.CreateTeam(ctx, token, req)
		})
	}
	return s.run(fmt.Sprintf("team:%d:update", id), func() error {
		return s.client.UpdateTeam(ctx, token, id, req)
	})
}

func (s *Service) DeleteTeam(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("team:%d:delete", id), func() error {
		return s.client.DeleteTeam(ctx, token, id)
	})
}

func (s *Service) DisableTeam(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("team:%d:disable", id), func() error {
		return s.client.DisableTeam(ctx, token, id)
	})
}

// --- jugadores ---

func (s *Service) Players(ctx context.Context, token string) ([]league.Player, error) {
	return s.client.Players(ctx, token)
}

func (s *Service) PlayersByTeam(ctx context.Context, token string, teamID int64) ([]league.Player, error) {
	return s.client.PlayersByTeam(ctx, token, teamID)
}

// SavePlayer crea (id == 0) o actualiza un jugador. La unicidad de cédula
// y dorsal se verifica contra los jugadores cargados del mismo equipo,
// antes de tocar la red.
func (s *Service) SavePlayer(ctx context.Context, token string, id int64, req league.PlayerRequest, teammates []league.Player) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Carrera) == "" {
		return util.Invalid("Todos los campos son obligatorios")
	}
	if err := util.ValidateCedula(req.Cedula); err != nil {
		return err
	}
	if err := util.ValidateDorsal(req.Dorsal); err != nil {
		return err
	}
	if req.TeamID == 0 {
		return util.Invalid("Debe seleccionar un equipo")
	}
	for _, p := range teammates {
		if p.ID == id || p.TeamID != req.TeamID {
			continue
		}
		if p.Cedula == req.Cedula {
			return util.Invalid("Ya existe un jugador con esa cédula en ese equipo")
		}
		if p.Dorsal == req.Dorsal {
			return util.Invalid("Ya existe un jugador con ese dorsal en ese equipo")
		}
	}

	if id == 0 {
		return s.run(fmt.Sprintf("player:create:%s", req.Cedula), func() error {
			return s.client.CreatePlayer(ctx, token, req)
		})
	}
	return s.run(fmt.Sprintf("player:%d:update", id), func() error {
		return s.client.UpdatePlayer(ctx, token, id, req)
	})
}

func (s *Service) DeletePlayer(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("player:%d:delete", id), func() error {
		return s.client.DeletePlayer(ctx, token, id)
	})
}

// --- partidos ---

func (s *Service) Matches(ctx context.Context, token string) ([]league.Match, error) {
	return s.client.Matches(ctx, token)
}

func (s *Service) MatchesToValidate(ctx context.Context, token string) ([]league.Match, error) {
	return s.client.MatchesToValidate(ctx, token)
}

// SaveMatch programa (id == 0) o reprograma un partido.
func (s *Service) SaveMatch(ctx context.Context, token string, id int64, req league.MatchRequest) error {
	if err := checkMatch(req); err != nil {
		return err
	}
	if id == 0 {
		return s.run(fmt.Sprintf("match:create:%s:%d", req.Date, req.HomeTeamID), func() error {
			return s.client.CreateMatch(ctx, token, req)
		})
	}
	return s.run(fmt.Sprintf("match:%d:update", id), func() error {
		return s.client.UpdateMatch(ctx, token, id, req)
	})
}

func (s *Service) DeleteMatch(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("match:%d:delete", id), func() error {
		return s.client.DeleteMatch(ctx, token, id)
	})
}

// ValidateMatch confirma el resultado de un partido completado.
func (s *Service) ValidateMatch(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("match:%d:validate", id), func() error {
		return s.client.ValidateMatch(ctx, token, id)
	})
}

// CancelMatchValidation revierte la confirmación de un resultado.
func (s *Service) CancelMatchValidation(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("match:%d:cancel-validation", id), func() error {
		return s.client.CancelMatchValidation(ctx, token, id)
	})
}

func checkMatch(req league.MatchRequest) error {
	if req.HomeTeamID == 0 || req.AwayTeamID == 0 {
		return util.Invalid("Selecciona ambos equipos.")
	}
	if req.HomeTeamID == req.AwayTeamID {
		return util.Invalid("Los equipos no pueden ser iguales.")
	}
	if strings.TrimSpace(req.Date) == "" {
		return util.Invalid("Selecciona una fecha.")
	}
	if req.StartTime == "" || req.EndTime == "" {
		return util.Invalid("Selecciona la hora inicio y fin.")
	}
	if req.StartTime >= req.EndTime {
		return util.Invalid("La hora de inicio debe ser antes de la hora de fin.")
	}
	if strings.TrimSpace(req.Location) == "" {
		return util.Invalid("Ingresa el lugar del partido.")
	}
	switch req.Status {
	case league.MatchPending, league.MatchCompleted, league.MatchCancelled:
	default:
		return util.Invalid("Selecciona el estado.")
	}
	return nil
}

func (s *Service) run(key string, action func() error) error {
	if !s.inflight.Begin(key) {
		return util.ErrBusy
	}
	defer s.inflight.End(key)
	return action()
}
