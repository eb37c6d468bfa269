package myteam

import (
	"context"
	"fmt"
	"strings"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// TeamClient son las llamadas del backend que usa el representante de
// un equipo (rol JUGADOR).
type TeamClient interface {
	MyTeam(ctx context.Context, token string) (*league.Team, error)
	PlayersByTeam(ctx context.Context, token string, teamID int64) ([]league.Player, error)
	CreatePlayer(ctx context.Context, token string, req league.PlayerRequest) error
	UpdatePlayer(ctx context.Context, token string, id int64, req league.PlayerRequest) error
	DeletePlayer(ctx context.Context, token string, id int64) error
	Matches(ctx context.Context, token string) ([]league.Match, error)
	SubmitMatchReport(ctx context.Context, token string, report league.MatchReport) error
	MyMatchReport(ctx context.Context, token string, matchID int64) (*league.MatchReport, error)
}

// Roster es el equipo propio con su nómina.
type Roster struct {
	Team    league.Team     `json:"team"`
	Players []league.Player `json:"players"`
}

// Service cubre la superficie del representante: su equipo, la nómina
// y la presentación de alineaciones por partido.
type Service struct {
	client   TeamClient
	inflight *util.Inflight
}

func NewService(client TeamClient) *Service {
	return &Service{client: client, inflight: util.NewInflight()}
}

// Roster carga el equipo propio y su nómina; ambos o ninguno.
func (s *Service) Roster(ctx context.Context, token string) (*Roster, error) {
	team, err := s.client.MyTeam(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("cargar mi equipo: %w", err)
	}
	players, err := s.client.PlayersByTeam(ctx, token, team.ID)
	if err != nil {
		return nil, fmt.Errorf("cargar jugadores: %w", err)
	}
	return &Roster{Team: *team, Players: players}, nil
}

// SavePlayer crea (id == 0) o actualiza un jugador de la nómina propia.
// El teamId siempre es el del equipo cargado; la unicidad de cédula y
// dorsal se verifica contra la nómina antes de tocar la red.
func (s *Service) SavePlayer(ctx context.Context, token string, id int64, req league.PlayerRequest, roster *Roster) error {
	if roster == nil {
		return util.Invalid("Primero carga tu equipo")
	}
	req.TeamID = roster.Team.ID

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Carrera) == "" {
		return util.Invalid("Todos los campos son obligatorios")
	}
	if err := util.ValidateCedula(req.Cedula); err != nil {
		return err
	}
	if err := util.ValidateDorsal(req.Dorsal); err != nil {
		return err
	}
	for _, p := range roster.Players {
		if p.ID == id {
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
		return s.run(fmt.Sprintf("myteam:%d:create:%s", roster.Team.ID, req.Cedula), func() error {
			return s.client.CreatePlayer(ctx, token, req)
		})
	}
	return s.run(fmt.Sprintf("myteam:player:%d:update", id), func() error {
		return s.client.UpdatePlayer(ctx, token, id, req)
	})
}

// DeletePlayer borra un jugador de la nómina propia; pasa por el
// diálogo de confirmación en la capa HTTP.
func (s *Service) DeletePlayer(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("myteam:player:%d:delete", id), func() error {
		return s.client.DeletePlayer(ctx, token, id)
	})
}

// MyMatches lista los partidos visibles al representante.
func (s *Service) MyMatches(ctx context.Context, token string) ([]league.Match, error) {
	return s.client.Matches(ctx, token)
}

// SubmitReport presenta capitán y alineación titular para un partido.
func (s *Service) SubmitReport(ctx context.Context, token string, report league.MatchReport, roster *Roster) error {
	if roster == nil {
		return util.Invalid("Primero carga tu equipo")
	}
	report.TeamID = roster.Team.ID

	if report.MatchID == 0 {
		return util.Invalid("Selecciona un partido")
	}
	if len(report.Lineup) == 0 {
		return util.Invalid("Selecciona la alineación titular")
	}
	if report.CaptainID == 0 {
		return util.Invalid("Selecciona un capitán")
	}
	inLineup := false
	for _, playerID := range report.Lineup {
		if playerID == report.CaptainID {
			inLineup = true
			break
		}
	}
	if !inLineup {
		return util.Invalid("El capitán debe estar en la alineación")
	}

	return s.run(fmt.Sprintf("myteam:report:%d", report.MatchID), func() error {
		return s.client.SubmitMatchReport(ctx, token, report)
	})
}

// Report trae la alineación ya presentada para un partido, o
// league.ErrNotFound si aún no hay.
func (s *Service) Report(ctx context.Context, token string, matchID int64) (*league.MatchReport, error) {
	return s.client.MyMatchReport(ctx, token, matchID)
}

func (s *Service) run(key string, action func() error) error {
	if !s.inflight.Begin(key) {
		return util.ErrBusy
	}
	defer s.inflight.End(key)
	return action()
}
