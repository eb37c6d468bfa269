package public

import (
	"context"
	"fmt"
	"sort"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
)

// PublicClient son las lecturas sin token del backend.
type PublicClient interface {
	GlobalStats(ctx context.Context) (*league.GlobalStats, error)
	Standings(ctx context.Context) ([]league.Standing, error)
	GlobalPlayerStats(ctx context.Context, playerID int64) (*league.PlayerStats, error)
	PublicTeams(ctx context.Context) ([]league.Team, error)
	PublicPlayers(ctx context.Context) ([]league.PublicPlayer, error)
	PublicMatches(ctx context.Context) ([]league.PublicMatch, error)
	TeamStats(ctx context.Context, id int64) (*league.TeamStats, error)
	PlayerStats(ctx context.Context, id int64) (*league.PlayerStats, error)
	MatchStats(ctx context.Context, id int64) (*league.MatchStats, error)
}

// Service arma las vistas públicas del campeonato: posiciones,
// estadísticas, calendario y perfiles. Ninguna pide token.
type Service struct {
	client PublicClient
}

func NewService(client PublicClient) *Service {
	return &Service{client: client}
}

func (s *Service) Standings(ctx context.Context) ([]league.Standing, error) {
	return s.client.Standings(ctx)
}

func (s *Service) GlobalStats(ctx context.Context) (*league.GlobalStats, error) {
	return s.client.GlobalStats(ctx)
}

func (s *Service) Teams(ctx context.Context) ([]league.Team, error) {
	return s.client.PublicTeams(ctx)
}

func (s *Service) Players(ctx context.Context) ([]league.PublicPlayer, error) {
	return s.client.PublicPlayers(ctx)
}

// MatchDay agrupa los partidos del calendario por fecha.
type MatchDay struct {
	Date    string              `json:"date"`
	Matches []league.PublicMatch `json:"matches"`
}

// Calendar agrupa los partidos públicos por fecha, días en orden
// ascendente y dentro de cada día por hora de inicio.
func (s *Service) Calendar(ctx context.Context) ([]MatchDay, error) {
	matches, err := s.client.PublicMatches(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]league.PublicMatch)
	for _, m := range matches {
		byDate[m.Date] = append(byDate[m.Date], m)
	}

	days := make([]MatchDay, 0, len(byDate))
	for date, dayMatches := range byDate {
		sort.SliceStable(dayMatches, func(i, j int) bool {
			return dayMatches[i].StartTime < dayMatches[j].StartTime
		})
		days = append(days, MatchDay{Date: date, Matches: dayMatches})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// PlayerProfile junta los datos públicos del jugador con su consolidado.
type PlayerProfile struct {
	Player league.PublicPlayer `json:"player"`
	Stats  league.PlayerStats  `json:"stats"`
}

func (s *Service) PlayerProfile(ctx context.Context, playerID int64) (*PlayerProfile, error) {
	players, err := s.client.PublicPlayers(ctx)
	if err != nil {
		return nil, err
	}
	var found *league.PublicPlayer
	for i := range players {
		if players[i].ID == playerID {
			found = &players[i]
			break
		}
	}
	if found == nil {
		return nil, league.ErrNotFound
	}

	stats, err := s.client.PlayerStats(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("cargar estadísticas del jugador: %w", err)
	}
	return &PlayerProfile{Player: *found, Stats: *stats}, nil
}

func (s *Service) TeamStats(ctx context.Context, teamID int64) (*league.TeamStats, error) {
	return s.client.TeamStats(ctx, teamID)
}

func (s *Service) MatchStats(ctx context.Context, matchID int64) (*league.MatchStats, error) {
	return s.client.MatchStats(ctx, matchID)
}

func (s *Service) GlobalPlayerStats(ctx context.Context, playerID int64) (*league.PlayerStats, error) {
	return s.client.GlobalPlayerStats(ctx, playerID)
}
