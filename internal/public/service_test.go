package public

import (
	"context"
	"errors"
	"testing"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
)

type stubPublicClient struct {
	standings    []league.Standing
	standingsErr error
	matches      []league.PublicMatch
	matchesErr   error
	players      []league.PublicPlayer
	playersErr   error
	playerStats  *league.PlayerStats
	statsErr     error
}

func (s *stubPublicClient) GlobalStats(ctx context.Context) (*league.GlobalStats, error) {
	return &league.GlobalStats{}, nil
}
func (s *stubPublicClient) Standings(ctx context.Context) ([]league.Standing, error) {
	return s.standings, s.standingsErr
}
func (s *stubPublicClient) GlobalPlayerStats(ctx context.Context, playerID int64) (*league.PlayerStats, error) {
	return s.playerStats, s.statsErr
}
func (s *stubPublicClient) PublicTeams(ctx context.Context) ([]league.Team, error) {
	return nil, nil
}
func (s *stubPublicClient) PublicPlayers(ctx context.Context) ([]league.PublicPlayer, error) {
	return s.players, s.playersErr
}
func (s *stubPublicClient) PublicMatches(ctx context.Context) ([]league.PublicMatch, error) {
	return s.matches, s.matchesErr
}
func (s *stubPublicClient) TeamStats(ctx context.Context, id int64) (*league.TeamStats, error) {
	return &league.TeamStats{}, nil
}
func (s *stubPublicClient) PlayerStats(ctx context.Context, id int64) (*league.PlayerStats, error) {
	return s.playerStats, s.statsErr
}
func (s *stubPublicClient) MatchStats(ctx context.Context, id int64) (*league.MatchStats, error) {
	return &league.MatchStats{}, nil
}

func TestCalendarGroupsAndSorts(t *testing.T) {
	stub := &stubPublicClient{matches: []league.PublicMatch{
		{ID: 1, Date: "2026-09-13", StartTime: "11:00"},
		{ID: 2, Date: "2026-09-12", StartTime: "15:00"},
		{ID: 3, Date: "2026-09-13", StartTime: "09:00"},
		{ID: 4, Date: "2026-09-12", StartTime: "10:00"},
	}}
	days, err := NewService(stub).Calendar(context.Background())
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}

	if len(days) != 2 {
		t.Fatalf("días = %d", len(days))
	}
	if days[0].Date != "2026-09-12" || days[1].Date != "2026-09-13" {
		t.Errorf("orden de días = %s, %s", days[0].Date, days[1].Date)
	}
	if days[0].Matches[0].ID != 4 || days[0].Matches[1].ID != 2 {
		t.Errorf("primer día = %+v, esperaba hora ascendente", days[0].Matches)
	}
	if days[1].Matches[0].ID != 3 || days[1].Matches[1].ID != 1 {
		t.Errorf("segundo día = %+v, esperaba hora ascendente", days[1].Matches)
	}
}

func TestCalendarEmpty(t *testing.T) {
	days, err := NewService(&stubPublicClient{}).Calendar(context.Background())
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("días = %d", len(days))
	}
}

func TestPlayerProfile(t *testing.T) {
	stub := &stubPublicClient{
		players: []league.PublicPlayer{
			{ID: 5, Name: "Luis Pico", Dorsal: 9},
			{ID: 6, Name: "Ana Vega", Dorsal: 4},
		},
		playerStats: &league.PlayerStats{PlayerName: "Ana Vega", TotalGoals: 3},
	}
	svc := NewService(stub)

	profile, err := svc.PlayerProfile(context.Background(), 6)
	if err != nil {
		t.Fatalf("PlayerProfile: %v", err)
	}
	if profile.Player.Name != "Ana Vega" || profile.Stats.TotalGoals != 3 {
		t.Errorf("profile = %+v", profile)
	}

	if _, err := svc.PlayerProfile(context.Background(), 99); !errors.Is(err, league.ErrNotFound) {
		t.Errorf("jugador inexistente = %v, esperaba ErrNotFound", err)
	}

	stub.statsErr = errors.New("boom")
	if _, err := svc.PlayerProfile(context.Background(), 6); err == nil {
		t.Error("si fallan las estadísticas el perfil completo falla")
	}
}
