package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// ErrBusy indica que la misma acción ya tiene una petición en curso.
var ErrBusy = util.ErrBusy

// PendingClient son las llamadas del backend que usa el flujo de validación.
type PendingClient interface {
	PendingTeams(ctx context.Context, token string) ([]league.PendingTeam, error)
	PendingPlayers(ctx context.Context, token string) ([]league.PendingPlayer, error)
	ValidateTeam(ctx context.Context, token string, id int64) error
	ValidatePlayer(ctx context.Context, token string, id int64) error
	EditPendingTeam(ctx context.Context, token string, id int64, patch league.TeamPatch) error
	EditPendingPlayer(ctx context.Context, token string, id int64, patch league.PlayerPatch) error
	RejectTeam(ctx context.Context, token string, id int64) error
	RejectPlayer(ctx context.Context, token string, id int64) error
	ValidationHistory(ctx context.Context, token string) ([]league.ValidationRecord, error)
}

// PendingLists agrupa las dos listas pendientes que se cargan juntas.
type PendingLists struct {
	Teams   []league.PendingTeam   `json:"teams"`
	Players []league.PendingPlayer `json:"players"`
}

// Service orquesta el flujo de aprobación de equipos y jugadores
// pendientes: cargar, validar, editar en línea y rechazar.
type Service struct {
	client   PendingClient
	inflight *util.Inflight
}

// NewService crea el servicio.
func NewService(client PendingClient) *Service {
	return &Service{client: client, inflight: util.NewInflight()}
}

// LoadPending trae equipos y jugadores pendientes en paralelo. Es un join:
// si cualquiera de las dos consultas falla se descarta el lote completo,
// para no mostrar una mitad actualizada junto a una mitad vieja.
func (s *Service) LoadPending(ctx context.Context, token string) (*PendingLists, error) {
	type teamsResult struct {
		teams []league.PendingTeam
		err   error
	}
	teamsCh := make(chan teamsResult, 1)
	go func() {
		teams, err := s.client.PendingTeams(ctx, token)
		teamsCh <- teamsResult{teams: teams, err: err}
	}()

	players, playersErr := s.client.PendingPlayers(ctx, token)
	teams := <-teamsCh

	if teams.err != nil {
		return nil, fmt.Errorf("cargar equipos pendientes: %w", teams.err)
	}
	if playersErr != nil {
		return nil, fmt.Errorf("cargar jugadores pendientes: %w", playersErr)
	}
	return &PendingLists{Teams: teams.teams, Players: players}, nil
}

// Search estrecha las listas en memoria por subcadena, sin distinguir
// mayúsculas, sobre nombre, representante y equipo. No dispara consultas.
func (s *Service) Search(lists *PendingLists, term string) *PendingLists {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || lists == nil {
		return lists
	}

	out := &PendingLists{}
	for _, t := range lists.Teams {
		if containsFold(needle, t.Name, t.RepresentativeName) {
			out.Teams = append(out.Teams, t)
		}
	}
	for _, p := range lists.Players {
		if containsFold(needle, p.Name, p.TeamName) {
			out.Players = append(out.Players, p)
		}
	}
	return out
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// ValidateTeam aprueba un equipo pendiente. Ante éxito el llamador recarga
// las listas; ante fallo el equipo sigue pendiente.
func (s *Service) ValidateTeam(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("team:%d:validate", id), func() error {
		return s.client.ValidateTeam(ctx, token, id)
	})
}

// ValidatePlayer aprueba un jugador pendiente.
func (s *Service) ValidatePlayer(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("player:%d:validate", id), func() error {
		return s.client.ValidatePlayer(ctx, token, id)
	})
}

// EditTeam corrige un equipo pendiente. La validación local bloquea el
// envío completo: nada parcial llega al backend.
func (s *Service) EditTeam(ctx context.Context, token string, id int64, patch league.TeamPatch) error {
	if strings.TrimSpace(patch.Name) == "" || strings.TrimSpace(patch.ContactNumber) == "" {
		return util.Invalid("Todos los campos son obligatorios")
	}
	return s.run(fmt.Sprintf("team:%d:edit", id), func() error {
		return s.client.EditPendingTeam(ctx, token, id, patch)
	})
}

// EditPlayer corrige un jugador pendiente. Además de los campos
// obligatorios exige cédula de 10 dígitos, dorsal positivo y unicidad de
// cédula y dorsal dentro del equipo, contra los jugadores ya cargados.
func (s *Service) EditPlayer(ctx context.Context, token string, id int64, patch league.PlayerPatch, loaded []league.PendingPlayer) error {
	if strings.TrimSpace(patch.Name) == "" || strings.TrimSpace(patch.Cedula) == "" || strings.TrimSpace(patch.Carrera) == "" {
		return util.Invalid("Todos los campos son obligatorios")
	}
	if err := util.ValidateCedula(patch.Cedula); err != nil {
		return err
	}
	if err := util.ValidateDorsal(patch.Dorsal); err != nil {
		return err
	}

	var teamID int64
	for _, p := range loaded {
		if p.ID == id {
			teamID = p.TeamID
			break
		}
	}
	for _, p := range loaded {
		if p.ID == id || p.TeamID != teamID {
			continue
		}
		if p.Cedula == patch.Cedula {
			return util.Invalid("Ya existe un jugador con esa cédula en ese equipo")
		}
		if p.Dorsal == patch.Dorsal {
			return util.Invalid("Ya existe un jugador con ese dorsal en ese equipo")
		}
	}

	return s.run(fmt.Sprintf("player:%d:edit", id), func() error {
		return s.client.EditPendingPlayer(ctx, token, id, patch)
	})
}

// RejectTeam elimina un equipo pendiente. El llamador debe haber pasado por
// el diálogo de confirmación: esta acción no se puede deshacer.
func (s *Service) RejectTeam(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("team:%d:reject", id), func() error {
		return s.client.RejectTeam(ctx, token, id)
	})
}

// RejectPlayer elimina un jugador pendiente.
func (s *Service) RejectPlayer(ctx context.Context, token string, id int64) error {
	return s.run(fmt.Sprintf("player:%d:reject", id), func() error {
		return s.client.RejectPlayer(ctx, token, id)
	})
}

// History lista las aprobaciones realizadas.
func (s *Service) History(ctx context.Context, token string) ([]league.ValidationRecord, error) {
	return s.client.ValidationHistory(ctx, token)
}

// run protege la acción con el guard de reentrada: un doble clic sobre el
// mismo botón no duplica la llamada al backend.
func (s *Service) run(key string, action func() error) error {
	if !s.inflight.Begin(key) {
		return ErrBusy
	}
	defer s.inflight.End(key)
	return action()
}
