package league

import "context"

// PendingTeams lista los equipos a la espera de aprobación.
func (c *Client) PendingTeams(ctx context.Context, token string) ([]PendingTeam, error) {
	var teams []PendingTeam
	if err := c.get(ctx, "/validation/teams/pending", token, &teams); err != nil {
		return nil, err
	}
	for _, t := range teams {
		if err := t.check(); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

// PendingPlayers lista los jugadores a la espera de aprobación.
func (c *Client) PendingPlayers(ctx context.Context, token string) ([]PendingPlayer, error) {
	var players []PendingPlayer
	if err := c.get(ctx, "/validation/players/pending", token, &players); err != nil {
		return nil, err
	}
	for _, p := range players {
		if err := p.check(); err != nil {
			return nil, err
		}
	}
	return players, nil
}

// ValidateTeam aprueba un equipo pendiente.
func (c *Client) ValidateTeam(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/validation/teams", id)+"/validate", token, nil, nil)
}

// ValidatePlayer aprueba un jugador pendiente.
func (c *Client) ValidatePlayer(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/validation/players", id)+"/validate", token, nil, nil)
}

// EditPendingTeam corrige datos de un equipo aún pendiente.
func (c *Client) EditPendingTeam(ctx context.Context, token string, id int64, patch TeamPatch) error {
	return c.put(ctx, pathID("/validation/teams", id)+"/edit", token, patch, nil)
}

// EditPendingPlayer corrige datos de un jugador aún pendiente.
func (c *Client) EditPendingPlayer(ctx context.Context, token string, id int64, patch PlayerPatch) error {
	return c.put(ctx, pathID("/validation/players", id)+"/edit", token, patch, nil)
}

// RejectTeam elimina un equipo pendiente. Destructivo.
func (c *Client) RejectTeam(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, pathID("/validation/teams", id)+"/reject", token)
}

// RejectPlayer elimina un jugador pendiente. Destructivo.
func (c *Client) RejectPlayer(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, pathID("/validation/players", id)+"/reject", token)
}

// ValidationHistory lista las aprobaciones ya realizadas.
func (c *Client) ValidationHistory(ctx context.Context, token string) ([]ValidationRecord, error) {
	var records []ValidationRecord
	if err := c.get(ctx, "/validation/history", token, &records); err != nil {
		return nil, err
	}
	return records, nil
}
