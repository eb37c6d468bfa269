package league

import "context"

// Players lista todos los jugadores (admin).
func (c *Client) Players(ctx context.Context, token string) ([]Player, error) {
	var players []Player
	if err := c.get(ctx, "/players", token, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// PlayersByTeam lista los jugadores de un equipo.
func (c *Client) PlayersByTeam(ctx context.Context, token string, teamID int64) ([]Player, error) {
	var players []Player
	if err := c.get(ctx, pathID("/players/by-team", teamID), token, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// CreatePlayer registra un jugador nuevo.
func (c *Client) CreatePlayer(ctx context.Context, token string, req PlayerRequest) error {
	return c.post(ctx, "/players", token, req, nil)
}

// UpdatePlayer actualiza un jugador existente.
func (c *Client) UpdatePlayer(ctx context.Context, token string, id int64, req PlayerRequest) error {
	return c.put(ctx, pathID("/players", id), token, req, nil)
}

// DeletePlayer elimina un jugador.
func (c *Client) DeletePlayer(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, pathID("/players", id), token)
}

// PublicPlayers lista los jugadores visibles al público.
func (c *Client) PublicPlayers(ctx context.Context) ([]PublicPlayer, error) {
	var players []PublicPlayer
	if err := c.get(ctx, "/players/public", "", &players); err != nil {
		return nil, err
	}
	return players, nil
}

// PlayerStats trae el consolidado público de un jugador.
func (c *Client) PlayerStats(ctx context.Context, id int64) (*PlayerStats, error) {
	var stats PlayerStats
	if err := c.get(ctx, pathID("/players", id)+"/stats", "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
