package league

import "context"

// Teams lista todos los equipos (admin).
func (c *Client) Teams(ctx context.Context, token string) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "/teams", token, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateTeam registra un equipo nuevo.
func (c *Client) CreateTeam(ctx context.Context, token string, req TeamRequest) error {
	return c.post(ctx, "/teams", token, req, nil)
}

// UpdateTeam actualiza un equipo existente.
func (c *Client) UpdateTeam(ctx context.Context, token string, id int64, req TeamRequest) error {
	return c.put(ctx, pathID("/teams", id), token, req, nil)
}

// DeleteTeam elimina un equipo.
func (c *Client) DeleteTeam(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, pathID("/teams", id), token)
}

// DisableTeam deshabilita un equipo sin eliminarlo.
func (c *Client) DisableTeam(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/teams", id)+"/disable", token, nil, nil)
}

// MyTeam devuelve el equipo del representante autenticado.
func (c *Client) MyTeam(ctx context.Context, token string) (*Team, error) {
	var team Team
	if err := c.get(ctx, "/teams/by-representative", token, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// PublicTeams lista los equipos visibles al público.
func (c *Client) PublicTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "/teams/public", "", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// TeamStats trae el consolidado público de un equipo.
func (c *Client) TeamStats(ctx context.Context, id int64) (*TeamStats, error) {
	var stats TeamStats
	if err := c.get(ctx, pathID("/teams", id)+"/stats", "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
