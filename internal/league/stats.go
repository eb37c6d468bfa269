package league

import "context"

// GlobalStats trae los consolidados generales del campeonato.
func (c *Client) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	var stats GlobalStats
	if err := c.get(ctx, "/global", "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Standings trae la tabla de posiciones.
func (c *Client) Standings(ctx context.Context) ([]Standing, error) {
	var standings []Standing
	if err := c.get(ctx, "/global/standings", "", &standings); err != nil {
		return nil, err
	}
	return standings, nil
}

// GlobalPlayerStats trae el consolidado de un jugador en el tablero global.
func (c *Client) GlobalPlayerStats(ctx context.Context, playerID int64) (*PlayerStats, error) {
	var stats PlayerStats
	if err := c.get(ctx, pathID("/global/player", playerID), "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
