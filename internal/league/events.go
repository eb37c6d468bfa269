package league

import "context"

// MatchEvents lista los eventos registrados de un partido.
func (c *Client) MatchEvents(ctx context.Context, token string, matchID int64) ([]MatchEvent, error) {
	var events []MatchEvent
	if err := c.get(ctx, pathID("/match-events", matchID), token, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateMatchEvent registra un gol o tarjeta.
func (c *Client) CreateMatchEvent(ctx context.Context, token string, req MatchEventRequest) error {
	return c.post(ctx, "/match-events", token, req, nil)
}

// UpdateMatchEvent edita un evento existente.
func (c *Client) UpdateMatchEvent(ctx context.Context, token string, eventID int64, req MatchEventRequest) error {
	return c.put(ctx, pathID("/match-events", eventID), token, req, nil)
}

// DeleteMatchEvent elimina un evento.
func (c *Client) DeleteMatchEvent(ctx context.Context, token string, eventID int64) error {
	return c.delete(ctx, pathID("/match-events", eventID), token)
}

// SubmitMatchReport presenta la alineación de un equipo para un partido.
func (c *Client) SubmitMatchReport(ctx context.Context, token string, report MatchReport) error {
	return c.post(ctx, "/match-reports", token, report, nil)
}

// MyMatchReport trae la alineación ya presentada por el equipo propio.
func (c *Client) MyMatchReport(ctx context.Context, token string, matchID int64) (*MatchReport, error) {
	var report MatchReport
	if err := c.get(ctx, pathID("/match-reports", matchID)+"/by-team", token, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
