package league

import "context"

// Matches lista los partidos programados.
func (c *Client) Matches(ctx context.Context, token string) ([]Match, error) {
	var matches []Match
	if err := c.get(ctx, "/matches", token, &matches); err != nil {
		return nil, err
	}
	for _, m := range matches {
		if err := m.check(); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

// Match trae el detalle de un partido.
func (c *Client) Match(ctx context.Context, token string, id int64) (*MatchDetail, error) {
	var match MatchDetail
	if err := c.get(ctx, pathID("/matches", id), token, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// PublicMatches lista los partidos del calendario público.
func (c *Client) PublicMatches(ctx context.Context) ([]PublicMatch, error) {
	var matches []PublicMatch
	if err := c.get(ctx, "/matches/public", "", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// MatchesToValidate lista partidos finalizados pendientes de confirmación.
func (c *Client) MatchesToValidate(ctx context.Context, token string) ([]Match, error) {
	var matches []Match
	if err := c.get(ctx, "/matches/to-validate", token, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// CreateMatch programa un partido.
func (c *Client) CreateMatch(ctx context.Context, token string, req MatchRequest) error {
	return c.post(ctx, "/matches", token, req, nil)
}

// UpdateMatch reprograma un partido.
func (c *Client) UpdateMatch(ctx context.Context, token string, id int64, req MatchRequest) error {
	return c.put(ctx, pathID("/matches", id), token, req, nil)
}

// DeleteMatch elimina un partido programado.
func (c *Client) DeleteMatch(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, pathID("/matches", id), token)
}

// FinishMatch pasa el partido de PENDING a COMPLETED.
func (c *Client) FinishMatch(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/matches", id)+"/finish", token, nil, nil)
}

// ValidateMatch confirma el resultado de un partido completado.
func (c *Client) ValidateMatch(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/matches", id)+"/validate", token, nil, nil)
}

// CancelMatchValidation revierte la confirmación de un resultado.
func (c *Client) CancelMatchValidation(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/matches", id)+"/cancel-validation", token, nil, nil)
}

// RecalculateScore pide al backend recalcular el marcador desde los eventos.
// El portal nunca calcula marcadores por su cuenta.
func (c *Client) RecalculateScore(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/matches", id)+"/recalculate-score", token, nil, nil)
}

// MatchStats trae los totales y eventos de un partido.
func (c *Client) MatchStats(ctx context.Context, id int64) (*MatchStats, error) {
	var stats MatchStats
	if err := c.get(ctx, pathID("/matches", id)+"/stats", "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
