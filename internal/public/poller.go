package public

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
)

// ResultsSnapshot es la foto de resultados que la vista pública sirve
// entre refrescos.
type ResultsSnapshot struct {
	Standings []league.Standing `json:"standings"`
	Matches   []MatchDay        `json:"matches"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ResultsPoller refresca la vista de resultados en un intervalo fijo
// mientras corre, y mantiene el último snapshot bueno para servirlo
// aunque un refresco falle.
type ResultsPoller struct {
	service  *Service
	interval time.Duration
	logger   zerolog.Logger

	mu       sync.RWMutex
	snapshot *ResultsSnapshot

	once   sync.Once
	cancel context.CancelFunc
}

func NewResultsPoller(service *Service, interval time.Duration, logger zerolog.Logger) *ResultsPoller {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &ResultsPoller{service: service, interval: interval, logger: logger}
}

// Start arranca el loop periódico. Seguro de llamar varias veces.
func (p *ResultsPoller) Start(parent context.Context) {
	p.once.Do(func() {
		ctx, cancel := context.WithCancel(parent)
		p.cancel = cancel
		go p.runLoop(ctx)
	})
}

// Stop detiene el loop periódico.
func (p *ResultsPoller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *ResultsPoller) runLoop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Msg("resultados: refresco iniciado")

	if err := p.RefreshOnce(ctx); err != nil {
		p.logger.Error().Err(err).Msg("resultados: primer refresco falló")
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("resultados: refresco detenido")
			return
		case <-ticker.C:
			if err := p.RefreshOnce(ctx); err != nil {
				p.logger.Error().Err(err).Msg("resultados: refresco falló")
			}
		}
	}
}

// RefreshOnce ejecuta un refresco; si cualquiera de las dos lecturas
// falla se conserva el snapshot anterior.
func (p *ResultsPoller) RefreshOnce(ctx context.Context) error {
	standings, err := p.service.Standings(ctx)
	if err != nil {
		return err
	}
	matches, err := p.service.Calendar(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.snapshot = &ResultsSnapshot{
		Standings: standings,
		Matches:   matches,
		UpdatedAt: time.Now(),
	}
	p.mu.Unlock()
	return nil
}

// Snapshot devuelve el último refresco bueno, o nil si aún no hay.
func (p *ResultsPoller) Snapshot() *ResultsSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
