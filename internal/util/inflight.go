package util

import (
	"errors"
	"sync"
)

// ErrBusy indica que la misma acción ya tiene una petición en curso.
var ErrBusy = errors.New("acción en curso")

// Inflight impide disparos duplicados de una misma acción mutante: mientras
// una petición con la clave dada sigue en curso, los reintentos se rechazan
// en lugar de duplicar llamadas al backend.
type Inflight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewInflight crea el guard.
func NewInflight() *Inflight {
	return &Inflight{active: make(map[string]struct{})}
}

// Begin reserva la clave; devuelve false si la acción ya está en curso.
func (g *Inflight) Begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// End libera la clave.
func (g *Inflight) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
