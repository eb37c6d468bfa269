package view

import (
	"context"
	"errors"
	"sync"
)

// Severity clasifica el diálogo de confirmación.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Icon devuelve el icono por defecto de cada variante.
func (s Severity) Icon() string {
	switch s {
	case SeverityDanger:
		return "🗑️"
	case SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// ErrDialogClosed indica confirmación sin diálogo abierto.
var ErrDialogClosed = errors.New("diálogo cerrado")

// ConfirmDialog bloquea una acción destructiva detrás de una confirmación
// explícita. A diferencia del cliente original, que cerraba el diálogo sin
// esperar el resultado, Confirm ejecuta la acción y solo cierra si terminó
// bien: un fallo deja el diálogo abierto con el error visible.
type ConfirmDialog struct {
	mu sync.Mutex

	open     bool
	title    string
	message  string
	severity Severity
	action   func(context.Context) error
	lastErr  error
}

// Open arma el diálogo con la acción a confirmar.
func (d *ConfirmDialog) Open(title, message string, severity Severity, action func(context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.title = title
	d.message = message
	d.severity = severity
	d.action = action
	d.lastErr = nil
}

// Confirm ejecuta la acción pendiente. En éxito cierra el diálogo; en fallo
// lo deja abierto y devuelve el error.
func (d *ConfirmDialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if !d.open || d.action == nil {
		d.mu.Unlock()
		return ErrDialogClosed
	}
	action := d.action
	d.mu.Unlock()

	if err := action(ctx); err != nil {
		d.mu.Lock()
		d.lastErr = err
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.reset()
	d.mu.Unlock()
	return nil
}

// Cancel cierra el diálogo sin ejecutar nada; el estado queda intacto.
func (d *ConfirmDialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// State expone el estado visible del diálogo.
func (d *ConfirmDialog) State() (open bool, title, message string, severity Severity, lastErr error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open, d.title, d.message, d.severity, d.lastErr
}

func (d *ConfirmDialog) reset() {
	d.open = false
	d.title = ""
	d.message = ""
	d.severity = ""
	d.action = nil
	d.lastErr = nil
}
