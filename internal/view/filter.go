package view

import "strings"

// Select es un filtro de selección única sobre un valor derivado de la fila.
type Select[T any] struct {
	Key     string
	Options []string
	Value   func(T) string

	active string
}

// Set fija la opción activa; vacío desactiva el filtro.
func (s *Select[T]) Set(option string) {
	s.active = option
}

// Active devuelve la opción seleccionada.
func (s *Select[T]) Active() string {
	return s.active
}

// FilterBar combina búsqueda de texto libre, dropdowns de selección única y
// un rango de fechas opcional. Solo estrecha listas ya cargadas en memoria;
// nunca dispara una consulta nueva.
type FilterBar[T any] struct {
	searchFields func(T) []string
	dateOf       func(T) string
	selects      []*Select[T]

	Search string
	From   string
	To     string
}

// NewFilterBar crea la barra. searchFields extrae los campos buscables de
// cada fila; dateOf puede ser nil si no aplica rango de fechas.
func NewFilterBar[T any](searchFields func(T) []string, dateOf func(T) string, selects ...*Select[T]) *FilterBar[T] {
	return &FilterBar[T]{searchFields: searchFields, dateOf: dateOf, selects: selects}
}

// Clear restablece búsqueda, selects y fechas.
func (f *FilterBar[T]) Clear() {
	f.Search = ""
	f.From = ""
	f.To = ""
	for _, s := range f.selects {
		s.Set("")
	}
}

// Apply devuelve las filas que pasan todos los filtros activos. La búsqueda
// es por subcadena sin distinguir mayúsculas.
func (f *FilterBar[T]) Apply(rows []T) []T {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if needle != "" && !f.matchesSearch(row, needle) {
			continue
		}
		if !f.matchesSelects(row) {
			continue
		}
		if !f.matchesDates(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (f *FilterBar[T]) matchesSearch(row T, needle string) bool {
	if f.searchFields == nil {
		return true
	}
	for _, field := range f.searchFields(row) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (f *FilterBar[T]) matchesSelects(row T) bool {
	for _, s := range f.selects {
		if s.active == "" {
			continue
		}
		if s.Value == nil || s.Value(row) != s.active {
			return false
		}
	}
	return true
}

// matchesDates compara fechas en formato ISO (YYYY-MM-DD), donde el orden
// lexicográfico coincide con el cronológico.
func (f *FilterBar[T]) matchesDates(row T) bool {
	if f.dateOf == nil || (f.From == "" && f.To == "") {
		return true
	}
	date := f.dateOf(row)
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	return true
}
