package view

import (
	"sort"
	"strings"
)

// Align controla la alineación de una columna.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Column describe una columna de tabla: clave estable, etiqueta visible,
// si admite ordenamiento y cómo extraer el valor de una fila.
type Column[T any] struct {
	Key      string
	Label    string
	Sortable bool
	Align    Align
	Value    func(T) any
}

// Table ordena filas por una sola columna activa. No contiene lógica de
// negocio: las pantallas la parametrizan con sus datos y columnas.
type Table[T any] struct {
	columns []Column[T]

	sortKey  string
	sortDesc bool
}

// NewTable crea la tabla con sus columnas.
func NewTable[T any](columns []Column[T]) *Table[T] {
	return &Table[T]{columns: columns}
}

// Toggle activa el ordenamiento por la columna indicada: si ya era la
// activa invierte la dirección, si no arranca ascendente. Columnas no
// ordenables o inexistentes se ignoran.
func (t *Table[T]) Toggle(key string) {
	col := t.column(key)
	if col == nil || !col.Sortable {
		return
	}
	if t.sortKey == key {
		t.sortDesc = !t.sortDesc
		return
	}
	t.sortKey = key
	t.sortDesc = false
}

// Sort devuelve el estado actual (columna activa, descendente).
func (t *Table[T]) Sort() (string, bool) {
	return t.sortKey, t.sortDesc
}

// Reset vuelve al orden de llegada.
func (t *Table[T]) Reset() {
	t.sortKey = ""
	t.sortDesc = false
}

// Rows devuelve una copia de las filas en el orden visible. El orden es
// estable y los valores nulos quedan siempre al final, sin importar la
// dirección.
func (t *Table[T]) Rows(rows []T) []T {
	out := make([]T, len(rows))
	copy(out, rows)

	col := t.column(t.sortKey)
	if col == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := col.Value(out[i]), col.Value(out[j])
		if isNil(a) {
			return false
		}
		if isNil(b) {
			return true
		}
		cmp := compareValues(a, b)
		if t.sortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func (t *Table[T]) column(key string) *Column[T] {
	if key == "" {
		return nil
	}
	for i := range t.columns {
		if t.columns[i].Key == key {
			return &t.columns[i]
		}
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	if p, ok := v.(*string); ok {
		return p == nil
	}
	if p, ok := v.(*int64); ok {
		return p == nil
	}
	return false
}

// compareValues compara dos valores de celda: cadenas sin distinguir
// mayúsculas, números por valor, lo demás por su representación.
func compareValues(a, b any) int {
	if as, ok := asString(a); ok {
		bs, _ := asString(b)
		return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
	}
	if af, ok := asNumber(a); ok {
		bf, _ := asNumber(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	if ab, ok := a.(bool); ok {
		bb, _ := b.(bool)
		switch {
		case ab == bb:
			return 0
		case bb:
			return -1
		default:
			return 1
		}
	}
	return 0
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s != nil {
			return *s, true
		}
	}
	return "", false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case *int64:
		if n != nil {
			return float64(*n), true
		}
	case float64:
		return n, true
	}
	return 0, false
}
