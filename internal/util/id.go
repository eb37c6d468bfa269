package util

import (
	"errors"
	"strconv"
)

// ParseID convierte un parámetro de ruta en id numérico del backend.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido")
	}
	return id, nil
}
