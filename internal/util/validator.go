package util

import (
	"errors"
	"net/mail"
	"strings"
)

// InvalidInputError marca un fallo de validación local. Bloquea el envío
// completo y se muestra en línea; nunca llega a la red.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// Invalid construye un error de validación local.
func Invalid(message string) error {
	return &InvalidInputError{Message: message}
}

// IsInvalid reporta si el error es de validación local.
func IsInvalid(err error) bool {
	var invalid *InvalidInputError
	return errors.As(err, &invalid)
}

// ValidateEmail devuelve error para correos inválidos.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return Invalid("El correo es obligatorio")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Invalid("Correo inválido")
	}
	return nil
}

// ValidatePassword verifica requisitos mínimos de contraseña.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return Invalid("La contraseña debe tener al menos 8 caracteres")
	}
	return nil
}

// RequireString garantiza una cadena no vacía.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field + " es obligatorio")
	}
	return nil
}

// ValidateCedula exige exactamente 10 dígitos numéricos.
func ValidateCedula(cedula string) error {
	if len(cedula) != 10 {
		return Invalid("La cédula debe tener exactamente 10 dígitos numéricos")
	}
	for _, r := range cedula {
		if r < '0' || r > '9' {
			return Invalid("La cédula debe tener exactamente 10 dígitos numéricos")
		}
	}
	return nil
}

// ValidateDorsal exige un dorsal positivo.
func ValidateDorsal(dorsal int) error {
	if dorsal <= 0 {
		return Invalid("El dorsal debe ser mayor a 0")
	}
	return nil
}
