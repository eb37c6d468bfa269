package util

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		name    string
		email   string
		message string
	}{
		{"válido", "ana@uta.edu.ec", ""},
		{"con espacios", "  ana@uta.edu.ec  ", ""},
		{"vacío", "", "El correo es obligatorio"},
		{"solo espacios", "   ", "El correo es obligatorio"},
		{"sin arroba", "ana.uta.edu.ec", "Correo inválido"},
		{"sin dominio", "ana@", "Correo inválido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEmail(tc.email)
			if tc.message == "" {
				if err != nil {
					t.Errorf("ValidateEmail(%q) = %v", tc.email, err)
				}
				return
			}
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) || invalid.Message != tc.message {
				t.Errorf("ValidateEmail(%q) = %v, esperaba %q", tc.email, err, tc.message)
			}
		})
	}
}

func TestValidateCedula(t *testing.T) {
	cases := []struct {
		cedula string
		ok     bool
	}{
		{"1804567890", true},
		{"180456789", false},
		{"18045678901", false},
		{"18045678a0", false},
		{"", false},
	}
	for _, tc := range cases {
		err := ValidateCedula(tc.cedula)
		if tc.ok && err != nil {
			t.Errorf("ValidateCedula(%q) = %v", tc.cedula, err)
		}
		if !tc.ok && !IsInvalid(err) {
			t.Errorf("ValidateCedula(%q) debía fallar", tc.cedula)
		}
	}
}

func TestValidateDorsal(t *testing.T) {
	if err := ValidateDorsal(10); err != nil {
		t.Errorf("dorsal 10: %v", err)
	}
	for _, dorsal := range []int{0, -3} {
		if !IsInvalid(ValidateDorsal(dorsal)) {
			t.Errorf("dorsal %d debía fallar", dorsal)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345678"); err != nil {
		t.Errorf("ocho caracteres: %v", err)
	}
	if !IsInvalid(ValidatePassword("1234567")) {
		t.Error("siete caracteres debía fallar")
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(Invalid("x")) {
		t.Error("Invalid debe reconocerse")
	}
	if IsInvalid(errors.New("x")) {
		t.Error("un error cualquiera no es de validación")
	}
	if IsInvalid(nil) {
		t.Error("nil no es de validación")
	}
}
