package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, role string, issuedAt, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "usuario@olimpiatec.edu.ec",
		"role": role,
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("clave-que-el-portal-no-conoce"))
	if err != nil {
		t.Fatalf("firmar token: %v", err)
	}
	return signed
}

func TestDecode(t *testing.T) {
	now := time.Now()
	token := signToken(t, "admin", now, now.Add(time.Hour))

	claims, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.Subject != "usuario@olimpiatec.edu.ec" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("role = %q, esperaba ADMIN normalizado", claims.Role)
	}
	if !claims.Valid(now) {
		t.Error("claims recién emitidas deberían ser válidas")
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"vacío", ""},
		{"espacios", "   "},
		{"basura", "no-es-un-jwt"},
		{"dos segmentos", "abc.def"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.token); !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("Decode(%q) err = %v, esperaba ErrTokenMalformed", tc.token, err)
			}
		})
	}
}

func TestDecodeWithoutExpiry(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "x",
		"role": "ADMIN",
	})
	signed, err := token.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("firmar token: %v", err)
	}
	if _, err := Decode(signed); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("token sin exp debería ser malformado, err = %v", err)
	}
}

func TestClaimsValidBoundary(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	claims := &Claims{Role: RoleMesa, ExpiresAt: now}

	// El límite exacto cuenta como vencido.
	if claims.Valid(now) {
		t.Error("expiresAt == now debería ser inválido")
	}
	if !claims.Valid(now.Add(-time.Second)) {
		t.Error("un segundo antes del vencimiento debería ser válido")
	}
	if claims.Valid(now.Add(time.Second)) {
		t.Error("después del vencimiento debería ser inválido")
	}

	var nilClaims *Claims
	if nilClaims.Valid(now) {
		t.Error("claims nulas nunca son válidas")
	}
}

func TestIsValid(t *testing.T) {
	now := time.Now()
	if !IsValid(signToken(t, "JUGADOR", now, now.Add(time.Minute))) {
		t.Error("token vigente debería ser válido")
	}
	if IsValid(signToken(t, "JUGADOR", now.Add(-2*time.Hour), now.Add(-time.Hour))) {
		t.Error("token vencido no debería ser válido")
	}
	if IsValid("") {
		t.Error("token vacío no debería ser válido")
	}
}
