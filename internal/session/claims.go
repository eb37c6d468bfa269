package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role es el rol que el backend incluye dentro del token de acceso.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleJugador Role = "JUGADOR"
	RoleMesa    Role = "MESA"
)

// ErrTokenMalformed indica que el token no pudo decodificarse.
var ErrTokenMalformed = errors.New("token malformado")

// Claims es la carga decodificada de un token emitido por el backend de la
// liga. El portal no posee la clave de firma: el token se decodifica sin
// verificar y se confía tal cual, igual que hacía el cliente original. La
// autoridad final sigue siendo el backend, que rechaza tokens inválidos con
// 401 en cada llamada.
type Claims struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenPayload struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decode extrae las claims de un token sin verificar la firma.
func Decode(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenMalformed
	}

	parser := jwt.NewParser()
	payload := &tokenPayload{}
	if _, _, err := parser.ParseUnverified(token, payload); err != nil {
		return nil, ErrTokenMalformed
	}
	if payload.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{
		Subject:   payload.Subject,
		Role:      Role(strings.ToUpper(strings.TrimSpace(payload.Role))),
		ExpiresAt: payload.ExpiresAt.Time,
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}
	return claims, nil
}

// Valid reporta si las claims siguen vigentes en el instante dado.
// El límite exacto expiresAt == now cuenta como vencido.
func (c *Claims) Valid(now time.Time) bool {
	return c != nil && c.ExpiresAt.After(now)
}

// IsValid reporta si un token está presente, decodifica y no venció.
func IsValid(token string) bool {
	claims, err := Decode(token)
	if err != nil {
		return false
	}
	return claims.Valid(time.Now())
}
