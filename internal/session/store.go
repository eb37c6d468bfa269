package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession indica que no existe token guardado para la sesión.
var ErrNoSession = errors.New("sesión inexistente")

const tokenKeyPrefix = "portal:token:"

// Store guarda el único estado persistente del portal: el bearer token de
// cada sesión de navegador, bajo una clave fija por id de sesión.
type Store struct {
	redis      *redis.Client
	defaultTTL time.Duration
}

// NewStore crea el store respaldado por redis.
func NewStore(client *redis.Client, defaultTTL time.Duration) *Store {
	return &Store{redis: client, defaultTTL: defaultTTL}
}

func tokenKey(sid string) string {
	return fmt.Sprintf("%s%s", tokenKeyPrefix, sid)
}

// Save registra el token y devuelve el id de sesión generado. El TTL de la
// clave acompaña la expiración de las claims para no retener tokens muertos.
func (s *Store) Save(ctx context.Context, token string) (string, error) {
	claims, err := Decode(token)
	if err != nil {
		return "", err
	}

	ttl := s.defaultTTL
	if until := time.Until(claims.ExpiresAt); until > 0 && until < ttl {
		ttl = until
	}

	sid := uuid.NewString()
	if err := s.redis.Set(ctx, tokenKey(sid), token, ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// Token recupera el bearer token de una sesión. Si el token guardado ya no
// es válido se elimina proactivamente y la sesión pasa a ser anónima.
func (s *Store) Token(ctx context.Context, sid string) (string, error) {
	if sid == "" {
		return "", ErrNoSession
	}

	token, err := s.redis.Get(ctx, tokenKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}

	if !IsValid(token) {
		_ = s.redis.Del(ctx, tokenKey(sid)).Err()
		return "", ErrNoSession
	}
	return token, nil
}

// Claims devuelve las claims vigentes de la sesión, o ErrNoSession.
func (s *Store) Claims(ctx context.Context, sid string) (*Claims, string, error) {
	token, err := s.Token(ctx, sid)
	if err != nil {
		return nil, "", err
	}
	claims, err := Decode(token)
	if err != nil {
		return nil, "", ErrNoSession
	}
	return claims, token, nil
}

// Delete descarta el token de la sesión (logout o 401 del backend).
func (s *Store) Delete(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.redis.Del(ctx, tokenKey(sid)).Err()
}
