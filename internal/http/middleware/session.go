package middleware

import (
	"context"
	"net/http"

	"github.com/mateocampo1004/olimpiatec-portal/internal/session"
)

type contextKey string

const (
	ContextKeyClaims    contextKey = "claims"
	ContextKeyToken     contextKey = "token"
	ContextKeySessionID contextKey = "sid"
)

// Session resuelve la sesión del navegador: lee la cookie, recupera el
// bearer token del store y decodifica sus claims. Una sesión ausente o
// vencida deja la petición como anónima; nunca corta la cadena.
func Session(store *session.Store, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Sesión inexistente o falla de redis: la petición sigue
			// como anónima en vez de cortar toda ruta con 500.
			claims, token, err := store.Claims(r.Context(), cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			ctx = context.WithValue(ctx, ContextKeyToken, token)
			ctx = context.WithValue(ctx, ContextKeySessionID, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims recupera las claims de la sesión, o nil si es anónima.
func GetClaims(ctx context.Context) *session.Claims {
	val, _ := ctx.Value(ContextKeyClaims).(*session.Claims)
	return val
}

// GetToken recupera el bearer token de la sesión.
func GetToken(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyToken).(string)
	return val
}

// GetSessionID recupera el id de sesión del navegador.
func GetSessionID(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySessionID).(string)
	return val
}
