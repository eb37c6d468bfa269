package guard

import (
	"net/http"
	"time"

	httpmiddleware "github.com/mateocampo1004/olimpiatec-portal/internal/http/middleware"
	"github.com/mateocampo1004/olimpiatec-portal/internal/session"
)

// Decision es el resultado de evaluar el acceso a una ruta protegida.
type Decision int

const (
	// Render permite servir el contenido solicitado.
	Render Decision = iota
	// RedirectLogin manda a la raíz pública: no hay sesión utilizable.
	RedirectLogin
	// RedirectUnauthorized manda a /unauthorized: sesión válida, rol insuficiente.
	RedirectUnauthorized
)

// Rutas de redirección del portal.
const (
	LoginPath        = "/"
	UnauthorizedPath = "/unauthorized"
)

// Decide evalúa claims contra los roles permitidos de la ruta en el momento
// de la navegación. Sin lista de roles, basta con una sesión vigente.
func Decide(claims *session.Claims, now time.Time, allowed ...session.Role) Decision {
	if claims == nil || !claims.Valid(now) {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Render
	}
	for _, role := range allowed {
		if claims.Role == role {
			return Render
		}
	}
	return RedirectUnauthorized
}

// Require protege un subárbol de rutas: redirige anónimos a la raíz pública
// y sesiones con rol insuficiente a /unauthorized. Al ser evaluado por
// petición, una sesión que venció mientras la pantalla estaba abierta cae en
// la siguiente interacción, no solo al navegar.
func Require(allowed ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := httpmiddleware.GetClaims(r.Context())
			switch Decide(claims, time.Now(), allowed...) {
			case Render:
				next.ServeHTTP(w, r)
			case RedirectUnauthorized:
				http.Redirect(w, r, UnauthorizedPath, http.StatusSeeOther)
			default:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			}
		})
	}
}
