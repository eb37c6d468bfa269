package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mateocampo1004/olimpiatec-portal/internal/admin"
	"github.com/mateocampo1004/olimpiatec-portal/internal/config"
	"github.com/mateocampo1004/olimpiatec-portal/internal/guard"
	httpmiddleware "github.com/mateocampo1004/olimpiatec-portal/internal/http/middleware"
	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/matchdesk"
	"github.com/mateocampo1004/olimpiatec-portal/internal/myteam"
	"github.com/mateocampo1004/olimpiatec-portal/internal/public"
	"github.com/mateocampo1004/olimpiatec-portal/internal/reports"
	"github.com/mateocampo1004/olimpiatec-portal/internal/session"
	"github.com/mateocampo1004/olimpiatec-portal/internal/validation"
)

// NewRouter arma el árbol de rutas completo del portal.
func NewRouter(cfg *config.Config, redisClient *redis.Client) (http.Handler, *public.ResultsPoller, error) {
	devCookies := false
	for _, origin := range cfg.AllowOrigins {
		if strings.Contains(origin, "localhost") {
			devCookies = true
			break
		}
	}

	client, err := league.New(cfg.LeagueAPIBase)
	if err != nil {
		return nil, nil, err
	}
	sessions := session.NewStore(redisClient, cfg.SessionTTL)

	publicService := public.NewService(client)
	var poller *public.ResultsPoller
	if cfg.ResultsPollEnabled {
		poller = public.NewResultsPoller(publicService, cfg.ResultsPollEvery, log.Logger)
	}

	authHandler := NewAuthHandler(client, sessions, cfg.SessionCookie, devCookies)
	publicHandler := public.NewHandler(publicService, poller)
	validationHandler := validation.NewHandler(validation.NewService(client), sessions, cfg.SessionCookie)
	matchdeskHandler := matchdesk.NewHandler(matchdesk.NewService(client), sessions, cfg.SessionCookie)
	adminHandler := admin.NewHandler(admin.NewService(client), sessions, cfg.SessionCookie)
	reportsHandler := reports.NewHandler(reports.NewService(client), sessions, cfg.SessionCookie)
	myteamHandler := myteam.NewHandler(myteam.NewService(client), sessions, cfg.SessionCookie)

	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)
	sessionLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitSession.RequestsPerSecond, cfg.RateLimitSession.Burst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))
	r.Use(httpmiddleware.Session(sessions, cfg.SessionCookie))

	r.Route("/api", func(api chi.Router) {
		api.Group(func(auth chi.Router) {
			auth.Use(httpmiddleware.IPRateLimit(authLimiter))
			auth.Post("/auth/login", authHandler.login)
			auth.Post("/auth/forgot-password", authHandler.forgotPassword)
			auth.Post("/auth/reset-password", authHandler.resetPassword)
		})
		api.Get("/auth/me", authHandler.me)
		api.Post("/auth/logout", authHandler.logout)

		api.Group(func(pub chi.Router) {
			pub.Use(httpmiddleware.IPRateLimit(publicLimiter))
			pub.Route("/public", publicHandler.RegisterRoutes)
			pub.Route("/regulations", reportsHandler.RegisterPublicRoutes)
		})

		api.Route("/admin", func(adm chi.Router) {
			adm.Use(guard.Require(session.RoleAdmin))
			adm.Use(httpmiddleware.SessionRateLimit(sessionLimiter))
			adm.Group(adminHandler.RegisterRoutes)
			adm.Route("/validation", validationHandler.RegisterRoutes)
			adm.Route("/reports", reportsHandler.RegisterRoutes)
		})

		api.Route("/matchdesk", func(desk chi.Router) {
			desk.Use(guard.Require(session.RoleMesa, session.RoleAdmin))
			desk.Use(httpmiddleware.SessionRateLimit(sessionLimiter))
			desk.Group(matchdeskHandler.RegisterRoutes)
		})

		api.Route("/my-team", func(mine chi.Router) {
			mine.Use(guard.Require(session.RoleJugador))
			mine.Use(httpmiddleware.SessionRateLimit(sessionLimiter))
			mine.Group(myteamHandler.RegisterRoutes)
		})
	})

	registerScreens(r)

	// Toda ruta desconocida cae en la vista pública del campeonato.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/campeonato", http.StatusSeeOther)
	})

	return r, poller, nil
}

// registerScreens publica las pantallas del portal. Cada una responde
// su descriptor (nombre, menú, rol); las protegidas redirigen a la raíz
// o a /unauthorized según la sesión.
func registerScreens(r chi.Router) {
	screens := []struct {
		path  string
		name  string
		roles []session.Role
	}{
		{"/", "login", nil},
		{"/unauthorized", "unauthorized", nil},
		{"/reglamento", "reglamento", nil},
		{"/campeonato", "campeonato", nil},
		{"/campeonato/equipos", "campeonato-equipos", nil},
		{"/campeonato/calendario", "campeonato-calendario", nil},
		{"/campeonato/posiciones", "campeonato-posiciones", nil},
		{"/player/{id}", "perfil-jugador", nil},
		{"/resultados", "resultados", nil},
		{"/estadisticas", "estadisticas", nil},
		{"/forgot-password", "forgot-password", nil},
		{"/reset-password", "reset-password", nil},

		{"/panel", "panel", []session.Role{session.RoleAdmin}},
		{"/teams", "teams", []session.Role{session.RoleAdmin}},
		{"/teams/{id}/players", "team-players", []session.Role{session.RoleAdmin}},
		{"/players/form", "player-form", []session.Role{session.RoleAdmin}},
		{"/matches/create", "match-create", []session.Role{session.RoleAdmin}},
		{"/reportes", "reportes", []session.Role{session.RoleAdmin}},
		{"/regulations/admin", "regulations-admin", []session.Role{session.RoleAdmin}},
		{"/admin/validacion", "validacion", []session.Role{session.RoleAdmin}},
		{"/admin/historial-validacion", "historial-validacion", []session.Role{session.RoleAdmin}},
		{"/admin/logs", "logs", []session.Role{session.RoleAdmin}},

		{"/matches", "matches", []session.Role{session.RoleMesa, session.RoleAdmin}},
		{"/matches/{id}", "match-desk", []session.Role{session.RoleMesa, session.RoleAdmin}},

		{"/my-team", "my-team", []session.Role{session.RoleJugador}},
		{"/my-team/create-player", "my-team-create-player", []session.Role{session.RoleJugador}},
		{"/my-matches", "my-matches", []session.Role{session.RoleJugador}},
	}

	for _, screen := range screens {
		handler := screenHandler(screen.name)
		if screen.roles != nil {
			r.With(guard.Require(screen.roles...)).Get(screen.path, handler)
			continue
		}
		r.Get(screen.path, handler)
	}
}

func screenHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := httpmiddleware.GetClaims(r.Context())
		var role session.Role
		if claims != nil && claims.Valid(time.Now()) {
			role = claims.Role
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"screen": name,
			"role":   role,
			"menu":   guard.Menu(role),
		})
	}
}
