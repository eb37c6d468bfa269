package guard

import (
	"testing"
	"time"

	"github.com/mateocampo1004/olimpiatec-portal/internal/session"
)

func TestDecide(t *testing.T) {
	now := time.Now()
	vigente := func(role session.Role) *session.Claims {
		return &session.Claims{Role: role, ExpiresAt: now.Add(time.Hour)}
	}

	cases := []struct {
		name    string
		claims  *session.Claims
		allowed []session.Role
		want    Decision
	}{
		{"anónimo", nil, []session.Role{session.RoleAdmin}, RedirectLogin},
		{"sesión vencida", &session.Claims{Role: session.RoleAdmin, ExpiresAt: now.Add(-time.Minute)}, []session.Role{session.RoleAdmin}, RedirectLogin},
		{"vencida justo ahora", &session.Claims{Role: session.RoleAdmin, ExpiresAt: now}, []session.Role{session.RoleAdmin}, RedirectLogin},
		{"rol permitido", vigente(session.RoleAdmin), []session.Role{session.RoleAdmin}, Render},
		{"rol insuficiente", vigente(session.RoleJugador), []session.Role{session.RoleAdmin}, RedirectUnauthorized},
		{"varios roles, coincide el segundo", vigente(session.RoleAdmin), []session.Role{session.RoleMesa, session.RoleAdmin}, Render},
		{"sin lista de roles basta sesión", vigente(session.RoleMesa), nil, Render},
		{"sin lista de roles y anónimo", nil, nil, RedirectLogin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.claims, now, tc.allowed...); got != tc.want {
				t.Errorf("Decide() = %v, esperaba %v", got, tc.want)
			}
		})
	}
}

func TestMenuPerRole(t *testing.T) {
	adminMenu := Menu(session.RoleAdmin)
	if len(adminMenu) == 0 {
		t.Fatal("el ADMIN debería tener secciones de menú")
	}
	if !hasLink(adminMenu, "/admin/validacion") {
		t.Error("el ADMIN debería ver la validación de pendientes")
	}
	if !hasLink(adminMenu, "/campeonato") {
		t.Error("la sección pública siempre está presente")
	}

	jugadorMenu := Menu(session.RoleJugador)
	if !hasLink(jugadorMenu, "/my-team") {
		t.Error("el JUGADOR debería ver su equipo")
	}
	if hasLink(jugadorMenu, "/admin/logs") {
		t.Error("el JUGADOR no debería ver el menú de administración")
	}

	mesaMenu := Menu(session.RoleMesa)
	if !hasLink(mesaMenu, "/matches") {
		t.Error("la MESA debería ver los partidos")
	}

	anonMenu := Menu("")
	if !hasLink(anonMenu, "/reglamento") {
		t.Error("el anónimo debería ver el reglamento")
	}
	if hasLink(anonMenu, "/panel") {
		t.Error("el anónimo no debería ver el panel")
	}
}

func hasLink(sections []NavSection, path string) bool {
	for _, section := range sections {
		for _, link := range section.Links {
			if link.Path == path {
				return true
			}
		}
	}
	return false
}
