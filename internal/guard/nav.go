package guard

import "github.com/mateocampo1004/olimpiatec-portal/internal/session"

// NavLink es una entrada del menú de navegación.
type NavLink struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// NavSection agrupa enlaces bajo un encabezado.
type NavSection struct {
	Title string    `json:"title"`
	Links []NavLink `json:"links"`
}

// Menu es una función pura del rol actual a las secciones visibles del
// menú. Los enlaces públicos aparecen siempre; rol vacío equivale a anónimo.
func Menu(role session.Role) []NavSection {
	var sections []NavSection

	switch role {
	case session.RoleAdmin:
		sections = append(sections, NavSection{
			Title: "Administración",
			Links: []NavLink{
				{Path: "/panel", Label: "Gestión Usuarios"},
				{Path: "/teams", Label: "Gestión Equipos"},
				{Path: "/players/form", Label: "Gestión Jugadores"},
				{Path: "/regulations/admin", Label: "Gestión Reglamento"},
				{Path: "/matches/create", Label: "Programar Partido"},
				{Path: "/reportes", Label: "Generar Reportes"},
				{Path: "/admin/validacion", Label: "Validación"},
				{Path: "/admin/historial-validacion", Label: "Historial Validación"},
				{Path: "/admin/logs", Label: "Logs de Auditoría"},
			},
		})
	case session.RoleJugador:
		sections = append(sections, NavSection{
			Title: "Mi equipo",
			Links: []NavLink{
				{Path: "/my-team", Label: "Mi equipo"},
				{Path: "/my-team/create-player", Label: "Gestión Jugadores"},
				{Path: "/my-matches", Label: "Mis Partidos"},
			},
		})
	case session.RoleMesa:
		sections = append(sections, NavSection{
			Title: "Mesa",
			Links: []NavLink{
				{Path: "/matches", Label: "Registrar Eventos"},
			},
		})
	}

	sections = append(sections, NavSection{
		Title: "Campeonato",
		Links: []NavLink{
			{Path: "/reglamento", Label: "Reglamento"},
			{Path: "/campeonato", Label: "Campeonato"},
		},
	})
	return sections
}
