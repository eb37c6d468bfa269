package admin

import (
	"net/url"
	"testing"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
)

func sampleUsers() []league.User {
	return []league.User{
		{ID: 1, Name: "Carlos Pérez", Email: "carlos@uta.edu.ec", Role: "ADMIN"},
		{ID: 2, Name: "Ana Torres", Email: "ana@uta.edu.ec", Role: "JUGADOR"},
		{ID: 3, Name: "Beatriz Soto", Email: "beatriz@uta.edu.ec", Role: "MESA"},
	}
}

func TestUserListViewFilterAndSort(t *testing.T) {
	t.Run("sin params devuelve el orden de llegada", func(t *testing.T) {
		out := userListView(sampleUsers(), url.Values{})
		if len(out) != 3 || out[0].ID != 1 || out[2].ID != 3 {
			t.Fatalf("orden alterado: %+v", out)
		}
	})

	t.Run("search estrecha por nombre o correo", func(t *testing.T) {
		out := userListView(sampleUsers(), url.Values{"search": {"ana@"}})
		if len(out) != 1 || out[0].ID != 2 {
			t.Fatalf("esperaba solo a Ana, obtuve %+v", out)
		}
	})

	t.Run("filtro por rol", func(t *testing.T) {
		out := userListView(sampleUsers(), url.Values{"role": {"MESA"}})
		if len(out) != 1 || out[0].ID != 3 {
			t.Fatalf("esperaba solo MESA, obtuve %+v", out)
		}
	})

	t.Run("sort asc y desc por nombre", func(t *testing.T) {
		asc := userListView(sampleUsers(), url.Values{"sort": {"name"}})
		if asc[0].Name != "Ana Torres" || asc[2].Name != "Carlos Pérez" {
			t.Fatalf("orden ascendente incorrecto: %+v", asc)
		}
		desc := userListView(sampleUsers(), url.Values{"sort": {"name"}, "dir": {"desc"}})
		if desc[0].Name != "Carlos Pérez" || desc[2].Name != "Ana Torres" {
			t.Fatalf("orden descendente incorrecto: %+v", desc)
		}
	})
}

func TestPlayerListViewSortByDorsal(t *testing.T) {
	players := []league.Player{
		{ID: 1, Name: "Luis", Cedula: "1804567890", Dorsal: 10},
		{ID: 2, Name: "Marco", Cedula: "1712345678", Dorsal: 4},
	}

	out := playerListView(players, url.Values{"sort": {"dorsal"}})
	if out[0].ID != 2 || out[1].ID != 1 {
		t.Fatalf("esperaba dorsales ascendentes, obtuve %+v", out)
	}

	out = playerListView(players, url.Values{"search": {"171"}})
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("esperaba búsqueda por cédula, obtuve %+v", out)
	}
}
