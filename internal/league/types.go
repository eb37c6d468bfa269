package league

import (
	"errors"
	"strings"
)

// Estados de partido según el backend.
const (
	MatchPending   = "PENDING"
	MatchCompleted = "COMPLETED"
	MatchCancelled = "CANCELLED"
)

// Tipos y detalles de eventos de partido.
const (
	EventGoal   = "GOL"
	EventCard   = "TARJETA"
	CardYellow  = "AMARILLA"
	CardRed     = "ROJA"
)

// ErrBadPayload indica una respuesta del backend sin los campos mínimos.
var ErrBadPayload = errors.New("payload incompleto del backend")

// LoginResponse es la respuesta de POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
}

func (r *LoginResponse) checkBoundary() error {
	if strings.TrimSpace(r.Token) == "" {
		return ErrBadPayload
	}
	return nil
}

// RegisterRequest registra un usuario nuevo (solo ADMIN).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// User es un usuario administrable del sistema.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Team es un equipo con su representante expandido.
type Team struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ContactNumber  string `json:"contactNumber"`
	Representative User   `json:"representative"`
}

// TeamRequest crea o actualiza un equipo.
type TeamRequest struct {
	Name             string `json:"name"`
	ContactNumber    string `json:"contactNumber"`
	RepresentativeID int64  `json:"representativeId"`
}

// Player es un jugador de la nómina de un equipo.
type Player struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Cedula  string `json:"cedula"`
	Dorsal  int    `json:"dorsal"`
	Carrera string `json:"carrera"`
	TeamID  int64  `json:"teamId"`
}

// PlayerRequest crea o actualiza un jugador.
type PlayerRequest struct {
	Name    string `json:"name"`
	Cedula  string `json:"cedula"`
	Dorsal  int    `json:"dorsal"`
	Carrera string `json:"carrera"`
	TeamID  int64  `json:"teamId"`
}

// PublicPlayer es la vista pública de jugadores para perfiles.
type PublicPlayer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Dorsal int    `json:"dorsal"`
	Team   struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// PendingTeam es un equipo a la espera de aprobación administrativa.
type PendingTeam struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	ContactNumber      string `json:"contactNumber"`
	RepresentativeID   int64  `json:"representativeId"`
	RepresentativeName string `json:"representativeName"`
	Validated          bool   `json:"validated"`
}

func (t PendingTeam) check() error {
	if t.ID == 0 || strings.TrimSpace(t.Name) == "" {
		return ErrBadPayload
	}
	return nil
}

// PendingPlayer es un jugador a la espera de aprobación administrativa.
type PendingPlayer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Cedula    string `json:"cedula"`
	Dorsal    int    `json:"dorsal"`
	Carrera   string `json:"carrera"`
	TeamID    int64  `json:"teamId"`
	TeamName  string `json:"teamName"`
	Validated bool   `json:"validated"`
}

func (p PendingPlayer) check() error {
	if p.ID == 0 || strings.TrimSpace(p.Name) == "" {
		return ErrBadPayload
	}
	return nil
}

// TeamPatch es la edición en línea de un equipo pendiente.
type TeamPatch struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
}

// PlayerPatch es la edición en línea de un jugador pendiente.
type PlayerPatch struct {
	Name    string `json:"name"`
	Cedula  string `json:"cedula"`
	Dorsal  int    `json:"dorsal"`
	Carrera string `json:"carrera"`
}

// ValidationRecord es una entrada del historial de validación.
type ValidationRecord struct {
	ID          int64  `json:"id"`
	EntityType  string `json:"entityType"`
	EntityID    int64  `json:"entityId"`
	ValidatedBy string `json:"validatedBy"`
	ValidatedAt string `json:"validatedAt"`
}

// Match es la vista de listado de partidos.
type Match struct {
	ID              int64  `json:"id"`
	HomeTeamName    string `json:"homeTeamName"`
	AwayTeamName    string `json:"awayTeamName"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Location        string `json:"location"`
	Status          string `json:"status"`
	HomeScore       int    `json:"homeScore"`
	AwayScore       int    `json:"awayScore"`
	Validated       bool   `json:"validated"`
	ValidatedAt     string `json:"validatedAt,omitempty"`
	ValidatedByName string `json:"validatedByName,omitempty"`
}

func (m Match) check() error {
	if m.ID == 0 || m.Status == "" {
		return ErrBadPayload
	}
	return nil
}

// MatchDetail agrega los ids de equipo a la vista de un partido.
type MatchDetail struct {
	ID           int64  `json:"id"`
	HomeTeamID   int64  `json:"homeTeamId"`
	AwayTeamID   int64  `json:"awayTeamId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Location     string `json:"location"`
	Status       string `json:"status"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	Validated    bool   `json:"validated"`
}

func (m *MatchDetail) checkBoundary() error {
	if m.ID == 0 || m.Status == "" {
		return ErrBadPayload
	}
	return nil
}

// PublicMatch es la vista pública del calendario.
type PublicMatch struct {
	ID           int64  `json:"id"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Location     string `json:"location"`
}

// MatchRequest programa o reprograma un partido.
type MatchRequest struct {
	HomeTeamID int64  `json:"homeTeamId"`
	AwayTeamID int64  `json:"awayTeamId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Location   string `json:"location"`
	Status     string `json:"status"`
}

// MatchEvent es un gol o tarjeta registrado en un partido.
type MatchEvent struct {
	ID         int64   `json:"id"`
	Type       string  `json:"type"`
	Detail     *string `json:"detail"`
	Minute     int     `json:"minute"`
	PlayerName string  `json:"playerName"`
	TeamName   string  `json:"teamName"`
	PlayerID   int64   `json:"playerId,omitempty"`
}

// MatchEventRequest crea o edita un evento.
type MatchEventRequest struct {
	MatchID  int64  `json:"matchId"`
	PlayerID int64  `json:"playerId"`
	Minute   int    `json:"minute"`
	Type     string `json:"type"`
	Detail   string `json:"detail"`
}

// MatchStats agrupa los totales de un partido y sus eventos.
type MatchStats struct {
	HomeTeamID      int64        `json:"homeTeamId"`
	AwayTeamID      int64        `json:"awayTeamId"`
	HomeTeamName    string       `json:"homeTeamName"`
	AwayTeamName    string       `json:"awayTeamName"`
	HomeGoals       int          `json:"homeGoals"`
	AwayGoals       int          `json:"awayGoals"`
	HomeYellowCards int          `json:"homeYellowCards"`
	AwayYellowCards int          `json:"awayYellowCards"`
	HomeRedCards    int          `json:"homeRedCards"`
	AwayRedCards    int          `json:"awayRedCards"`
	Events          []MatchEvent `json:"events"`
}

// MatchReport es la alineación y capitán presentados por un equipo.
type MatchReport struct {
	MatchID      int64   `json:"matchId"`
	TeamID       int64   `json:"teamId"`
	CaptainID    int64   `json:"captainId"`
	Lineup       []int64 `json:"lineup"`
	Observations string  `json:"observations"`
}

// ReportFilter filtra la generación de reportes.
type ReportFilter struct {
	TeamID    *int64 `json:"teamId,omitempty"`
	PlayerID  *int64 `json:"playerId,omitempty"`
	DateStart string `json:"dateStart,omitempty"`
	DateEnd   string `json:"dateEnd,omitempty"`
}

// PlayerReportRow es una fila del reporte generado.
type PlayerReportRow struct {
	PlayerName         string `json:"playerName"`
	TeamName           string `json:"teamName"`
	TotalMatchesPlayed int    `json:"totalMatchesPlayed"`
	TotalGoals         int    `json:"totalGoals"`
	YellowCards        int    `json:"yellowCards"`
	RedCards           int    `json:"redCards"`
}

// ReportHistoryEntry es un reporte ya generado, exportable a PDF/Excel.
type ReportHistoryEntry struct {
	ID          int64  `json:"id"`
	GeneratedAt string `json:"generatedAt"`
	GeneratedBy string `json:"generatedBy"`
}

// AuditLog es una entrada del log de auditoría del backend.
type AuditLog struct {
	ID        int64   `json:"id"`
	UserEmail string  `json:"userEmail"`
	Action    string  `json:"action"`
	Entity    *string `json:"entity"`
	EntityID  *int64  `json:"entityId"`
	Timestamp string  `json:"timestamp"`
	Details   *string `json:"details"`
}

// AuditLogFilter restringe la consulta de auditoría.
type AuditLogFilter struct {
	UserEmail string
	Action    string
	From      string
	To        string
}

// Regulation es una versión del reglamento del campeonato.
type Regulation struct {
	ID         int64  `json:"id"`
	FileName   string `json:"fileName"`
	UploadedAt string `json:"uploadedAt"`
	UploadedBy string `json:"uploadedBy"`
}

// TeamStatTotals acumula goles y tarjetas por equipo.
type TeamStatTotals struct {
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

// PlayerStatRow acumula goles y tarjetas por jugador.
type PlayerStatRow struct {
	PlayerID    int64  `json:"playerId"`
	PlayerName  string `json:"playerName"`
	TeamName    string `json:"teamName"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

// GlobalStats agrupa los consolidados del campeonato.
type GlobalStats struct {
	TeamStats  []TeamStatTotals `json:"teamStats"`
	TopScorers []PlayerStatRow  `json:"topScorers"`
	TopCards   []PlayerStatRow  `json:"topCards"`
}

// Standing es una fila de la tabla de posiciones.
type Standing struct {
	TeamName       string   `json:"teamName"`
	Played         int      `json:"played"`
	Wins           int      `json:"wins"`
	Draws          int      `json:"draws"`
	Losses         int      `json:"losses"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
	Points         int      `json:"points"`
	Last5          []string `json:"last5"`
}

// PlayerStats es el consolidado individual de un jugador.
type PlayerStats struct {
	PlayerName         string `json:"playerName"`
	TeamName           string `json:"teamName"`
	TotalGoals         int    `json:"totalGoals"`
	YellowCards        int    `json:"yellowCards"`
	RedCards           int    `json:"redCards"`
	TotalMatchesPlayed int    `json:"totalMatchesPlayed"`
}

// TeamStats es el consolidado de un equipo.
type TeamStats struct {
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	Played      int    `json:"played"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}
