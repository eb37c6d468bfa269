package reports

import (
	"context"
	"io"
	"strings"

	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// ReportClient son las llamadas del backend para reportes, auditoría y
// reglamento.
type ReportClient interface {
	GenerateReport(ctx context.Context, token string, filter league.ReportFilter) ([]league.PlayerReportRow, error)
	ReportHistory(ctx context.Context, token string) ([]league.ReportHistoryEntry, error)
	ExportReportPDF(ctx context.Context, token string, historyID int64) ([]byte, string, error)
	ExportReportExcel(ctx context.Context, token string, historyID int64) ([]byte, string, error)
	AuditLogs(ctx context.Context, token string, filter league.AuditLogFilter) ([]league.AuditLog, error)
	UploadRegulation(ctx context.Context, token, filename string, content io.Reader) error
	RegulationHistory(ctx context.Context, token string) ([]league.Regulation, error)
	LatestRegulation(ctx context.Context) ([]byte, string, error)
	DownloadRegulation(ctx context.Context, id int64) ([]byte, string, error)
}

// Service cubre las pantallas de administración de reportes, log de
// auditoría y reglamento.
type Service struct {
	client   ReportClient
	inflight *util.Inflight
}

func NewService(client ReportClient) *Service {
	return &Service{client: client, inflight: util.NewInflight()}
}

// Generate valida el rango de fechas y pide el reporte al backend.
func (s *Service) Generate(ctx context.Context, token string, filter league.ReportFilter) ([]league.PlayerReportRow, error) {
	if filter.DateStart != "" && filter.DateEnd != "" && filter.DateStart > filter.DateEnd {
		return nil, util.Invalid("La fecha de inicio no puede ser posterior a la fecha de fin")
	}
	if !s.inflight.Begin("report:generate") {
		return nil, util.ErrBusy
	}
	defer s.inflight.End("report:generate")
	return s.client.GenerateReport(ctx, token, filter)
}

func (s *Service) History(ctx context.Context, token string) ([]league.ReportHistoryEntry, error) {
	return s.client.ReportHistory(ctx, token)
}

// Export descarga un reporte del historial en el formato pedido
// ("pdf" o "excel") y lo devuelve tal cual para retransmitirlo.
func (s *Service) Export(ctx context.Context, token string, historyID int64, format string) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case "pdf":
		return s.client.ExportReportPDF(ctx, token, historyID)
	case "excel":
		return s.client.ExportReportExcel(ctx, token, historyID)
	default:
		return nil, "", util.Invalid("Formato de exportación inválido")
	}
}

// AuditLogs consulta el log de auditoría con filtros opcionales.
func (s *Service) AuditLogs(ctx context.Context, token string, filter league.AuditLogFilter) ([]league.AuditLog, error) {
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return nil, util.Invalid("La fecha de inicio no puede ser posterior a la fecha de fin")
	}
	return s.client.AuditLogs(ctx, token, filter)
}

// UploadRegulation sube una versión nueva del reglamento. Solo PDF.
func (s *Service) UploadRegulation(ctx context.Context, token, filename string, content io.Reader) error {
	if strings.TrimSpace(filename) == "" {
		return util.Invalid("Selecciona un archivo")
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return util.Invalid("El reglamento debe ser un archivo PDF")
	}
	if !s.inflight.Begin("regulation:upload") {
		return util.ErrBusy
	}
	defer s.inflight.End("regulation:upload")
	return s.client.UploadRegulation(ctx, token, filename, content)
}

func (s *Service) RegulationHistory(ctx context.Context, token string) ([]league.Regulation, error) {
	return s.client.RegulationHistory(ctx, token)
}

// LatestRegulation descarga el reglamento vigente; es público.
func (s *Service) LatestRegulation(ctx context.Context) ([]byte, string, error) {
	return s.client.LatestRegulation(ctx)
}

func (s *Service) DownloadRegulation(ctx context.Context, id int64) ([]byte, string, error) {
	return s.client.DownloadRegulation(ctx, id)
}
