package league

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// GenerateReport genera un reporte a partir de filtros y devuelve sus filas.
func (c *Client) GenerateReport(ctx context.Context, token string, filter ReportFilter) ([]PlayerReportRow, error) {
	var rows []PlayerReportRow
	if err := c.post(ctx, "/reports/generate", token, filter, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReportHistory lista los reportes generados previamente.
func (c *Client) ReportHistory(ctx context.Context, token string) ([]ReportHistoryEntry, error) {
	var entries []ReportHistoryEntry
	if err := c.get(ctx, "/reports/history", token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ExportReportPDF descarga el PDF de un reporte del historial.
func (c *Client) ExportReportPDF(ctx context.Context, token string, historyID int64) ([]byte, string, error) {
	return c.getBlob(ctx, http.MethodPost, pathID("/reports/export/pdf", historyID), token)
}

// ExportReportExcel descarga el Excel de un reporte del historial.
func (c *Client) ExportReportExcel(ctx context.Context, token string, historyID int64) ([]byte, string, error) {
	return c.getBlob(ctx, http.MethodPost, pathID("/reports/export/excel", historyID), token)
}

// AuditLogs consulta el log de auditoría con filtros opcionales.
func (c *Client) AuditLogs(ctx context.Context, token string, filter AuditLogFilter) ([]AuditLog, error) {
	values := url.Values{}
	if filter.UserEmail != "" {
		values.Set("userEmail", filter.UserEmail)
	}
	if filter.Action != "" {
		values.Set("action", filter.Action)
	}
	if filter.From != "" {
		values.Set("from", filter.From)
	}
	if filter.To != "" {
		values.Set("to", filter.To)
	}

	var logs []AuditLog
	if err := c.get(ctx, withQuery("/audit-logs", values), token, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// UploadRegulation sube una versión nueva del reglamento (PDF multipart).
func (c *Client) UploadRegulation(ctx context.Context, token, filename string, content io.Reader) error {
	return c.postMultipart(ctx, "/regulations/upload", token, "file", filename, content)
}

// LatestRegulation descarga el reglamento vigente.
func (c *Client) LatestRegulation(ctx context.Context) ([]byte, string, error) {
	return c.getBlob(ctx, http.MethodGet, "/regulations/latest", "")
}

// RegulationHistory lista las versiones subidas del reglamento.
func (c *Client) RegulationHistory(ctx context.Context, token string) ([]Regulation, error) {
	var regulations []Regulation
	if err := c.get(ctx, "/regulations/history", token, &regulations); err != nil {
		return nil, err
	}
	return regulations, nil
}

// DownloadRegulation descarga una versión puntual del reglamento.
func (c *Client) DownloadRegulation(ctx context.Context, id int64) ([]byte, string, error) {
	return c.getBlob(ctx, http.MethodGet, pathID("/regulations", id)+"/download", "")
}
