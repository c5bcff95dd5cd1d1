package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rogeriosouza/construtora-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// @Summary Dashboard
// @Description Financial summary of the current month plus upcoming due items
// @Tags Reports
// @Produce json
// @Success 200 {object} models.DashboardSummary
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Client Statement
// @Description Full receivable statement of a client
// @Tags Reports
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} models.ClientStatement
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/clients/{client_id}/statement [get]
func (h *ReportHandler) ClientStatement(c *gin.Context) {
	statement, err := h.reportService.ClientStatement(c.Request.Context(), parseID(c, "client_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

// @Summary Client Statement PDF
// @Description Client statement rendered as a PDF document
// @Tags Reports
// @Produce application/pdf
// @Param client_id path int true "Client ID"
// @Success 200 {file} file "statement"
// @Security BearerAuth
// @Router /reports/clients/{client_id}/statement.pdf [get]
func (h *ReportHandler) ClientStatementPDF(c *gin.Context) {
	clientID := parseID(c, "client_id")
	buf, err := h.reportService.ClientStatementPDF(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("extrato_cliente_%d_%s.pdf", clientID, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Cash Flow
// @Description Monthly received and paid totals for a period
// @Tags Reports
// @Produce json
// @Param from query string false "Start month (YYYY-MM-DD, defaults to 11 months ago)"
// @Param to query string false "End month (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} []models.CashFlowPoint
// @Security BearerAuth
// @Router /reports/cash_flow [get]
func (h *ReportHandler) CashFlow(c *gin.Context) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data inicial inválida, use o formato AAAA-MM-DD"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data final inválida, use o formato AAAA-MM-DD"})
			return
		}
		to = parsed
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Período inválido"})
		return
	}

	points, err := h.reportService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cash_flow": points})
}

// @Summary Export Overdue Installments CSV
// @Description Overdue installments as a CSV download
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file "csv"
// @Security BearerAuth
// @Router /reports/exports/overdue.csv [get]
func (h *ReportHandler) ExportOverdueCSV(c *gin.Context) {
	data, filename, err := h.exportService.OverdueCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Export Commissions CSV
// @Description All commissions as a CSV download
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file "csv"
// @Security BearerAuth
// @Router /reports/exports/commissions.csv [get]
func (h *ReportHandler) ExportCommissionsCSV(c *gin.Context) {
	data, filename, err := h.exportService.CommissionsCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Export Receivables XLSX
// @Description All receivable debts as a spreadsheet download
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "xlsx"
// @Security BearerAuth
// @Router /reports/exports/receivables.xlsx [get]
func (h *ReportHandler) ExportReceivablesXLSX(c *gin.Context) {
	data, filename, err := h.exportService.ReceivablesXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
