package services

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/pkg/currency"
	"github.com/rogeriosouza/construtora-api/pkg/logger"
)

//go:embed templates/reports/*.html
var reportTemplates embed.FS

// ReportService computes the dashboard, statements and cash flow reports,
// fronted by a short-lived DB cache
type ReportService struct {
	reportRepo      repository.ReportRepository
	debtRepo        repository.DebtRepository
	installmentRepo repository.InstallmentRepository
	payableRepo     repository.PayableRepository
	clientRepo      repository.ArchivableRepository[models.Client]
	cfg             *config.Config
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	debtRepo repository.DebtRepository,
	installmentRepo repository.InstallmentRepository,
	payableRepo repository.PayableRepository,
	clientRepo repository.ArchivableRepository[models.Client],
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		debtRepo:        debtRepo,
		installmentRepo: installmentRepo,
		payableRepo:     payableRepo,
		clientRepo:      clientRepo,
		cfg:             cfg,
	}
}

// Dashboard returns the combined summary of both ledgers
func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	cacheKey := "dashboard:summary"
	if cached, err := s.reportRepo.GetCache(ctx, cacheKey); err == nil {
		var summary models.DashboardSummary
		if err := json.Unmarshal([]byte(cached.Payload), &summary); err == nil {
			return &summary, nil
		}
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	summary := &models.DashboardSummary{GeneratedAt: now}

	var err error
	if summary.TotalReceivable, err = s.reportRepo.OutstandingReceivable(ctx); err != nil {
		return nil, err
	}
	if summary.OverdueReceivable, err = s.reportRepo.OverdueReceivable(ctx); err != nil {
		return nil, err
	}
	if summary.ReceivedThisMonth, err = s.reportRepo.ReceivedBetween(ctx, monthStart, monthEnd); err != nil {
		return nil, err
	}
	if summary.TotalPayable, err = s.reportRepo.OutstandingPayable(ctx); err != nil {
		return nil, err
	}
	if summary.OverduePayable, err = s.reportRepo.OverduePayable(ctx); err != nil {
		return nil, err
	}
	if summary.PaidThisMonth, err = s.reportRepo.PaidBetween(ctx, monthStart, monthEnd); err != nil {
		return nil, err
	}

	if summary.UpcomingItems, err = s.upcomingItems(ctx, 7); err != nil {
		return nil, err
	}

	if err := s.reportRepo.SetCache(ctx, cacheKey, summary, s.cfg.ReportCacheTTL); err != nil {
		logger.Warn("failed to cache dashboard summary", "error", err)
	}

	return summary, nil
}

// upcomingItems merges due entries from both ledgers inside the window
func (s *ReportService) upcomingItems(ctx context.Context, days int) ([]models.UpcomingItem, error) {
	from := startOfDay(time.Now())
	to := from.AddDate(0, 0, days)

	installments, err := s.installmentRepo.FindDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	payables, err := s.payableRepo.FindDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	items := make([]models.UpcomingItem, 0, len(installments)+len(payables))
	for _, inst := range installments {
		items = append(items, models.UpcomingItem{
			Kind:        "receivable",
			ID:          inst.ID,
			Description: fmt.Sprintf("Parcela %d - %s", inst.Number, inst.Debt.Description),
			Counterpart: inst.Debt.Client.Name,
			Amount:      inst.Amount,
			DueDate:     inst.DueDate,
			Status:      inst.Status,
		})
	}
	for _, p := range payables {
		items = append(items, models.UpcomingItem{
			Kind:        "payable",
			ID:          p.ID,
			Description: p.Description,
			Counterpart: p.Supplier.Name,
			Amount:      p.Amount,
			DueDate:     p.DueDate,
			Status:      p.Status,
		})
	}

	// Merge sort by due date
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].DueDate.Before(items[j-1].DueDate); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}

	return items, nil
}

// ClientStatement assembles the receivables extract for one client
func (s *ReportService) ClientStatement(ctx context.Context, clientID uint) (*models.ClientStatement, error) {
	cacheKey := fmt.Sprintf("receivable:statement:%d", clientID)
	if cached, err := s.reportRepo.GetCache(ctx, cacheKey); err == nil {
		var statement models.ClientStatement
		if err := json.Unmarshal([]byte(cached.Payload), &statement); err == nil {
			return &statement, nil
		}
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, ErrNotFound
	}

	debts, err := s.debtRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	statement := buildStatement(client, debts)

	if err := s.reportRepo.SetCache(ctx, cacheKey, statement, s.cfg.ReportCacheTTL); err != nil {
		logger.Warn("failed to cache client statement", "client_id", clientID, "error", err)
	}

	return statement, nil
}

// buildStatement flattens a client's debts into statement lines with totals
func buildStatement(client *models.Client, debts []models.Debt) *models.ClientStatement {
	statement := &models.ClientStatement{
		ClientID:    client.ID,
		ClientName:  client.Name,
		GeneratedAt: time.Now(),
	}

	for _, debt := range debts {
		statement.TotalDebts += debt.TotalAmount
		for _, inst := range debt.Installments {
			if inst.Status == models.InstallmentStatusPaid {
				statement.TotalPaid += inst.Amount
			}
			statement.Lines = append(statement.Lines, models.StatementLine{
				DebtDescription: debt.Description,
				Number:          inst.Number,
				Amount:          inst.Amount,
				DueDate:         inst.DueDate,
				Status:          inst.Status,
				StatusLabel:     models.StatusLabel(inst.Status),
				PaymentDate:     inst.PaymentDate,
			})
		}
	}

	statement.Outstanding = statement.TotalDebts - statement.TotalPaid
	return statement
}

// ClientStatementPDF renders the statement through the HTML template and
// wkhtmltopdf
func (s *ReportService) ClientStatementPDF(ctx context.Context, clientID uint) (*bytes.Buffer, error) {
	statement, err := s.ClientStatement(ctx, clientID)
	if err != nil {
		return nil, err
	}

	type lineData struct {
		Description string
		Number      int
		Amount      string
		DueDate     string
		Status      string
		PaymentDate string
	}

	data := struct {
		ClientName  string
		GeneratedAt string
		TotalDebts  string
		TotalPaid   string
		Outstanding string
		Lines       []lineData
	}{
		ClientName:  statement.ClientName,
		GeneratedAt: statement.GeneratedAt.Format("02/01/2006 15:04"),
		TotalDebts:  currency.Format(statement.TotalDebts),
		TotalPaid:   currency.Format(statement.TotalPaid),
		Outstanding: currency.Format(statement.Outstanding),
	}

	for _, line := range statement.Lines {
		ld := lineData{
			Description: line.DebtDescription,
			Number:      line.Number,
			Amount:      currency.Format(line.Amount),
			DueDate:     line.DueDate.Format("02/01/2006"),
			Status:      line.StatusLabel,
		}
		if line.PaymentDate != nil {
			ld.PaymentDate = line.PaymentDate.Format("02/01/2006")
		}
		data.Lines = append(data.Lines, ld)
	}

	return s.generatePDF("client_statement.html", data)
}

// CashFlow returns monthly received/paid buckets between two dates
func (s *ReportService) CashFlow(ctx context.Context, from, to time.Time) ([]models.CashFlowPoint, error) {
	cacheKey := fmt.Sprintf("dashboard:cashflow:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if cached, err := s.reportRepo.GetCache(ctx, cacheKey); err == nil {
		var points []models.CashFlowPoint
		if err := json.Unmarshal([]byte(cached.Payload), &points); err == nil {
			return points, nil
		}
	}

	points, err := s.reportRepo.MonthlyCashFlow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.SetCache(ctx, cacheKey, points, s.cfg.ReportCacheTTL); err != nil {
		logger.Warn("failed to cache cash flow", "error", err)
	}

	return points, nil
}

// generatePDF renders an embedded HTML template and converts it with
// wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	tmpl, err := template.ParseFS(reportTemplates, "templates/reports/"+templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}
