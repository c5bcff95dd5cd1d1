package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/pkg/currency"
	"github.com/rogeriosouza/construtora-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

// EmailService sends transactional email through Resend
type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

// Enabled reports whether outgoing email is configured
func (s *EmailService) Enabled() bool {
	return s.config.ResendAPIKey != "" && s.config.OfficeEmail != ""
}

// SendOverdueSummary mails the office a summary of overdue installments.
// A no-op when email is not configured or there is nothing overdue.
func (s *EmailService) SendOverdueSummary(ctx context.Context, installments []models.Installment) error {
	if !s.Enabled() {
		logger.Debug("email not configured, skipping overdue summary")
		return nil
	}
	if len(installments) == 0 {
		return nil
	}

	type rowData struct {
		ClientName  string
		Description string
		Number      int
		Amount      string
		DueDate     string
		OverdueDays int
	}

	var total float64
	rows := make([]rowData, 0, len(installments))
	for _, inst := range installments {
		total += inst.Amount
		rows = append(rows, rowData{
			ClientName:  inst.Debt.Client.Name,
			Description: inst.Debt.Description,
			Number:      inst.Number,
			Amount:      currency.Format(inst.Amount),
			DueDate:     inst.DueDate.Format("02/01/2006"),
			OverdueDays: inst.OverdueDays(),
		})
	}

	data := struct {
		Count int
		Total string
		Rows  []rowData
	}{
		Count: len(rows),
		Total: currency.Format(total),
		Rows:  rows,
	}

	body, err := s.renderTemplate("overdue_summary.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{s.config.OfficeEmail},
		Subject: fmt.Sprintf("Parcelas em atraso: %d", len(rows)),
		Html:    body,
	}
	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error("failed to send overdue summary email", "to", s.config.OfficeEmail, "error", err)
		return err
	}

	logger.Info("overdue summary email sent", "to", s.config.OfficeEmail, "count", len(rows))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
