package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService renders ledger data as CSV and XLSX downloads
type ExportService struct {
	reportRepo      repository.ReportRepository
	installmentRepo repository.InstallmentRepository
	commissionRepo  repository.CommissionRepository
}

// NewExportService creates a new export service
func NewExportService(
	reportRepo repository.ReportRepository,
	installmentRepo repository.InstallmentRepository,
	commissionRepo repository.CommissionRepository,
) *ExportService {
	return &ExportService{
		reportRepo:      reportRepo,
		installmentRepo: installmentRepo,
		commissionRepo:  commissionRepo,
	}
}

// OverdueCSV exports every overdue installment with client contact data
func (s *ExportService) OverdueCSV(ctx context.Context) ([]byte, string, error) {
	installments, err := s.installmentRepo.FindOverdue(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	_ = w.Write([]string{"Cliente", "Débito", "Parcela", "Valor", "Vencimento", "Dias em Atraso"})

	for _, inst := range installments {
		_ = w.Write([]string{
			inst.Debt.Client.Name,
			inst.Debt.Description,
			fmt.Sprintf("%d", inst.Number),
			fmt.Sprintf("%.2f", inst.Amount),
			inst.DueDate.Format("2006-01-02"),
			fmt.Sprintf("%d", inst.OverdueDays()),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("parcelas_atrasadas_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// CommissionsCSV exports the commissions ledger
func (s *ExportService) CommissionsCSV(ctx context.Context) ([]byte, string, error) {
	commissions, err := s.commissionRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	_ = w.Write([]string{"Corretor", "Venda", "Valor da Venda", "Percentual", "Comissão", "Status", "Data do Pagamento"})

	for _, c := range commissions {
		paymentDate := ""
		if c.PaymentDate != nil {
			paymentDate = c.PaymentDate.Format("2006-01-02")
		}
		_ = w.Write([]string{
			c.Broker.Name,
			c.SaleDescription,
			fmt.Sprintf("%.2f", c.SaleAmount),
			fmt.Sprintf("%.2f%%", c.Percentage),
			fmt.Sprintf("%.2f", c.Amount),
			models.StatusLabel(c.Status),
			paymentDate,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("comissoes_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ReceivablesXLSX exports the full receivables ledger as a spreadsheet
func (s *ExportService) ReceivablesXLSX(ctx context.Context) ([]byte, string, error) {
	installments, err := s.reportRepo.AllReceivables(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Recebíveis"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"Cliente", "Débito", "Parcela", "Valor", "Vencimento", "Status", "Data do Pagamento"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, inst := range installments {
		values := []interface{}{
			inst.Debt.Client.Name,
			inst.Debt.Description,
			inst.Number,
			inst.Amount,
			inst.DueDate.Format("2006-01-02"),
			models.StatusLabel(inst.Status),
		}
		if inst.PaymentDate != nil {
			values = append(values, inst.PaymentDate.Format("2006-01-02"))
		} else {
			values = append(values, "")
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recebiveis_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
