package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/pkg/currency"
)

// ReceiptService renders payment receipts as PDF
type ReceiptService struct {
	companyName string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(companyName string) *ReceiptService {
	if companyName == "" {
		companyName = "Construtora"
	}
	return &ReceiptService{companyName: companyName}
}

// ReceiptData holds the fields printed on a receipt
type ReceiptData struct {
	Title       string
	PayerName   string
	Amount      float64
	Reference   string
	PaymentDate time.Time
}

// Lines returns the receipt body as label/value pairs, in print order
func (d *ReceiptData) Lines() [][2]string {
	return [][2]string{
		{"Recebemos de:", d.PayerName},
		{"O valor de:", currency.Format(d.Amount)},
		{"Referente a:", d.Reference},
		{"Data do Pagamento:", d.PaymentDate.Format("02/01/2006")},
	}
}

// InstallmentReceiptData builds the receipt content for a paid
// installment. The installment must carry its debt and client.
func InstallmentReceiptData(installment *models.Installment) (*ReceiptData, error) {
	if !installment.IsPaid() || installment.PaymentDate == nil {
		return nil, fmt.Errorf("%w: recibo disponível apenas para parcelas pagas", ErrInvalidState)
	}

	return &ReceiptData{
		Title:       "RECIBO DE PAGAMENTO",
		PayerName:   installment.Debt.Client.Name,
		Amount:      installment.Amount,
		Reference:   fmt.Sprintf("Parcela %d - %s", installment.Number, installment.Debt.Description),
		PaymentDate: *installment.PaymentDate,
	}, nil
}

// CommissionReceiptData builds the receipt content for a paid commission
func CommissionReceiptData(commission *models.Commission) (*ReceiptData, error) {
	if !commission.IsPaid() || commission.PaymentDate == nil {
		return nil, fmt.Errorf("%w: recibo disponível apenas para comissões pagas", ErrInvalidState)
	}

	return &ReceiptData{
		Title:       "RECIBO DE PAGAMENTO DE COMISSÃO",
		PayerName:   commission.Broker.Name,
		Amount:      commission.Amount,
		Reference:   commission.SaleDescription,
		PaymentDate: *commission.PaymentDate,
	}, nil
}

// Generate renders a receipt to PDF
func (s *ReceiptService) Generate(ctx context.Context, data *ReceiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(data.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(s.companyName), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	for _, line := range data.Lines() {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(55, 10, tr(line[0]))
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 10, tr(line[1]))
		pdf.Ln(10)
	}

	pdf.Ln(25)
	pdf.CellFormat(0, 0, "", "T", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Assinatura"), "", 1, "C", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recibo_%s.pdf", data.PaymentDate.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
