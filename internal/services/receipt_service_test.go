package services

import (
	"context"
	"testing"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidInstallment() *models.Installment {
	paidAt := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	return &models.Installment{
		ID:          1,
		DebtID:      1,
		Number:      1,
		Amount:      1000,
		DueDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:      models.InstallmentStatusPaid,
		PaymentDate: &paidAt,
		Debt: models.Debt{
			ID:          1,
			Description: "Reforma cozinha",
			Client:      models.Client{ID: 3, Name: "Maria Silva"},
		},
	}
}

func TestInstallmentReceiptData(t *testing.T) {
	data, err := InstallmentReceiptData(paidInstallment())
	require.NoError(t, err)

	assert.Equal(t, "RECIBO DE PAGAMENTO", data.Title)
	assert.Equal(t, "Maria Silva", data.PayerName)
	assert.Equal(t, "Parcela 1 - Reforma cozinha", data.Reference)

	lines := data.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, [2]string{"Recebemos de:", "Maria Silva"}, lines[0])
	assert.Equal(t, [2]string{"O valor de:", "R$ 1.000,00"}, lines[1])
	assert.Equal(t, [2]string{"Referente a:", "Parcela 1 - Reforma cozinha"}, lines[2])
	assert.Equal(t, [2]string{"Data do Pagamento:", "12/01/2024"}, lines[3])
}

func TestInstallmentReceiptRequiresPaid(t *testing.T) {
	inst := paidInstallment()
	inst.Status = models.InstallmentStatusPending
	inst.PaymentDate = nil

	_, err := InstallmentReceiptData(inst)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCommissionReceiptData(t *testing.T) {
	paidAt := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	commission := &models.Commission{
		ID:              2,
		BrokerID:        1,
		SaleDescription: "Venda apartamento 302",
		SaleAmount:      200000,
		Percentage:      2.5,
		Amount:          5000,
		Status:          models.InstallmentStatusPaid,
		PaymentDate:     &paidAt,
		Broker:          models.Broker{ID: 1, Name: "Carlos Souza"},
	}

	data, err := CommissionReceiptData(commission)
	require.NoError(t, err)

	assert.Equal(t, "RECIBO DE PAGAMENTO DE COMISSÃO", data.Title)
	assert.Equal(t, "Carlos Souza", data.PayerName)
	assert.Equal(t, "R$ 5.000,00", data.Lines()[1][1])
}

func TestCommissionReceiptRequiresPaid(t *testing.T) {
	commission := &models.Commission{Status: models.InstallmentStatusPending}
	_, err := CommissionReceiptData(commission)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGenerateProducesPDF(t *testing.T) {
	svc := NewReceiptService("Construtora Horizonte")

	data, err := InstallmentReceiptData(paidInstallment())
	require.NoError(t, err)

	pdfBytes, filename, err := svc.Generate(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, "recibo_2024-01-12.pdf", filename)
	assert.True(t, len(pdfBytes) > 500)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
