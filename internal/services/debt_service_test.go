package services

import (
	"context"
	"testing"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type debtServiceFixture struct {
	svc         *DebtService
	clientRepo  *mockClientRepo
	projectRepo *mockProjectRepo
	debtRepo    *mockDebtRepo
	installRepo *mockInstallmentRepo
	reportRepo  *mockReportRepo
}

func newDebtServiceFixture() *debtServiceFixture {
	clientRepo := newMockClientRepo()
	projectRepo := newMockProjectRepo()
	installRepo := newMockInstallmentRepo()
	debtRepo := newMockDebtRepo(installRepo, clientRepo)
	installRepo.debtRepo = debtRepo
	installRepo.clientRepo = clientRepo
	reportRepo := newMockReportRepo()

	svc := NewDebtService(debtRepo, installRepo, clientRepo, projectRepo,
		NewScheduleService(), reportRepo, NewAuditService(nil))

	return &debtServiceFixture{
		svc:         svc,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		debtRepo:    debtRepo,
		installRepo: installRepo,
		reportRepo:  reportRepo,
	}
}

func (f *debtServiceFixture) seedClient(t *testing.T, name string, active bool) uint {
	t.Helper()
	client := &models.Client{Name: name, Active: active}
	require.NoError(t, f.clientRepo.Create(context.Background(), client))
	if !active {
		require.NoError(t, f.clientRepo.Archive(context.Background(), client.ID))
	}
	return client.ID
}

func TestCreateDebtGeneratesInstallments(t *testing.T) {
	f := newDebtServiceFixture()
	clientID := f.seedClient(t, "Maria Silva", true)

	debt, err := f.svc.Create(context.Background(), &models.Debt{
		ClientID:         clientID,
		Description:      "Reforma cozinha",
		TotalAmount:      3000,
		InstallmentCount: 3,
		StartDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Frequency:        models.FrequencyMonthly,
	}, 1)

	require.NoError(t, err)
	require.Len(t, debt.Installments, 3)
	assert.NotEmpty(t, debt.GUID)

	expectedDates := []time.Time{
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	for i, inst := range debt.Installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, 1000.0, inst.Amount)
		assert.Equal(t, expectedDates[i], inst.DueDate)
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
	}

	assert.Contains(t, f.reportRepo.invalidated, "receivable")
}

func TestCreateDebtRejectsArchivedClient(t *testing.T) {
	f := newDebtServiceFixture()
	clientID := f.seedClient(t, "Arquivado", false)

	_, err := f.svc.Create(context.Background(), &models.Debt{
		ClientID:         clientID,
		Description:      "Venda terreno",
		TotalAmount:      1000,
		InstallmentCount: 2,
		StartDate:        time.Now(),
	}, 1)

	assert.ErrorIs(t, err, ErrInactiveRecord)
}

func TestCreateDebtRejectsUnknownClient(t *testing.T) {
	f := newDebtServiceFixture()

	_, err := f.svc.Create(context.Background(), &models.Debt{
		ClientID:         99,
		Description:      "Venda terreno",
		TotalAmount:      1000,
		InstallmentCount: 2,
		StartDate:        time.Now(),
	}, 1)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDebtValidatesBeforeInserting(t *testing.T) {
	f := newDebtServiceFixture()
	clientID := f.seedClient(t, "Maria Silva", true)

	_, err := f.svc.Create(context.Background(), &models.Debt{
		ClientID:         clientID,
		Description:      "Sem parcelas",
		TotalAmount:      1000,
		InstallmentCount: 0,
		StartDate:        time.Now(),
	}, 1)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.debtRepo.debts, "invalid debt must not be inserted")
}

func TestCreateDebtSurfacesInstallmentFailure(t *testing.T) {
	f := newDebtServiceFixture()
	clientID := f.seedClient(t, "Maria Silva", true)
	f.installRepo.failCreate = true

	_, err := f.svc.Create(context.Background(), &models.Debt{
		ClientID:         clientID,
		Description:      "Reforma",
		TotalAmount:      900,
		InstallmentCount: 3,
		StartDate:        time.Now(),
	}, 1)

	require.ErrorIs(t, err, ErrScheduleMismatch)

	// The debt row survives with zero installments; consistency check flags it
	require.Len(t, f.debtRepo.debts, 1)
	ok, err := f.svc.CheckConsistency(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckConsistencyPasses(t *testing.T) {
	f := newDebtServiceFixture()
	clientID := f.seedClient(t, "Maria Silva", true)

	debt, err := f.svc.Create(context.Background(), &models.Debt{
		ClientID:         clientID,
		Description:      "Reforma",
		TotalAmount:      900,
		InstallmentCount: 3,
		StartDate:        time.Now(),
	}, 1)
	require.NoError(t, err)

	ok, err := f.svc.CheckConsistency(context.Background(), debt.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDebtEndToEndPaymentFlow(t *testing.T) {
	f := newDebtServiceFixture()
	clientID := f.seedClient(t, "Maria Silva", true)

	debt, err := f.svc.Create(context.Background(), &models.Debt{
		ClientID:         clientID,
		Description:      "Reforma cozinha",
		TotalAmount:      3000,
		InstallmentCount: 3,
		StartDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Frequency:        models.FrequencyMonthly,
	}, 1)
	require.NoError(t, err)

	instSvc := NewInstallmentService(f.installRepo, f.reportRepo, nil, NewAuditService(nil), &config.Config{})

	paymentDate := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	paid, err := instSvc.RecordPayment(context.Background(), debt.Installments[0].ID, paymentDate, nil, nil, 1)
	require.NoError(t, err)

	assert.Equal(t, models.InstallmentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, paymentDate, *paid.PaymentDate)

	// Receipt carries the amount in BRL and the client name
	receipt, err := InstallmentReceiptData(paid)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", receipt.PayerName)
	assert.Equal(t, "R$ 1.000,00", receipt.Lines()[1][1])

	// Paying the same installment again is rejected
	_, err = instSvc.RecordPayment(context.Background(), paid.ID, paymentDate, nil, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}
