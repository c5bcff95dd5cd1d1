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

func newInstallmentFixture() (*InstallmentService, *mockInstallmentRepo, *mockReportRepo) {
	installRepo := newMockInstallmentRepo()
	reportRepo := newMockReportRepo()
	svc := NewInstallmentService(installRepo, reportRepo, nil, NewAuditService(nil), &config.Config{})
	return svc, installRepo, reportRepo
}

func seedInstallment(repo *mockInstallmentRepo, status string, dueDate time.Time) uint {
	id := repo.nextID
	repo.nextID++
	repo.installments[id] = &models.Installment{
		ID:      id,
		DebtID:  1,
		Number:  int(id),
		Amount:  250,
		DueDate: dueDate,
		Status:  status,
	}
	return id
}

func TestSweepOverdueMarksOnlyPastPending(t *testing.T) {
	svc, repo, reportRepo := newInstallmentFixture()

	past := time.Now().AddDate(0, 0, -5)
	future := time.Now().AddDate(0, 0, 5)

	pastPending := seedInstallment(repo, models.InstallmentStatusPending, past)
	futurePending := seedInstallment(repo, models.InstallmentStatusPending, future)
	pastPaid := seedInstallment(repo, models.InstallmentStatusPaid, past)
	alreadyOverdue := seedInstallment(repo, models.InstallmentStatusOverdue, past)

	updated, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	assert.Equal(t, models.InstallmentStatusOverdue, repo.installments[pastPending].Status)
	assert.Equal(t, models.InstallmentStatusPending, repo.installments[futurePending].Status)
	assert.Equal(t, models.InstallmentStatusPaid, repo.installments[pastPaid].Status)
	assert.Equal(t, models.InstallmentStatusOverdue, repo.installments[alreadyOverdue].Status)

	assert.Contains(t, reportRepo.invalidated, "receivable")
}

func TestSweepOverdueIsIdempotent(t *testing.T) {
	svc, repo, _ := newInstallmentFixture()

	seedInstallment(repo, models.InstallmentStatusPending, time.Now().AddDate(0, 0, -1))

	first, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), second)
}

func TestRecordPaymentFromOverdue(t *testing.T) {
	svc, repo, _ := newInstallmentFixture()

	id := seedInstallment(repo, models.InstallmentStatusOverdue, time.Now().AddDate(0, 0, -10))

	paymentDate := time.Now()
	paid, err := svc.RecordPayment(context.Background(), id, paymentDate, nil, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, paid.Status)
}

func TestRecordPaymentRejectsPaid(t *testing.T) {
	svc, repo, _ := newInstallmentFixture()

	id := seedInstallment(repo, models.InstallmentStatusPaid, time.Now())

	_, err := svc.RecordPayment(context.Background(), id, time.Now(), nil, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRecordPaymentUnknownInstallment(t *testing.T) {
	svc, _, _ := newInstallmentFixture()

	_, err := svc.RecordPayment(context.Background(), 99, time.Now(), nil, nil, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProofRequiresPaid(t *testing.T) {
	svc, repo, _ := newInstallmentFixture()

	id := seedInstallment(repo, models.InstallmentStatusPending, time.Now())

	_, err := svc.UpdateProof(context.Background(), id, nil, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}
