package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func newInstallment(status string) *models.Installment {
	return &models.Installment{
		ID:      1,
		DebtID:  1,
		Number:  1,
		Amount:  500,
		DueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:  status,
	}
}

func TestPayFromPending(t *testing.T) {
	inst := newInstallment(models.InstallmentStatusPending)
	sm := NewInstallmentFSM(inst)

	err := sm.Pay(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, inst.Status)
}

func TestPayFromOverdue(t *testing.T) {
	inst := newInstallment(models.InstallmentStatusOverdue)
	sm := NewInstallmentFSM(inst)

	err := sm.Pay(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, inst.Status)
}

func TestMarkOverdueFromPending(t *testing.T) {
	inst := newInstallment(models.InstallmentStatusPending)
	sm := NewInstallmentFSM(inst)

	err := sm.MarkOverdue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusOverdue, inst.Status)
}

func TestPaidIsTerminal(t *testing.T) {
	inst := newInstallment(models.InstallmentStatusPaid)
	sm := NewInstallmentFSM(inst)

	assert.Error(t, sm.Pay(context.Background()))
	assert.Error(t, sm.MarkOverdue(context.Background()))
	assert.Equal(t, models.InstallmentStatusPaid, inst.Status)
}

func TestMarkOverdueNotAllowedFromOverdue(t *testing.T) {
	inst := newInstallment(models.InstallmentStatusOverdue)
	sm := NewInstallmentFSM(inst)

	err := sm.MarkOverdue(context.Background())

	assert.Error(t, err)
	assert.Equal(t, models.InstallmentStatusOverdue, inst.Status)
}

func TestCan(t *testing.T) {
	pending := NewInstallmentFSM(newInstallment(models.InstallmentStatusPending))
	assert.True(t, pending.Can("pay"))
	assert.True(t, pending.Can("mark_overdue"))

	paid := NewInstallmentFSM(newInstallment(models.InstallmentStatusPaid))
	assert.False(t, paid.Can("pay"))
	assert.False(t, paid.Can("mark_overdue"))
}
