package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rogeriosouza/construtora-api/internal/models"
)

// InstallmentFSM wraps an installment with its payment state machine.
// Paid is terminal: no event leads out of it.
type InstallmentFSM struct {
	installment *models.Installment
	fsm         *fsm.FSM
}

// NewInstallmentFSM creates a new installment state machine
func NewInstallmentFSM(installment *models.Installment) *InstallmentFSM {
	ifsm := &InstallmentFSM{
		installment: installment,
	}

	ifsm.fsm = fsm.NewFSM(
		installment.Status,
		fsm.Events{
			// pending/overdue → paid
			{Name: "pay", Src: []string{models.InstallmentStatusPending, models.InstallmentStatusOverdue}, Dst: models.InstallmentStatusPaid},

			// pending → overdue (sweep)
			{Name: "mark_overdue", Src: []string{models.InstallmentStatusPending}, Dst: models.InstallmentStatusOverdue},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// Pay transitions the installment to paid state
func (i *InstallmentFSM) Pay(ctx context.Context) error {
	if !i.installment.MayPay() {
		return fmt.Errorf("installment cannot be paid in current state: %s", i.installment.Status)
	}

	if err := i.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to pay installment: %w", err)
	}

	i.installment.Status = i.fsm.Current()
	return nil
}

// MarkOverdue transitions the installment to overdue state
func (i *InstallmentFSM) MarkOverdue(ctx context.Context) error {
	if !i.installment.MayMarkOverdue() {
		return fmt.Errorf("installment cannot be marked overdue in current state: %s", i.installment.Status)
	}

	if err := i.fsm.Event(ctx, "mark_overdue"); err != nil {
		return fmt.Errorf("failed to mark installment overdue: %w", err)
	}

	i.installment.Status = i.fsm.Current()
	return nil
}

// Current returns the current state
func (i *InstallmentFSM) Current() string {
	return i.fsm.Current()
}

// Can checks if a transition is possible
func (i *InstallmentFSM) Can(event string) bool {
	return i.fsm.Can(event)
}
