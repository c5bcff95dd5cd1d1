package services

import (
	"fmt"
	"math"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
)

// ScheduleService generates installment schedules for debts
type ScheduleService struct{}

// NewScheduleService creates a new schedule service
func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// GenerateSchedule creates the installments for a debt. Amounts are
// computed in cents: every installment gets the floored base amount and
// the last one absorbs the remainder, so the sum always equals the
// debt total.
func (s *ScheduleService) GenerateSchedule(debt *models.Debt) ([]models.Installment, error) {
	if debt.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: valor total deve ser maior que zero", ErrValidation)
	}
	if debt.InstallmentCount < 1 {
		return nil, fmt.Errorf("%w: número de parcelas deve ser pelo menos 1", ErrValidation)
	}
	if !models.ValidFrequency(debt.Frequency) {
		return nil, fmt.Errorf("%w: frequência desconhecida %q", ErrValidation, debt.Frequency)
	}

	totalCents := int64(math.Round(debt.TotalAmount * 100))
	baseCents := totalCents / int64(debt.InstallmentCount)

	installments := make([]models.Installment, 0, debt.InstallmentCount)
	for i := 0; i < debt.InstallmentCount; i++ {
		amountCents := baseCents
		if i == debt.InstallmentCount-1 {
			amountCents = totalCents - baseCents*int64(debt.InstallmentCount-1)
		}

		installments = append(installments, models.Installment{
			DebtID:  debt.ID,
			Number:  i + 1,
			Amount:  float64(amountCents) / 100,
			DueDate: dueDate(debt.StartDate, debt.Frequency, i),
			Status:  models.InstallmentStatusPending,
		})
	}

	return installments, nil
}

// dueDate returns the due date of the i-th installment (zero based),
// starting at the debt's start date
func dueDate(start time.Time, frequency string, i int) time.Time {
	switch frequency {
	case models.FrequencyBiweekly:
		return start.AddDate(0, 0, 14*i)
	case models.FrequencyWeekly:
		return start.AddDate(0, 0, 7*i)
	default:
		return start.AddDate(0, i, 0)
	}
}
