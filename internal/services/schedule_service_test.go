package services

import (
	"math"
	"testing"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDebt(total float64, count int, frequency string) *models.Debt {
	return &models.Debt{
		ID:               1,
		ClientID:         1,
		Description:      "Casa Alphaville",
		TotalAmount:      total,
		InstallmentCount: count,
		StartDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Frequency:        frequency,
	}
}

func TestGenerateScheduleEvenSplit(t *testing.T) {
	svc := NewScheduleService()

	installments, err := svc.GenerateSchedule(newTestDebt(3000, 3, models.FrequencyMonthly))
	require.NoError(t, err)
	require.Len(t, installments, 3)

	for i, inst := range installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, 1000.0, inst.Amount)
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
	}

	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
}

func TestGenerateScheduleLastAbsorbsRemainder(t *testing.T) {
	svc := NewScheduleService()

	installments, err := svc.GenerateSchedule(newTestDebt(1000, 3, models.FrequencyMonthly))
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, 333.33, installments[0].Amount)
	assert.Equal(t, 333.33, installments[1].Amount)
	assert.Equal(t, 333.34, installments[2].Amount)
}

func TestGenerateScheduleSumMatchesTotal(t *testing.T) {
	svc := NewScheduleService()

	cases := []struct {
		total float64
		count int
	}{
		{1000, 3},
		{999.99, 7},
		{0.01, 1},
		{10, 3},
		{123456.78, 12},
		{100, 6},
	}

	for _, tc := range cases {
		installments, err := svc.GenerateSchedule(newTestDebt(tc.total, tc.count, models.FrequencyMonthly))
		require.NoError(t, err)
		require.Len(t, installments, tc.count)

		var sumCents int64
		for _, inst := range installments {
			sumCents += int64(math.Round(inst.Amount * 100))
		}
		assert.Equal(t, int64(math.Round(tc.total*100)), sumCents,
			"total %.2f em %d parcelas", tc.total, tc.count)
	}
}

func TestGenerateScheduleFrequencies(t *testing.T) {
	svc := NewScheduleService()

	biweekly, err := svc.GenerateSchedule(newTestDebt(500, 2, models.FrequencyBiweekly))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC), biweekly[1].DueDate)

	weekly, err := svc.GenerateSchedule(newTestDebt(500, 3, models.FrequencyWeekly))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), weekly[1].DueDate)
	assert.Equal(t, time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC), weekly[2].DueDate)
}

func TestGenerateScheduleSingleInstallment(t *testing.T) {
	svc := NewScheduleService()

	installments, err := svc.GenerateSchedule(newTestDebt(1234.56, 1, models.FrequencyMonthly))
	require.NoError(t, err)
	require.Len(t, installments, 1)
	assert.Equal(t, 1234.56, installments[0].Amount)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
}

func TestGenerateScheduleValidation(t *testing.T) {
	svc := NewScheduleService()

	_, err := svc.GenerateSchedule(newTestDebt(0, 3, models.FrequencyMonthly))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GenerateSchedule(newTestDebt(-10, 3, models.FrequencyMonthly))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GenerateSchedule(newTestDebt(100, 0, models.FrequencyMonthly))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GenerateSchedule(newTestDebt(100, 2, "daily"))
	assert.ErrorIs(t, err, ErrValidation)
}
