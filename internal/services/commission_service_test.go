package services

import (
	"context"
	"testing"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockBrokerRepo is an in-memory ArchivableRepository[models.Broker]
type mockBrokerRepo struct {
	brokers map[uint]*models.Broker
	nextID  uint
}

func newMockBrokerRepo() *mockBrokerRepo {
	return &mockBrokerRepo{brokers: make(map[uint]*models.Broker), nextID: 1}
}

func (m *mockBrokerRepo) FindByID(ctx context.Context, id uint) (*models.Broker, error) {
	if b, ok := m.brokers[id]; ok {
		copy := *b
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBrokerRepo) Create(ctx context.Context, record *models.Broker) error {
	record.ID = m.nextID
	m.nextID++
	copy := *record
	m.brokers[record.ID] = &copy
	return nil
}

func (m *mockBrokerRepo) Update(ctx context.Context, record *models.Broker) error {
	copy := *record
	m.brokers[record.ID] = &copy
	return nil
}

func (m *mockBrokerRepo) List(ctx context.Context, query *repository.ListQuery, active bool) ([]models.Broker, int64, error) {
	var out []models.Broker
	for _, b := range m.brokers {
		if b.Active == active {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockBrokerRepo) Archive(ctx context.Context, id uint) error {
	b, ok := m.brokers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Active = false
	return nil
}

func (m *mockBrokerRepo) Reactivate(ctx context.Context, id uint) error {
	b, ok := m.brokers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Active = true
	return nil
}

// mockCommissionRepo is an in-memory CommissionRepository
type mockCommissionRepo struct {
	commissions map[uint]*models.Commission
	nextID      uint
	brokerRepo  *mockBrokerRepo
}

func newMockCommissionRepo(brokerRepo *mockBrokerRepo) *mockCommissionRepo {
	return &mockCommissionRepo{commissions: make(map[uint]*models.Commission), nextID: 1, brokerRepo: brokerRepo}
}

func (m *mockCommissionRepo) Create(ctx context.Context, commission *models.Commission) error {
	commission.ID = m.nextID
	m.nextID++
	copy := *commission
	m.commissions[commission.ID] = &copy
	return nil
}

func (m *mockCommissionRepo) FindByID(ctx context.Context, id uint) (*models.Commission, error) {
	c, ok := m.commissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *c
	if b, err := m.brokerRepo.FindByID(ctx, c.BrokerID); err == nil {
		copy.Broker = *b
	}
	return &copy, nil
}

func (m *mockCommissionRepo) Update(ctx context.Context, commission *models.Commission) error {
	copy := *commission
	copy.Broker = models.Broker{}
	m.commissions[commission.ID] = &copy
	return nil
}

func (m *mockCommissionRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Commission, int64, error) {
	var out []models.Commission
	for _, c := range m.commissions {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *mockCommissionRepo) FindAll(ctx context.Context) ([]models.Commission, error) {
	out, _, err := m.List(ctx, nil)
	return out, err
}

func newCommissionFixture() (*CommissionService, *mockBrokerRepo, *mockCommissionRepo) {
	brokerRepo := newMockBrokerRepo()
	commissionRepo := newMockCommissionRepo(brokerRepo)
	svc := NewCommissionService(commissionRepo, brokerRepo, newMockReportRepo(), nil, NewAuditService(nil), &config.Config{})
	return svc, brokerRepo, commissionRepo
}

func TestCreateCommissionComputesAmount(t *testing.T) {
	svc, brokerRepo, _ := newCommissionFixture()
	broker := &models.Broker{Name: "Carlos Souza", Active: true}
	require.NoError(t, brokerRepo.Create(context.Background(), broker))

	commission, err := svc.Create(context.Background(), &models.Commission{
		BrokerID:        broker.ID,
		SaleDescription: "Venda apartamento 302",
		SaleAmount:      200000,
		Percentage:      2.5,
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, 5000.0, commission.Amount)
	assert.Equal(t, models.InstallmentStatusPending, commission.Status)
	assert.Equal(t, "Carlos Souza", commission.Broker.Name)
}

func TestCreateCommissionRejectsArchivedBroker(t *testing.T) {
	svc, brokerRepo, _ := newCommissionFixture()
	broker := &models.Broker{Name: "Inativo", Active: true}
	require.NoError(t, brokerRepo.Create(context.Background(), broker))
	require.NoError(t, brokerRepo.Archive(context.Background(), broker.ID))

	_, err := svc.Create(context.Background(), &models.Commission{
		BrokerID:        broker.ID,
		SaleDescription: "Venda",
		SaleAmount:      1000,
		Percentage:      5,
	}, 1)

	assert.ErrorIs(t, err, ErrInactiveRecord)
}

func TestCreateCommissionValidatesPercentage(t *testing.T) {
	svc, brokerRepo, _ := newCommissionFixture()
	broker := &models.Broker{Name: "Carlos", Active: true}
	require.NoError(t, brokerRepo.Create(context.Background(), broker))

	for _, pct := range []float64{0, -1, 101} {
		_, err := svc.Create(context.Background(), &models.Commission{
			BrokerID:        broker.ID,
			SaleDescription: "Venda",
			SaleAmount:      1000,
			Percentage:      pct,
		}, 1)
		assert.ErrorIs(t, err, ErrValidation, "percentage %.1f", pct)
	}
}

func TestCommissionRecordPayment(t *testing.T) {
	svc, brokerRepo, _ := newCommissionFixture()
	broker := &models.Broker{Name: "Carlos", Active: true}
	require.NoError(t, brokerRepo.Create(context.Background(), broker))

	commission, err := svc.Create(context.Background(), &models.Commission{
		BrokerID:        broker.ID,
		SaleDescription: "Venda casa 12",
		SaleAmount:      150000,
		Percentage:      3,
	}, 1)
	require.NoError(t, err)

	paymentDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	paid, err := svc.RecordPayment(context.Background(), commission.ID, paymentDate, nil, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)

	// Paying twice is rejected
	_, err = svc.RecordPayment(context.Background(), commission.ID, paymentDate, nil, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}
