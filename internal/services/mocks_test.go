package services

import (
	"context"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"gorm.io/gorm"
)

// mockClientRepo is an in-memory ArchivableRepository[models.Client]
type mockClientRepo struct {
	clients map[uint]*models.Client
	nextID  uint
}

func newMockClientRepo() *mockClientRepo {
	return &mockClientRepo{clients: make(map[uint]*models.Client), nextID: 1}
}

func (m *mockClientRepo) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	if c, ok := m.clients[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) Create(ctx context.Context, record *models.Client) error {
	record.ID = m.nextID
	m.nextID++
	copy := *record
	m.clients[record.ID] = &copy
	return nil
}

func (m *mockClientRepo) Update(ctx context.Context, record *models.Client) error {
	copy := *record
	m.clients[record.ID] = &copy
	return nil
}

func (m *mockClientRepo) List(ctx context.Context, query *repository.ListQuery, active bool) ([]models.Client, int64, error) {
	var out []models.Client
	for _, c := range m.clients {
		if c.Active == active {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockClientRepo) Archive(ctx context.Context, id uint) error {
	c, ok := m.clients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Active = false
	return nil
}

func (m *mockClientRepo) Reactivate(ctx context.Context, id uint) error {
	c, ok := m.clients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Active = true
	return nil
}

// mockDebtRepo is an in-memory DebtRepository
type mockDebtRepo struct {
	debts       map[uint]*models.Debt
	nextID      uint
	installRepo *mockInstallmentRepo
	clientRepo  *mockClientRepo
}

func newMockDebtRepo(installRepo *mockInstallmentRepo, clientRepo *mockClientRepo) *mockDebtRepo {
	return &mockDebtRepo{
		debts:       make(map[uint]*models.Debt),
		nextID:      1,
		installRepo: installRepo,
		clientRepo:  clientRepo,
	}
}

func (m *mockDebtRepo) Create(ctx context.Context, debt *models.Debt) error {
	debt.ID = m.nextID
	m.nextID++
	copy := *debt
	m.debts[debt.ID] = &copy
	return nil
}

func (m *mockDebtRepo) FindByID(ctx context.Context, id uint) (*models.Debt, error) {
	d, ok := m.debts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *d
	if m.clientRepo != nil {
		if c, err := m.clientRepo.FindByID(ctx, d.ClientID); err == nil {
			copy.Client = *c
		}
	}
	if m.installRepo != nil {
		copy.Installments = m.installRepo.byDebt(id)
	}
	return &copy, nil
}

func (m *mockDebtRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Debt, int64, error) {
	var out []models.Debt
	for _, d := range m.debts {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (m *mockDebtRepo) ListByClient(ctx context.Context, clientID uint) ([]models.Debt, error) {
	var out []models.Debt
	for _, d := range m.debts {
		if d.ClientID == clientID {
			copy := *d
			if m.installRepo != nil {
				copy.Installments = m.installRepo.byDebt(d.ID)
			}
			out = append(out, copy)
		}
	}
	return out, nil
}

func (m *mockDebtRepo) Delete(ctx context.Context, id uint) error {
	delete(m.debts, id)
	return nil
}

// mockInstallmentRepo is an in-memory InstallmentRepository
type mockInstallmentRepo struct {
	installments map[uint]*models.Installment
	nextID       uint
	failCreate   bool
	debtRepo     *mockDebtRepo
	clientRepo   *mockClientRepo
}

func newMockInstallmentRepo() *mockInstallmentRepo {
	return &mockInstallmentRepo{installments: make(map[uint]*models.Installment), nextID: 1}
}

func (m *mockInstallmentRepo) byDebt(debtID uint) []models.Installment {
	var out []models.Installment
	for _, inst := range m.installments {
		if inst.DebtID == debtID {
			out = append(out, *inst)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Number < out[j-1].Number; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (m *mockInstallmentRepo) CreateBatch(ctx context.Context, installments []models.Installment) error {
	if m.failCreate {
		return gorm.ErrInvalidData
	}
	for i := range installments {
		installments[i].ID = m.nextID
		m.nextID++
		copy := installments[i]
		m.installments[copy.ID] = &copy
	}
	return nil
}

func (m *mockInstallmentRepo) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	inst, ok := m.installments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *inst
	if m.debtRepo != nil {
		if d, ok := m.debtRepo.debts[inst.DebtID]; ok {
			copy.Debt = *d
			if m.clientRepo != nil {
				if c, err := m.clientRepo.FindByID(ctx, d.ClientID); err == nil {
					copy.Debt.Client = *c
				}
			}
		}
	}
	return &copy, nil
}

func (m *mockInstallmentRepo) Update(ctx context.Context, installment *models.Installment) error {
	copy := *installment
	copy.Debt = models.Debt{}
	m.installments[installment.ID] = &copy
	return nil
}

func (m *mockInstallmentRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
	var out []models.Installment
	for _, inst := range m.installments {
		out = append(out, *inst)
	}
	return out, int64(len(out)), nil
}

func (m *mockInstallmentRepo) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	var updated int64
	for _, inst := range m.installments {
		if inst.Status == models.InstallmentStatusPending && inst.DueDate.Before(before) {
			inst.Status = models.InstallmentStatusOverdue
			updated++
		}
	}
	return updated, nil
}

func (m *mockInstallmentRepo) FindOverdue(ctx context.Context) ([]models.Installment, error) {
	var out []models.Installment
	for _, inst := range m.installments {
		if inst.Status == models.InstallmentStatusOverdue {
			out = append(out, *inst)
		}
	}
	return out, nil
}

func (m *mockInstallmentRepo) FindDueBetween(ctx context.Context, from, to time.Time) ([]models.Installment, error) {
	var out []models.Installment
	for _, inst := range m.installments {
		if inst.Status == models.InstallmentStatusPaid {
			continue
		}
		if !inst.DueDate.Before(from) && inst.DueDate.Before(to) {
			out = append(out, *inst)
		}
	}
	return out, nil
}

func (m *mockInstallmentRepo) CountByDebt(ctx context.Context, debtID uint) (int64, error) {
	return int64(len(m.byDebt(debtID))), nil
}

// mockProjectRepo is an in-memory ProjectRepository
type mockProjectRepo struct {
	projects map[uint]*models.Project
	nextID   uint
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[uint]*models.Project), nextID: 1}
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	if p, ok := m.projects[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) Create(ctx context.Context, record *models.Project) error {
	record.ID = m.nextID
	m.nextID++
	copy := *record
	m.projects[record.ID] = &copy
	return nil
}

func (m *mockProjectRepo) Update(ctx context.Context, record *models.Project) error {
	copy := *record
	m.projects[record.ID] = &copy
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context, query *repository.ListQuery, active bool) ([]models.Project, int64, error) {
	var out []models.Project
	for _, p := range m.projects {
		if p.Active == active {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockProjectRepo) Archive(ctx context.Context, id uint) error {
	p, ok := m.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

func (m *mockProjectRepo) Reactivate(ctx context.Context, id uint) error {
	p, ok := m.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = true
	return nil
}

func (m *mockProjectRepo) FindWithTotals(ctx context.Context, id uint) (*models.Project, error) {
	return m.FindByID(ctx, id)
}

func (m *mockProjectRepo) ListByStatus(ctx context.Context, status string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range m.projects {
		if p.Active && p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

// mockReportRepo records cache invalidations and serves no aggregates
type mockReportRepo struct {
	invalidated []string
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{}
}

func (m *mockReportRepo) GetCache(ctx context.Context, key string) (*models.ReportCache, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepo) SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	return nil
}

func (m *mockReportRepo) InvalidateCache(ctx context.Context, keyPrefix string) error {
	m.invalidated = append(m.invalidated, keyPrefix)
	return nil
}

func (m *mockReportRepo) CleanExpiredCache(ctx context.Context) error { return nil }

func (m *mockReportRepo) OutstandingReceivable(ctx context.Context) (float64, error) { return 0, nil }
func (m *mockReportRepo) OverdueReceivable(ctx context.Context) (float64, error)    { return 0, nil }
func (m *mockReportRepo) ReceivedBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return 0, nil
}
func (m *mockReportRepo) OutstandingPayable(ctx context.Context) (float64, error) { return 0, nil }
func (m *mockReportRepo) OverduePayable(ctx context.Context) (float64, error)     { return 0, nil }
func (m *mockReportRepo) PaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return 0, nil
}
func (m *mockReportRepo) MonthlyCashFlow(ctx context.Context, from, to time.Time) ([]models.CashFlowPoint, error) {
	return nil, nil
}
func (m *mockReportRepo) AllReceivables(ctx context.Context) ([]models.Installment, error) {
	return nil, nil
}
