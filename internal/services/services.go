package services

import (
	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth        *AuthService
	Client      *ClientService
	Supplier    *SupplierService
	Broker      *BrokerService
	Project     *ProjectService
	Debt        *DebtService
	Installment *InstallmentService
	Payable     *PayableService
	Commission  *CommissionService
	Receipt     *ReceiptService
	Report      *ReportService
	Export      *ExportService
	Email       *EmailService
	Audit       *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, store *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db)
	scheduleSvc := NewScheduleService()

	return &Services{
		Auth:        NewAuthService(repos.User, repos.RefreshToken, cfg),
		Client:      NewClientService(repos.Client, auditSvc),
		Supplier:    NewSupplierService(repos.Supplier, auditSvc),
		Broker:      NewBrokerService(repos.Broker, auditSvc),
		Project:     NewProjectService(repos.Project, auditSvc),
		Debt:        NewDebtService(repos.Debt, repos.Installment, repos.Client, repos.Project, scheduleSvc, repos.Report, auditSvc),
		Installment: NewInstallmentService(repos.Installment, repos.Report, store, auditSvc, cfg),
		Payable:     NewPayableService(repos.Payable, repos.Supplier, repos.Project, repos.Report, store, auditSvc, cfg),
		Commission:  NewCommissionService(repos.Commission, repos.Broker, repos.Report, store, auditSvc, cfg),
		Receipt:     NewReceiptService(cfg.CompanyName),
		Report:      NewReportService(repos.Report, repos.Debt, repos.Installment, repos.Payable, repos.Client, cfg),
		Export:      NewExportService(repos.Report, repos.Installment, repos.Commission),
		Email:       NewEmailService(cfg),
		Audit:       auditSvc,
	}
}
