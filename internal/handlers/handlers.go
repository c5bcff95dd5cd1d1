package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rogeriosouza/construtora-api/internal/jobs"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/internal/services"
	"github.com/rogeriosouza/construtora-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Client      *ClientHandler
	Supplier    *SupplierHandler
	Broker      *BrokerHandler
	Project     *ProjectHandler
	Debt        *DebtHandler
	Installment *InstallmentHandler
	Payable     *PayableHandler
	Commission  *CommissionHandler
	Report      *ReportHandler
	Audit       *AuditHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth),
		Client:      NewClientHandler(svcs.Client),
		Supplier:    NewSupplierHandler(svcs.Supplier),
		Broker:      NewBrokerHandler(svcs.Broker),
		Project:     NewProjectHandler(svcs.Project),
		Debt:        NewDebtHandler(svcs.Debt),
		Installment: NewInstallmentHandler(svcs.Installment, svcs.Receipt, store),
		Payable:     NewPayableHandler(svcs.Payable, store),
		Commission:  NewCommissionHandler(svcs.Commission, svcs.Receipt, store),
		Report:      NewReportHandler(svcs.Report, svcs.Export),
		Audit:       NewAuditHandler(svcs.Audit),
		Job:         NewJobHandler(worker),
	}
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInactiveRecord),
		errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrScheduleMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseID reads a numeric path param, returning 0 when absent or invalid
func parseID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id)
}

// parseListQuery builds a ListQuery from the standard pagination and
// search query params (page, per_page, search_term, sort)
func parseListQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	// Sort parameter uses the field-direction format (e.g. due_date-desc)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	return query
}

// paginationPayload is the shared pagination envelope for list endpoints
func paginationPayload(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "construtora-api",
		"version": "1.0.0",
	})
}

type JobHandler struct {
	worker *jobs.Worker
}

func NewJobHandler(worker *jobs.Worker) *JobHandler {
	return &JobHandler{worker: worker}
}

// @Summary Worker Status
// @Description Background worker statistics (Admin)
// @Tags Jobs
// @Produce json
// @Success 200 {object} jobs.WorkerStats
// @Security BearerAuth
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.worker.GetStats())
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Paginated audit trail (Admin)
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audit_logs [get]
func (h *AuditHandler) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	logs, total, err := h.auditService.List(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audit_logs": logs,
		"pagination": gin.H{"page": page, "per_page": perPage, "total": total},
	})
}
