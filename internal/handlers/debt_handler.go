package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rogeriosouza/construtora-api/internal/middleware"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/services"
	"github.com/rogeriosouza/construtora-api/internal/storage"
)

type DebtHandler struct {
	debtService *services.DebtService
}

func NewDebtHandler(debtService *services.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// @Summary List Debts
// @Description Get a paginated list of receivable debts
// @Tags Debts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by client name or description"
// @Param client_id query int false "Filter by client"
// @Param project_id query int false "Filter by project"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /debts [get]
func (h *DebtHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["client_id"] = c.Query("client_id")
	query.Filters["project_id"] = c.Query("project_id")

	debts, total, err := h.debtService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.DebtResponse, 0, len(debts))
	for _, d := range debts {
		responses = append(responses, d.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"debts": responses, "pagination": paginationPayload(query, total)})
}

// @Summary Get Debt
// @Description Get a debt with its installment schedule
// @Tags Debts
// @Produce json
// @Param debt_id path int true "Debt ID"
// @Success 200 {object} models.DebtResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /debts/{debt_id} [get]
func (h *DebtHandler) Show(c *gin.Context) {
	debt, err := h.debtService.Get(c.Request.Context(), parseID(c, "debt_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Débito não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"debt": debt.ToResponse()})
}

type CreateDebtRequest struct {
	ClientID         uint    `json:"client_id" binding:"required"`
	ProjectID        *uint   `json:"project_id"`
	Description      string  `json:"description" binding:"required"`
	TotalAmount      float64 `json:"total_amount" binding:"required"`
	InstallmentCount int     `json:"installment_count" binding:"required"`
	StartDate        string  `json:"start_date" binding:"required"`
	Frequency        string  `json:"frequency"`
	PaymentMethod    string  `json:"payment_method"`
	Notes            *string `json:"notes"`
}

// @Summary Create Debt
// @Description Create a debt and generate its installment schedule
// @Tags Debts
// @Accept json
// @Produce json
// @Param request body CreateDebtRequest true "Debt Data"
// @Success 201 {object} models.DebtResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inicial inválida, use o formato AAAA-MM-DD"})
		return
	}

	debt := &models.Debt{
		ClientID:         req.ClientID,
		ProjectID:        req.ProjectID,
		Description:      req.Description,
		TotalAmount:      req.TotalAmount,
		InstallmentCount: req.InstallmentCount,
		StartDate:        startDate,
		Frequency:        req.Frequency,
		PaymentMethod:    req.PaymentMethod,
		Notes:            req.Notes,
	}

	created, err := h.debtService.Create(c.Request.Context(), debt, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debt": created.ToResponse()})
}

// @Summary Check Debt Consistency
// @Description Verifies the stored installments match the debt schedule (Admin)
// @Tags Debts
// @Produce json
// @Param debt_id path int true "Debt ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /debts/{debt_id}/consistency [get]
func (h *DebtHandler) Consistency(c *gin.Context) {
	id := parseID(c, "debt_id")
	ok, err := h.debtService.CheckConsistency(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debt_id": id, "consistent": ok})
}

type InstallmentHandler struct {
	installmentService *services.InstallmentService
	receiptService     *services.ReceiptService
	store              *storage.LocalStorage
}

func NewInstallmentHandler(installmentService *services.InstallmentService, receiptService *services.ReceiptService, store *storage.LocalStorage) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService, receiptService: receiptService, store: store}
}

// @Summary List Installments
// @Description Get a paginated list of installments
// @Tags Installments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status (pending, paid, overdue)"
// @Param client_id query int false "Filter by client"
// @Param debt_id query int false "Filter by debt"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /installments [get]
func (h *InstallmentHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["client_id"] = c.Query("client_id")
	query.Filters["debt_id"] = c.Query("debt_id")

	installments, total, err := h.installmentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.InstallmentResponse, 0, len(installments))
	for _, i := range installments {
		responses = append(responses, i.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"installments": responses, "pagination": paginationPayload(query, total)})
}

// @Summary Get Installment
// @Description Get an installment with its debt and client
// @Tags Installments
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Success 200 {object} models.InstallmentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id} [get]
func (h *InstallmentHandler) Show(c *gin.Context) {
	installment, err := h.installmentService.Get(c.Request.Context(), parseID(c, "installment_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcela não encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"installment": installment.ToResponse()})
}

// @Summary Record Installment Payment
// @Description Mark an installment as paid, optionally attaching a proof of payment
// @Tags Installments
// @Accept multipart/form-data
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Param payment_date formData string false "Payment date (YYYY-MM-DD, defaults to today)"
// @Param proof formData file false "Proof of payment (pdf, jpg, png)"
// @Success 200 {object} models.InstallmentResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id}/pay [post]
func (h *InstallmentHandler) Pay(c *gin.Context) {
	paymentDate, ok := parsePaymentDate(c)
	if !ok {
		return
	}

	file, header, ok := optionalFormFile(c, "proof")
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	installment, err := h.installmentService.RecordPayment(c.Request.Context(),
		parseID(c, "installment_id"), paymentDate, file, header, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installment": installment.ToResponse(), "message": "Pagamento registrado"})
}

// @Summary Update Installment Proof
// @Description Replace the proof of payment of a paid installment
// @Tags Installments
// @Accept multipart/form-data
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Param proof formData file true "Proof of payment (pdf, jpg, png)"
// @Success 200 {object} models.InstallmentResponse
// @Security BearerAuth
// @Router /installments/{installment_id}/proof [put]
func (h *InstallmentHandler) UpdateProof(c *gin.Context) {
	file, header, err := c.Request.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo de comprovante é obrigatório"})
		return
	}
	defer file.Close()

	if !validUpload(c, header) {
		return
	}

	installment, err := h.installmentService.UpdateProof(c.Request.Context(),
		parseID(c, "installment_id"), file, header, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installment": installment.ToResponse(), "message": "Comprovante atualizado"})
}

// @Summary Download Installment Receipt
// @Description Generate the payment receipt PDF for a paid installment
// @Tags Installments
// @Produce application/pdf
// @Param installment_id path int true "Installment ID"
// @Success 200 {file} file "receipt"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id}/receipt [get]
func (h *InstallmentHandler) Receipt(c *gin.Context) {
	installment, err := h.installmentService.Get(c.Request.Context(), parseID(c, "installment_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcela não encontrada"})
		return
	}

	data, err := services.InstallmentReceiptData(installment)
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, filename, err := h.receiptService.Generate(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// @Summary Download Installment Proof
// @Description Download the stored proof of payment
// @Tags Installments
// @Produce application/octet-stream
// @Param installment_id path int true "Installment ID"
// @Success 200 {file} file "proof"
// @Security BearerAuth
// @Router /installments/{installment_id}/proof [get]
func (h *InstallmentHandler) DownloadProof(c *gin.Context) {
	installment, err := h.installmentService.Get(c.Request.Context(), parseID(c, "installment_id"))
	if err != nil || installment.ProofPath == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comprovante não encontrado"})
		return
	}
	c.File(h.store.GetFullPath(storage.BucketProofs, *installment.ProofPath))
}

// @Summary Sweep Overdue Installments
// @Description Mark past-due pending installments as overdue (Admin)
// @Tags Installments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /installments/sweep_overdue [post]
func (h *InstallmentHandler) SweepOverdue(c *gin.Context) {
	count, err := h.installmentService.SweepOverdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Varredura concluída", "marked_overdue": count})
}

// parsePaymentDate reads the payment_date form value, defaulting to today.
// Writes the error response itself when the date is malformed.
func parsePaymentDate(c *gin.Context) (time.Time, bool) {
	raw := c.PostForm("payment_date")
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	paymentDate, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data de pagamento inválida, use o formato AAAA-MM-DD"})
		return time.Time{}, false
	}
	return paymentDate, true
}

// optionalFormFile fetches a form file that may be absent. When present it
// is also validated; validation failures write the error response.
func optionalFormFile(c *gin.Context, field string) (multipart.File, *multipart.FileHeader, bool) {
	if c.Request == nil || c.ContentType() == "" || !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil, true
	}
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		// Multipart form without the file field
		return nil, nil, true
	}
	if !validUpload(c, header) {
		file.Close()
		return nil, nil, false
	}
	return file, header, true
}

// validUpload checks size and content type, writing the error response on failure
func validUpload(c *gin.Context, header *multipart.FileHeader) bool {
	if c.Request.ContentLength > 0 && c.Request.ContentLength > storage.MaxFileSize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo muito grande"})
		return false
	}
	if !storage.IsValidContentType(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de arquivo inválido"})
		return false
	}
	return true
}
