package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rogeriosouza/construtora-api/internal/middleware"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/services"
	"github.com/rogeriosouza/construtora-api/internal/storage"
)

type PayableHandler struct {
	payableService *services.PayableService
	store          *storage.LocalStorage
}

func NewPayableHandler(payableService *services.PayableService, store *storage.LocalStorage) *PayableHandler {
	return &PayableHandler{payableService: payableService, store: store}
}

// @Summary List Payables
// @Description Get a paginated list of payables
// @Tags Payables
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by supplier name or description"
// @Param status query string false "Filter by status (pending, paid, overdue)"
// @Param supplier_id query int false "Filter by supplier"
// @Param project_id query int false "Filter by project"
// @Param category query string false "Filter by category"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payables [get]
func (h *PayableHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["supplier_id"] = c.Query("supplier_id")
	query.Filters["project_id"] = c.Query("project_id")
	query.Filters["category"] = c.Query("category")

	payables, total, err := h.payableService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.PayableResponse, 0, len(payables))
	for _, p := range payables {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"payables": responses, "pagination": paginationPayload(query, total)})
}

// @Summary Get Payable
// @Description Get a payable by ID
// @Tags Payables
// @Produce json
// @Param payable_id path int true "Payable ID"
// @Success 200 {object} models.PayableResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payables/{payable_id} [get]
func (h *PayableHandler) Show(c *gin.Context) {
	payable, err := h.payableService.Get(c.Request.Context(), parseID(c, "payable_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conta a pagar não encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payable": payable.ToResponse()})
}

type CreatePayableRequest struct {
	SupplierID  uint    `json:"supplier_id" binding:"required"`
	ProjectID   *uint   `json:"project_id"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	DueDate     string  `json:"due_date" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Notes       *string `json:"notes"`
}

// @Summary Create Payable
// @Description Create a payable. Accepts JSON or multipart form data with an
// optional nota fiscal file under the "invoice" field.
// @Tags Payables
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body CreatePayableRequest true "Payable Data"
// @Success 201 {object} models.PayableResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /payables [post]
func (h *PayableHandler) Create(c *gin.Context) {
	var req CreatePayableRequest

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		req.Description = c.PostForm("description")
		req.Category = c.PostForm("category")
		req.DueDate = c.PostForm("due_date")
		req.Amount, _ = strconv.ParseFloat(c.PostForm("amount"), 64)
		supplierID, _ := strconv.ParseUint(c.PostForm("supplier_id"), 10, 32)
		req.SupplierID = uint(supplierID)
		if raw := c.PostForm("project_id"); raw != "" {
			projectID, err := strconv.ParseUint(raw, 10, 32)
			if err == nil {
				id := uint(projectID)
				req.ProjectID = &id
			}
		}
		if notes := c.PostForm("notes"); notes != "" {
			req.Notes = &notes
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data de vencimento inválida, use o formato AAAA-MM-DD"})
		return
	}

	invoice, invoiceHeader, ok := optionalFormFile(c, "invoice")
	if !ok {
		return
	}
	if invoice != nil {
		defer invoice.Close()
	}

	payable := &models.Payable{
		SupplierID:  req.SupplierID,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Category:    req.Category,
		Notes:       req.Notes,
	}

	created, err := h.payableService.Create(c.Request.Context(), payable, invoice, invoiceHeader, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payable": created.ToResponse()})
}

// @Summary Record Payable Payment
// @Description Mark a payable as paid, optionally attaching a proof of payment
// @Tags Payables
// @Accept multipart/form-data
// @Produce json
// @Param payable_id path int true "Payable ID"
// @Param payment_date formData string false "Payment date (YYYY-MM-DD, defaults to today)"
// @Param proof formData file false "Proof of payment (pdf, jpg, png)"
// @Success 200 {object} models.PayableResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /payables/{payable_id}/pay [post]
func (h *PayableHandler) Pay(c *gin.Context) {
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

	payable, err := h.payableService.RecordPayment(c.Request.Context(),
		parseID(c, "payable_id"), paymentDate, file, header, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payable": payable.ToResponse(), "message": "Pagamento registrado"})
}

// @Summary Download Nota Fiscal
// @Description Download the stored invoice of a payable
// @Tags Payables
// @Produce application/octet-stream
// @Param payable_id path int true "Payable ID"
// @Success 200 {file} file "invoice"
// @Security BearerAuth
// @Router /payables/{payable_id}/invoice [get]
func (h *PayableHandler) DownloadInvoice(c *gin.Context) {
	payable, err := h.payableService.Get(c.Request.Context(), parseID(c, "payable_id"))
	if err != nil || payable.InvoicePath == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nota fiscal não encontrada"})
		return
	}
	c.File(h.store.GetFullPath(storage.BucketInvoices, *payable.InvoicePath))
}

// @Summary Sweep Overdue Payables
// @Description Mark past-due pending payables as overdue (Admin)
// @Tags Payables
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payables/sweep_overdue [post]
func (h *PayableHandler) SweepOverdue(c *gin.Context) {
	count, err := h.payableService.SweepOverdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Varredura concluída", "marked_overdue": count})
}
