package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rogeriosouza/construtora-api/internal/middleware"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/services"
	"github.com/rogeriosouza/construtora-api/internal/storage"
)

type CommissionHandler struct {
	commissionService *services.CommissionService
	receiptService    *services.ReceiptService
	store             *storage.LocalStorage
}

func NewCommissionHandler(commissionService *services.CommissionService, receiptService *services.ReceiptService, store *storage.LocalStorage) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService, receiptService: receiptService, store: store}
}

// @Summary List Commissions
// @Description Get a paginated list of broker commissions
// @Tags Commissions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by broker name or sale"
// @Param status query string false "Filter by status (pending, paid, overdue)"
// @Param broker_id query int false "Filter by broker"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /commissions [get]
func (h *CommissionHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["broker_id"] = c.Query("broker_id")

	commissions, total, err := h.commissionService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.CommissionResponse, 0, len(commissions))
	for _, cm := range commissions {
		responses = append(responses, cm.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"commissions": responses, "pagination": paginationPayload(query, total)})
}

// @Summary Get Commission
// @Description Get a commission by ID
// @Tags Commissions
// @Produce json
// @Param commission_id path int true "Commission ID"
// @Success 200 {object} models.CommissionResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /commissions/{commission_id} [get]
func (h *CommissionHandler) Show(c *gin.Context) {
	commission, err := h.commissionService.Get(c.Request.Context(), parseID(c, "commission_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comissão não encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission": commission.ToResponse()})
}

type CreateCommissionRequest struct {
	BrokerID        uint    `json:"broker_id" binding:"required"`
	SaleDescription string  `json:"sale_description" binding:"required"`
	SaleAmount      float64 `json:"sale_amount" binding:"required"`
	Percentage      float64 `json:"percentage" binding:"required"`
	Notes           *string `json:"notes"`
}

// @Summary Create Commission
// @Description Register a broker commission, deriving the amount from the sale
// @Tags Commissions
// @Accept json
// @Produce json
// @Param request body CreateCommissionRequest true "Commission Data"
// @Success 201 {object} models.CommissionResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /commissions [post]
func (h *CommissionHandler) Create(c *gin.Context) {
	var req CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commission := &models.Commission{
		BrokerID:        req.BrokerID,
		SaleDescription: req.SaleDescription,
		SaleAmount:      req.SaleAmount,
		Percentage:      req.Percentage,
		Notes:           req.Notes,
	}

	created, err := h.commissionService.Create(c.Request.Context(), commission, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"commission": created.ToResponse()})
}

// @Summary Record Commission Payment
// @Description Mark a commission as paid, optionally attaching a proof of payment
// @Tags Commissions
// @Accept multipart/form-data
// @Produce json
// @Param commission_id path int true "Commission ID"
// @Param payment_date formData string false "Payment date (YYYY-MM-DD, defaults to today)"
// @Param proof formData file false "Proof of payment (pdf, jpg, png)"
// @Success 200 {object} models.CommissionResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /commissions/{commission_id}/pay [post]
func (h *CommissionHandler) Pay(c *gin.Context) {
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

	commission, err := h.commissionService.RecordPayment(c.Request.Context(),
		parseID(c, "commission_id"), paymentDate, file, header, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commission": commission.ToResponse(), "message": "Pagamento registrado"})
}

// @Summary Download Commission Receipt
// @Description Generate the payment receipt PDF for a paid commission
// @Tags Commissions
// @Produce application/pdf
// @Param commission_id path int true "Commission ID"
// @Success 200 {file} file "receipt"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /commissions/{commission_id}/receipt [get]
func (h *CommissionHandler) Receipt(c *gin.Context) {
	commission, err := h.commissionService.Get(c.Request.Context(), parseID(c, "commission_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comissão não encontrada"})
		return
	}

	data, err := services.CommissionReceiptData(commission)
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
