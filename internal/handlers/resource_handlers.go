package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rogeriosouza/construtora-api/internal/middleware"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/services"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// @Summary List Clients
// @Description Get a paginated list of clients
// @Tags Clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param active query bool false "Active records only" default(true)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	active := c.DefaultQuery("active", "true") != "false"

	clients, total, err := h.clientService.List(c.Request.Context(), query, active)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		responses = append(responses, cl.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"clients": responses, "pagination": paginationPayload(query, total)})
}

// @Summary Get Client
// @Description Get a client by ID
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} models.ClientResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{client_id} [get]
func (h *ClientHandler) Show(c *gin.Context) {
	client, err := h.clientService.Get(c.Request.Context(), parseID(c, "client_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client.ToResponse()})
}

// @Summary Create Client
// @Description Create a new client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body models.Client true "Client Data"
// @Success 201 {object} models.ClientResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.clientService.Create(c.Request.Context(), &client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client.ToResponse()})
}

// @Summary Update Client
// @Description Update an existing client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client_id path int true "Client ID"
// @Param request body models.Client true "Client Data"
// @Success 200 {object} models.ClientResponse
// @Security BearerAuth
// @Router /clients/{client_id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.clientService.Update(c.Request.Context(), parseID(c, "client_id"), &client)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": updated.ToResponse()})
}

// @Summary Archive Client
// @Description Archive a client (soft delete)
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{client_id}/archive [post]
func (h *ClientHandler) Archive(c *gin.Context) {
	if err := h.clientService.Archive(c.Request.Context(), parseID(c, "client_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente arquivado"})
}

// @Summary Reactivate Client
// @Description Reactivate an archived client
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{client_id}/reactivate [post]
func (h *ClientHandler) Reactivate(c *gin.Context) {
	if err := h.clientService.Reactivate(c.Request.Context(), parseID(c, "client_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente reativado"})
}

type SupplierHandler struct {
	supplierService *services.SupplierService
}

func NewSupplierHandler(supplierService *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// @Summary List Suppliers
// @Description Get a paginated list of suppliers
// @Tags Suppliers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param active query bool false "Active records only" default(true)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /suppliers [get]
func (h *SupplierHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	active := c.DefaultQuery("active", "true") != "false"

	suppliers, total, err := h.supplierService.List(c.Request.Context(), query, active)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		responses = append(responses, s.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": responses, "pagination": paginationPayload(query, total)})
}

func (h *SupplierHandler) Show(c *gin.Context) {
	supplier, err := h.supplierService.Get(c.Request.Context(), parseID(c, "supplier_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fornecedor não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier.ToResponse()})
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.supplierService.Create(c.Request.Context(), &supplier); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"supplier": supplier.ToResponse()})
}

func (h *SupplierHandler) Update(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.supplierService.Update(c.Request.Context(), parseID(c, "supplier_id"), &supplier)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"supplier": updated.ToResponse()})
}

func (h *SupplierHandler) Archive(c *gin.Context) {
	if err := h.supplierService.Archive(c.Request.Context(), parseID(c, "supplier_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fornecedor arquivado"})
}

func (h *SupplierHandler) Reactivate(c *gin.Context) {
	if err := h.supplierService.Reactivate(c.Request.Context(), parseID(c, "supplier_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fornecedor reativado"})
}

type BrokerHandler struct {
	brokerService *services.BrokerService
}

func NewBrokerHandler(brokerService *services.BrokerService) *BrokerHandler {
	return &BrokerHandler{brokerService: brokerService}
}

// @Summary List Brokers
// @Description Get a paginated list of brokers
// @Tags Brokers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param active query bool false "Active records only" default(true)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /brokers [get]
func (h *BrokerHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	active := c.DefaultQuery("active", "true") != "false"

	brokers, total, err := h.brokerService.List(c.Request.Context(), query, active)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.BrokerResponse, 0, len(brokers))
	for _, b := range brokers {
		responses = append(responses, b.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"brokers": responses, "pagination": paginationPayload(query, total)})
}

func (h *BrokerHandler) Show(c *gin.Context) {
	broker, err := h.brokerService.Get(c.Request.Context(), parseID(c, "broker_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Corretor não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"broker": broker.ToResponse()})
}

func (h *BrokerHandler) Create(c *gin.Context) {
	var broker models.Broker
	if err := c.ShouldBindJSON(&broker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.brokerService.Create(c.Request.Context(), &broker); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"broker": broker.ToResponse()})
}

func (h *BrokerHandler) Update(c *gin.Context) {
	var broker models.Broker
	if err := c.ShouldBindJSON(&broker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.brokerService.Update(c.Request.Context(), parseID(c, "broker_id"), &broker)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"broker": updated.ToResponse()})
}

func (h *BrokerHandler) Archive(c *gin.Context) {
	if err := h.brokerService.Archive(c.Request.Context(), parseID(c, "broker_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Corretor arquivado"})
}

func (h *BrokerHandler) Reactivate(c *gin.Context) {
	if err := h.brokerService.Reactivate(c.Request.Context(), parseID(c, "broker_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Corretor reativado"})
}

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// @Summary List Projects
// @Description Get a paginated list of construction projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param active query bool false "Active records only" default(true)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		projects, err := h.projectService.ListByStatus(c.Request.Context(), status)
		if err != nil {
			respondError(c, err)
			return
		}
		responses := make([]models.ProjectResponse, 0, len(projects))
		for _, p := range projects {
			responses = append(responses, p.ToResponse())
		}
		c.JSON(http.StatusOK, gin.H{"projects": responses})
		return
	}

	query := parseListQuery(c)
	active := c.DefaultQuery("active", "true") != "false"

	projects, total, err := h.projectService.List(c.Request.Context(), query, active)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"projects": responses, "pagination": paginationPayload(query, total)})
}

// @Summary Get Project
// @Description Get a project with revenue and cost totals
// @Tags Projects
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id} [get]
func (h *ProjectHandler) Show(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), parseID(c, "project_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.Create(c.Request.Context(), &project); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project.ToResponse()})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.projectService.Update(c.Request.Context(), parseID(c, "project_id"), &project)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": updated.ToResponse()})
}

func (h *ProjectHandler) Archive(c *gin.Context) {
	if err := h.projectService.Archive(c.Request.Context(), parseID(c, "project_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Obra arquivada"})
}

func (h *ProjectHandler) Reactivate(c *gin.Context) {
	if err := h.projectService.Reactivate(c.Request.Context(), parseID(c, "project_id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Obra reativada"})
}
