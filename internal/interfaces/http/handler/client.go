package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	clientapp "github.com/tecpap/backend/internal/application/client"
	"github.com/tecpap/backend/internal/domain/shared"
	"github.com/tecpap/backend/internal/interfaces/http/dto"
	"github.com/tecpap/backend/internal/interfaces/http/middleware"
)

// ClientHandler handles client identity API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *clientapp.Service
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *clientapp.Service) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List returns a paginated list of client identities
func (h *ClientHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if listReq.Page <= 0 {
		listReq.Page = 1
	}
	if listReq.PageSize <= 0 {
		listReq.PageSize = 20
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
		Filters:  make(map[string]interface{}),
	}

	page, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single client identity
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	resp, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Match runs fuzzy name resolution against known clients without creating
// anything. A below-threshold match returns found=false, not an error.
func (h *ClientHandler) Match(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		h.BadRequest(c, "Query parameter 'name' is required")
		return
	}

	resp, err := h.clientService.Match(c.Request.Context(), name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Preferences returns a client's ordering habits derived from history
func (h *ClientHandler) Preferences(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	resp, err := h.clientService.Preferences(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients", h.List)
	rg.GET("/clients/match", h.Match)
	rg.GET("/clients/:id", h.GetByID)
	rg.GET("/clients/:id/preferences", h.Preferences)
}
