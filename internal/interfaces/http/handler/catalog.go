package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/tecpap/backend/internal/application/catalog"
)

// CatalogHandler handles product catalog API endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns the product catalog
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/products", h.List)
}
