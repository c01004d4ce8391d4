package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tecpap/backend/internal/domain/article"
	"github.com/tecpap/backend/internal/interfaces/http/middleware"
)

// ArticleHandler exposes the article code codec
type ArticleHandler struct {
	BaseHandler
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler() *ArticleHandler {
	return &ArticleHandler{}
}

// SuggestArticleCodeRequest represents a request to derive an article code
// from a free-text product description
type SuggestArticleCodeRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// ArticleCodeResponse represents a derived or decoded article code
type ArticleCodeResponse struct {
	Code         string `json:"code"`
	PaperType    string `json:"paper_type,omitempty"`
	Grammage     int    `json:"grammage,omitempty"`
	Laize        int    `json:"laize,omitempty"`
	Supplier     string `json:"supplier,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
}

// Suggest derives an article code from a free-text description
func (h *ArticleHandler) Suggest(c *gin.Context) {
	var req SuggestArticleCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	code := article.SuggestFromText(req.Text)
	attrs, err := article.Decode(code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toArticleCodeResponse(code, attrs))
}

// EncodeArticleCodeRequest represents structured attributes to encode
type EncodeArticleCodeRequest struct {
	PaperType string `json:"paper_type"`
	Grammage  int    `json:"grammage" binding:"omitempty,min=1,max=999"`
	Laize     int    `json:"laize" binding:"omitempty,min=1,max=999"`
	Supplier  string `json:"supplier"`
}

// Encode builds the canonical article code for a set of attributes
func (h *ArticleHandler) Encode(c *gin.Context) {
	var req EncodeArticleCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	code := article.Encode(article.Attributes{
		PaperType: article.PaperType(req.PaperType),
		Grammage:  req.Grammage,
		Laize:     req.Laize,
		Supplier:  req.Supplier,
	})
	attrs, err := article.Decode(code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toArticleCodeResponse(code, attrs))
}

// Decode breaks an article code into its structured attributes
func (h *ArticleHandler) Decode(c *gin.Context) {
	code := c.Param("code")

	attrs, err := article.Decode(code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toArticleCodeResponse(code, attrs))
}

func toArticleCodeResponse(code string, attrs article.Attributes) ArticleCodeResponse {
	return ArticleCodeResponse{
		Code:         code,
		PaperType:    string(attrs.PaperType),
		Grammage:     attrs.Grammage,
		Laize:        attrs.Laize,
		Supplier:     attrs.Supplier,
		SupplierName: article.SupplierName(attrs.Supplier),
	}
}

// RegisterRoutes registers article codec routes
func (h *ArticleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/articles/suggest", h.Suggest)
	rg.POST("/articles/encode", h.Encode)
	rg.GET("/articles/decode/:code", h.Decode)
}
