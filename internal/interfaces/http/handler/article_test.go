package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecpap/backend/internal/interfaces/http/dto"
	"github.com/tecpap/backend/internal/interfaces/http/middleware"
)

func setupArticleRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	router := gin.New()
	NewArticleHandler().RegisterRoutes(router.Group("/api/v1"))
	return router
}

func decodeArticleResponse(t *testing.T, body string) ArticleCodeResponse {
	var resp struct {
		Success bool                `json:"success"`
		Data    ArticleCodeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func TestArticleHandler_Suggest(t *testing.T) {
	router := setupArticleRouter()

	t.Run("derives code from full description", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/suggest",
			strings.NewReader(`{"text": "sachets kraft blanchi 100g laize 28 mondi"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeArticleResponse(t, w.Body.String())
		assert.Equal(t, "KB100L28MON", data.Code)
		assert.Equal(t, "Kraft Blanchi", data.PaperType)
		assert.Equal(t, 100, data.Grammage)
		assert.Equal(t, 28, data.Laize)
		assert.Equal(t, "Mondi", data.SupplierName)
	})

	t.Run("falls back to defaults for unrecognisable text", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/suggest",
			strings.NewReader(`{"text": "description sans attributs"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeArticleResponse(t, w.Body.String())
		assert.Equal(t, "KE80", data.Code)
		assert.Equal(t, 80, data.Grammage)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/suggest",
			strings.NewReader(`{"text": ""}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeValidation)
	})
}

func TestArticleHandler_Encode(t *testing.T) {
	router := setupArticleRouter()

	t.Run("encodes structured attributes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/encode",
			strings.NewReader(`{"paper_type": "kraft blanchi", "grammage": 100, "laize": 28, "supplier": "mondi"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeArticleResponse(t, w.Body.String())
		assert.Equal(t, "KB100L28MON", data.Code)
	})

	t.Run("empty attributes encode to the default code", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/encode",
			strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeArticleResponse(t, w.Body.String())
		assert.Equal(t, "KE80", data.Code)
	})
}

func TestArticleHandler_Decode(t *testing.T) {
	router := setupArticleRouter()

	t.Run("decodes a full article code", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/decode/KB100L28MON", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeArticleResponse(t, w.Body.String())
		assert.Equal(t, "Kraft Blanchi", data.PaperType)
		assert.Equal(t, 100, data.Grammage)
		assert.Equal(t, 28, data.Laize)
		assert.Equal(t, "Mondi", data.SupplierName)
	})

	t.Run("decodes a minimal code", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/decode/KE80", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeArticleResponse(t, w.Body.String())
		assert.Equal(t, "Kraft Écru", data.PaperType)
		assert.Equal(t, 80, data.Grammage)
		assert.Zero(t, data.Laize)
		assert.Empty(t, data.Supplier)
	})
}
