package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecpap/backend/internal/domain/shared"
	"github.com/tecpap/backend/internal/interfaces/http/dto"
)

func TestBaseHandler_HandleDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(err error) *httptest.ResponseRecorder {
		router := gin.New()
		h := &BaseHandler{}
		router.GET("/test", func(c *gin.Context) {
			c.Set("request_id", "req-abc")
			h.HandleDomainError(c, err)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("maps not found to 404", func(t *testing.T) {
		w := serve(shared.NewDomainError("NOT_FOUND", "Order not found"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "req-abc", resp.Error.RequestID)
	})

	t.Run("maps empty draft to 400", func(t *testing.T) {
		w := serve(shared.NewDomainError("EMPTY_DRAFT", "Draft carries no usable data"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeEmptyDraft, resp.Error.Code)
	})

	t.Run("maps non-order drafts to 422", func(t *testing.T) {
		w := serve(shared.NewDomainError("NOT_AN_ORDER", "Draft was not classified as an order"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("wrapped domain errors are unwrapped", func(t *testing.T) {
		inner := shared.NewDomainError("ALREADY_EXISTS", "Duplicate order number")
		w := serve(errors.Join(errors.New("create failed"), inner))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown errors become 500", func(t *testing.T) {
		w := serve(errors.New("database on fire"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		// Internal details must not leak to callers
		assert.NotContains(t, resp.Error.Message, "database")
	})
}
