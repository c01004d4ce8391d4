package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tecpap/backend/internal/application/intake"
	"github.com/tecpap/backend/internal/domain/order"
	"github.com/tecpap/backend/internal/interfaces/http/middleware"
)

// IntakeHandler handles order draft ingestion
type IntakeHandler struct {
	BaseHandler
	ingestion *intake.IngestionService
}

// NewIntakeHandler creates a new IntakeHandler
func NewIntakeHandler(ingestion *intake.IngestionService) *IntakeHandler {
	return &IntakeHandler{ingestion: ingestion}
}

// Ingest accepts one extracted order draft and pushes it through the
// dedup and persistence gate. Replays return the existing order with
// created=false and a 200 rather than an error.
func (h *IntakeHandler) Ingest(c *gin.Context) {
	var draft order.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	h.ingest(c, &draft)
}

// ChatIngestRequest is the chat-channel webhook payload: message envelope
// fields plus whatever the extraction step pulled out of the message body.
type ChatIngestRequest struct {
	MessageID   string      `json:"message_id" binding:"required"`
	From        string      `json:"from" binding:"required"`
	ProfileName string      `json:"profile_name"`
	Extraction  order.Draft `json:"extraction"`
}

// IngestChat accepts a chat-channel webhook payload. Envelope fields fill
// the draft's channel, idempotency key, and contact hints; extracted values
// always win over envelope values.
func (h *IntakeHandler) IngestChat(c *gin.Context) {
	var req ChatIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	draft := draftFromChat(req)
	h.ingest(c, &draft)
}

// draftFromChat merges the webhook envelope into the extracted draft.
func draftFromChat(req ChatIngestRequest) order.Draft {
	draft := req.Extraction
	draft.Channel = order.ChannelChat
	if draft.ExternalMessageID == "" {
		draft.ExternalMessageID = req.MessageID
	}
	if draft.CustomerPhone == "" {
		draft.CustomerPhone = req.From
	}
	if draft.CustomerName == "" {
		draft.CustomerName = req.ProfileName
	}
	return draft
}

func (h *IntakeHandler) ingest(c *gin.Context, draft *order.Draft) {
	resp, err := h.ingestion.Ingest(c.Request.Context(), draft)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if resp.Created {
		h.Created(c, resp)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers intake routes
func (h *IntakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/ingest", h.Ingest)
	rg.POST("/orders/ingest/chat", h.IngestChat)
}
