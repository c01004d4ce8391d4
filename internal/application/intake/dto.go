package intake

import (
	"github.com/google/uuid"
)

// IngestResponse reports the outcome of pushing one draft through the gate
type IngestResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	Created     bool      `json:"created"`

	ClientID      uuid.UUID `json:"client_id"`
	ClientName    string    `json:"client_name"`
	ClientCreated bool      `json:"client_created"`

	ArticleCode string     `json:"article_code,omitempty"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`

	ReorderInferred  bool     `json:"reorder_inferred"`
	BackfilledFields []string `json:"backfilled_fields,omitempty"`
}
