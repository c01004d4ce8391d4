package intake

import (
	"context"

	"github.com/tecpap/backend/internal/domain/order"
)

// Classifier detects reorder intent in a draft. Implementations call an
// external model; errors and timeouts must degrade to a zero result rather
// than fail ingestion.
type Classifier interface {
	Classify(ctx context.Context, draft *order.Draft) (order.ClassifierResult, error)
}

// NopClassifier always reports "not a reorder". Used when no classifier
// endpoint is configured.
type NopClassifier struct{}

// Classify implements Classifier
func (NopClassifier) Classify(ctx context.Context, draft *order.Draft) (order.ClassifierResult, error) {
	return order.ClassifierResult{}, nil
}
