package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tecpap/backend/internal/application/intake"
	"github.com/tecpap/backend/internal/domain/order"
	"github.com/tecpap/backend/internal/infrastructure/config"
)

// HTTPClassifier calls an external reorder-intent model over HTTP. Any
// failure is the caller's signal to degrade to "not a reorder"; this client
// never retries.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

// New creates a classifier for the configured endpoint, or the no-op
// classifier when none is configured.
func New(cfg config.ClassifierConfig) intake.Classifier {
	if cfg.URL == "" {
		return intake.NopClassifier{}
	}
	return &HTTPClassifier{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Classify implements intake.Classifier
func (c *HTTPClassifier) Classify(ctx context.Context, draft *order.Draft) (order.ClassifierResult, error) {
	var result order.ClassifierResult

	body, err := json.Marshal(draft)
	if err != nil {
		return result, fmt.Errorf("failed to encode draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("classifier call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return result, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	return result, nil
}
