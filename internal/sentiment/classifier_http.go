package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/internal/datasource"
)

// RemoteClassifier calls an external inference endpoint (for example a
// hosted FinBERT) over HTTP. The endpoint accepts {"text", "model"} and
// answers {"label", "confidence"}.
type RemoteClassifier struct {
	url    string
	model  string
	client *http.Client
	log    *zap.Logger
}

// NewRemoteClassifier creates a classifier against the given endpoint.
func NewRemoteClassifier(url, model string, timeout time.Duration, log *zap.Logger) *RemoteClassifier {
	return &RemoteClassifier{
		url:    url,
		model:  model,
		client: datasource.NewHTTPClient(timeout),
		log:    log,
	}
}

type classifyRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

// Classify posts text to the inference endpoint.
func (r *RemoteClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	payload, err := json.Marshal(classifyRequest{Text: text, Model: r.model})
	if err != nil {
		return Prediction{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("classify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Prediction{}, &datasource.ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return Prediction{}, fmt.Errorf("decode prediction: %w", err)
	}
	return pred, nil
}
