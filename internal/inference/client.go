// Package inference forwards text-processing work to the Hugging Face
// Inference API.
package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Nisarg-M-Patel/green-MoE/internal/classify"
)

// DefaultBaseURL is the Hugging Face Inference API root.
const DefaultBaseURL = "https://api-inference.huggingface.co/models/"

// Models used per task type.
const (
	grammarModel = "pszemraj/flan-t5-large-grammar-synthesis"
	emailModel   = "google/flan-t5-base"
)

// Client calls hosted models for each task type.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates an inference client. An empty token still works for
// public models, just with tighter provider-side rate limits.
func NewClient(token string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SetBaseURL overrides the endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Process routes text to the model for its task type and returns the
// generated output. Search has no hosted model yet and is answered with a
// local placeholder.
func (c *Client) Process(ctx context.Context, task classify.TaskType, text string) (string, error) {
	switch task {
	case classify.TaskGrammar:
		return c.generate(ctx, grammarModel, text)
	case classify.TaskEmail:
		return c.generate(ctx, emailModel, "Write a professional email: "+text)
	case classify.TaskSearch:
		return fmt.Sprintf("Search results for: %s", text), nil
	default:
		return c.generate(ctx, grammarModel, text)
	}
}

func (c *Client) generate(ctx context.Context, model, input string) (string, error) {
	payload, err := json.Marshal(map[string]string{"inputs": input})
	if err != nil {
		return "", fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+model, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed for %s: %w", model, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error().Err(err).Msg("failed to close inference response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API returned %s for %s", resp.Status, model)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read inference response: %w", err)
	}

	var results []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("failed to parse inference response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("inference API returned no generations for %s", model)
	}

	return results[0].GeneratedText, nil
}
