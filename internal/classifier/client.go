// Package classifier calls a hosted text emotion classification
// endpoint and returns raw model label scores.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "movie-mood-recommender/1.0"

// maxInputLength bounds the text sent to the model; overviews longer
// than this are truncated to keep within the model's token window.
const maxInputLength = 512

// minInputLength is the shortest text worth classifying. Anything
// shorter produces noise, so it yields an empty score map instead.
const minInputLength = 10

// ErrUnavailable is returned when the endpoint stays overloaded or
// still loading after retries.
var ErrUnavailable = errors.New("classifier unavailable")

// Client is an emotion classification API client.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a classifier client for the given inference
// endpoint. The token is optional and sent as a bearer credential.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// labelScore is one entry of the model's per-label output.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify scores the text against the model's emotion labels. Labels
// come back lowercased. Text too short to classify returns an empty
// map without calling the endpoint.
func (c *Client) Classify(ctx context.Context, text string) (map[string]float64, error) {
	text = strings.TrimSpace(text)
	if len(text) < minInputLength {
		return map[string]float64{}, nil
	}
	if len(text) > maxInputLength {
		text = text[:maxInputLength]
	}

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	body, err := c.doRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	// The model returns one row of label scores per input.
	var rows [][]labelScore
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parsing classifier response: %w", err)
	}
	if len(rows) == 0 {
		return map[string]float64{}, nil
	}

	scores := make(map[string]float64, len(rows[0]))
	for _, ls := range rows[0] {
		scores[strings.ToLower(ls.Label)] = ls.Score
	}
	return scores, nil
}

// doRequest performs an HTTP POST with retry when the endpoint is
// rate limited or still loading the model. Retries up to 3 times with
// exponential backoff (1s, 2s, 4s).
func (c *Client) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	delays := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
	var lastErr error

	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		body, err := c.doSingleRequest(ctx, payload)
		if err == nil {
			return body, nil
		}

		if errors.Is(err, ErrUnavailable) {
			lastErr = err
			continue
		}

		return nil, err
	}

	return nil, lastErr
}

func (c *Client) doSingleRequest(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, ErrUnavailable
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
