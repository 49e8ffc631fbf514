package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"agency/pkg/types"
)

// doRequest runs one API call with bounded retries over transient failures:
// non-2xx statuses, malformed bodies, network errors and per-attempt
// timeouts. The returned error is non-nil only when the caller's context
// ends; every other outcome, including retry exhaustion, is reported in the
// result.
func (c *Client) doRequest(ctx context.Context, op, method, path string, payload map[string]any) (*types.InferenceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return &types.InferenceResult{Success: false, Error: "failed to encode request: " + err.Error()}, nil
	}

	var last string
	for attempt := 1; attempt <= c.requestRetries; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.retryDelay); err != nil {
				return nil, err
			}
		}
		res, failure := c.tryOnce(ctx, method, path, body)
		if res != nil {
			ollamaRequestAttempts.WithLabelValues(op).Observe(float64(attempt))
			return res, nil
		}
		last = failure
		c.log.Warn().Str("op", op).Int("attempt", attempt).Int("max", c.requestRetries).Str("cause", failure).Msg("request attempt failed")
		// A canceled caller stops the retry loop; a per-attempt timeout does not.
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
	}
	ollamaRequestAttempts.WithLabelValues(op).Observe(float64(c.requestRetries))
	return &types.InferenceResult{
		Success: false,
		Error:   fmt.Sprintf("request failed after %d attempts: %s", c.requestRetries, last),
	}, nil
}

// tryOnce issues a single HTTP attempt under the per-attempt timeout.
// Returns either a terminal result or a failure description to retry on.
func (c *Client) tryOnce(ctx context.Context, method, path string, body []byte) (*types.InferenceResult, string) {
	actx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, "request timed out"
		}
		return nil, err.Error()
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err.Error()
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return nil, fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Sprintf("failed to parse response JSON: %v", err)
	}
	content, ok := extractContent(decoded)
	if !ok {
		return nil, "response body missing completion text"
	}
	return &types.InferenceResult{Success: true, Content: content, Metadata: decoded}, ""
}

// extractContent pulls the completion text out of a decoded body. Generate
// responses carry it under "response", chat responses under "message.content".
func extractContent(decoded map[string]any) (string, bool) {
	if s, ok := decoded["response"].(string); ok {
		return s, true
	}
	if msg, ok := decoded["message"].(map[string]any); ok {
		if s, ok := msg["content"].(string); ok {
			return s, true
		}
	}
	return "", false
}
