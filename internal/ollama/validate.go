package ollama

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// validateConnection probes the daemon root endpoint until it answers 200 or
// the attempt budget is spent. The delay between attempts is the shared retry
// delay from error handling config.
func (c *Client) validateConnection(ctx context.Context) error {
	var last error
	for attempt := 1; attempt <= c.connectRetries; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.retryDelay); err != nil {
				return err
			}
		}
		if err := c.probe(ctx); err != nil {
			last = err
			connectionProbesTotal.WithLabelValues("failure").Inc()
			c.log.Warn().Err(err).Int("attempt", attempt).Int("max", c.connectRetries).Msg("ollama probe failed")
			continue
		}
		connectionProbesTotal.WithLabelValues("success").Inc()
		c.validatedAt = time.Now()
		c.log.Debug().Str("endpoint", c.endpoint).Int("attempt", attempt).Msg("ollama reachable")
		return nil
	}
	return connectionError{attempts: c.connectRetries, last: last}
}

// probe issues one liveness check against GET /.
func (c *Client) probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama server returned status %d", resp.StatusCode)
	}
	return nil
}
