package ollama

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"agency/internal/config"
	"agency/pkg/types"
)

// Client talks to a local Ollama daemon. It owns a bounded pool of admission
// slots, so at most ConcurrentLimit requests are on the wire at any time no
// matter how many goroutines share the client.
type Client struct {
	http     *http.Client
	baseURL  string
	endpoint string
	apiKey   string

	models    map[string]string
	profiles  map[string]types.ModelProfile
	maxTokens int
	batchSize int

	requestRetries int
	connectRetries int
	retryDelay     time.Duration
	requestTimeout time.Duration
	connectTimeout time.Duration
	acquireWait    time.Duration
	fallback       string

	slots chan struct{}
	log   zerolog.Logger

	startTime   time.Time
	validatedAt time.Time

	requestsTotal atomic.Uint64
	failuresTotal atomic.Uint64
}

// Option customizes a Client before connection validation runs.
type Option func(*Client)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client, e.g. for tests or a
// custom transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New validates cfg, probes the daemon and returns a ready client. It fails
// when the daemon stays unreachable for the whole connection attempt budget.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Client, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	host, port := cfg.Ollama.Connection.HostPort()
	c := &Client{
		baseURL:  "http://" + net.JoinHostPort(host, strconv.Itoa(port)),
		endpoint: cfg.Ollama.Connection.Endpoint,
		apiKey:   cfg.Ollama.Connection.APIKey,

		models:    make(map[string]string, len(cfg.Ollama.Models)),
		profiles:  make(map[string]types.ModelProfile, len(cfg.Ollama.ModelConfigs)),
		maxTokens: cfg.Ollama.Requests.MaxTokens,
		batchSize: cfg.Ollama.Requests.BatchSize,

		requestRetries: cfg.Ollama.ErrorHandling.MaxRetries,
		connectRetries: cfg.Ollama.Connection.MaxRetries,
		retryDelay:     secs(cfg.Ollama.ErrorHandling.RetryDelay),
		requestTimeout: secs(cfg.Ollama.Requests.RequestTimeout),
		connectTimeout: secs(cfg.Ollama.Connection.Timeout),
		acquireWait:    secs(cfg.Ollama.Requests.AcquireTimeout),
		fallback:       cfg.Ollama.ErrorHandling.FallbackBehavior,

		slots:     make(chan struct{}, cfg.Ollama.Requests.ConcurrentLimit),
		log:       zerolog.Nop(),
		startTime: time.Now(),
	}
	for k, v := range cfg.Ollama.Models {
		c.models[k] = v
	}
	for k, v := range cfg.Ollama.ModelConfigs {
		c.profiles[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// One connection per request; the daemon holds nothing open between calls.
		c.http = &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	}
	if err := c.validateConnection(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// GenerateOptions carries the optional knobs for Generate.
type GenerateOptions struct {
	// System overrides the model's built-in system prompt when non-empty.
	System string
}

// GenerateOption mutates GenerateOptions.
type GenerateOption func(*GenerateOptions)

// WithSystem sets the system prompt for a single call.
func WithSystem(system string) GenerateOption {
	return func(o *GenerateOptions) { o.System = system }
}

// Generate asks the model mapped to category for a completion of prompt.
// Transient upstream failures are retried; once the budget is spent the
// failure is reported through the result, not the error.
func (c *Client) Generate(ctx context.Context, prompt, category string, opts ...GenerateOption) (*types.InferenceResult, error) {
	var o GenerateOptions
	for _, opt := range opts {
		opt(&o)
	}
	model := c.resolveModel(category)
	payload := map[string]any{
		"model":  model,
		"prompt": prompt,
		"stream": false,
	}
	if o.System != "" {
		payload["system"] = o.System
	}
	for k, v := range c.resolveProfile(category).Params() {
		payload[k] = v
	}
	return c.run(ctx, "generate", "/api/generate", payload, model)
}

// Chat runs a multi-turn exchange against the model mapped to category.
func (c *Client) Chat(ctx context.Context, messages []types.ChatMessage, category string) (*types.InferenceResult, error) {
	model := c.resolveModel(category)
	payload := map[string]any{
		"model":    model,
		"messages": messages,
		"stream":   false,
	}
	for k, v := range c.resolveProfile(category).Params() {
		payload[k] = v
	}
	return c.run(ctx, "chat", "/api/chat", payload, model)
}

// run admits the request, executes it with retries and applies the fallback
// strategy. One admission slot is held for the whole call, fallback cycle
// included.
func (c *Client) run(ctx context.Context, op, path string, payload map[string]any, model string) (*types.InferenceResult, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	res, err := c.doRequest(ctx, op, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	if !res.Success && c.fallback == config.FallbackDefaultModel {
		if def := c.models[defaultCategory]; def != "" && def != model {
			c.log.Warn().Str("op", op).Str("model", model).Str("fallback", def).Msg("retrying with default model")
			payload["model"] = def
			res, err = c.doRequest(ctx, op, http.MethodPost, path, payload)
			if err != nil {
				return nil, err
			}
		}
	}
	outcome := "success"
	if !res.Success {
		outcome = "failure"
		c.failuresTotal.Add(1)
	}
	c.requestsTotal.Add(1)
	ollamaRequestsTotal.WithLabelValues(op, outcome).Inc()
	ollamaRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return res, nil
}

// Models returns a copy of the category to model catalog.
func (c *Client) Models() map[string]string {
	out := make(map[string]string, len(c.models))
	for k, v := range c.models {
		out[k] = v
	}
	return out
}

// DefaultModel returns the model unknown categories dispatch to.
func (c *Client) DefaultModel() string {
	return c.models[defaultCategory]
}

// Endpoint returns the configured daemon address.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ready reports whether construction-time validation succeeded.
func (c *Client) Ready() bool {
	return !c.validatedAt.IsZero()
}

// Status builds a detailed status response for /status.
func (c *Client) Status() types.StatusResponse {
	now := time.Now()
	return types.StatusResponse{
		Endpoint:        c.endpoint,
		DefaultModel:    c.models[defaultCategory],
		Categories:      sortedKeys(c.models),
		Inflight:        c.InFlight(),
		ConcurrentLimit: cap(c.slots),
		RequestsTotal:   c.requestsTotal.Load(),
		FailuresTotal:   c.failuresTotal.Load(),
		ValidatedUnix:   c.validatedAt.Unix(),
		UptimeSeconds:   int64(now.Sub(c.startTime).Seconds()),
		ServerTimeUnix:  now.Unix(),
	}
}
