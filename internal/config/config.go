package config

import (
	"net"
	"strconv"

	"agency/pkg/types"
)

// Defaults applied by Normalize when corresponding fields are unset.
const (
	DefaultPort = 11434

	defaultEndpoint       = "127.0.0.1:11434"
	defaultConnectTimeout = 10.0
	defaultRequestTimeout = 300.0
	defaultRetryDelay     = 1.0
	defaultMaxRetries     = 3
	defaultMaxTokens      = 2048
	defaultBatchSize      = 1
	defaultConcurrent     = 1
	defaultAddr           = ":8080"
	defaultMaxBodyBytes   = 1 << 20
	defaultLogLevel       = "info"
)

// Fallback strategies for requests that exhaust their retry budget.
const (
	FallbackNone         = "none"
	FallbackDefaultModel = "default_model"
)

// Config holds runtime parameters for the agency. Zero values mean
// "unspecified" and are replaced by defaults in Normalize.
type Config struct {
	Ollama  OllamaConfig  `json:"ollama" yaml:"ollama" toml:"ollama"`
	Gateway GatewayConfig `json:"gateway" yaml:"gateway" toml:"gateway"`
	Logging LoggingConfig `json:"logging" yaml:"logging" toml:"logging"`
	Agency  AgencyConfig  `json:"agency" yaml:"agency" toml:"agency"`
}

// OllamaConfig is the daemon client configuration.
type OllamaConfig struct {
	Connection ConnectionConfig `json:"connection" yaml:"connection" toml:"connection"`
	// Task category to model id. Must contain a "default" entry.
	Models map[string]string `json:"models" yaml:"models" toml:"models"`
	// Per-category sampling profiles. Categories without one get a bare
	// profile carrying only the request policy's max_tokens.
	ModelConfigs  map[string]types.ModelProfile `json:"model_configs" yaml:"model_configs" toml:"model_configs"`
	Requests      RequestConfig                 `json:"requests" yaml:"requests" toml:"requests"`
	ErrorHandling ErrorConfig                   `json:"error_handling" yaml:"error_handling" toml:"error_handling"`
}

// ConnectionConfig describes how to reach the daemon.
type ConnectionConfig struct {
	// Endpoint is host or host:port; the port defaults to 11434.
	Endpoint string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	// Optional bearer token attached to every request.
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key"`
	// Per-probe timeout in seconds.
	Timeout float64 `json:"timeout" yaml:"timeout" toml:"timeout"`
	// Total construction-time probe attempts, at least 1.
	MaxRetries int `json:"max_retries" yaml:"max_retries" toml:"max_retries"`
}

// RequestConfig bounds individual requests and the in-flight window.
type RequestConfig struct {
	// Token cap applied to every resolved profile (num_predict).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	// Concurrent calls started by GenerateBatch.
	BatchSize int `json:"batch_size" yaml:"batch_size" toml:"batch_size"`
	// Maximum requests in flight against the daemon, at least 1.
	ConcurrentLimit int `json:"concurrent_limit" yaml:"concurrent_limit" toml:"concurrent_limit"`
	// Per-attempt timeout in seconds.
	RequestTimeout float64 `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	// Seconds to wait for an admission slot; 0 waits indefinitely.
	AcquireTimeout float64 `json:"acquire_timeout" yaml:"acquire_timeout" toml:"acquire_timeout"`
}

// ErrorConfig is the shared retry policy.
type ErrorConfig struct {
	// Fixed delay in seconds between attempts. The same delay paces both
	// construction-time connection probes and request retries.
	RetryDelay float64 `json:"retry_delay" yaml:"retry_delay" toml:"retry_delay"`
	// Total attempts per request, at least 1. 1 means a single attempt.
	MaxRetries int `json:"max_retries" yaml:"max_retries" toml:"max_retries"`
	// What to do when a request exhausts its attempts: "none" returns the
	// failed result, "default_model" runs one extra cycle on the default
	// model first.
	FallbackBehavior string `json:"fallback_behavior" yaml:"fallback_behavior" toml:"fallback_behavior"`
}

// GatewayConfig configures the agencyd HTTP surface.
type GatewayConfig struct {
	Addr         string     `json:"addr" yaml:"addr" toml:"addr"`
	MaxBodyBytes int64      `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS         CORSConfig `json:"cors" yaml:"cors" toml:"cors"`
}

// CORSConfig is opt-in CORS for the gateway.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty" toml:"pretty"`
	File   string `json:"file" yaml:"file" toml:"file"`
}

// AgencyConfig seeds the agent registry at startup.
type AgencyConfig struct {
	Agents []AgentSeed `json:"agents" yaml:"agents" toml:"agents"`
}

// AgentSeed declares one agent to register at startup.
type AgentSeed struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Role       string `json:"role" yaml:"role" toml:"role"`
	Department string `json:"department" yaml:"department" toml:"department"`
}

// Normalize fills defaults for unset fields. It never overrides an explicit
// value and is safe to call more than once.
func (c *Config) Normalize() {
	o := &c.Ollama
	if o.Connection.Endpoint == "" {
		o.Connection.Endpoint = defaultEndpoint
	}
	if o.Connection.Timeout == 0 {
		o.Connection.Timeout = defaultConnectTimeout
	}
	if o.Connection.MaxRetries == 0 {
		o.Connection.MaxRetries = defaultMaxRetries
	}
	if o.Requests.MaxTokens == 0 {
		o.Requests.MaxTokens = defaultMaxTokens
	}
	if o.Requests.BatchSize == 0 {
		o.Requests.BatchSize = defaultBatchSize
	}
	if o.Requests.ConcurrentLimit == 0 {
		o.Requests.ConcurrentLimit = defaultConcurrent
	}
	if o.Requests.RequestTimeout == 0 {
		o.Requests.RequestTimeout = defaultRequestTimeout
	}
	if o.ErrorHandling.RetryDelay == 0 {
		o.ErrorHandling.RetryDelay = defaultRetryDelay
	}
	if o.ErrorHandling.MaxRetries == 0 {
		o.ErrorHandling.MaxRetries = defaultMaxRetries
	}
	if o.ErrorHandling.FallbackBehavior == "" {
		o.ErrorHandling.FallbackBehavior = FallbackNone
	}
	if c.Gateway.Addr == "" {
		c.Gateway.Addr = defaultAddr
	}
	if c.Gateway.MaxBodyBytes == 0 {
		c.Gateway.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// HostPort splits Endpoint into host and port, defaulting to 11434 when the
// endpoint carries no port.
func (c ConnectionConfig) HostPort() (string, int) {
	if host, port, err := net.SplitHostPort(c.Endpoint); err == nil {
		if n, err := strconv.Atoi(port); err == nil {
			return host, n
		}
	}
	return c.Endpoint, DefaultPort
}
