package config

import (
	"fmt"

	"agency/pkg/types"
)

// ConfigError reports an invalid or missing configuration value. It is fatal
// at load time; nothing downstream repairs a bad config.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string { return "config: " + e.Field + ": " + e.Reason }

// IsConfigError reports whether err is a configuration validation failure.
func IsConfigError(err error) bool {
	_, ok := err.(ConfigError)
	return ok
}

// Validate checks every invariant the rest of the system relies on. Call
// after Normalize; Load does both.
func (c Config) Validate() error {
	o := c.Ollama
	if o.Connection.Endpoint == "" {
		return ConfigError{Field: "connection.endpoint", Reason: "must not be empty"}
	}
	if err := validatePositive("connection.timeout", o.Connection.Timeout); err != nil {
		return err
	}
	if o.Connection.MaxRetries < 1 {
		return ConfigError{Field: "connection.max_retries", Reason: fmt.Sprintf("must be at least 1, got %d", o.Connection.MaxRetries)}
	}
	if _, ok := o.Models["default"]; !ok {
		return ConfigError{Field: "models", Reason: "must contain a \"default\" entry"}
	}
	for category, model := range o.Models {
		if model == "" {
			return ConfigError{Field: "models." + category, Reason: "must not be empty"}
		}
	}
	for category, profile := range o.ModelConfigs {
		if err := validateProfile("model_configs."+category, profile); err != nil {
			return err
		}
	}
	if err := validatePositive("requests.max_tokens", float64(o.Requests.MaxTokens)); err != nil {
		return err
	}
	if err := validatePositive("requests.batch_size", float64(o.Requests.BatchSize)); err != nil {
		return err
	}
	if o.Requests.ConcurrentLimit < 1 {
		return ConfigError{Field: "requests.concurrent_limit", Reason: fmt.Sprintf("must be at least 1, got %d", o.Requests.ConcurrentLimit)}
	}
	if err := validatePositive("requests.request_timeout", o.Requests.RequestTimeout); err != nil {
		return err
	}
	if o.Requests.AcquireTimeout < 0 {
		return ConfigError{Field: "requests.acquire_timeout", Reason: fmt.Sprintf("must not be negative, got %g", o.Requests.AcquireTimeout)}
	}
	if o.ErrorHandling.RetryDelay < 0 {
		return ConfigError{Field: "error_handling.retry_delay", Reason: fmt.Sprintf("must not be negative, got %g", o.ErrorHandling.RetryDelay)}
	}
	if o.ErrorHandling.MaxRetries < 1 {
		return ConfigError{Field: "error_handling.max_retries", Reason: fmt.Sprintf("must be at least 1, got %d", o.ErrorHandling.MaxRetries)}
	}
	switch o.ErrorHandling.FallbackBehavior {
	case FallbackNone, FallbackDefaultModel:
	default:
		return ConfigError{Field: "error_handling.fallback_behavior", Reason: fmt.Sprintf("must be %q or %q, got %q", FallbackNone, FallbackDefaultModel, o.ErrorHandling.FallbackBehavior)}
	}
	return nil
}

func validateProfile(field string, p types.ModelProfile) error {
	if p.Temperature != nil {
		if err := validateRange(field+".temperature", *p.Temperature, 0, 2); err != nil {
			return err
		}
	}
	if p.TopP != nil {
		if *p.TopP <= 0 || *p.TopP > 1 {
			return ConfigError{Field: field + ".top_p", Reason: fmt.Sprintf("must be in (0, 1], got %g", *p.TopP)}
		}
	}
	if p.TopK != nil && *p.TopK < 1 {
		return ConfigError{Field: field + ".top_k", Reason: fmt.Sprintf("must be at least 1, got %d", *p.TopK)}
	}
	if p.RepeatPenalty != nil && *p.RepeatPenalty <= 0 {
		return ConfigError{Field: field + ".repeat_penalty", Reason: fmt.Sprintf("must be positive, got %g", *p.RepeatPenalty)}
	}
	if p.MaxTokens != nil && *p.MaxTokens < 1 {
		return ConfigError{Field: field + ".max_tokens", Reason: fmt.Sprintf("must be at least 1, got %d", *p.MaxTokens)}
	}
	return nil
}

func validateRange(field string, v, min, max float64) error {
	if v < min || v > max {
		return ConfigError{Field: field, Reason: fmt.Sprintf("must be between %g and %g, got %g", min, max, v)}
	}
	return nil
}

func validatePositive(field string, v float64) error {
	if v <= 0 {
		return ConfigError{Field: field, Reason: fmt.Sprintf("must be positive, got %g", v)}
	}
	return nil
}
