package types

// ChatMessage is a single turn in a chat exchange.
type ChatMessage struct {
	// Speaker role: system, user, or assistant.
	// example: user
	Role string `json:"role" example:"user"`
	// Message text.
	// example: Summarize the findings above.
	Content string `json:"content" example:"Summarize the findings above."`
}

// ModelProfile holds the sampling parameters applied to one task category.
// Pointer fields distinguish unset from zero; 0 is a valid temperature.
type ModelProfile struct {
	Temperature   *float64 `json:"temperature,omitempty" yaml:"temperature" toml:"temperature"`
	TopP          *float64 `json:"top_p,omitempty" yaml:"top_p" toml:"top_p"`
	TopK          *int     `json:"top_k,omitempty" yaml:"top_k" toml:"top_k"`
	RepeatPenalty *float64 `json:"repeat_penalty,omitempty" yaml:"repeat_penalty" toml:"repeat_penalty"`
	MaxTokens     *int     `json:"max_tokens,omitempty" yaml:"max_tokens" toml:"max_tokens"`
	Stop          []string `json:"stop,omitempty" yaml:"stop" toml:"stop"`
}

// Params renders the profile as request options under the daemon's wire
// names. MaxTokens maps to num_predict; unset fields are omitted.
func (p ModelProfile) Params() map[string]any {
	out := make(map[string]any)
	if p.Temperature != nil {
		out["temperature"] = *p.Temperature
	}
	if p.TopP != nil {
		out["top_p"] = *p.TopP
	}
	if p.TopK != nil {
		out["top_k"] = *p.TopK
	}
	if p.RepeatPenalty != nil {
		out["repeat_penalty"] = *p.RepeatPenalty
	}
	if p.MaxTokens != nil {
		out["num_predict"] = *p.MaxTokens
	}
	if len(p.Stop) > 0 {
		out["stop"] = p.Stop
	}
	return out
}

// InferenceResult is the uniform outcome of a generate or chat call.
// Content is set only on success; Error only on failure. Metadata carries the
// full decoded response body from the daemon.
type InferenceResult struct {
	// Whether the daemon returned a usable completion.
	// example: true
	Success bool `json:"success"`
	// Completion text, present only on success.
	// example: The ocean breathes in waves.
	Content string `json:"content,omitempty"`
	// Terminal failure description, present only on failure.
	Error string `json:"error,omitempty"`
	// Full decoded response body.
	Metadata map[string]any `json:"metadata,omitempty"`
}
