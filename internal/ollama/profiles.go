package ollama

import "agency/pkg/types"

// defaultCategory is the catalog key every config must provide. Categories
// without an explicit model entry dispatch to it.
const defaultCategory = "default"

// resolveModel maps a task category to a model name. Unknown categories fall
// back to the default model rather than failing.
func (c *Client) resolveModel(category string) string {
	if m, ok := c.models[category]; ok {
		return m
	}
	return c.models[defaultCategory]
}

// resolveProfile returns the sampling profile for a category with MaxTokens
// forced from the request budget. Categories without a stored profile get a
// profile carrying only that budget.
func (c *Client) resolveProfile(category string) types.ModelProfile {
	p := c.profiles[category]
	if len(p.Stop) > 0 {
		p.Stop = append([]string(nil), p.Stop...)
	}
	mt := c.maxTokens
	p.MaxTokens = &mt
	return p
}
