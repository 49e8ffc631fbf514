package ollama

import (
	"context"

	"golang.org/x/sync/errgroup"

	"agency/pkg/types"
)

// GenerateBatch runs Generate over prompts with at most BatchSize prompts in
// flight. Results keep the order of prompts. The first admission or context
// error cancels the remaining work; per-prompt inference failures land in
// their result slot instead.
func (c *Client) GenerateBatch(ctx context.Context, prompts []string, category string, opts ...GenerateOption) ([]*types.InferenceResult, error) {
	results := make([]*types.InferenceResult, len(prompts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchSize)
	for i, prompt := range prompts {
		g.Go(func() error {
			res, err := c.Generate(gctx, prompt, category, opts...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
