package agents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agency/internal/ollama"
	"agency/pkg/types"
)

// Generator is the inference surface the runner needs. *ollama.Client
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt, category string, opts ...ollama.GenerateOption) (*types.InferenceResult, error)
}

// Runner dispatches tasks to registered agents through a Generator.
type Runner struct {
	gen Generator
	reg *Registry
	log zerolog.Logger
}

// NewRunner wires a runner to its generator and registry.
func NewRunner(gen Generator, reg *Registry, log zerolog.Logger) *Runner {
	return &Runner{gen: gen, reg: reg, log: log}
}

// Run executes spec as the agent identified by agentID: the agent's role
// picks the model category and system prompt, the spec shapes the prompt
// text. Task counters are updated on every completed run.
func (r *Runner) Run(ctx context.Context, agentID uuid.UUID, spec TaskSpec) (*types.InferenceResult, error) {
	agent, ok := r.reg.Get(agentID)
	if !ok {
		return nil, fmt.Errorf("agent %s not found", agentID)
	}
	res, err := r.gen.Generate(ctx, spec.Prompt(), agent.Role.Category(), ollama.WithSystem(agent.Role.SystemPrompt()))
	if err != nil {
		return nil, err
	}
	r.reg.recordTask(agentID, spec, res.Success)
	r.log.Info().
		Str("agent", agent.Name).
		Str("role", string(agent.Role)).
		Str("task", string(spec.Type)).
		Bool("success", res.Success).
		Msg("task processed")
	return res, nil
}
