package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"agency/internal/config"
	"agency/internal/logging"
	"agency/internal/ollama"
	"agency/pkg/types"
)

// session bundles a validated client with the config and logger behind it.
type session struct {
	client *ollama.Client
	conf   config.Config
	log    zerolog.Logger
}

// dial loads the config file and builds a connection-validated client.
func (c *Config) dial(ctx context.Context) (*session, error) {
	conf, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(c.LogLevel, true, "")
	if err != nil {
		return nil, err
	}
	client, err := ollama.New(ctx, conf, ollama.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &session{client: client, conf: conf, log: logger}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseMessage splits "role:content" into a chat message. Text without a
// recognized role prefix becomes a user message as-is.
func parseMessage(s string) types.ChatMessage {
	if role, content, ok := strings.Cut(s, ":"); ok {
		switch strings.ToLower(strings.TrimSpace(role)) {
		case "system", "user", "assistant":
			return types.ChatMessage{Role: strings.ToLower(strings.TrimSpace(role)), Content: strings.TrimSpace(content)}
		}
	}
	return types.ChatMessage{Role: "user", Content: s}
}

// printResult renders an inference result. In text mode a failed result
// becomes a command error; in JSON mode the result speaks for itself.
func printResult(res *types.InferenceResult, asJSON bool) error {
	if asJSON {
		return printJSON(res)
	}
	if !res.Success {
		return fmt.Errorf("inference failed: %s", res.Error)
	}
	fmt.Println(res.Content)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
