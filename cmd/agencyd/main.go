package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"agency/internal/agents"
	"agency/internal/config"
	"agency/internal/httpapi"
	"agency/internal/logging"
	"agency/internal/ollama"
)

func main() {
	// Flags with environment variable defaults
	defaultConfig := config.Discover()
	if v := os.Getenv("AGENCY_CONFIG"); v != "" {
		defaultConfig = v
	}
	configPath := flag.String("config", defaultConfig, "Path to the agency config file (yaml, toml or json)")
	addr := flag.String("addr", "", "HTTP listen address, e.g. :8080 (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	logPretty := flag.Bool("log-pretty", false, "Human-readable console log output")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated CORS origins; enables CORS when set")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Gateway.Addr = *addr
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logPretty {
		cfg.Logging.Pretty = true
	}
	if origins := splitCSV(*corsOrigins); len(origins) > 0 {
		cfg.Gateway.CORS.Enabled = true
		cfg.Gateway.CORS.Origins = origins
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.File)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	// Base context canceled on shutdown so in-flight inference stops too.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Construction validates the connection to the inference daemon and
	// fails hard when it cannot be reached.
	client, err := ollama.New(ctx, cfg, ollama.WithLogger(logger))
	if err != nil {
		logger.Error().Err(err).Msg("ollama client init failed")
		log.Fatalf("ollama: %v", err)
	}

	reg := agents.NewRegistry()
	for _, seed := range cfg.Agency.Agents {
		role, err := agents.ParseRole(seed.Role)
		if err != nil {
			log.Fatalf("agent seed %q: %v", seed.Name, err)
		}
		var dept agents.Department
		if seed.Department != "" {
			dept, err = agents.ParseDepartment(seed.Department)
			if err != nil {
				log.Fatalf("agent seed %q: %v", seed.Name, err)
			}
		}
		if _, err := reg.Add(seed.Name, role, dept); err != nil {
			log.Fatalf("agent seed %q: %v", seed.Name, err)
		}
	}

	httpapi.SetLogger(logger)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(cfg.Gateway.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.Gateway.CORS.Enabled, cfg.Gateway.CORS.Origins, cfg.Gateway.CORS.Methods, cfg.Gateway.CORS.Headers)

	mux := httpapi.NewMux(client, reg)
	srv := &http.Server{Addr: cfg.Gateway.Addr, Handler: mux}

	go func() {
		logger.Info().
			Str("addr", cfg.Gateway.Addr).
			Str("endpoint", client.Endpoint()).
			Str("default_model", client.DefaultModel()).
			Int("agents", reg.Len()).
			Msg("agencyd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
}

// splitCSV splits a comma separated list, trimming spaces and dropping empties.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
