package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"agency/internal/agents"
	"agency/internal/config"
	"agency/internal/ollama"
	"agency/pkg/types"
)

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command {
	return buildRootCmdWith(&Config{ConfigPath: "agency.yaml", LogLevel: "warn"})
}

// buildRootCmdWith constructs the Cobra command tree wired to the client.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "agency",
		Short:         "Client for a local LLM inference daemon with task-specialized agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("config", cfg.ConfigPath, "Path to the agency config file (defaults AGENCY_CONFIG or agency.yaml)")
	root.PersistentFlags().String("log-level", cfg.LogLevel, "Log level: trace|debug|info|warn|error")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("config"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.ConfigPath = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLevel = v
			}
		}
	}

	// generate
	var genPrompt, genCategory, genSystem string
	var genJSON bool
	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate a completion for a prompt",
		Example: "  agency generate --prompt \"Explain goroutines\" --category research",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(genPrompt) == "" {
				return fmt.Errorf("--prompt is required")
			}
			ctx, cancel := signalContext()
			defer cancel()
			s, err := cfg.dial(ctx)
			if err != nil {
				return err
			}
			var opts []ollama.GenerateOption
			if genSystem != "" {
				opts = append(opts, ollama.WithSystem(genSystem))
			}
			res, err := s.client.Generate(ctx, genPrompt, genCategory, opts...)
			if err != nil {
				return err
			}
			return printResult(res, genJSON)
		},
	}
	generateCmd.Flags().StringVar(&genPrompt, "prompt", "", "Prompt text (required)")
	generateCmd.Flags().StringVar(&genCategory, "category", "", "Task category selecting the model (defaults to the default model)")
	generateCmd.Flags().StringVar(&genSystem, "system", "", "Optional system prompt")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print the full result as JSON")
	root.AddCommand(generateCmd)

	// chat
	var chatMessages []string
	var chatCategory string
	var chatJSON bool
	chatCmd := &cobra.Command{
		Use:     "chat",
		Short:   "Run a chat completion over a message history",
		Example: "  agency chat --message \"system:Keep it short\" --message \"user:What is a channel?\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(chatMessages) == 0 {
				return fmt.Errorf("at least one --message is required")
			}
			msgs := make([]types.ChatMessage, 0, len(chatMessages))
			for _, m := range chatMessages {
				msgs = append(msgs, parseMessage(m))
			}
			ctx, cancel := signalContext()
			defer cancel()
			s, err := cfg.dial(ctx)
			if err != nil {
				return err
			}
			res, err := s.client.Chat(ctx, msgs, chatCategory)
			if err != nil {
				return err
			}
			return printResult(res, chatJSON)
		},
	}
	chatCmd.Flags().StringArrayVar(&chatMessages, "message", nil, "Message as role:content; repeatable. Bare text implies the user role")
	chatCmd.Flags().StringVar(&chatCategory, "category", "", "Task category selecting the model")
	chatCmd.Flags().BoolVar(&chatJSON, "json", false, "Print the full result as JSON")
	root.AddCommand(chatCmd)

	// run-task
	var taskAgentType, taskType, taskTitle, taskDescription, taskPriority string
	var taskRequirements []string
	var taskJSON bool
	runTaskCmd := &cobra.Command{
		Use:     "run-task",
		Short:   "Run a one-off task through a specialized agent",
		Example: "  agency run-task --agent-type researcher --title \"Go scheduler\" --description \"how goroutines are scheduled\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate everything before dialing so bad flags fail fast.
			role, err := agents.ParseRole(taskAgentType)
			if err != nil {
				return err
			}
			tt := role.DefaultTask()
			if taskType != "" {
				tt, err = agents.ParseTaskType(taskType)
				if err != nil {
					return err
				}
			}
			priority, err := agents.ParsePriority(taskPriority)
			if err != nil {
				return err
			}
			if strings.TrimSpace(taskTitle) == "" {
				return fmt.Errorf("--title is required")
			}

			ctx, cancel := signalContext()
			defer cancel()
			s, err := cfg.dial(ctx)
			if err != nil {
				return err
			}
			reg := agents.NewRegistry()
			profile, err := reg.Add(string(role), role, "")
			if err != nil {
				return err
			}
			runner := agents.NewRunner(s.client, reg, s.log)
			res, err := runner.Run(ctx, profile.ID, agents.TaskSpec{
				Type:         tt,
				Title:        taskTitle,
				Description:  taskDescription,
				Requirements: taskRequirements,
				Priority:     priority,
			})
			if err != nil {
				return err
			}
			return printResult(res, taskJSON)
		},
	}
	runTaskCmd.Flags().StringVar(&taskAgentType, "agent-type", "", "Agent specialization, e.g. researcher|developer|tester (required)")
	runTaskCmd.Flags().StringVar(&taskType, "task-type", "", "Task type: research|implement|test (defaults to the agent's specialty)")
	runTaskCmd.Flags().StringVar(&taskTitle, "title", "", "Task title (required)")
	runTaskCmd.Flags().StringVar(&taskDescription, "description", "", "Task description")
	runTaskCmd.Flags().StringVar(&taskPriority, "priority", "medium", "Task priority: low|medium|high|critical")
	runTaskCmd.Flags().StringArrayVar(&taskRequirements, "requirement", nil, "Task requirement; repeatable")
	runTaskCmd.Flags().BoolVar(&taskJSON, "json", false, "Print the full result as JSON")
	root.AddCommand(runTaskCmd)

	// models
	var modelsJSON bool
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Show the task category to model mapping from the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(cfg.ConfigPath)
			if err != nil {
				return err
			}
			if modelsJSON {
				return printJSON(types.ModelsResponse{Models: conf.Ollama.Models})
			}
			categories := make([]string, 0, len(conf.Ollama.Models))
			for c := range conf.Ollama.Models {
				categories = append(categories, c)
			}
			sort.Strings(categories)
			for _, c := range categories {
				fmt.Fprintf(os.Stdout, "%-16s %s\n", c, conf.Ollama.Models[c])
			}
			return nil
		},
	}
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "Print the mapping as JSON")
	root.AddCommand(modelsCmd)

	// status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the inference daemon and print client status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			s, err := cfg.dial(ctx)
			if err != nil {
				return err
			}
			return printJSON(s.client.Status())
		},
	}
	root.AddCommand(statusCmd)

	// agents
	agentsCmd := &cobra.Command{
		Use:   "agents",
		Short: "List configured agents and available roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(cfg.ConfigPath)
			if err != nil {
				return err
			}
			if len(conf.Agency.Agents) > 0 {
				fmt.Println("Configured agents:")
				for _, seed := range conf.Agency.Agents {
					dept := seed.Department
					if dept == "" {
						if role, err := agents.ParseRole(seed.Role); err == nil {
							dept = string(role.DefaultDepartment())
						}
					}
					fmt.Fprintf(os.Stdout, "  %-16s role=%s department=%s\n", seed.Name, seed.Role, dept)
				}
				fmt.Println()
			}
			fmt.Println("Available roles:")
			for _, role := range agents.Roles() {
				fmt.Fprintf(os.Stdout, "  %-12s category=%s department=%s\n", role, role.Category(), role.DefaultDepartment())
			}
			return nil
		},
	}
	root.AddCommand(agentsCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}
