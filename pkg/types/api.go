package types

// GenerateRequest is the payload for POST /api/generate.
type GenerateRequest struct {
	// Required prompt text to generate a completion for.
	// example: Write a haiku about the ocean.
	Prompt string `json:"prompt" example:"Write a haiku about the ocean."`
	// Task category used to pick the model and sampling profile. Unknown or
	// empty categories fall back to the default model.
	// example: research
	Category string `json:"category,omitempty" example:"research"`
	// Optional system prompt.
	// example: You are a concise assistant.
	System string `json:"system,omitempty" example:"You are a concise assistant."`
}

// ChatRequest is the payload for POST /api/chat.
type ChatRequest struct {
	// Ordered chat history; the last message is the one to answer.
	Messages []ChatMessage `json:"messages"`
	// Task category used to pick the model and sampling profile.
	// example: implementation
	Category string `json:"category,omitempty" example:"implementation"`
}

// ModelsResponse wraps the category catalog returned by GET /models.
type ModelsResponse struct {
	// Task category to model id.
	Models map[string]string `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Daemon endpoint the client talks to (host:port).
	// example: 127.0.0.1:11434
	Endpoint string `json:"endpoint" example:"127.0.0.1:11434"`
	// Model dispatched for unknown categories.
	// example: llama2
	DefaultModel string `json:"default_model" example:"llama2"`
	// Configured task categories, sorted.
	Categories []string `json:"categories"`
	// Requests currently holding an admission slot.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum concurrent requests admitted to the daemon.
	// example: 3
	ConcurrentLimit int `json:"concurrent_limit" example:"3"`
	// Total requests executed since startup.
	// example: 42
	RequestsTotal uint64 `json:"requests_total" example:"42"`
	// Requests that exhausted their retry budget.
	// example: 2
	FailuresTotal uint64 `json:"failures_total" example:"2"`
	// Unix time of the successful construction-time connection probe.
	// example: 1700000000
	ValidatedUnix int64 `json:"validated_unix" example:"1700000000"`
	// Uptime of the client in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Registered agents (filled by the gateway).
	// example: 3
	Agents int `json:"agents"`
}

// AgentCreateRequest registers a new agent profile via POST /agents.
type AgentCreateRequest struct {
	// Display name, must be non-empty.
	// example: ada
	Name string `json:"name" example:"ada"`
	// Agent role: researcher, developer, or tester.
	// example: developer
	Role string `json:"role" example:"developer"`
	// Optional department; defaults to the role's home department.
	// example: engineering
	Department string `json:"department,omitempty" example:"engineering"`
}

// AgentInfo describes a registered agent.
type AgentInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name" example:"ada"`
	Role       string `json:"role" example:"developer"`
	Department string `json:"department" example:"engineering"`
	// Supervisor agent id, empty at the top of the chain.
	SupervisorID string `json:"supervisor_id,omitempty"`
	// Tasks dispatched through this agent.
	// example: 7
	TasksTotal int `json:"tasks_total"`
	// Tasks whose inference succeeded.
	// example: 6
	TasksSucceeded int `json:"tasks_succeeded"`
	// Recent tasks, oldest first. Only filled on GET /agents/{id}.
	History []TaskEvent `json:"history,omitempty"`
}

// TaskEvent is one entry of an agent's recent task history.
type TaskEvent struct {
	// example: implement
	Type string `json:"type" example:"implement"`
	// example: Add pagination to the list endpoint
	Title string `json:"title" example:"Add pagination to the list endpoint"`
	// example: high
	Priority string `json:"priority,omitempty" example:"high"`
	// Whether the inference behind the task succeeded.
	Success bool `json:"success"`
	// Unix time the task finished.
	// example: 1700000000
	Unix int64 `json:"unix" example:"1700000000"`
}

// AgentsResponse wraps the list returned by GET /agents.
type AgentsResponse struct {
	Agents []AgentInfo `json:"agents"`
}

// TaskRequest dispatches a task to an agent via POST /agents/{id}/tasks.
type TaskRequest struct {
	// Task type: research, implement, or test.
	// example: implement
	Type string `json:"type" example:"implement"`
	// Short task title.
	// example: Add pagination to the list endpoint
	Title string `json:"title" example:"Add pagination to the list endpoint"`
	// Optional longer description.
	Description string `json:"description,omitempty"`
	// Optional bullet-point requirements.
	Requirements []string `json:"requirements,omitempty"`
	// Priority: low, medium, high, or critical. Defaults to medium.
	// example: high
	Priority string `json:"priority,omitempty" example:"high"`
}

// TaskResponse is the outcome of a dispatched task.
type TaskResponse struct {
	Agent  AgentInfo        `json:"agent"`
	Result *InferenceResult `json:"result"`
}
