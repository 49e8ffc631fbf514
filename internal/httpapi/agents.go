package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agency/internal/agents"
	"agency/pkg/types"
)

// mountAgentRoutes wires the agent registry and task dispatch endpoints.
func mountAgentRoutes(r chi.Router, svc Service, reg *agents.Registry) {
	runner := agents.NewRunner(svc, reg, runnerLogger())

	r.Route("/agents", func(r chi.Router) {
		r.Get("/", handleAgentList(reg))
		r.Post("/", handleAgentCreate(reg))
		r.Get("/{id}", handleAgentGet(reg))
		r.Delete("/{id}", handleAgentDelete(reg))
		r.Post("/{id}/tasks", handleTaskDispatch(runner, reg))
	})
}

// handleAgentList serves GET /agents.
//
// @Summary      List registered agents
// @Produce      json
// @Success      200 {object} types.AgentsResponse
// @Router       /agents [get]
func handleAgentList(reg *agents.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles := reg.List()
		out := make([]types.AgentInfo, 0, len(profiles))
		for _, p := range profiles {
			out = append(out, agentInfo(p))
		}
		writeJSON(w, http.StatusOK, types.AgentsResponse{Agents: out})
	}
}

// handleAgentCreate serves POST /agents.
//
// @Summary      Register a new agent
// @Accept       json
// @Produce      json
// @Param        request body types.AgentCreateRequest true "agent name, role and optional department"
// @Success      201 {object} types.AgentInfo
// @Failure      400 {object} types.ErrorResponse
// @Router       /agents [post]
func handleAgentCreate(reg *agents.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AgentCreateRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		role, err := agents.ParseRole(req.Role)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		var dept agents.Department
		if req.Department != "" {
			dept, err = agents.ParseDepartment(req.Department)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		p, err := reg.Add(req.Name, role, dept)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, agentInfo(p))
	}
}

// handleAgentGet serves GET /agents/{id}.
//
// @Summary      Fetch one agent
// @Produce      json
// @Param        id path string true "agent id"
// @Success      200 {object} types.AgentInfo
// @Failure      404 {object} types.ErrorResponse
// @Router       /agents/{id} [get]
func handleAgentGet(reg *agents.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid agent id")
			return
		}
		p, ok := reg.Get(id)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "agent not found")
			return
		}
		info := agentInfo(p)
		info.History = taskEvents(p.History)
		writeJSON(w, http.StatusOK, info)
	}
}

// handleAgentDelete serves DELETE /agents/{id}.
//
// @Summary      Remove an agent
// @Param        id path string true "agent id"
// @Success      204
// @Failure      404 {object} types.ErrorResponse
// @Router       /agents/{id} [delete]
func handleAgentDelete(reg *agents.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid agent id")
			return
		}
		if !reg.Remove(id) {
			writeJSONError(w, http.StatusNotFound, "agent not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleTaskDispatch serves POST /agents/{id}/tasks. A dispatched task that
// the model could not complete still returns 200; Result.Success carries the
// outcome.
//
// @Summary      Dispatch a task to an agent
// @Accept       json
// @Produce      json
// @Param        id path string true "agent id"
// @Param        request body types.TaskRequest true "task type, title, description"
// @Success      200 {object} types.TaskResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Failure      429 {object} types.ErrorResponse
// @Router       /agents/{id}/tasks [post]
func handleTaskDispatch(runner *agents.Runner, reg *agents.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TaskRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid agent id")
			return
		}
		if _, ok := reg.Get(id); !ok {
			writeJSONError(w, http.StatusNotFound, "agent not found")
			return
		}
		taskType, err := agents.ParseTaskType(req.Type)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		priority, err := agents.ParsePriority(req.Priority)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeJSONError(w, http.StatusBadRequest, "title is required")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		logRequestStart(r, lvl, "task", string(taskType))
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		spec := agents.TaskSpec{
			Type:         taskType,
			Title:        req.Title,
			Description:  req.Description,
			Requirements: req.Requirements,
			Priority:     priority,
		}
		res, err := runner.Run(ctx, id, spec)
		if err != nil {
			status := writeServiceError(w, r, err)
			logRequestEnd(r, lvl, "task", status, start, err)
			return
		}
		// Re-fetch so the response carries the updated task counters.
		agent, _ := reg.Get(id)
		writeJSON(w, http.StatusOK, types.TaskResponse{Agent: agentInfo(agent), Result: res})
		logRequestEnd(r, lvl, "task", http.StatusOK, start, nil)
	}
}

func agentInfo(p agents.Profile) types.AgentInfo {
	info := types.AgentInfo{
		ID:             p.ID.String(),
		Name:           p.Name,
		Role:           string(p.Role),
		Department:     string(p.Department),
		TasksTotal:     p.TasksTotal,
		TasksSucceeded: p.TasksSucceeded,
	}
	if p.SupervisorID != uuid.Nil {
		info.SupervisorID = p.SupervisorID.String()
	}
	return info
}

func taskEvents(records []agents.TaskRecord) []types.TaskEvent {
	if len(records) == 0 {
		return nil
	}
	out := make([]types.TaskEvent, 0, len(records))
	for _, rec := range records {
		out = append(out, types.TaskEvent{
			Type:     string(rec.Type),
			Title:    rec.Title,
			Priority: string(rec.Priority),
			Success:  rec.Success,
			Unix:     rec.When.Unix(),
		})
	}
	return out
}

func runnerLogger() zerolog.Logger {
	if zlog != nil {
		return *zlog
	}
	return zerolog.Nop()
}
