package agents

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// historyLimit bounds the per-agent task history.
const historyLimit = 20

// TaskRecord is one entry of an agent's recent task history.
type TaskRecord struct {
	Type     TaskType
	Title    string
	Priority TaskPriority
	Success  bool
	When     time.Time
}

// Profile is one registered agent. History holds the most recent tasks,
// oldest first.
type Profile struct {
	ID             uuid.UUID
	Name           string
	Role           Role
	Department     Department
	SupervisorID   uuid.UUID
	CreatedAt      time.Time
	TasksTotal     int
	TasksSucceeded int
	History        []TaskRecord
}

// snapshot copies a profile, detaching the history slice from the registry.
func snapshot(p *Profile) Profile {
	out := *p
	out.History = append([]TaskRecord(nil), p.History...)
	return out
}

// Registry is an in-memory agent directory safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	agents map[uuid.UUID]*Profile
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[uuid.UUID]*Profile)}
}

// Add registers a new agent. An empty department selects the role default.
func (r *Registry) Add(name string, role Role, dept Department) (Profile, error) {
	if name == "" {
		return Profile{}, fmt.Errorf("agent name must not be empty")
	}
	if !role.Valid() {
		return Profile{}, fmt.Errorf("unknown role %q", role)
	}
	if dept == "" {
		dept = role.DefaultDepartment()
	}
	p := &Profile{
		ID:         uuid.New(),
		Name:       name,
		Role:       role,
		Department: dept,
		CreatedAt:  time.Now(),
	}
	r.mu.Lock()
	r.agents[p.ID] = p
	r.mu.Unlock()
	return *p, nil
}

// Get returns a copy of the agent with id.
func (r *Registry) Get(id uuid.UUID) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.agents[id]
	if !ok {
		return Profile{}, false
	}
	return snapshot(p), true
}

// Remove drops the agent with id, reporting whether it existed.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[id]; !ok {
		return false
	}
	delete(r.agents, id)
	return true
}

// List returns all agents sorted by name.
func (r *Registry) List() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.agents))
	for _, p := range r.agents {
		out = append(out, snapshot(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByDepartment returns the agents of one department sorted by name.
func (r *Registry) ByDepartment(dept Department) []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Profile
	for _, p := range r.agents {
		if p.Department == dept {
			out = append(out, snapshot(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the number of registered agents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

// Assign sets the supervisor for agent id. Both agents must exist and an
// agent cannot supervise itself.
func (r *Registry) Assign(id, supervisor uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.agents[id]
	if !ok {
		return fmt.Errorf("agent %s not found", id)
	}
	if _, ok := r.agents[supervisor]; !ok {
		return fmt.Errorf("supervisor %s not found", supervisor)
	}
	if id == supervisor {
		return fmt.Errorf("agent cannot supervise itself")
	}
	p.SupervisorID = supervisor
	return nil
}

// Chain walks the chain of command upwards starting at the agent itself.
// A dangling or cyclic supervisor link ends the walk.
func (r *Registry) Chain(id uuid.UUID) []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var chain []Profile
	seen := make(map[uuid.UUID]bool)
	for cur, ok := r.agents[id]; ok && !seen[cur.ID]; cur, ok = r.agents[cur.SupervisorID] {
		seen[cur.ID] = true
		chain = append(chain, snapshot(cur))
	}
	return chain
}

// recordTask updates an agent's counters and history after a run.
func (r *Registry) recordTask(id uuid.UUID, spec TaskSpec, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.agents[id]
	if !ok {
		return
	}
	p.TasksTotal++
	if success {
		p.TasksSucceeded++
	}
	p.History = append(p.History, TaskRecord{
		Type:     spec.Type,
		Title:    spec.Title,
		Priority: spec.Priority,
		Success:  success,
		When:     time.Now(),
	})
	if len(p.History) > historyLimit {
		p.History = p.History[len(p.History)-historyLimit:]
	}
}
