package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agency/internal/ollama"
	"agency/pkg/types"
)

func createAgent(t *testing.T, h http.Handler, body string) types.AgentInfo {
	t.Helper()
	w := postJSON(t, h, "/agents", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	var info types.AgentInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("json: %v", err)
	}
	return info
}

func TestAgentCreate_DefaultsDepartment(t *testing.T) {
	h := newMux(&mockService{})
	info := createAgent(t, h, `{"name":"alice","role":"researcher"}`)
	if info.ID == "" || info.Name != "alice" {
		t.Fatalf("unexpected agent: %+v", info)
	}
	if info.Role != "researcher" || info.Department != "engineering" {
		t.Fatalf("role=%q department=%q", info.Role, info.Department)
	}
}

func TestAgentCreate_BadRole(t *testing.T) {
	h := newMux(&mockService{})
	w := postJSON(t, h, "/agents", `{"name":"bob","role":"janitor"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unknown role") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestAgentCreate_BadDepartment(t *testing.T) {
	h := newMux(&mockService{})
	w := postJSON(t, h, "/agents", `{"name":"bob","role":"tester","department":"basement"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestAgentGet(t *testing.T) {
	h := newMux(&mockService{})
	created := createAgent(t, h, `{"name":"carol","role":"developer"}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agents/"+created.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got types.AgentInfo
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.ID != created.ID || got.Name != "carol" {
		t.Fatalf("unexpected agent: %+v", got)
	}
}

func TestAgentGet_InvalidID(t *testing.T) {
	h := newMux(&mockService{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agents/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestAgentGet_Unknown(t *testing.T) {
	h := newMux(&mockService{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agents/6f7cb63e-62e3-44a7-a319-3a6b34a63cfc", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestAgentDelete(t *testing.T) {
	h := newMux(&mockService{})
	created := createAgent(t, h, `{"name":"dave","role":"tester"}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/agents/"+created.ID, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", w.Code)
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/agents/"+created.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d", w.Code)
	}
}

func TestAgentList_SortedByName(t *testing.T) {
	h := newMux(&mockService{})
	createAgent(t, h, `{"name":"zoe","role":"tester"}`)
	createAgent(t, h, `{"name":"amy","role":"researcher"}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agents", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.AgentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Agents) != 2 || body.Agents[0].Name != "amy" || body.Agents[1].Name != "zoe" {
		t.Fatalf("agents=%+v", body.Agents)
	}
}

func TestTaskDispatch(t *testing.T) {
	svc := &mockService{genRes: &types.InferenceResult{Success: true, Content: "findings"}}
	h := newMux(svc)
	created := createAgent(t, h, `{"name":"erin","role":"researcher"}`)

	w := postJSON(t, h, "/agents/"+created.ID+"/tasks", `{"type":"research","title":"go scheduler","description":"how goroutines are scheduled"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp types.TaskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Result == nil || !resp.Result.Success || resp.Result.Content != "findings" {
		t.Fatalf("result=%+v", resp.Result)
	}
	if resp.Agent.TasksTotal != 1 || resp.Agent.TasksSucceeded != 1 {
		t.Fatalf("counters=%d/%d", resp.Agent.TasksTotal, resp.Agent.TasksSucceeded)
	}
	if svc.lastCategory != "research" {
		t.Fatalf("category=%q", svc.lastCategory)
	}
	if !strings.Contains(svc.lastPrompt, "go scheduler") {
		t.Fatalf("prompt=%q", svc.lastPrompt)
	}
	if !strings.Contains(svc.lastSystem, "research specialist") {
		t.Fatalf("system=%q", svc.lastSystem)
	}
	// The dispatch response stays counters-only; the detail view carries history.
	if resp.Agent.History != nil {
		t.Fatalf("dispatch response should not embed history: %+v", resp.Agent.History)
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agents/"+created.ID, nil))
	var detail types.AgentInfo
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(detail.History) != 1 {
		t.Fatalf("history=%+v, want one entry", detail.History)
	}
	ev := detail.History[0]
	if ev.Type != "research" || ev.Title != "go scheduler" || !ev.Success || ev.Unix == 0 {
		t.Fatalf("history entry=%+v", ev)
	}
}

func TestTaskDispatch_FailedResultStill200(t *testing.T) {
	svc := &mockService{genRes: &types.InferenceResult{Success: false, Error: "request timed out"}}
	h := newMux(svc)
	created := createAgent(t, h, `{"name":"fay","role":"developer"}`)

	w := postJSON(t, h, "/agents/"+created.ID+"/tasks", `{"type":"implement","title":"retry loop"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp types.TaskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Result.Success {
		t.Fatalf("expected failed result")
	}
	if resp.Agent.TasksTotal != 1 || resp.Agent.TasksSucceeded != 0 {
		t.Fatalf("counters=%d/%d", resp.Agent.TasksTotal, resp.Agent.TasksSucceeded)
	}
}

func TestTaskDispatch_UnknownAgent(t *testing.T) {
	h := newMux(&mockService{})
	w := postJSON(t, h, "/agents/6f7cb63e-62e3-44a7-a319-3a6b34a63cfc/tasks", `{"type":"research","title":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestTaskDispatch_BadTaskType(t *testing.T) {
	h := newMux(&mockService{})
	created := createAgent(t, h, `{"name":"gil","role":"tester"}`)
	w := postJSON(t, h, "/agents/"+created.ID+"/tasks", `{"type":"deploy","title":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unknown task type") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestTaskDispatch_TitleRequired(t *testing.T) {
	h := newMux(&mockService{})
	created := createAgent(t, h, `{"name":"hal","role":"tester"}`)
	w := postJSON(t, h, "/agents/"+created.ID+"/tasks", `{"type":"test","title":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "title is required") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestTaskDispatch_TooBusyMaps429(t *testing.T) {
	h := newMux(&mockService{genErr: ollama.ErrTooBusy(3)})
	created := createAgent(t, h, `{"name":"ivy","role":"researcher"}`)
	w := postJSON(t, h, "/agents/"+created.ID+"/tasks", `{"type":"research","title":"x"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", w.Code)
	}
}
