package agents

import (
	"fmt"
	"strings"
)

// Role is an agent specialization. Each role binds to a task category in the
// model catalog and to a system prompt shaping its answers.
type Role string

const (
	RoleResearcher Role = "researcher"
	RoleDeveloper  Role = "developer"
	RoleTester     Role = "tester"

	RoleResearchLead       Role = "research_lead"
	RoleImplementationLead Role = "implementation_lead"
	RoleQALead             Role = "qa_lead"
	RoleExecutive          Role = "executive"
)

// Department groups agents in the org chart.
type Department string

const (
	DeptExecutive   Department = "executive"
	DeptSR          Department = "sr"
	DeptEngineering Department = "engineering"
	DeptOperations  Department = "operations"
	DeptAnalytics   Department = "analytics"
)

type roleDefaults struct {
	category   string
	system     string
	department Department
	task       TaskType
}

var rolesTable = map[Role]roleDefaults{
	RoleResearcher: {
		category:   "research",
		system:     "You are a research specialist focused on thorough analysis and accurate information gathering.",
		department: DeptEngineering,
		task:       TaskResearch,
	},
	RoleDeveloper: {
		category:   "implementation",
		system:     "You are a software developer focused on writing clean, efficient, and well-documented code.",
		department: DeptEngineering,
		task:       TaskImplement,
	},
	RoleTester: {
		category:   "test",
		system:     "You are a testing specialist focused on comprehensive test coverage and edge case detection.",
		department: DeptEngineering,
		task:       TaskTest,
	},
	RoleResearchLead: {
		category:   "research",
		system:     "You are a research lead coordinating analysis work, reviewing findings for accuracy, depth and relevance.",
		department: DeptEngineering,
		task:       TaskResearch,
	},
	RoleImplementationLead: {
		category:   "implementation",
		system:     "You are an implementation lead reviewing designs and code for correctness, maintainability and fit.",
		department: DeptEngineering,
		task:       TaskImplement,
	},
	RoleQALead: {
		category:   "test",
		system:     "You are a QA lead assessing test strategy, coverage gaps and release risk.",
		department: DeptEngineering,
		task:       TaskTest,
	},
	RoleExecutive: {
		category:   "default",
		system:     "You are an executive making high-level decisions, weighing tradeoffs, priorities and resource constraints.",
		department: DeptExecutive,
		task:       TaskResearch,
	},
}

// Roles returns the known specializations in a stable order.
func Roles() []Role {
	return []Role{
		RoleResearcher, RoleDeveloper, RoleTester,
		RoleResearchLead, RoleImplementationLead, RoleQALead,
		RoleExecutive,
	}
}

// ParseRole maps a user-supplied string to a Role. The category names
// research, implementation and test are accepted as aliases for the
// specialist roles.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "researcher", "research":
		return RoleResearcher, nil
	case "developer", "implementation":
		return RoleDeveloper, nil
	case "tester", "test":
		return RoleTester, nil
	case "research_lead", "research-lead":
		return RoleResearchLead, nil
	case "implementation_lead", "implementation-lead":
		return RoleImplementationLead, nil
	case "qa_lead", "qa-lead":
		return RoleQALead, nil
	case "executive":
		return RoleExecutive, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ParseDepartment maps a user-supplied string to a Department.
func ParseDepartment(s string) (Department, error) {
	switch strings.ToLower(s) {
	case "executive":
		return DeptExecutive, nil
	case "sr":
		return DeptSR, nil
	case "engineering":
		return DeptEngineering, nil
	case "operations":
		return DeptOperations, nil
	case "analytics":
		return DeptAnalytics, nil
	}
	return "", fmt.Errorf("unknown department %q", s)
}

// Category returns the model catalog category this role dispatches to.
func (r Role) Category() string { return rolesTable[r].category }

// SystemPrompt returns the specialization prompt attached to generate calls.
func (r Role) SystemPrompt() string { return rolesTable[r].system }

// DefaultTask returns the task type a role takes when none is requested.
func (r Role) DefaultTask() TaskType { return rolesTable[r].task }

// DefaultDepartment returns the department a role belongs to when none is
// chosen explicitly.
func (r Role) DefaultDepartment() Department { return rolesTable[r].department }

// Valid reports whether the role is a known specialization.
func (r Role) Valid() bool {
	_, ok := rolesTable[r]
	return ok
}
