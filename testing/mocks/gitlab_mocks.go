// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/uggla/gitlab-push-and-mr/pkg/gitlab"
)

// MethodCall records one invocation of a mocked method.
type MethodCall struct {
	Method string
	Args   map[string]interface{}
}

// GitLabAPI is a mock implementation of gitlab.API with call tracking.
type GitLabAPI struct {
	mu    sync.Mutex
	calls []MethodCall

	// Configurable responses
	FetchProjectsResponse   []gitlab.Project
	FetchProjectsError      error
	SearchUsersResponse     []gitlab.User
	SearchUsersError        error
	CreateMergeRequestURL   string
	CreateMergeRequestError error

	// LastMRRequest holds the request passed to the most recent
	// CreateMergeRequest call.
	LastMRRequest *gitlab.MRRequest
}

// NewGitLabAPI creates a new mock GitLab API client.
func NewGitLabAPI() *GitLabAPI {
	return &GitLabAPI{
		calls: make([]MethodCall, 0),
	}
}

// FetchProjects implements gitlab.API.
func (m *GitLabAPI) FetchProjects(_ context.Context, scope gitlab.Scope) ([]gitlab.Project, error) {
	m.trackCall("FetchProjects", map[string]interface{}{
		"group": scope.Group,
		"user":  scope.User,
	})
	return m.FetchProjectsResponse, m.FetchProjectsError
}

// SearchUsers implements gitlab.API.
func (m *GitLabAPI) SearchUsers(_ context.Context, query string) ([]gitlab.User, error) {
	m.trackCall("SearchUsers", map[string]interface{}{
		"query": query,
	})
	return m.SearchUsersResponse, m.SearchUsersError
}

// CreateMergeRequest implements gitlab.API.
func (m *GitLabAPI) CreateMergeRequest(_ context.Context, req gitlab.MRRequest) (string, error) {
	m.trackCall("CreateMergeRequest", map[string]interface{}{
		"title":        req.Title,
		"sourceBranch": req.SourceBranch,
		"targetBranch": req.TargetBranch,
	})
	m.mu.Lock()
	reqCopy := req
	m.LastMRRequest = &reqCopy
	m.mu.Unlock()
	return m.CreateMergeRequestURL, m.CreateMergeRequestError
}

// GetCallCount returns how many times the named method was called.
func (m *GitLabAPI) GetCallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, call := range m.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

func (m *GitLabAPI) trackCall(method string, args map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MethodCall{Method: method, Args: args})
}

// Ensure GitLabAPI implements gitlab.API at compile time.
var _ gitlab.API = (*GitLabAPI)(nil)
