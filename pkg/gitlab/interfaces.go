package gitlab

import "context"

// API defines the client surface the merge request pipeline depends on.
// This interface enables dependency injection and facilitates testing the
// pipeline against mock implementations instead of a live host.
type API interface {
	// FetchProjects returns every project visible under the given scope.
	FetchProjects(ctx context.Context, scope Scope) ([]Project, error)

	// SearchUsers returns the users matching a free-form search query.
	SearchUsers(ctx context.Context, query string) ([]User, error)

	// CreateMergeRequest opens a merge request and returns its web URL.
	CreateMergeRequest(ctx context.Context, req MRRequest) (string, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)
