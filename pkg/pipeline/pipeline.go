package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sgaunet/bullets"

	"github.com/uggla/gitlab-push-and-mr/internal/logger"
	"github.com/uggla/gitlab-push-and-mr/pkg/config"
	"github.com/uggla/gitlab-push-and-mr/pkg/gitlab"
)

// Params carries the per-invocation inputs of a pipeline run.
type Params struct {
	Title        string
	Description  string
	SourceBranch string
	TargetBranch string
	Assignee     string
	RemoteURL    string
}

// Pipeline runs the merge request creation flow. Stages are fail-fast: the
// first failing stage halts the run, and nothing before submission has side
// effects, so there is no rollback.
type Pipeline struct {
	cfg *config.Config
	api gitlab.API
	log *bullets.Logger
}

// New creates a pipeline over the given configuration and API client.
func New(cfg *config.Config, api gitlab.API) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		api: api,
		log: logger.NoLogger(),
	}
}

// SetLogger sets the logger for the pipeline.
func (p *Pipeline) SetLogger(log *bullets.Logger) {
	p.log = log
}

// Run executes assignee resolution, project matching and submission in
// order and returns the web URL of the created merge request.
func (p *Pipeline) Run(ctx context.Context, params Params) (string, error) {
	assigneeID, err := p.ResolveAssignee(ctx, params.Assignee)
	if err != nil {
		return "", fmt.Errorf("could not resolve assignee: %w", err)
	}

	scope := gitlab.Scope{Group: p.cfg.Group, User: p.cfg.User}
	projects, err := p.api.FetchProjects(ctx, scope)
	if err != nil {
		return "", fmt.Errorf("could not fetch projects: %w", err)
	}

	project, ok := MatchProject(params.RemoteURL, projects)
	if !ok {
		return "", fmt.Errorf("%w: no project matches remote %s", errProjectNotFound, params.RemoteURL)
	}
	p.log.Debug(fmt.Sprintf("Project matched: %s (id %d)", project.Name, project.ID))

	url, err := p.api.CreateMergeRequest(ctx, gitlab.MRRequest{
		Project:      project,
		Title:        params.Title,
		Description:  params.Description,
		SourceBranch: params.SourceBranch,
		TargetBranch: params.TargetBranch,
		Labels:       p.cfg.MRLabels,
		AssigneeID:   assigneeID,
	})
	if err != nil {
		return "", fmt.Errorf("could not create merge request: %w", err)
	}

	return url, nil
}

// ResolveAssignee turns a free-form query into a user id. An empty query
// means no assignee. A numeric query is trusted as an id without any API
// call. Anything else goes through the user search endpoint and must match
// exactly one user; zero or multiple matches halt the pipeline.
func (p *Pipeline) ResolveAssignee(ctx context.Context, query string) (*int64, error) {
	if query == "" {
		return nil, nil
	}

	if id, err := strconv.ParseUint(query, 10, 63); err == nil {
		assigneeID := int64(id)
		return &assigneeID, nil
	}

	users, err := p.api.SearchUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not fetch users: %w", err)
	}

	switch {
	case len(users) == 0:
		return nil, fmt.Errorf("%w: %q", errAssigneeNotFound, query)
	case len(users) > 1:
		p.log.Info("Available users:")
		for _, user := range users {
			p.log.Info(fmt.Sprintf("id: %d, user: %s, username: %s", user.ID, user.Name, user.Username))
		}
		return nil, fmt.Errorf("%w: %q matched %d users", errAssigneeAmbiguous, query, len(users))
	default:
		return &users[0].ID, nil
	}
}

// MatchProject finds the project whose clone URL equals the local remote
// URL, compared for exact string equality. SSH URLs win over HTTPS URLs:
// the whole list is scanned for an SSH match before HTTPS is considered.
func MatchProject(remoteURL string, projects []gitlab.Project) (gitlab.Project, bool) {
	for _, project := range projects {
		if project.SSHURLToRepo == remoteURL {
			return project, true
		}
	}
	for _, project := range projects {
		if project.HTTPURLToRepo == remoteURL {
			return project, true
		}
	}
	return gitlab.Project{}, false
}
