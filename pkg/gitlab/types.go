package gitlab

import (
	"net/http"

	"github.com/sgaunet/bullets"
)

// Constants for GitLab API operations.
const (
	defaultPerPage   = 20
	totalPagesHeader = "x-total-pages"

	// Merge request policy flags. The source branch is always removed and
	// commits are never squashed; neither is user-configurable.
	removeSourceBranch = true
	squashCommits      = false
)

// Scope selects how the API namespaces project listings: by organizational
// group or by individual user account. Exactly one field should be set.
type Scope struct {
	Group string
	User  string
}

// Project is one repository entry from a project listing. Immutable once
// fetched; its clone URLs are the identity used for remote matching.
type Project struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SSHURLToRepo  string `json:"ssh_url_to_repo"`
	HTTPURLToRepo string `json:"http_url_to_repo"`
}

// User is a user record from the search endpoint.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// MRRequest carries everything needed to open a merge request.
type MRRequest struct {
	Project      Project
	Title        string
	Description  string
	SourceBranch string
	TargetBranch string
	Labels       []string
	AssigneeID   *int64
}

// mrPayload is the JSON body posted to the merge request endpoint.
type mrPayload struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	SourceBranch       string `json:"source_branch"`
	TargetBranch       string `json:"target_branch"`
	Labels             string `json:"labels"`
	RemoveSourceBranch bool   `json:"remove_source_branch"`
	Squash             bool   `json:"squash"`
	AssigneeID         *int64 `json:"assignee_id,omitempty"`
}

// mrResponse holds the only field read back from a created merge request.
type mrResponse struct {
	WebURL string `json:"web_url"`
}

// Client issues authenticated requests against a GitLab host.
type Client struct {
	host       string
	token      string
	httpClient *http.Client
	log        *bullets.Logger
}
