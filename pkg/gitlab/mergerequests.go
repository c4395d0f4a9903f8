package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// CreateMergeRequest opens a merge request for the given request and
// returns the web URL of the created merge request. This is the only
// mutating call the client makes.
func (c *Client) CreateMergeRequest(ctx context.Context, req MRRequest) (string, error) {
	payload := mrPayload{
		ID:                 strconv.FormatInt(req.Project.ID, 10),
		Title:              req.Title,
		Description:        req.Description,
		SourceBranch:       req.SourceBranch,
		TargetBranch:       req.TargetBranch,
		Labels:             strings.Join(req.Labels, ", "),
		RemoveSourceBranch: removeSourceBranch,
		Squash:             squashCommits,
		AssigneeID:         req.AssigneeID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", decodeError(err)
	}

	mrURL := fmt.Sprintf("%s/api/v4/projects/%d/merge_requests", c.host, req.Project.ID)
	respBody, _, apiErr := c.request(ctx, http.MethodPost, mrURL, body)
	if apiErr != nil {
		return "", apiErr
	}

	var resp mrResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", decodeError(err)
	}

	c.log.Debug("Merge request created: " + resp.WebURL)
	return resp.WebURL, nil
}
