package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
)

// FetchProjects returns every project visible under the given scope,
// concatenated across all pages of the listing.
func (c *Client) FetchProjects(ctx context.Context, scope Scope) ([]Project, error) {
	pages, apiErr := c.fetchAll(ctx, scope, "projects", defaultPerPage)
	if apiErr != nil {
		return nil, apiErr
	}

	var projects []Project
	for _, page := range pages {
		var batch []Project
		if err := json.Unmarshal(page, &batch); err != nil {
			return nil, decodeError(err)
		}
		projects = append(projects, batch...)
	}

	c.log.Debug(fmt.Sprintf("Projects retrieved, count: %d", len(projects)))
	return projects, nil
}
