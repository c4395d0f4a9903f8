package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SearchUsers queries the user search endpoint with a free-form string and
// returns every matching user record.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	searchURL := fmt.Sprintf("%s/api/v4/users?search=%s", c.host, url.QueryEscape(query))

	body, _, apiErr := c.request(ctx, http.MethodGet, searchURL, nil)
	if apiErr != nil {
		return nil, apiErr
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, decodeError(err)
	}

	c.log.Debug(fmt.Sprintf("User search for %q matched %d users", query, len(users)))
	return users, nil
}
