// Package gitlab talks to the GitLab REST API (v4) for the resources this
// tool needs: project listings, user search and merge request creation.
// There is no generic API abstraction; the client covers exactly those
// endpoints and nothing else.
package gitlab

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/sgaunet/bullets"

	"github.com/uggla/gitlab-push-and-mr/internal/logger"
)

// NewClient creates a client for the given host, e.g. https://gitlab.com.
// Every request carries the access token in the PRIVATE-TOKEN header. No
// timeout is configured on the transport; callers bound requests through
// ctx when they need to.
func NewClient(host, token string) *Client {
	return &Client{
		host:       host,
		token:      token,
		httpClient: &http.Client{},
		log:        logger.NoLogger(),
	}
}

// SetLogger sets the logger used for debug traces.
func (c *Client) SetLogger(log *bullets.Logger) {
	c.log = log
}

// request performs a single API call and returns the raw response body and
// headers. Non-2xx statuses fail with KindUnsuccessful, network failures
// with KindTransport. There are no retries.
func (c *Client) request(ctx context.Context, method, url string, body []byte) ([]byte, http.Header, *APIError) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, nil, transportError(err)
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, unsuccessfulError(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, transportError(err)
	}
	return data, resp.Header, nil
}

// scopedURL builds {host}/api/v4/{groups|users}/{value}/{resource}. The
// group scope wins when both are set; neither set is a config error.
func (c *Client) scopedURL(scope Scope, resource string, perPage int) (string, *APIError) {
	switch {
	case scope.Group != "":
		return fmt.Sprintf("%s/api/v4/groups/%s/%s?per_page=%d", c.host, scope.Group, resource, perPage), nil
	case scope.User != "":
		return fmt.Sprintf("%s/api/v4/users/%s/%s?per_page=%d", c.host, scope.User, resource, perPage), nil
	default:
		return "", configError()
	}
}

// fetchAll retrieves every page of a scoped resource listing. The API only
// reveals the total page count in the x-total-pages header of the first
// response, so page 1 is fetched on its own and the remaining pages fan out
// concurrently. Pages come back in page order regardless of which request
// finishes first.
func (c *Client) fetchAll(ctx context.Context, scope Scope, resource string, perPage int) ([][]byte, *APIError) {
	base, apiErr := c.scopedURL(scope, resource, perPage)
	if apiErr != nil {
		return nil, apiErr
	}

	body, headers, apiErr := c.request(ctx, http.MethodGet, base, nil)
	if apiErr != nil {
		return nil, apiErr
	}

	// An absent or unparsable header means a single page, never an error.
	totalPages, _ := strconv.Atoi(headers.Get(totalPagesHeader))
	if totalPages <= 1 {
		return [][]byte{body}, nil
	}

	type pageResult struct {
		page int
		body []byte
		err  *APIError
	}

	resultChan := make(chan pageResult, totalPages-1)
	var wg sync.WaitGroup

	for page := 2; page <= totalPages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			pageURL := fmt.Sprintf("%s&page=%d", base, page)
			pageBody, _, err := c.request(ctx, http.MethodGet, pageURL, nil)
			resultChan <- pageResult{page: page, body: pageBody, err: err}
		}(page)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	ordered := make([][]byte, totalPages+1)
	ordered[1] = body
	failed := false
	for result := range resultChan {
		if result.err != nil {
			// The per-page cause is collapsed into a generic 500 below;
			// the debug trace is the only place it survives.
			c.log.Debug(fmt.Sprintf("Page %d of %s failed: %v", result.page, resource, result.err))
			failed = true
			continue
		}
		ordered[result.page] = result.body
	}
	if failed {
		return nil, unsuccessfulError(http.StatusInternalServerError)
	}

	return ordered[1:], nil
}
