package gitlab_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/uggla/gitlab-push-and-mr/pkg/gitlab"
)

// projectsServer serves a paginated group project listing and counts the
// requests it receives.
type projectsServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests int
	tokens   []string

	totalPages string // value of the x-total-pages header, "" to omit
	failPage   int    // page that answers failStatus, 0 for none
	failStatus int
}

func newProjectsServer(totalPages string, failPage, failStatus int) *projectsServer {
	s := &projectsServer{
		totalPages: totalPages,
		failPage:   failPage,
		failStatus: failStatus,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *projectsServer) handle(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		page, _ = strconv.Atoi(p)
	}

	s.mu.Lock()
	s.requests++
	s.tokens = append(s.tokens, r.Header.Get("PRIVATE-TOKEN"))
	s.mu.Unlock()

	if s.failPage != 0 && page == s.failPage {
		w.WriteHeader(s.failStatus)
		return
	}

	// Slow down page 2 so later pages can finish first; ordering must not
	// depend on completion order.
	if page == 2 {
		time.Sleep(30 * time.Millisecond)
	}

	if s.totalPages != "" {
		w.Header().Set("x-total-pages", s.totalPages)
	}
	// Page 1 carries two projects, later pages one each.
	if page == 1 {
		fmt.Fprint(w, `[{"id":1,"name":"p1","ssh_url_to_repo":"ssh1","http_url_to_repo":"http1"},`+
			`{"id":2,"name":"p2","ssh_url_to_repo":"ssh2","http_url_to_repo":"http2"}]`)
		return
	}
	id := page + 1
	fmt.Fprintf(w, `[{"id":%d,"name":"p%d","ssh_url_to_repo":"ssh%d","http_url_to_repo":"http%d"}]`, id, id, id, id)
}

func (s *projectsServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func TestFetchProjectsSinglePage(t *testing.T) {
	tests := []struct {
		name       string
		totalPages string
	}{
		{name: "header says one page", totalPages: "1"},
		{name: "header absent", totalPages: ""},
		{name: "header not numeric", totalPages: "garbage"},
		{name: "header zero", totalPages: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newProjectsServer(tt.totalPages, 0, 0)
			defer server.Close()

			client := gitlab.NewClient(server.URL, "secret")
			projects, err := client.FetchProjects(context.Background(), gitlab.Scope{Group: "acme"})
			if err != nil {
				t.Fatalf("FetchProjects failed: %v", err)
			}

			if got := server.requestCount(); got != 1 {
				t.Errorf("Expected exactly 1 request, got %d", got)
			}
			if len(projects) != 2 {
				t.Errorf("Expected 2 projects, got %d", len(projects))
			}
			for _, token := range server.tokens {
				if token != "secret" {
					t.Errorf("Expected PRIVATE-TOKEN header to be set, got %q", token)
				}
			}
		})
	}
}

func TestFetchProjectsMultiplePages(t *testing.T) {
	server := newProjectsServer("3", 0, 0)
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")
	projects, err := client.FetchProjects(context.Background(), gitlab.Scope{Group: "acme"})
	if err != nil {
		t.Fatalf("FetchProjects failed: %v", err)
	}

	if got := server.requestCount(); got != 3 {
		t.Errorf("Expected 1+(P-1)=3 requests, got %d", got)
	}

	// Page 1 first, then pages in page order even though page 2 was slow.
	wantIDs := []int64{1, 2, 3, 4}
	if len(projects) != len(wantIDs) {
		t.Fatalf("Expected %d projects, got %d", len(wantIDs), len(projects))
	}
	for i, want := range wantIDs {
		if projects[i].ID != want {
			t.Errorf("Project %d: expected id %d, got %d", i, want, projects[i].ID)
		}
	}
}

func TestFetchProjectsScopeURLs(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")

	tests := []struct {
		name     string
		scope    gitlab.Scope
		wantPath string
	}{
		{name: "group scope", scope: gitlab.Scope{Group: "acme"}, wantPath: "/api/v4/groups/acme/projects"},
		{name: "user scope", scope: gitlab.Scope{User: "uggla"}, wantPath: "/api/v4/users/uggla/projects"},
		{name: "group wins over user", scope: gitlab.Scope{Group: "acme", User: "uggla"}, wantPath: "/api/v4/groups/acme/projects"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.FetchProjects(context.Background(), tt.scope); err != nil {
				t.Fatalf("FetchProjects failed: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("Expected path %s, got %s", tt.wantPath, gotPath)
			}
		})
	}
}

func TestFetchProjectsNoScope(t *testing.T) {
	server := newProjectsServer("1", 0, 0)
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")
	_, err := client.FetchProjects(context.Background(), gitlab.Scope{})

	var apiErr *gitlab.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != gitlab.KindConfig {
		t.Fatalf("Expected config error, got %v", err)
	}
	if got := server.requestCount(); got != 0 {
		t.Errorf("Expected no requests, got %d", got)
	}
}

func TestFetchProjectsUnauthorized(t *testing.T) {
	server := newProjectsServer("1", 1, http.StatusUnauthorized)
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")
	_, err := client.FetchProjects(context.Background(), gitlab.Scope{Group: "acme"})

	var apiErr *gitlab.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Kind != gitlab.KindUnsuccessful || apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Expected unsuccessful 401, got kind %d status %d", apiErr.Kind, apiErr.Status)
	}
}

func TestFetchProjectsPageFailureCollapses(t *testing.T) {
	// Page 2 fails with 403; the whole fetch reports a generic 500.
	server := newProjectsServer("3", 2, http.StatusForbidden)
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")
	_, err := client.FetchProjects(context.Background(), gitlab.Scope{Group: "acme"})

	var apiErr *gitlab.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Kind != gitlab.KindUnsuccessful || apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected unsuccessful 500 sentinel, got kind %d status %d", apiErr.Kind, apiErr.Status)
	}
	if got := server.requestCount(); got != 3 {
		t.Errorf("Expected all 3 requests to be issued, got %d", got)
	}
}

func TestFetchProjectsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json at all`)
	}))
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")
	_, err := client.FetchProjects(context.Background(), gitlab.Scope{Group: "acme"})

	var apiErr *gitlab.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != gitlab.KindDecode {
		t.Fatalf("Expected decode error, got %v", err)
	}
}

func TestFetchProjectsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // Connection refused from now on

	client := gitlab.NewClient(server.URL, "secret")
	_, err := client.FetchProjects(context.Background(), gitlab.Scope{Group: "acme"})

	var apiErr *gitlab.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != gitlab.KindTransport {
		t.Fatalf("Expected transport error, got %v", err)
	}
	if apiErr.Unwrap() == nil {
		t.Error("Expected transport error to wrap a cause")
	}
}

func TestSearchUsers(t *testing.T) {
	var gotQuery, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		gotToken = r.Header.Get("PRIVATE-TOKEN")
		fmt.Fprint(w, `[{"id":12,"name":"John Doe","username":"jdoe"}]`)
	}))
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")
	users, err := client.SearchUsers(context.Background(), "John Doe")
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}

	if gotQuery != "John Doe" {
		t.Errorf("Expected search query 'John Doe', got %q", gotQuery)
	}
	if gotToken != "secret" {
		t.Errorf("Expected PRIVATE-TOKEN header, got %q", gotToken)
	}
	if len(users) != 1 || users[0].ID != 12 || users[0].Username != "jdoe" {
		t.Errorf("Unexpected users: %+v", users)
	}
}

func TestSearchUsersUnsuccessful(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := gitlab.NewClient(server.URL, "secret")
	_, err := client.SearchUsers(context.Background(), "jdoe")

	var apiErr *gitlab.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Kind != gitlab.KindUnsuccessful || apiErr.Status != http.StatusForbidden {
		t.Errorf("Expected unsuccessful 403, got kind %d status %d", apiErr.Kind, apiErr.Status)
	}
}
