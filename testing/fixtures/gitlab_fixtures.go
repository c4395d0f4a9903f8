// Package fixtures provides common test data structures for testing.
package fixtures

import "github.com/uggla/gitlab-push-and-mr/pkg/gitlab"

// Test constants shared by fixtures.
const (
	WidgetsProjectID = 42
	WidgetsRemoteSSH = "git@gitlab.com:acme/widgets.git"
	WidgetsMRURL     = "https://gitlab.com/acme/widgets/-/merge_requests/42"
)

// WidgetsProject returns the project matching the canonical test remote.
func WidgetsProject() gitlab.Project {
	return gitlab.Project{
		ID:            WidgetsProjectID,
		Name:          "widgets",
		SSHURLToRepo:  WidgetsRemoteSSH,
		HTTPURLToRepo: "https://gitlab.com/acme/widgets.git",
	}
}

// ValidProjects returns a small project listing with distinct clone URLs,
// including the widgets project.
func ValidProjects() []gitlab.Project {
	return []gitlab.Project{
		{
			ID:            7,
			Name:          "gadgets",
			SSHURLToRepo:  "git@gitlab.com:acme/gadgets.git",
			HTTPURLToRepo: "https://gitlab.com/acme/gadgets.git",
		},
		WidgetsProject(),
		{
			ID:            99,
			Name:          "sprockets",
			SSHURLToRepo:  "git@gitlab.com:acme/sprockets.git",
			HTTPURLToRepo: "https://gitlab.com/acme/sprockets.git",
		},
	}
}

// SingleUser returns a one-element user search result.
func SingleUser() []gitlab.User {
	return []gitlab.User{
		{ID: 12, Name: "John Doe", Username: "jdoe"},
	}
}

// AmbiguousUsers returns a user search result with several candidates.
func AmbiguousUsers() []gitlab.User {
	return []gitlab.User{
		{ID: 12, Name: "John Doe", Username: "jdoe"},
		{ID: 13, Name: "John Donne", Username: "jdonne"},
		{ID: 14, Name: "Johnny Dawn", Username: "jdawn"},
	}
}
