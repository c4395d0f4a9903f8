// Package git wraps the local repository operations needed to push the
// current branch to its remote.
package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

var (
	errHeadNotBranch = errors.New("HEAD is not pointing to a branch")
	errNoRemoteURL   = errors.New("no URLs found for remote")

	// Exported errors for testing and external use.
	ErrHeadNotBranch = errHeadNotBranch
	ErrNoRemoteURL   = errNoRemoteURL
)

// Repository wraps a local git repository.
type Repository struct {
	repo *gogit.Repository
}

// OpenRepository opens the repository at path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &Repository{repo: repo}, nil
}

// GetCurrentBranch returns the short name of the branch HEAD points to.
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", errHeadNotBranch
	}

	return head.Name().Short(), nil
}

// GetRemoteURL returns the first URL of the named remote.
func (r *Repository) GetRemoteURL(remoteName string) (string, error) {
	remote, err := r.repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s", errNoRemoteURL, remoteName)
	}

	return urls[0], nil
}

// PushBranch pushes refs/heads/<branch> to origin with the given auth. A
// remote that is already up to date counts as a successful push.
func (r *Repository) PushBranch(branchName string, auth transport.AuthMethod) error {
	err := r.repo.Push(&gogit.PushOptions{
		RemoteName: "origin",
		RefSpecs: []gitconfig.RefSpec{
			gitconfig.RefSpec("refs/heads/" + branchName + ":refs/heads/" + branchName),
		},
		Auth: auth,
	})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}

	return nil
}
