// Package main provides the entry point for the glpm CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/sgaunet/bullets"
	"github.com/spf13/cobra"

	"github.com/uggla/gitlab-push-and-mr/internal/logger"
	"github.com/uggla/gitlab-push-and-mr/pkg/config"
	"github.com/uggla/gitlab-push-and-mr/pkg/git"
	"github.com/uggla/gitlab-push-and-mr/pkg/gitlab"
	"github.com/uggla/gitlab-push-and-mr/pkg/pipeline"
)

var (
	title        string
	description  string
	targetBranch string
	assignee     string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "glpm",
	Short: "Push the current branch and open a GitLab merge request",
	Long: `glpm pushes the current branch to the origin remote and, once the push
succeeds, opens a merge request against the target branch. The target
project and an optional assignee are resolved through the GitLab API.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		return runPushAndMR()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&title, "title", "t", "", "The merge request title")
	rootCmd.Flags().StringVarP(&description, "description", "d", "", "The merge request description")
	rootCmd.Flags().StringVarP(&targetBranch, "target-branch", "b", "master", "The merge request target branch")
	rootCmd.Flags().StringVarP(&assignee, "assignee", "a", "", "The merge request assignee (name, username or id)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Set log level (debug, info, warn, error)")
	_ = rootCmd.MarkFlagRequired("title")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runPushAndMR runs the two phases in order: push the current branch, then
// create the merge request. The pipeline only starts once the push has
// returned successfully.
func runPushAndMR() error {
	log := logger.NewLogger(logLevel)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Debug("Configuration loaded successfully")

	repo, err := git.OpenRepository(".")
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}

	currentBranch, err := repo.GetCurrentBranch()
	if err != nil {
		return fmt.Errorf("failed to get current branch: %w", err)
	}
	log.Info("Current branch: " + currentBranch)

	remoteURL, err := repo.GetRemoteURL("origin")
	if err != nil {
		return fmt.Errorf("failed to get remote URL: %w", err)
	}

	auth, err := buildAuth(cfg)
	if err != nil {
		return err
	}

	log.Info("Pushing branch: " + currentBranch)
	if err := repo.PushBranch(currentBranch, auth); err != nil {
		return fmt.Errorf("failed to push branch: %w", err)
	}
	log.Info("Successfully pushed: refs/heads/" + currentBranch)

	return runPipeline(cfg, log, currentBranch, remoteURL)
}

// buildAuth selects the push credentials: basic auth when a password is
// configured, SSH key auth otherwise.
func buildAuth(cfg *config.Config) (transport.AuthMethod, error) {
	if cfg.UseBasicAuth() {
		return git.BasicAuth(cfg.User, cfg.Password), nil
	}

	auth, err := git.SSHKeyAuth(cfg.SSHKeyFile, cfg.SSHPassphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare ssh credentials: %w", err)
	}
	return auth, nil
}

func runPipeline(cfg *config.Config, log *bullets.Logger, currentBranch, remoteURL string) error {
	client := gitlab.NewClient(cfg.APIHost(), cfg.APIKey)
	client.SetLogger(log)

	p := pipeline.New(cfg, client)
	p.SetLogger(log)

	url, err := p.Run(context.Background(), pipeline.Params{
		Title:        title,
		Description:  description,
		SourceBranch: currentBranch,
		TargetBranch: targetBranch,
		Assignee:     assignee,
		RemoteURL:    remoteURL,
	})
	if err != nil {
		return err
	}

	log.Info("Pushed and created merge request successfully: " + url)
	return nil
}
