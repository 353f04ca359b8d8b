package forge

import (
	"context"

	"github.com/openedx/repotools/pkg/client/netretry"
)

// RetryingClient retries the read calls of a Client on transient failures.
// Writes are passed through once, since they are not idempotent.
type RetryingClient struct {
	Client

	policy netretry.Policy
}

var _ Client = (*RetryingClient)(nil)

// NewRetryingClient wraps client with policy.
func NewRetryingClient(client Client, policy netretry.Policy) *RetryingClient {
	return &RetryingClient{Client: client, policy: policy}
}

// Repository implements Client.
func (c *RetryingClient) Repository(ctx context.Context, repo RepoRef) (RepoInfo, error) {
	var info RepoInfo

	err := netretry.Do(ctx, c.policy, func() error {
		var err error

		info, err = c.Client.Repository(ctx, repo)

		return err
	})

	return info, err
}

// BranchSHA implements Client.
func (c *RetryingClient) BranchSHA(ctx context.Context, repo RepoRef, branch string) (string, error) {
	var sha string

	err := netretry.Do(ctx, c.policy, func() error {
		var err error

		sha, err = c.Client.BranchSHA(ctx, repo, branch)

		return err
	})

	return sha, err
}

// ReadText implements Client.
func (c *RetryingClient) ReadText(ctx context.Context, repo RepoRef, path, ref string) (File, error) {
	var file File

	err := netretry.Do(ctx, c.policy, func() error {
		var err error

		file, err = c.Client.ReadText(ctx, repo, path, ref)

		return err
	})

	return file, err
}

// FindOpenPullRequest implements Client.
func (c *RetryingClient) FindOpenPullRequest(
	ctx context.Context,
	repo RepoRef,
	head, base string,
) (*PullRequest, error) {
	var pull *PullRequest

	err := netretry.Do(ctx, c.policy, func() error {
		var err error

		pull, err = c.Client.FindOpenPullRequest(ctx, repo, head, base)

		return err
	})

	return pull, err
}

// ListOrgRepositories implements Client.
func (c *RetryingClient) ListOrgRepositories(ctx context.Context, org string) ([]RepoInfo, error) {
	var repos []RepoInfo

	err := netretry.Do(ctx, c.policy, func() error {
		var err error

		repos, err = c.Client.ListOrgRepositories(ctx, org)

		return err
	})

	return repos, err
}
