package forge

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v72/github"
)

const (
	branchRefPrefix = "refs/heads/"
	maxRedirects    = 3
	pageSize        = 100
)

// GitHubClient implements Client on top of the GitHub REST API.
type GitHubClient struct {
	client *github.Client
}

var _ Client = (*GitHubClient)(nil)

// NewGitHubClient builds a client authenticated with token. A non-empty
// apiURL targets a GitHub Enterprise Server instance.
func NewGitHubClient(token, apiURL string) (*GitHubClient, error) {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	if apiURL != "" {
		enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("configure github api url %q: %w", apiURL, err)
		}

		client = enterprise
	}

	return NewFromGitHub(client), nil
}

// NewFromGitHub wraps an already configured go-github client.
func NewFromGitHub(client *github.Client) *GitHubClient {
	return &GitHubClient{client: client}
}

// Repository fetches repository metadata.
func (c *GitHubClient) Repository(ctx context.Context, repo RepoRef) (RepoInfo, error) {
	ghRepo, resp, err := c.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return RepoInfo{}, classify(resp, err, "get repository %s", repo)
	}

	return repoInfo(ghRepo), nil
}

// BranchSHA returns the head commit SHA of branch.
func (c *GitHubClient) BranchSHA(ctx context.Context, repo RepoRef, branch string) (string, error) {
	ghBranch, resp, err := c.client.Repositories.GetBranch(ctx, repo.Owner, repo.Name, branch, maxRedirects)
	if err != nil {
		return "", classify(resp, err, "get branch %s:%s", repo, branch)
	}

	sha := ghBranch.GetCommit().GetSHA()
	if sha == "" {
		return "", fmt.Errorf("get branch %s:%s: %w: no commit", repo, branch, ErrNotFound)
	}

	return sha, nil
}

// EnsureBranch creates branch name at fromSHA unless it already exists.
// It reports whether the branch was created.
func (c *GitHubClient) EnsureBranch(
	ctx context.Context,
	repo RepoRef,
	name, fromSHA string,
) (bool, error) {
	_, err := c.BranchSHA(ctx, repo, name)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	_, resp, err := c.client.Git.CreateRef(ctx, repo.Owner, repo.Name, &github.Reference{
		Ref:    github.Ptr(branchRefPrefix + name),
		Object: &github.GitObject{SHA: github.Ptr(fromSHA)},
	})
	if err != nil {
		return false, classify(resp, err, "create branch %s:%s", repo, name)
	}

	return true, nil
}

// ReadText returns the decoded content of path at ref.
func (c *GitHubClient) ReadText(ctx context.Context, repo RepoRef, path, ref string) (File, error) {
	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}

	content, _, resp, err := c.client.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return File{}, classify(resp, err, "read %s from %s@%s", path, repo, ref)
	}

	if content == nil {
		return File{}, fmt.Errorf("read %s from %s@%s: %w: path is a directory", path, repo, ref, ErrNotFound)
	}

	text, err := content.GetContent()
	if err != nil {
		return File{}, fmt.Errorf("decode %s from %s@%s: %w", path, repo, ref, err)
	}

	return File{Path: path, Content: text, SHA: content.GetSHA()}, nil
}

// WriteText creates the file when change.SHA is empty and updates it otherwise.
func (c *GitHubClient) WriteText(ctx context.Context, repo RepoRef, change FileChange) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(change.Message),
		Content: []byte(change.Content),
		Branch:  github.Ptr(change.Branch),
	}

	if change.SHA == "" {
		_, resp, err := c.client.Repositories.CreateFile(ctx, repo.Owner, repo.Name, change.Path, opts)

		return classify(resp, err, "create %s on %s:%s", change.Path, repo, change.Branch)
	}

	opts.SHA = github.Ptr(change.SHA)
	_, resp, err := c.client.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, change.Path, opts)

	return classify(resp, err, "update %s on %s:%s", change.Path, repo, change.Branch)
}

// FindOpenPullRequest returns the first open pull request from head into
// base, or nil when there is none. An empty base matches any base branch.
func (c *GitHubClient) FindOpenPullRequest(
	ctx context.Context,
	repo RepoRef,
	head, base string,
) (*PullRequest, error) {
	pulls, resp, err := c.client.PullRequests.List(ctx, repo.Owner, repo.Name, &github.PullRequestListOptions{
		State: "open",
		Head:  head,
		Base:  base,
	})
	if err != nil {
		return nil, classify(resp, err, "list pull requests of %s", repo)
	}

	if len(pulls) == 0 {
		return nil, nil //nolint:nilnil // absence is not an error
	}

	return pullRequest(pulls[0]), nil
}

// CreatePullRequest opens a pull request.
func (c *GitHubClient) CreatePullRequest(
	ctx context.Context,
	repo RepoRef,
	pull NewPullRequest,
) (*PullRequest, error) {
	created, resp, err := c.client.PullRequests.Create(ctx, repo.Owner, repo.Name, &github.NewPullRequest{
		Title: github.Ptr(pull.Title),
		Body:  github.Ptr(pull.Body),
		Head:  github.Ptr(pull.Head),
		Base:  github.Ptr(pull.Base),
	})
	if err != nil {
		return nil, classify(resp, err, "create pull request on %s", repo)
	}

	return pullRequest(created), nil
}

// UpdatePullRequest replaces the title and body of an existing pull request.
func (c *GitHubClient) UpdatePullRequest(
	ctx context.Context,
	repo RepoRef,
	number int,
	title, body string,
) (*PullRequest, error) {
	updated, resp, err := c.client.PullRequests.Edit(ctx, repo.Owner, repo.Name, number, &github.PullRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return nil, classify(resp, err, "update pull request %s#%d", repo, number)
	}

	return pullRequest(updated), nil
}

// ListOrgRepositories returns every repository of org, following pagination.
func (c *GitHubClient) ListOrgRepositories(ctx context.Context, org string) ([]RepoInfo, error) {
	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var repos []RepoInfo

	for {
		page, resp, err := c.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, classify(resp, err, "list repositories of %s", org)
		}

		for _, ghRepo := range page {
			repos = append(repos, repoInfo(ghRepo))
		}

		if resp == nil || resp.NextPage == 0 {
			return repos, nil
		}

		opts.Page = resp.NextPage
	}
}

func repoInfo(ghRepo *github.Repository) RepoInfo {
	return RepoInfo{
		Ref: RepoRef{
			Owner: ghRepo.GetOwner().GetLogin(),
			Name:  ghRepo.GetName(),
		},
		FullName:      ghRepo.GetFullName(),
		DefaultBranch: ghRepo.GetDefaultBranch(),
		Fork:          ghRepo.GetFork(),
		Archived:      ghRepo.GetArchived(),
	}
}

func pullRequest(pull *github.PullRequest) *PullRequest {
	return &PullRequest{
		Number: pull.GetNumber(),
		Title:  pull.GetTitle(),
		Body:   pull.GetBody(),
		URL:    pull.GetHTMLURL(),
	}
}
