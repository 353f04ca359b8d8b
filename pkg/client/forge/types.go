package forge

import (
	"context"
	"fmt"
	"strings"
)

// RepoRef identifies a repository as owner/name.
type RepoRef struct {
	Owner string
	Name  string
}

// ParseRepoRef splits an "owner/name" string.
func ParseRepoRef(fullName string) (RepoRef, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidRepoRef, fullName)
	}

	return RepoRef{Owner: owner, Name: name}, nil
}

// String returns owner/name.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// RepoInfo is the repository metadata the sync inspects.
type RepoInfo struct {
	Ref           RepoRef
	FullName      string
	DefaultBranch string
	Fork          bool
	Archived      bool
}

// File is a decoded text file at a ref.
type File struct {
	Path    string
	Content string
	// SHA is the blob SHA, required to update the file.
	SHA string
}

// FileChange creates a file (empty SHA) or updates it.
type FileChange struct {
	Path    string
	Content string
	Branch  string
	Message string
	SHA     string
}

// PullRequest is an open or freshly created pull request.
type PullRequest struct {
	Number int
	Title  string
	Body   string
	URL    string
}

// NewPullRequest describes a pull request to open.
type NewPullRequest struct {
	Title string
	Body  string
	// Head is the source branch, optionally "owner:branch".
	Head string
	Base string
}

// Client is the set of remote operations used by the OEP-2 sync.
type Client interface {
	Repository(ctx context.Context, repo RepoRef) (RepoInfo, error)
	BranchSHA(ctx context.Context, repo RepoRef, branch string) (string, error)
	EnsureBranch(ctx context.Context, repo RepoRef, name, fromSHA string) (bool, error)
	ReadText(ctx context.Context, repo RepoRef, path, ref string) (File, error)
	WriteText(ctx context.Context, repo RepoRef, change FileChange) error
	FindOpenPullRequest(ctx context.Context, repo RepoRef, head, base string) (*PullRequest, error)
	CreatePullRequest(ctx context.Context, repo RepoRef, pull NewPullRequest) (*PullRequest, error)
	UpdatePullRequest(ctx context.Context, repo RepoRef, number int, title, body string) (*PullRequest, error)
	ListOrgRepositories(ctx context.Context, org string) ([]RepoInfo, error)
}
