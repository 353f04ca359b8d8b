package oep2_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openedx/repotools/pkg/client/forge"
)

type fakeRepo struct {
	info      forge.RepoInfo
	branches  map[string]string
	files     map[string]map[string]forge.File
	pulls     map[string]*forge.PullRequest
	forbidden bool
}

// fakeForge is an in-memory forge.Client recording every mutating call.
type fakeForge struct {
	mu       sync.Mutex
	repos    map[string]*fakeRepo
	orgs     map[string][]string
	mutation []string
	nextPull int
}

var _ forge.Client = (*fakeForge)(nil)

func newFakeForge() *fakeForge {
	return &fakeForge{
		repos:    map[string]*fakeRepo{},
		orgs:     map[string][]string{},
		nextPull: 1,
	}
}

func (f *fakeForge) addRepo(fullName, defaultBranch string) *fakeRepo {
	ref, err := forge.ParseRepoRef(fullName)
	if err != nil {
		panic(err)
	}

	repo := &fakeRepo{
		info: forge.RepoInfo{
			Ref:           ref,
			FullName:      fullName,
			DefaultBranch: defaultBranch,
		},
		branches: map[string]string{defaultBranch: "sha-" + defaultBranch},
		files:    map[string]map[string]forge.File{},
		pulls:    map[string]*forge.PullRequest{},
	}

	f.repos[fullName] = repo
	f.orgs[ref.Owner] = append(f.orgs[ref.Owner], fullName)

	return repo
}

func (r *fakeRepo) putFile(branch, path, content string) {
	if r.files[branch] == nil {
		r.files[branch] = map[string]forge.File{}
	}

	r.files[branch][path] = forge.File{Path: path, Content: content, SHA: fmt.Sprintf("blob-%d", len(content))}
}

func (f *fakeForge) mutations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.mutation...)
}

func (f *fakeForge) lookup(ref forge.RepoRef) (*fakeRepo, error) {
	repo, ok := f.repos[ref.String()]
	if !ok {
		return nil, fmt.Errorf("repository %s: %w", ref, forge.ErrNotFound)
	}

	return repo, nil
}

func (f *fakeForge) Repository(_ context.Context, ref forge.RepoRef) (forge.RepoInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return forge.RepoInfo{}, err
	}

	return repo.info, nil
}

func (f *fakeForge) BranchSHA(_ context.Context, ref forge.RepoRef, branch string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return "", err
	}

	sha, ok := repo.branches[branch]
	if !ok {
		return "", fmt.Errorf("branch %s: %w", branch, forge.ErrNotFound)
	}

	return sha, nil
}

func (f *fakeForge) EnsureBranch(_ context.Context, ref forge.RepoRef, name, fromSHA string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return false, err
	}

	if _, ok := repo.branches[name]; ok {
		return false, nil
	}

	repo.branches[name] = fromSHA
	f.mutation = append(f.mutation, fmt.Sprintf("branch %s:%s", ref, name))

	return true, nil
}

func (f *fakeForge) ReadText(_ context.Context, ref forge.RepoRef, path, branch string) (forge.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return forge.File{}, err
	}

	if branch == "" {
		branch = repo.info.DefaultBranch
	}

	file, ok := repo.files[branch][path]
	if !ok {
		return forge.File{}, fmt.Errorf("%s@%s: %w", path, branch, forge.ErrNotFound)
	}

	return file, nil
}

func (f *fakeForge) WriteText(_ context.Context, ref forge.RepoRef, change forge.FileChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return err
	}

	if repo.forbidden {
		return fmt.Errorf("write %s: %w", change.Path, forge.ErrForbidden)
	}

	verb := "create"
	if change.SHA != "" {
		verb = "update"
	}

	repo.putFile(change.Branch, change.Path, change.Content)
	f.mutation = append(f.mutation, fmt.Sprintf("%s %s:%s/%s", verb, ref, change.Branch, change.Path))

	return nil
}

func (f *fakeForge) FindOpenPullRequest(
	_ context.Context,
	ref forge.RepoRef,
	head, _ string,
) (*forge.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return nil, err
	}

	_, branch, _ := strings.Cut(head, ":")

	return repo.pulls[branch], nil
}

func (f *fakeForge) CreatePullRequest(
	_ context.Context,
	ref forge.RepoRef,
	pull forge.NewPullRequest,
) (*forge.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return nil, err
	}

	created := &forge.PullRequest{
		Number: f.nextPull,
		Title:  pull.Title,
		Body:   pull.Body,
		URL:    fmt.Sprintf("https://github.test/%s/pull/%d", ref, f.nextPull),
	}
	f.nextPull++

	repo.pulls[pull.Head] = created
	f.mutation = append(f.mutation, fmt.Sprintf("pull %s %s->%s", ref, pull.Head, pull.Base))

	return created, nil
}

func (f *fakeForge) UpdatePullRequest(
	_ context.Context,
	ref forge.RepoRef,
	number int,
	title, body string,
) (*forge.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, err := f.lookup(ref)
	if err != nil {
		return nil, err
	}

	for _, pull := range repo.pulls {
		if pull.Number == number {
			pull.Title = title
			pull.Body = body
			f.mutation = append(f.mutation, fmt.Sprintf("edit %s#%d", ref, number))

			return pull, nil
		}
	}

	return nil, fmt.Errorf("pull %d: %w", number, forge.ErrNotFound)
}

func (f *fakeForge) ListOrgRepositories(_ context.Context, org string) ([]forge.RepoInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	names, ok := f.orgs[org]
	if !ok {
		return nil, fmt.Errorf("org %s: %w", org, forge.ErrNotFound)
	}

	infos := make([]forge.RepoInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, f.repos[name].info)
	}

	return infos, nil
}
