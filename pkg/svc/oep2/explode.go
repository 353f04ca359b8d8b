package oep2

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/openedx/repotools/pkg/utils/notify"
)

// Pull request and commit texts used by explode.
const (
	PullRequestTitle = "Add an OEP-2 compliant openedx.yaml file"
	createMessage    = "Add an OEP-2 compliant openedx.yaml file"
	updateMessage    = "Update the OEP-2 openedx.yaml file"

	pullRequestBodyFormat = "\nThis adds an `openedx.yaml` file, as described by OEP-2:\n" +
		"http://open-edx-proposals.readthedocs.io/en/latest/oeps/oep-0002.html\n" +
		"\n" +
		"The data in this file was transformed from the contents of\n" +
		"%s:%s\n"
)

// ExplodeOptions configure an Exploder.
type ExplodeOptions struct {
	// Registry is the repository holding the registry file.
	Registry forge.RepoRef
	// RegistryPath is the registry file inside Registry.
	RegistryPath string
	// RegistryRef is the ref to read the registry from; empty means the default branch.
	RegistryRef string
	// Branch receives the openedx.yaml commits and is the pull request head.
	Branch string
	// DryRun reports every change without applying it.
	DryRun bool
	// Out receives progress notifications.
	Out io.Writer
}

// Summary counts what an explode run did (or would do, when dry).
type Summary struct {
	Repositories int
	Skipped      int
	FilesCreated int
	FilesUpdated int
	PullsCreated int
	PullsUpdated int
}

// Exploder delivers registry entries to their repositories.
type Exploder struct {
	client forge.Client
	opts   ExplodeOptions
}

// NewExploder returns an Exploder using client for every remote call.
func NewExploder(client forge.Client, opts ExplodeOptions) *Exploder {
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	return &Exploder{client: client, opts: opts}
}

// PullRequestBody is the description of the pull requests opened by explode.
func (e *Exploder) PullRequestBody() string {
	return fmt.Sprintf(pullRequestBodyFormat, e.opts.Registry, e.opts.RegistryPath)
}

// Run reads the registry and synchronizes every entry in name order.
// Repositories that cannot take the file (forks, empty default branches,
// missing write permission) are skipped with a warning; any other failure
// stops the run.
func (e *Exploder) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	registryFile, err := e.client.ReadText(ctx, e.opts.Registry, e.opts.RegistryPath, e.opts.RegistryRef)
	if err != nil {
		return summary, fmt.Errorf("read registry: %w", err)
	}

	registry, err := ParseRegistry([]byte(registryFile.Content))
	if err != nil {
		return summary, fmt.Errorf("read registry %s:%s: %w", e.opts.Registry, e.opts.RegistryPath, err)
	}

	for _, name := range registry.Names() {
		err = ctx.Err()
		if err != nil {
			return summary, fmt.Errorf("explode interrupted: %w", err)
		}

		summary.Repositories++

		err = e.syncRepository(ctx, name, registry[name], &summary)
		if errors.Is(err, errSkipRepository) {
			summary.Skipped++

			continue
		}

		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// errSkipRepository ends the work on one repository without failing the run.
var errSkipRepository = errors.New("skip repository")

func (e *Exploder) syncRepository(ctx context.Context, name string, meta Metadata, summary *Summary) error {
	ref, err := forge.ParseRepoRef(name)
	if err != nil {
		notify.Warningf(e.opts.Out, "Skipping %q: %v", name, err)

		return errSkipRepository
	}

	content, err := RenderOpenEdxYAML(Normalize(meta))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	repo, err := e.client.Repository(ctx, ref)
	if errors.Is(err, forge.ErrNotFound) {
		notify.Warningf(e.opts.Out, "Skipping %s because it does not exist", name)

		return errSkipRepository
	}

	if err != nil {
		return err
	}

	if repo.Fork {
		notify.Warningf(e.opts.Out, "Skipping %s because it is a fork", repo.FullName)

		return errSkipRepository
	}

	if repo.Archived {
		notify.Warningf(e.opts.Out, "Skipping %s because it is archived", repo.FullName)

		return errSkipRepository
	}

	parentSHA, err := e.client.BranchSHA(ctx, ref, repo.DefaultBranch)
	if err != nil {
		notify.Warningf(e.opts.Out, "No commit on default branch %s in repo %s", repo.DefaultBranch, repo.FullName)

		return errSkipRepository
	}

	if !e.opts.DryRun {
		_, err = e.client.EnsureBranch(ctx, ref, e.opts.Branch, parentSHA)
		if err != nil {
			return err
		}
	}

	err = e.syncFile(ctx, ref, repo, content, summary)
	if err != nil {
		return err
	}

	return e.syncPullRequest(ctx, ref, repo, summary)
}

func (e *Exploder) syncFile(
	ctx context.Context,
	ref forge.RepoRef,
	repo forge.RepoInfo,
	content string,
	summary *Summary,
) error {
	existing, err := e.client.ReadText(ctx, ref, OpenEdxYAML, e.opts.Branch)

	switch {
	case errors.Is(err, forge.ErrNotFound):
		e.report(notify.GenerateType, "Creating %s file on branch %s:%s", OpenEdxYAML, repo.FullName, e.opts.Branch)
		notify.Code(e.opts.Out, content)

		err = e.write(ctx, ref, forge.FileChange{Message: createMessage, Content: content})
		if err == nil {
			summary.FilesCreated++
		}

		return err
	case err != nil:
		return err
	case existing.Content != content:
		e.report(notify.GenerateType, "Updated %s file on branch %s:%s", OpenEdxYAML, repo.FullName, e.opts.Branch)
		notify.Code(e.opts.Out, content)

		err = e.write(ctx, ref, forge.FileChange{Message: updateMessage, Content: content, SHA: existing.SHA})
		if err == nil {
			summary.FilesUpdated++
		}

		return err
	default:
		return nil
	}
}

func (e *Exploder) write(ctx context.Context, ref forge.RepoRef, change forge.FileChange) error {
	if e.opts.DryRun {
		return nil
	}

	change.Path = OpenEdxYAML
	change.Branch = e.opts.Branch

	err := e.client.WriteText(ctx, ref, change)
	if errors.Is(err, forge.ErrForbidden) {
		notify.Warningf(e.opts.Out, "Unable to write %s to %s: %v", OpenEdxYAML, ref, err)

		return errSkipRepository
	}

	return err
}

func (e *Exploder) syncPullRequest(
	ctx context.Context,
	ref forge.RepoRef,
	repo forge.RepoInfo,
	summary *Summary,
) error {
	body := e.PullRequestBody()
	head := ref.Owner + ":" + e.opts.Branch

	existing, err := e.client.FindOpenPullRequest(ctx, ref, head, "")
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.Title == PullRequestTitle && existing.Body == body {
			return nil
		}

		summary.PullsUpdated++

		e.report(notify.SuccessType, "Updated pull request %s#%d: %s\n    URL: %s",
			repo.FullName, existing.Number, PullRequestTitle, existing.URL)

		if e.opts.DryRun {
			return nil
		}

		_, err = e.client.UpdatePullRequest(ctx, ref, existing.Number, PullRequestTitle, body)

		return err
	}

	summary.PullsCreated++

	if e.opts.DryRun {
		e.report(notify.SuccessType, "Created pull request %s: %s", repo.FullName, PullRequestTitle)

		return nil
	}

	created, err := e.client.CreatePullRequest(ctx, ref, forge.NewPullRequest{
		Title: PullRequestTitle,
		Body:  body,
		Head:  e.opts.Branch,
		Base:  repo.DefaultBranch,
	})
	if err != nil {
		return err
	}

	e.report(notify.SuccessType, "Created pull request %s#%d: %s\n    URL: %s",
		repo.FullName, created.Number, created.Title, created.URL)

	return nil
}

func (e *Exploder) report(msgType notify.MessageType, format string, args ...any) {
	notify.WriteMessage(notify.Message{
		Type:    msgType,
		Content: format,
		Args:    args,
		DryRun:  e.opts.DryRun,
		Writer:  e.opts.Out,
	})
}
