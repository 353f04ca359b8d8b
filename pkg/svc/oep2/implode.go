package oep2

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/openedx/repotools/pkg/utils/notify"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentOrgs bounds the organizations scanned at once.
const maxConcurrentOrgs = 4

// ImplodeOptions configure an Imploder.
type ImplodeOptions struct {
	// Orgs are the organizations whose repositories are scanned.
	Orgs []string
	// Branches are tried in order; the first one holding openedx.yaml wins.
	// Empty means each repository's default branch.
	Branches []string
	// Out receives warnings about unreadable files.
	Out io.Writer
}

// Imploder gathers openedx.yaml files back into a registry.
type Imploder struct {
	client forge.Client
	opts   ImplodeOptions
}

// NewImploder returns an Imploder using client for every remote call.
func NewImploder(client forge.Client, opts ImplodeOptions) *Imploder {
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	return &Imploder{client: client, opts: opts}
}

type orgScan struct {
	registry Registry
	warnings []string
}

// Collect scans every organization and returns the found files keyed by
// repository full name. Organizations are scanned concurrently; warnings are
// written once all scans finished, in organization order.
func (i *Imploder) Collect(ctx context.Context) (Registry, error) {
	scans := make([]orgScan, len(i.opts.Orgs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentOrgs)

	for index, org := range i.opts.Orgs {
		group.Go(func() error {
			scan, err := i.scanOrg(groupCtx, org)
			if err != nil {
				return err
			}

			scans[index] = scan

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	registry := Registry{}

	for _, scan := range scans {
		for _, warning := range scan.warnings {
			notify.Warningf(i.opts.Out, "%s", warning)
		}

		for name, meta := range scan.registry {
			registry[name] = meta
		}
	}

	return registry, nil
}

func (i *Imploder) scanOrg(ctx context.Context, org string) (orgScan, error) {
	scan := orgScan{registry: Registry{}}

	repos, err := i.client.ListOrgRepositories(ctx, org)
	if err != nil {
		return scan, fmt.Errorf("scan %s: %w", org, err)
	}

	for _, repo := range repos {
		file, found, err := i.findFile(ctx, repo)
		if err != nil {
			return scan, err
		}

		if !found {
			continue
		}

		meta, err := ParseOpenEdxYAML(file.Content)
		if err != nil {
			scan.warnings = append(scan.warnings, fmt.Sprintf("Ignoring %s: %v", repo.FullName, err))

			continue
		}

		scan.registry[repo.FullName] = meta
	}

	return scan, nil
}

func (i *Imploder) findFile(ctx context.Context, repo forge.RepoInfo) (forge.File, bool, error) {
	branches := i.opts.Branches
	if len(branches) == 0 {
		branches = []string{repo.DefaultBranch}
	}

	for _, branch := range branches {
		file, err := i.client.ReadText(ctx, repo.Ref, OpenEdxYAML, branch)
		if errors.Is(err, forge.ErrNotFound) {
			continue
		}

		if err != nil {
			return forge.File{}, false, err
		}

		return file, true, nil
	}

	return forge.File{}, false, nil
}

// RenderRegistry renders a registry as YAML with sorted keys and four-space indentation.
func RenderRegistry(registry Registry) (string, error) {
	plain := make(map[string]any, len(registry))
	for name, meta := range registry {
		plain[name] = map[string]any(meta)
	}

	return marshalIndented(plain)
}
