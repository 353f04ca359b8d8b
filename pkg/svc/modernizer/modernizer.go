package modernizer

import (
	"fmt"
	"io"

	"github.com/openedx/repotools/pkg/fsutil"
	"github.com/openedx/repotools/pkg/io/toxini"
)

// Sections and keys rewritten by the modernizer.
const (
	ToxSection     = "tox"
	EnvListKey     = "envlist"
	TestEnvSection = "testenv"
	DepsKey        = "deps"
)

// Modernizer rewrites one validated tox document.
type Modernizer struct {
	doc  *toxini.Document
	path string
}

// Result describes what Modernize changed.
type Result struct {
	// Path is the file that was rewritten, empty for in-memory documents.
	Path string
	// EnvList is the rewritten environment list.
	EnvList string
	// EnvListChanged is true when EnvList differs from the input.
	EnvListChanged bool
	// Dependencies lists removed and added deps lines.
	Dependencies DependencyChanges
	// Skipped names "section.key" fields that were absent and left alone.
	Skipped []string
	// Written is true when the document was persisted to Path.
	Written bool
}

// NewFromFile loads and validates the tox file at path. Modernize will
// overwrite that file.
func NewFromFile(path string) (*Modernizer, error) {
	doc, err := toxini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load tox config: %w", err)
	}

	return NewFromDocument(doc, path)
}

// NewFromDocument validates doc. When path is empty Modernize only mutates
// the document in memory.
func NewFromDocument(doc *toxini.Document, path string) (*Modernizer, error) {
	err := Validate(doc)
	if err != nil {
		return nil, err
	}

	return &Modernizer{doc: doc, path: path}, nil
}

// Validate checks that doc has at least one section and at least one of the
// tox and testenv sections.
func Validate(doc *toxini.Document) error {
	if doc == nil || doc.Len() == 0 {
		return fmt.Errorf("%w: no sections found", ErrMissingStructure)
	}

	if !doc.HasSection(ToxSection) && !doc.HasSection(TestEnvSection) {
		return fmt.Errorf(
			"%w: file doesn't contain a [%s] or [%s] section",
			ErrMissingStructure,
			ToxSection,
			TestEnvSection,
		)
	}

	return nil
}

// Document returns the document being modernized.
func (m *Modernizer) Document() *toxini.Document {
	return m.doc
}

// Modernize updates the environment list, prunes the dependency block and
// persists the document when it was loaded from a file.
func (m *Modernizer) Modernize() (Result, error) {
	result := Result{Path: m.path}

	m.updateEnvList(&result)
	m.replaceDjangoVersions(&result)

	if m.path == "" {
		return result, nil
	}

	err := fsutil.ReplaceFile(m.path, func(w io.Writer) error {
		_, err := m.doc.WriteTo(w)

		return err
	})
	if err != nil {
		return result, fmt.Errorf("update tox config: %w", err)
	}

	result.Written = true

	return result, nil
}

func (m *Modernizer) updateEnvList(result *Result) {
	envList, ok := m.doc.Get(ToxSection, EnvListKey)
	if !ok {
		result.Skipped = append(result.Skipped, ToxSection+"."+EnvListKey)

		return
	}

	result.EnvList = ModernizeEnvList(envList)
	result.EnvListChanged = result.EnvList != envList
	m.doc.Set(ToxSection, EnvListKey, result.EnvList)
}

func (m *Modernizer) replaceDjangoVersions(result *Result) {
	deps, ok := m.doc.Get(TestEnvSection, DepsKey)
	if !ok {
		result.Skipped = append(result.Skipped, TestEnvSection+"."+DepsKey)

		return
	}

	pruned, changes := PruneDependencies(deps)
	result.Dependencies = changes
	m.doc.Set(TestEnvSection, DepsKey, pruned)
}
