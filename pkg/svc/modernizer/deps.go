package modernizer

import "strings"

// Django22Dependency replaces the first Django 2.1 pin when no 2.2 pin exists.
// The leading space matches the indentation convention of deps lines.
const Django22Dependency = " django22: Django>=2.2,<2.3"

type dependencyKind int

const (
	otherDependency dependencyKind = iota
	django111Dependency
	django20Dependency
	django21Dependency
	django22Dependency
)

// classifyDependency looks at the factor token that starts a deps line.
func classifyDependency(line string) dependencyKind {
	token := strings.TrimLeft(line, " \t")

	switch {
	case strings.HasPrefix(token, "django111"):
		return django111Dependency
	case strings.HasPrefix(token, "django20"):
		return django20Dependency
	case strings.HasPrefix(token, "django21"):
		return django21Dependency
	case strings.HasPrefix(token, "django22"):
		return django22Dependency
	default:
		return otherDependency
	}
}

// DependencyChanges lists the deps lines removed and added by PruneDependencies.
type DependencyChanges struct {
	Removed []string
	Added   []string
}

// Changed reports whether any line was removed or added.
func (c DependencyChanges) Changed() bool {
	return len(c.Removed) > 0 || len(c.Added) > 0
}

// PruneDependencies rewrites a newline separated deps block.
//
// Lines for django111 and django20 are removed. If a django22 line remains,
// django21 lines are removed too; otherwise each django21 line is replaced by
// Django22Dependency. Every other line, blank lines included, is kept in place.
func PruneDependencies(deps string) (string, DependencyChanges) {
	lines := strings.Split(deps, "\n")
	kept := make([]string, 0, len(lines))

	var changes DependencyChanges

	hasDjango22 := false

	for _, line := range lines {
		switch classifyDependency(line) {
		case django111Dependency, django20Dependency:
			changes.Removed = append(changes.Removed, line)
		case django22Dependency:
			hasDjango22 = true

			kept = append(kept, line)
		case django21Dependency, otherDependency:
			kept = append(kept, line)
		}
	}

	pruned := make([]string, 0, len(kept))

	for _, line := range kept {
		if classifyDependency(line) != django21Dependency {
			pruned = append(pruned, line)

			continue
		}

		changes.Removed = append(changes.Removed, line)

		if !hasDjango22 {
			pruned = append(pruned, Django22Dependency)
			changes.Added = append(changes.Added, Django22Dependency)
		}
	}

	return strings.Join(pruned, "\n"), changes
}
