package modernizer

import "regexp"

// Target factors written into the environment list.
const (
	PythonFactor = "py{38}"
	DjangoFactor = "django{22}"
)

//nolint:gochecknoglobals // compiled once, read-only
var (
	pythonFactorPattern = regexp.MustCompile(`py\{.*?\}`)
	djangoFactorPattern = regexp.MustCompile(`django\{.*?\}`)
)

// ModernizeEnvList replaces every py{...} factor group with py{38} and every
// django{...} group with django{22}. Matching is shortest-first and
// case-sensitive; all non-overlapping occurrences are replaced.
func ModernizeEnvList(envList string) string {
	envList = pythonFactorPattern.ReplaceAllLiteralString(envList, PythonFactor)

	return djangoFactorPattern.ReplaceAllLiteralString(envList, DjangoFactor)
}
