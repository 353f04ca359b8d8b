package toxini

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// loadOptions mirrors Python's configparser defaults, which is what tox uses.
// Option names are folded to lower case and valueless keys are rejected.
//
//nolint:gochecknoglobals // read-only parser configuration
var loadOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	IgnoreContinuation:         true,
	IgnoreInlineComment:        true,
	PreserveSurroundedQuote:    true,
	InsensitiveKeys:            true,
	KeyValueDelimiters:         "=:",
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user supplied by design of the CLI
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return doc, nil
}

// Parse converts INI text into a Document.
//
// The implicit DEFAULT section created by the parser is dropped unless the
// text actually defines keys in it.
func Parse(data []byte) (*Document, error) {
	file, err := ini.LoadSources(loadOptions, dropBlankContinuations(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	doc := New()

	for _, iniSection := range file.Sections() {
		keys := iniSection.Keys()
		if iniSection.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}

		section := doc.AddSection(iniSection.Name())
		for _, key := range keys {
			section.Set(key.Name(), key.Value())
		}
	}

	return doc, nil
}

// dropBlankContinuations removes blank lines that sit inside an indented
// multi-line value. A blank line followed by an indented line still belongs
// to the value above it, but the ini reader would end the value there.
func dropBlankContinuations(data []byte) []byte {
	lines := bytes.SplitAfter(data, []byte("\n"))
	out := make([]byte, 0, len(data))
	inValue := false

	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)

		switch {
		case len(trimmed) == 0:
			if inValue && nextContentIndented(lines[i+1:]) {
				continue
			}
		case isComment(trimmed) && !isIndented(line):
			inValue = false
		case trimmed[0] == '[' && !isIndented(line):
			inValue = false
		default:
			inValue = true
		}

		out = append(out, line...)
	}

	return out
}

func nextContentIndented(lines [][]byte) bool {
	for _, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		return isIndented(line)
	}

	return false
}

func isIndented(line []byte) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func isComment(trimmed []byte) bool {
	return trimmed[0] == '#' || trimmed[0] == ';'
}
