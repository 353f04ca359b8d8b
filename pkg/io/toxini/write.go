package toxini

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// continuationIndent prefixes every continuation line of a multi-line value.
const continuationIndent = "    "

// WriteTo serializes the document in configparser layout.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	written, err := w.Write(d.Bytes())
	if err != nil {
		return int64(written), fmt.Errorf("write config: %w", err)
	}

	return int64(written), nil
}

// Bytes returns the serialized document.
//
// Every section is followed by a blank line. Multi-line values keep their first
// line on the key line (or leave it empty) and put each further line on its own
// indented row; blank continuation lines are dropped because they would end the
// value when read back.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer

	for _, section := range d.sections {
		buf.WriteString("[" + section.name + "]\n")

		for _, key := range section.keys {
			writeEntry(&buf, key, section.values[key])
		}

		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, key, value string) {
	lines := strings.Split(value, "\n")

	first := strings.TrimSpace(lines[0])
	if first == "" {
		buf.WriteString(key + " =\n")
	} else {
		buf.WriteString(key + " = " + first + "\n")
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		buf.WriteString(continuationIndent + line + "\n")
	}
}
