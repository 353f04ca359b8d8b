package oep2

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// OpenEdxYAML is the per-repository metadata file.
const OpenEdxYAML = "openedx.yaml"

// MissingOwner is written when the registry has no owner for a repository.
const MissingOwner = "MUST FILL IN OWNER"

const (
	yamlIndent = 4

	fileHeader = "# This file describes this Open edX repo, as described in OEP-2:\n" +
		"# http://open-edx-proposals.readthedocs.io/en/latest/oeps/oep-0002.html#specification\n\n"
)

// Metadata is the free-form content of one registry entry.
type Metadata map[string]any

// Registry maps "owner/repo" to its metadata.
type Registry map[string]Metadata

// Names returns the registry's repository names in lexical order.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// ParseRegistry decodes the registry YAML. Entries with a null value get
// empty metadata.
func ParseRegistry(data []byte) (Registry, error) {
	var raw map[string]any

	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistry, err)
	}

	registry := make(Registry, len(raw))

	for name, value := range raw {
		switch meta := value.(type) {
		case nil:
			registry[name] = Metadata{}
		case map[string]any:
			registry[name] = Metadata(meta)
		default:
			return nil, fmt.Errorf("%w: entry %q is a %T, not a mapping", ErrInvalidRegistry, name, value)
		}
	}

	return registry, nil
}

// Normalize returns a copy of meta shaped for openedx.yaml: owner is always
// present, a legacy "area" becomes the last tag, and oeps defaults to an
// empty mapping.
func Normalize(meta Metadata) Metadata {
	normalized := maps.Clone(meta)
	if normalized == nil {
		normalized = Metadata{}
	}

	if _, ok := normalized["owner"]; !ok {
		normalized["owner"] = MissingOwner
	}

	if area, ok := normalized["area"]; ok {
		normalized["tags"] = appendTag(normalized["tags"], area)
		delete(normalized, "area")
	}

	if _, ok := normalized["oeps"]; !ok {
		normalized["oeps"] = map[string]any{}
	}

	return normalized
}

func appendTag(tags, tag any) []any {
	switch existing := tags.(type) {
	case nil:
		return []any{tag}
	case []any:
		return append(slices.Clone(existing), tag)
	default:
		return []any{existing, tag}
	}
}

// RenderOpenEdxYAML renders meta as an openedx.yaml file: the OEP-2 header,
// then the metadata with sorted keys and four-space indentation.
func RenderOpenEdxYAML(meta Metadata) (string, error) {
	body, err := marshalIndented(map[string]any(meta))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", OpenEdxYAML, err)
	}

	return fileHeader + strings.TrimSpace(body) + "\n", nil
}

// ParseOpenEdxYAML decodes an openedx.yaml file. An empty file yields empty metadata.
func ParseOpenEdxYAML(content string) (Metadata, error) {
	var meta Metadata

	err := yaml.Unmarshal([]byte(content), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", OpenEdxYAML, err)
	}

	if meta == nil {
		meta = Metadata{}
	}

	return meta, nil
}

func marshalIndented(value any) (string, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	err := encoder.Encode(value)
	if err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return "", fmt.Errorf("close yaml encoder: %w", err)
	}

	return buf.String(), nil
}
