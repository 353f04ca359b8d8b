package toxini

import (
	"maps"
	"slices"
)

// Section is a named, insertion-ordered set of key/value pairs.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

func newSection(name string) *Section {
	return &Section{
		name:   name,
		values: make(map[string]string),
	}
}

// Name returns the section header without brackets.
func (s *Section) Name() string {
	return s.name
}

// Keys returns the section's keys in insertion order.
func (s *Section) Keys() []string {
	return slices.Clone(s.keys)
}

// Has reports whether key is present.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]

	return ok
}

// Get returns the value stored under key.
func (s *Section) Get(key string) (string, bool) {
	value, ok := s.values[key]

	return value, ok
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}

	s.values[key] = value
}

// Document is an ordered collection of sections.
type Document struct {
	sections []*Section
	index    map[string]*Section
}

// New returns an empty document.
func New() *Document {
	return &Document{index: make(map[string]*Section)}
}

// FromMap builds a document from a section -> key -> value mapping.
// Sections and keys are added in lexical order since map iteration order is undefined.
func FromMap(mapping map[string]map[string]string) *Document {
	doc := New()

	for _, sectionName := range slices.Sorted(maps.Keys(mapping)) {
		section := doc.AddSection(sectionName)
		entries := mapping[sectionName]

		for _, key := range slices.Sorted(maps.Keys(entries)) {
			section.Set(key, entries[key])
		}
	}

	return doc
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.sections)
}

// SectionNames returns section names in document order.
func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.sections))
	for _, section := range d.sections {
		names = append(names, section.name)
	}

	return names
}

// HasSection reports whether a section called name exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.index[name]

	return ok
}

// Section returns the named section.
func (d *Document) Section(name string) (*Section, bool) {
	section, ok := d.index[name]

	return section, ok
}

// AddSection appends an empty section, or returns the existing one with that name.
func (d *Document) AddSection(name string) *Section {
	if section, ok := d.index[name]; ok {
		return section
	}

	section := newSection(name)
	d.sections = append(d.sections, section)
	d.index[name] = section

	return section
}

// Get returns the value of key in section.
func (d *Document) Get(section, key string) (string, bool) {
	sec, ok := d.index[section]
	if !ok {
		return "", false
	}

	return sec.Get(key)
}

// Set stores value under section/key, creating the section when needed.
func (d *Document) Set(section, key, value string) {
	d.AddSection(section).Set(key, value)
}
