// Package toxini models tox.ini style configuration files as an explicit,
// ordered document value.
//
// A Document is an ordered list of sections, each an insertion-ordered
// mapping of keys to string values. Documents are parsed with Python
// configparser compatible rules (indented continuation lines form multi-line
// values, no inline comments, no backslash continuation) and written back in
// the layout configparser itself produces, so rewritten files stay readable
// by tox and by any standard INI parser.
//
// Comments and blank lines are not preserved; only the section, key and
// value structure round-trips.
package toxini
