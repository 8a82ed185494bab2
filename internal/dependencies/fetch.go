// Package dependencies locates the declared dependencies of a TOML
// manifest and exposes write-back-capable handles to their pinned
// versions.
package dependencies

import (
	"minver/internal/manifest"
)

// Group selects which dependency table to operate on.
type Group int

const (
	// Standard selects the "dependencies" table.
	Standard Group = iota

	// Dev selects the "dev-dependencies" table.
	Dev
)

// TableName returns the manifest table name for the group.
func (g Group) TableName() string {
	if g == Dev {
		return "dev-dependencies"
	}
	return "dependencies"
}

func (g Group) String() string {
	return g.TableName()
}

// Entry is one located dependency: its name and the handle to its
// pinned version. Entries are only valid while the Document that
// produced them is alive.
type Entry struct {
	Name   string
	Handle *VersionHandle
}

// Fetch locates the group's table in doc and returns one Entry per
// dependency, in source order.
//
// Exactly two declaration shapes are supported:
//
//	name = "1.2.3"
//	name = { version = "1.2.3", ... }
//
// The first malformed entry aborts the whole fetch; no partial list is
// returned.
func Fetch(doc *manifest.Document, group Group) ([]Entry, error) {
	item := doc.Lookup(group.TableName())
	if item == nil {
		return nil, ErrMissingGroup
	}
	if item.Kind != manifest.KindTable {
		return nil, &GroupKindError{Kind: item.Type}
	}

	table := item.Table
	entries := make([]Entry, 0, table.Len())
	for _, key := range table.Keys() {
		cell, err := versionCell(key, table.Get(key))
		if err != nil {
			return nil, err
		}
		handle, err := newVersionHandle(key, cell)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: key, Handle: handle})
	}
	return entries, nil
}

// versionCell classifies a dependency item and extracts the string item
// holding its version literal.
func versionCell(key string, item *manifest.Item) (*manifest.Item, error) {
	switch item.Kind {
	case manifest.KindString:
		return item, nil
	case manifest.KindInlineTable:
		version := item.Table.Get("version")
		if version == nil {
			return nil, &MissingVersionError{Key: key}
		}
		if version.Kind != manifest.KindString {
			return nil, &VersionKindError{Key: key, Kind: version.Type}
		}
		return version, nil
	case manifest.KindTable:
		// Dependencies declared as `[group.name]` sub-tables are not
		// implemented; reported distinctly from plain kind mismatches.
		return nil, &UnsupportedEntryError{Key: key}
	default:
		return nil, &EntryKindError{Key: key, Kind: item.Type}
	}
}
