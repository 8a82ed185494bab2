package dependencies

import (
	"errors"
	"fmt"
)

// ErrMissingGroup is returned when the manifest has no table for the
// requested dependency group.
var ErrMissingGroup = errors.New("missing dependency group")

// GroupKindError reports a dependency group that exists but is not a table.
type GroupKindError struct {
	Kind string
}

func (e *GroupKindError) Error() string {
	return fmt.Sprintf("unexpected dependency group kind %q", e.Kind)
}

// EntryKindError reports a dependency entry with an unsupported value kind.
type EntryKindError struct {
	Key  string
	Kind string
}

func (e *EntryKindError) Error() string {
	return fmt.Sprintf("unexpected kind %q for dependency %q", e.Kind, e.Key)
}

// UnsupportedEntryError reports a dependency declared as a nested
// sub-table (`[dependencies.name]`). That form is not implemented; the
// distinct error keeps it separate from plain kind mismatches.
type UnsupportedEntryError struct {
	Key string
}

func (e *UnsupportedEntryError) Error() string {
	return fmt.Sprintf("dependency %q uses the unsupported sub-table form", e.Key)
}

// MissingVersionError reports an inline-table dependency without a
// "version" field.
type MissingVersionError struct {
	Key string
}

func (e *MissingVersionError) Error() string {
	return fmt.Sprintf("missing version field in dependency %q", e.Key)
}

// VersionKindError reports an inline-table dependency whose "version"
// field is not a string.
type VersionKindError struct {
	Key  string
	Kind string
}

func (e *VersionKindError) Error() string {
	return fmt.Sprintf("unexpected version kind %q for dependency %q", e.Kind, e.Key)
}

// ParseVersionError reports a version string that is not a valid
// semantic version. It wraps the parse cause.
type ParseVersionError struct {
	Key string
	Err error
}

func (e *ParseVersionError) Error() string {
	return fmt.Sprintf("failed to parse version of dependency %q: %v", e.Key, e.Err)
}

func (e *ParseVersionError) Unwrap() error {
	return e.Err
}
