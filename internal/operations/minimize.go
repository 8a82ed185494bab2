// Package operations provides reusable operations over manifest files.
package operations

import (
	"context"
	"fmt"

	"minver/internal/core"
	"minver/internal/dependencies"
	"minver/internal/manifest"
	"minver/internal/semver"
)

// Minimize returns the minimal version compatible with v under semver
// compatibility rules:
//
//   - major > 0: minor and patch are reset (2.5.9 -> 2.0.0)
//   - major == 0: minor carries breaking-change semantics, so only patch
//     is reset (0.3.7 -> 0.3.0)
//   - major == 0 and minor == 0: every release may break, nothing to
//     reset (0.0.4 -> 0.0.4)
//
// Pre-release and build metadata are dropped: the minimal version is the
// plain release at the floor of the compatibility range. Minimize is
// pure, total, and idempotent.
func Minimize(v semver.SemVersion) semver.SemVersion {
	switch {
	case v.Major > 0:
		return semver.SemVersion{Major: v.Major}
	case v.Minor > 0:
		return semver.SemVersion{Minor: v.Minor}
	default:
		return semver.SemVersion{Patch: v.Patch}
	}
}

// Change records one dependency whose pinned version the operation
// rewrites.
type Change struct {
	Name string
	From semver.SemVersion
	To   semver.SemVersion
}

// Result summarizes a minimize run over one manifest.
type Result struct {
	Path string

	// Changes lists the rewritten dependencies, in manifest order.
	Changes []Change

	// Total is the number of dependencies inspected, including ones
	// already minimal.
	Total int

	// BackupPath is the backup file written before the manifest, empty
	// when no backup was made.
	BackupPath string
}

// MinimizeOperation rewrites the pinned versions of one dependency
// group in a manifest file to their minimal compatible versions.
type MinimizeOperation struct {
	fs           core.FileSystem
	group        dependencies.Group
	backup       bool
	backupSuffix string
}

// NewMinimizeOperation creates a minimize operation for the given group.
// When backup is true, the original manifest is copied to
// path+backupSuffix before being rewritten.
func NewMinimizeOperation(fs core.FileSystem, group dependencies.Group, backup bool, backupSuffix string) *MinimizeOperation {
	return &MinimizeOperation{
		fs:           fs,
		group:        group,
		backup:       backup,
		backupSuffix: backupSuffix,
	}
}

// Plan computes the changes Execute would make without touching the
// file.
func (op *MinimizeOperation) Plan(ctx context.Context, path string) (*Result, error) {
	result, _, err := op.minimize(ctx, path)
	return result, err
}

// Execute rewrites the manifest in place. Any error while reading or
// classifying the manifest aborts the run before anything is written,
// so a partially understood document is never serialized. When no entry
// changes, the file is left untouched and no backup is made.
func (op *MinimizeOperation) Execute(ctx context.Context, path string) (*Result, error) {
	result, doc, err := op.minimize(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(result.Changes) == 0 {
		return result, nil
	}

	if op.backup {
		backupPath := path + op.backupSuffix
		original, err := op.fs.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q for backup: %w", path, err)
		}
		if err := op.fs.WriteFile(ctx, backupPath, original, core.PermFile); err != nil {
			return nil, fmt.Errorf("failed to write backup %q: %w", backupPath, err)
		}
		result.BackupPath = backupPath
	}

	if err := op.fs.WriteFile(ctx, path, doc.Bytes(), core.PermFile); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", path, err)
	}
	return result, nil
}

// minimize runs the fetch -> set -> release cycle and returns the
// resulting document alongside the change summary.
func (op *MinimizeOperation) minimize(ctx context.Context, path string) (*Result, *manifest.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := op.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	doc, err := manifest.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	entries, err := dependencies.Fetch(doc, op.group)
	if err != nil {
		return nil, nil, fmt.Errorf("%s in %q: %w", op.group, path, err)
	}

	result := &Result{Path: path, Total: len(entries)}
	for _, entry := range entries {
		from := entry.Handle.Version()
		to := Minimize(from)
		entry.Handle.Set(to)
		entry.Handle.Release(doc)
		if from != to {
			result.Changes = append(result.Changes, Change{Name: entry.Name, From: from, To: to})
		}
	}
	return result, doc, nil
}
