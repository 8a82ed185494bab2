package dependencies

import (
	"minver/internal/manifest"
	"minver/internal/semver"
)

// VersionHandle binds a parsed semantic version to the manifest cell it
// was read from. It tracks whether the in-memory version has diverged
// from the original text; Release writes the cell back only on
// divergence, so untouched entries stay byte-identical.
//
// A handle is only valid while the Document that produced it is alive
// and unserialized. All handles must be released before Document.Bytes.
type VersionHandle struct {
	span    manifest.Span
	version semver.SemVersion
	dirty   bool
}

func newVersionHandle(key string, item *manifest.Item) (*VersionHandle, error) {
	v, err := semver.ParseVersion(item.Str)
	if err != nil {
		return nil, &ParseVersionError{Key: key, Err: err}
	}
	return &VersionHandle{span: item.Span, version: v}, nil
}

// Version returns the currently held semantic version.
func (h *VersionHandle) Version() semver.SemVersion {
	return h.version
}

// Set replaces the held version. Setting an equal version is a no-op
// and does not mark the handle dirty.
func (h *VersionHandle) Set(v semver.SemVersion) {
	if v != h.version {
		h.version = v
		h.dirty = true
	}
}

// Release commits the held version into the document if it diverged
// from the original text. Idempotent: the dirty flag is cleared after
// the write-back, so a second call does nothing.
func (h *VersionHandle) Release(doc *manifest.Document) {
	if !h.dirty {
		return
	}
	doc.SetString(h.span, h.version.String())
	h.dirty = false
}
