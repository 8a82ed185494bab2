package dependencies

import (
	"bytes"
	"strings"
	"testing"

	"minver/internal/manifest"
	"minver/internal/semver"
)

func mustParse(t *testing.T, data []byte) *manifest.Document {
	t.Helper()
	doc, err := manifest.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func fetchOne(t *testing.T, input string) (*VersionHandle, func() []byte) {
	t.Helper()
	doc := parseDoc(t, input)
	entries, err := Fetch(doc, Standard)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	return entries[0].Handle, doc.Bytes
}

func TestVersionHandle_SetEqualIsNoOp(t *testing.T) {
	input := "[dependencies]\ndep = \"1.2.3\"\n"
	handle, serialize := fetchOne(t, input)

	handle.Set(handle.Version())
	handle.Release(nil) // clean handle never touches the document

	if !bytes.Equal(serialize(), []byte(input)) {
		t.Error("setting the current version must not mutate the document")
	}
}

func TestVersionHandle_ReleaseWithoutSet(t *testing.T) {
	input := "[dependencies]\ndep = \"1.2.3\"\n"
	handle, serialize := fetchOne(t, input)

	handle.Release(nil)

	if !bytes.Equal(serialize(), []byte(input)) {
		t.Error("untouched handle must leave the document byte-identical")
	}
}

func TestVersionHandle_SetAndRelease(t *testing.T) {
	doc := parseDoc(t, "[dependencies]\ndep = \"1.2.3\" # pinned\n")
	entries, err := Fetch(doc, Standard)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	handle := entries[0].Handle

	handle.Set(semver.SemVersion{Major: 1})
	if got := handle.Version(); got != (semver.SemVersion{Major: 1}) {
		t.Errorf("Version() = %v after Set", got)
	}

	handle.Release(doc)
	out := string(doc.Bytes())
	if !strings.Contains(out, "dep = \"1.0.0\" # pinned\n") {
		t.Errorf("write-back missing or formatting disturbed:\n%s", out)
	}
}

func TestVersionHandle_ReleaseIsIdempotent(t *testing.T) {
	doc := parseDoc(t, "[dependencies]\ndep = \"1.2.3\"\n")
	entries, err := Fetch(doc, Standard)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	handle := entries[0].Handle

	handle.Set(semver.SemVersion{Major: 1})
	handle.Release(doc)
	first := doc.Bytes()
	handle.Release(doc)
	second := doc.Bytes()

	if !bytes.Equal(first, second) {
		t.Error("second Release must be a no-op")
	}
}

func TestVersionHandle_SetBackToOriginalStillWrites(t *testing.T) {
	// Divergence is tracked against the last held value, not the
	// original text: set away and back marks the handle dirty on the
	// first set and clean again on the second.
	doc := parseDoc(t, "[dependencies]\ndep = \"1.2.3\"\n")
	entries, err := Fetch(doc, Standard)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	handle := entries[0].Handle
	original := handle.Version()

	handle.Set(semver.SemVersion{Major: 9})
	handle.Set(original)
	handle.Release(doc)

	// Dirty stayed true through the second Set, so the canonical form
	// of the original version is written back.
	if !strings.Contains(string(doc.Bytes()), "dep = \"1.2.3\"") {
		t.Errorf("unexpected document:\n%s", doc.Bytes())
	}
}

func TestVersionHandle_RoundTrip(t *testing.T) {
	// Writing a version and re-fetching yields exactly that version.
	doc := parseDoc(t, "[dependencies]\ndep = \"3.4.5\"\n")
	entries, err := Fetch(doc, Standard)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := semver.SemVersion{Major: 3, Minor: 0, Patch: 0}
	entries[0].Handle.Set(want)
	entries[0].Handle.Release(doc)

	redoc, err := Fetch(mustParse(t, doc.Bytes()), Standard)
	if err != nil {
		t.Fatalf("re-fetch: %v", err)
	}
	if got := redoc[0].Handle.Version(); got != want {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}

func TestVersionHandle_InlineTableWriteBack(t *testing.T) {
	doc := parseDoc(t, "[dependencies]\ndep = { version = \"2.5.9\", features = [\"x\"] }\n")
	entries, err := Fetch(doc, Standard)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	entries[0].Handle.Set(semver.SemVersion{Major: 2})
	entries[0].Handle.Release(doc)

	out := string(doc.Bytes())
	if !strings.Contains(out, "dep = { version = \"2.0.0\", features = [\"x\"] }\n") {
		t.Errorf("inline table write-back disturbed formatting:\n%s", out)
	}
}
