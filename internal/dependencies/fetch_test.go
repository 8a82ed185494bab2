package dependencies

import (
	"errors"
	"testing"

	"minver/internal/manifest"
	"minver/internal/semver"
)

const sampleManifest = `[package]
name = "demo"
version = "0.1.0"

[dependencies]
clap = "4.2.4"
semver = { version = "1.0.17", features = ["std"] }
thiserror = "1.0.40"
toml_edit = "0.19.8"

[dev-dependencies]
pretty_assertions = "1.3.0"
`

func parseDoc(t *testing.T, input string) *manifest.Document {
	t.Helper()
	doc, err := manifest.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestFetch_StandardGroup(t *testing.T) {
	doc := parseDoc(t, sampleManifest)

	entries, err := Fetch(doc, Standard)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := []struct {
		name    string
		version semver.SemVersion
	}{
		{"clap", semver.SemVersion{Major: 4, Minor: 2, Patch: 4}},
		{"semver", semver.SemVersion{Major: 1, Minor: 0, Patch: 17}},
		{"thiserror", semver.SemVersion{Major: 1, Minor: 0, Patch: 40}},
		{"toml_edit", semver.SemVersion{Major: 0, Minor: 19, Patch: 8}},
	}

	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Name != w.name {
			t.Errorf("entry[%d].Name = %q, want %q", i, entries[i].Name, w.name)
		}
		if got := entries[i].Handle.Version(); got != w.version {
			t.Errorf("entry[%d] version = %v, want %v", i, got, w.version)
		}
	}
}

func TestFetch_DevGroup(t *testing.T) {
	doc := parseDoc(t, sampleManifest)

	entries, err := Fetch(doc, Dev)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "pretty_assertions" {
		t.Fatalf("got %v, want single pretty_assertions entry", entries)
	}
	want := semver.SemVersion{Major: 1, Minor: 3, Patch: 0}
	if got := entries[0].Handle.Version(); got != want {
		t.Errorf("version = %v, want %v", got, want)
	}
}

func TestFetch_MissingGroup(t *testing.T) {
	doc := parseDoc(t, "[package]\nname = \"demo\"\n")

	entries, err := Fetch(doc, Standard)
	if !errors.Is(err, ErrMissingGroup) {
		t.Fatalf("err = %v, want ErrMissingGroup", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil", entries)
	}
}

func TestFetch_GroupNotATable(t *testing.T) {
	doc := parseDoc(t, "dependencies = \"oops\"\n")

	_, err := Fetch(doc, Standard)
	var kindErr *GroupKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("err = %v, want GroupKindError", err)
	}
	if kindErr.Kind != "String" {
		t.Errorf("Kind = %q, want %q", kindErr.Kind, "String")
	}
}

func TestFetch_GroupIsArrayOfTables(t *testing.T) {
	doc := parseDoc(t, "[[dependencies]]\nclap = \"1.0.0\"\n")

	_, err := Fetch(doc, Standard)
	var kindErr *GroupKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("err = %v, want GroupKindError", err)
	}
	if kindErr.Kind != "ArrayOfTables" {
		t.Errorf("Kind = %q, want %q", kindErr.Kind, "ArrayOfTables")
	}
}

func TestFetch_FailsFastOnMalformedEntry(t *testing.T) {
	// The first two entries are well-formed; the whole fetch must still
	// fail with no partial result.
	doc := parseDoc(t, `[dependencies]
good = "1.0.0"
fine = "2.0.0"
bad = 42
later = "3.0.0"
`)

	entries, err := Fetch(doc, Standard)
	var kindErr *EntryKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("err = %v, want EntryKindError", err)
	}
	if kindErr.Key != "bad" {
		t.Errorf("Key = %q, want %q", kindErr.Key, "bad")
	}
	if kindErr.Kind != "Integer" {
		t.Errorf("Kind = %q, want %q", kindErr.Kind, "Integer")
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil on failed fetch", entries)
	}
}

func TestFetch_EntryShapes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		check  func(t *testing.T, err error)
	}{
		{
			name:  "boolean entry",
			input: "[dependencies]\ndep = true\n",
			check: func(t *testing.T, err error) {
				var kindErr *EntryKindError
				if !errors.As(err, &kindErr) {
					t.Fatalf("err = %v, want EntryKindError", err)
				}
				if kindErr.Key != "dep" {
					t.Errorf("Key = %q, want %q", kindErr.Key, "dep")
				}
			},
		},
		{
			name:  "array entry",
			input: "[dependencies]\ndep = [\"1.0.0\"]\n",
			check: func(t *testing.T, err error) {
				var kindErr *EntryKindError
				if !errors.As(err, &kindErr) {
					t.Fatalf("err = %v, want EntryKindError", err)
				}
				if kindErr.Kind != "Array" {
					t.Errorf("Kind = %q, want %q", kindErr.Kind, "Array")
				}
			},
		},
		{
			name:  "nested sub-table entry",
			input: "[dependencies]\n\n[dependencies.dep]\nversion = \"1.0.0\"\n",
			check: func(t *testing.T, err error) {
				var unsupported *UnsupportedEntryError
				if !errors.As(err, &unsupported) {
					t.Fatalf("err = %v, want UnsupportedEntryError", err)
				}
				if unsupported.Key != "dep" {
					t.Errorf("Key = %q, want %q", unsupported.Key, "dep")
				}
			},
		},
		{
			name:  "inline table without version",
			input: "[dependencies]\ndep = { features = [\"std\"] }\n",
			check: func(t *testing.T, err error) {
				var missing *MissingVersionError
				if !errors.As(err, &missing) {
					t.Fatalf("err = %v, want MissingVersionError", err)
				}
				if missing.Key != "dep" {
					t.Errorf("Key = %q, want %q", missing.Key, "dep")
				}
			},
		},
		{
			name:  "inline table with sub-dependency but no version",
			input: "[dependencies]\ndep = { subdep = \"1.0.0\" }\n",
			check: func(t *testing.T, err error) {
				var missing *MissingVersionError
				if !errors.As(err, &missing) {
					t.Fatalf("err = %v, want MissingVersionError", err)
				}
			},
		},
		{
			name:  "inline table with non-string version",
			input: "[dependencies]\ndep = { version = 1 }\n",
			check: func(t *testing.T, err error) {
				var kindErr *VersionKindError
				if !errors.As(err, &kindErr) {
					t.Fatalf("err = %v, want VersionKindError", err)
				}
				if kindErr.Key != "dep" || kindErr.Kind != "Integer" {
					t.Errorf("got {%q %q}, want {dep Integer}", kindErr.Key, kindErr.Kind)
				}
			},
		},
		{
			name:  "unparsable version",
			input: "[dependencies]\ndep = \"not-a-version\"\n",
			check: func(t *testing.T, err error) {
				var parseErr *ParseVersionError
				if !errors.As(err, &parseErr) {
					t.Fatalf("err = %v, want ParseVersionError", err)
				}
				if parseErr.Key != "dep" {
					t.Errorf("Key = %q, want %q", parseErr.Key, "dep")
				}
				if !errors.Is(err, semver.ErrInvalidVersion) {
					t.Errorf("err %v does not wrap the semver cause", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.input)
			entries, err := Fetch(doc, Standard)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if entries != nil {
				t.Errorf("entries = %v, want nil on failed fetch", entries)
			}
			tt.check(t, err)
		})
	}
}

func TestGroup_TableName(t *testing.T) {
	if Standard.TableName() != "dependencies" {
		t.Errorf("Standard = %q", Standard.TableName())
	}
	if Dev.TableName() != "dev-dependencies" {
		t.Errorf("Dev = %q", Dev.TableName())
	}
}
