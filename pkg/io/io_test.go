package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

func sampleRecords() []deps.RetrievedDependency {
	valid := deps.NewRetrieved(deps.Dependency{Name: "left-pad", Version: "1.3.0"}, "npm",
		"https://www.npmjs.com/package/left-pad/v/1.3.0", []string{"MIT"}, nil)
	valid.Validated = true

	failed := deps.NewRetrieved(deps.Dependency{Name: "foo", Version: "2.0.0"}, "npm", "", nil, errors.New("network | down"))
	failed.Validated = true

	ignored := deps.NewRetrieved(deps.Dependency{Name: "bare", Version: "0.1.0"}, "npm", "", nil, nil)
	ignored.Validated = true
	ignored.IsIgnored = true

	return []deps.RetrievedDependency{valid, failed, ignored}
}

func TestJSONRoundTrip(t *testing.T) {
	recs := sampleRecords()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, recs); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	for _, field := range []string{`"dependency_type"`, `"is_valid"`, `"is_ignored"`, `"validated"`, `"error": null`} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("JSON output is missing %s", field)
		}
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if diff := cmp.Diff(recs, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", buf.String())
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := ExportJSON(path, sampleRecords()); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ImportJSON() returned %d records", len(got))
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{")); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("ReadJSON() error = %v, want INVALID_INPUT", err)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMarkdown(&buf, sampleRecords(), MarkdownOptions{Lockfile: "package-lock.json", RunID: "run-1"})
	if err != nil {
		t.Fatalf("WriteMarkdown() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		":x: **3** dependencies checked in `package-lock.json`: 1 valid, 1 invalid, 1 ignored.",
		"### Invalid dependencies",
		"### Valid dependencies",
		"### Ignored dependencies",
		"| [left-pad](https://www.npmjs.com/package/left-pad/v/1.3.0) | 1.3.0 | npm | MIT |  |",
		`network \| down`,
		deps.NoLicenseHint,
		"licensebat run run-1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown is missing %q\n%s", want, out)
		}
	}
}

func TestWriteMarkdown_HideInvalid(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleRecords(), MarkdownOptions{HideInvalid: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "### Invalid dependencies") || strings.Contains(out, "foo") {
		t.Errorf("invalid records should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "1 invalid dependencies are hidden") {
		t.Errorf("hidden count missing:\n%s", out)
	}
}

func TestWriteMarkdown_AllValid(t *testing.T) {
	var buf bytes.Buffer
	recs := sampleRecords()[:1]
	if err := WriteMarkdown(&buf, recs, MarkdownOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.SplitN(buf.String(), "\n\n", 2)[1], ":white_check_mark:") {
		t.Errorf("expected success marker:\n%s", buf.String())
	}
}
