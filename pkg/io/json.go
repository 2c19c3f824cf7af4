package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// WriteJSON encodes recs as an indented JSON array. A nil slice is written
// as an empty array.
func WriteJSON(w io.Writer, recs []deps.RetrievedDependency) error {
	if recs == nil {
		recs = []deps.RetrievedDependency{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes recs to a JSON file at path.
func ExportJSON(path string, recs []deps.RetrievedDependency) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, recs)
}

// ReadJSON decodes a report written by [WriteJSON].
func ReadJSON(r io.Reader) ([]deps.RetrievedDependency, error) {
	var recs []deps.RetrievedDependency
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode report")
	}
	return recs, nil
}

// ImportJSON reads a report file at path.
func ImportJSON(path string) ([]deps.RetrievedDependency, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "report %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
