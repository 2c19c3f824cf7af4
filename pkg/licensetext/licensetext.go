// Package licensetext identifies a license from its text without network
// access.
//
// A [Store] holds a fingerprint for each known license: a few phrases that
// appear verbatim in every copy of it. Classifying a text counts how many
// of each license's phrases occur after normalization (case, punctuation
// and whitespace are ignored) and picks the best-covered license.
//
// The process-wide store built from the embedded asset is available
// through [Default]; it is read-only and safe for concurrent use.
package licensetext

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// MinConfidence is the share of a license's phrases a text must contain to
// be classified as that license.
const MinConfidence = 0.75

//go:embed licenses.json
var asset []byte

// License is one known license and its fingerprint.
type License struct {
	ID      string   `json:"id"`   // SPDX identifier
	Name    string   `json:"name"` // Human-readable name
	Phrases []string `json:"phrases"`
}

// Match is the result of a classification.
type Match struct {
	ID         string
	Name       string
	Confidence float64 // Share of the license's phrases found, 0..1
}

// Store classifies license texts. The zero value knows no license.
type Store struct {
	licenses []License
	byID     map[string]License
}

// Default returns the store built from the embedded asset. It is loaded on
// first use and shared afterwards.
var Default = sync.OnceValues(func() (*Store, error) {
	return Load(asset)
})

// Load builds a store from a JSON array of licenses.
func Load(data []byte) (*Store, error) {
	var licenses []License
	if err := json.Unmarshal(data, &licenses); err != nil {
		return nil, fmt.Errorf("load license store: %w", err)
	}
	return New(licenses...)
}

// New builds a store from licenses. Phrases are normalized the same way
// classified texts are.
func New(licenses ...License) (*Store, error) {
	s := &Store{byID: make(map[string]License, len(licenses))}
	for _, l := range licenses {
		if l.ID == "" || len(l.Phrases) == 0 {
			return nil, fmt.Errorf("license %q: id and phrases are required", l.ID)
		}
		key := strings.ToLower(l.ID)
		if _, dup := s.byID[key]; dup {
			return nil, fmt.Errorf("license %q declared twice", l.ID)
		}
		phrases := make([]string, len(l.Phrases))
		for i, p := range l.Phrases {
			phrases[i] = Normalize(p)
		}
		l.Phrases = phrases
		s.licenses = append(s.licenses, l)
		s.byID[key] = l
	}
	return s, nil
}

// Licenses returns the known licenses in declaration order.
func (s *Store) Licenses() []License {
	return s.licenses
}

// Canonical returns the SPDX spelling of id when the store knows it
// (ignoring case) and id unchanged otherwise.
func (s *Store) Canonical(id string) string {
	if l, ok := s.byID[strings.ToLower(id)]; ok {
		return l.ID
	}
	return id
}

// Classify returns the license that text most likely is. Ties in confidence go
// to the license with more matched phrases, the more specific fingerprint.
// ok is false when no license reaches [MinConfidence].
func (s *Store) Classify(text string) (m Match, ok bool) {
	norm := Normalize(text)
	if norm == "" {
		return Match{}, false
	}

	bestHits := 0
	for _, l := range s.licenses {
		hits := 0
		for _, p := range l.Phrases {
			if strings.Contains(norm, p) {
				hits++
			}
		}
		conf := float64(hits) / float64(len(l.Phrases))
		if conf < MinConfidence {
			continue
		}
		if conf > m.Confidence || (conf == m.Confidence && hits > bestHits) {
			m = Match{ID: l.ID, Name: l.Name, Confidence: conf}
			bestHits = hits
		}
	}
	return m, m.ID != ""
}

// Normalize lowercases text and reduces every run of characters that are
// not letters or digits to a single space.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := true
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
