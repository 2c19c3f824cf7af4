package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/licensebat/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// Packument is the subset of an npm registry package document needed to
// resolve licenses. License fields keep their raw JSON shape because the
// registry serves strings, {type, url} objects and legacy arrays.
type Packument struct {
	Name     string                    `json:"name"`
	License  any                       `json:"license"`
	Versions map[string]VersionDetails `json:"versions"`
}

// VersionDetails holds the license fields of one published version.
type VersionDetails struct {
	License  any `json:"license"`
	Licenses any `json:"licenses"`
}

// Client provides access to the npm registry API.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm client on top of the shared HTTP client.
// An empty baseURL selects [DefaultBaseURL].
func NewClient(shared *integrations.Client, baseURL string) *Client {
	return &Client{
		Client:  shared,
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchPackument retrieves the registry document for pkg.
//
// Returns:
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, non-200, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchPackument(ctx context.Context, pkg string) (*Packument, error) {
	var data Packument
	if err := c.Get(ctx, c.PackageURL(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return nil, err
	}
	return &data, nil
}

// PackageURL returns the registry URL of pkg. Scoped names keep their
// "@scope/" prefix with the separator escaped.
func (c *Client) PackageURL(pkg string) string {
	return c.baseURL + "/" + EscapeName(pkg)
}

// EscapeName escapes the scope separator of a scoped package name.
func EscapeName(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		return strings.Replace(pkg, "/", "%2f", 1)
	}
	return pkg
}

// BrowseURL is the npmjs.com page of a specific package version.
func BrowseURL(pkg, version string) string {
	return fmt.Sprintf("https://www.npmjs.com/package/%s/v/%s", pkg, version)
}

// DeclaredLicenses returns the license expressions declared for version, in
// resolution order:
//
//  1. the version's "license" (string or {type})
//  2. the version's legacy "licenses" array ([{type}] or [string])
//  3. the package-level "license" (string or {type})
//
// Any other shape counts as no license. The expressions are returned as
// declared; splitting compound expressions is up to the caller.
func (p *Packument) DeclaredLicenses(version string) []string {
	if v, ok := p.Versions[version]; ok {
		if l := extractField(v.License, "type"); l != "" {
			return []string{l}
		}
		if ls := extractList(v.Licenses, "type"); len(ls) > 0 {
			return ls
		}
	}
	if l := extractField(p.License, "type"); l != "" {
		return []string{l}
	}
	return nil
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func extractList(v any, field string) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := extractField(item, field); s != "" {
			out = append(out, s)
		}
	}
	return out
}
