package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/licensebat/pkg/integrations"
)

// DefaultBaseURL is the public PyPI JSON API.
const DefaultBaseURL = "https://pypi.org/pypi"

// ReleaseInfo holds the license metadata of one PyPI release.
//
// Zero values: all string fields are empty and Classifiers is nil.
// This struct is safe for concurrent reads after construction.
type ReleaseInfo struct {
	Name              string   // Project name as published (e.g., "Flask")
	Version           string   // Release version (e.g., "2.0.0")
	LicenseExpression string   // PEP 639 SPDX expression (may be empty)
	License           string   // Free-form license field, sometimes the full text (may be empty)
	Classifiers       []string // Trove classifiers (may be nil)
}

// Client provides access to the PyPI package registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client on top of the shared HTTP client.
// An empty baseURL selects [DefaultBaseURL].
func NewClient(shared *integrations.Client, baseURL string) *Client {
	return &Client{
		Client:  shared,
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchRelease retrieves the metadata of pkg at version.
//
// The pkg parameter is normalized automatically (case-insensitive, underscores→hyphens).
//
// Returns:
//   - [integrations.ErrNotFound] if the project or release doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, non-200, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchRelease(ctx context.Context, pkg, version string) (*ReleaseInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)

	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/%s/json", c.baseURL, pkg, version), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: pypi package %s==%s", err, pkg, version)
		}
		return nil, err
	}

	return &ReleaseInfo{
		Name:              data.Info.Name,
		Version:           data.Info.Version,
		LicenseExpression: strings.TrimSpace(data.Info.LicenseExpression),
		License:           data.Info.License,
		Classifiers:       data.Info.Classifiers,
	}, nil
}

// BrowseURL is the pypi.org page of a specific release.
func BrowseURL(pkg, version string) string {
	return fmt.Sprintf("https://pypi.org/project/%s/%s/", pkg, version)
}

// DeclaredLicenses resolves the licenses of a release in order of
// reliability: the SPDX license expression, then "License ::" classifiers,
// then a short free-form license field. expression reports whether the
// result is an expression that still needs splitting; classifier names are
// already atomic.
func (r *ReleaseInfo) DeclaredLicenses() (licenses []string, expression bool) {
	if r.LicenseExpression != "" {
		return []string{r.LicenseExpression}, true
	}
	if ls := classifierLicenses(r.Classifiers); len(ls) > 0 {
		return ls, false
	}
	if l := shortLicense(r.License); l != "" {
		return []string{l}, true
	}
	return nil, false
}

// classifierLicenses maps "License :: OSI Approved :: MIT License" to
// "MIT License". Bare category classifiers are skipped.
func classifierLicenses(classifiers []string) []string {
	var out []string
	for _, c := range classifiers {
		if !strings.HasPrefix(c, "License :: ") {
			continue
		}
		parts := strings.Split(c, " :: ")
		if len(parts) >= 3 {
			out = append(out, strings.TrimSpace(parts[len(parts)-1]))
		}
	}
	return out
}

// shortLicense returns the license field when it looks like an identifier
// rather than a pasted license text.
func shortLicense(license string) string {
	license = strings.TrimSpace(license)
	if license == "" {
		return ""
	}
	if len(license) < 100 && !strings.Contains(license, "\n") {
		return license
	}
	// Common patterns: "MIT License", "BSD 3-Clause License", "Apache License 2.0"
	firstLine := strings.TrimSpace(strings.Split(license, "\n")[0])
	if len(firstLine) < 50 {
		return firstLine
	}
	return ""
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name              string   `json:"name"`
	Version           string   `json:"version"`
	License           string   `json:"license"`
	LicenseExpression string   `json:"license_expression"`
	Classifiers       []string `json:"classifiers"`
}
