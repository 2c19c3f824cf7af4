package crates

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/licensebat/pkg/integrations"
)

// DefaultBaseURL is the public crates.io API.
const DefaultBaseURL = "https://crates.io/api/v1"

// VersionInfo holds the license metadata of one published crate version.
//
// License is the SPDX expression as published (e.g. "MIT OR Apache-2.0");
// older crates use "/" as a separator. It may be empty for crates that only
// ship a license file.
type VersionInfo struct {
	Crate   string
	Version string
	License string
}

// Client provides access to the crates.io package registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
//
// Note: crates.io rejects requests without a User-Agent header; this client
// sends [integrations.UserAgent] on every call.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client on top of the shared HTTP client.
// An empty baseURL selects [DefaultBaseURL].
func NewClient(shared *integrations.Client, baseURL string) *Client {
	return &Client{
		Client:  shared,
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchVersion retrieves the metadata of crate at version.
//
// The crate parameter is case-sensitive and must match the published crate name exactly.
//
// Returns:
//   - [integrations.ErrNotFound] if the crate or version doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, non-200, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchVersion(ctx context.Context, crate, version string) (*VersionInfo, error) {
	url := fmt.Sprintf("%s/crates/%s/%s", c.baseURL, crate, version)
	headers := map[string]string{"User-Agent": integrations.UserAgent}

	var data versionResponse
	if err := c.GetWithHeaders(ctx, url, headers, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: crate %s@%s", err, crate, version)
		}
		return nil, err
	}

	return &VersionInfo{
		Crate:   data.Version.Crate,
		Version: data.Version.Num,
		License: data.Version.License,
	}, nil
}

// BrowseURL is the crates.io page of a specific crate version.
func BrowseURL(crate, version string) string {
	return fmt.Sprintf("https://crates.io/crates/%s/%s", crate, version)
}

type versionResponse struct {
	Version struct {
		Crate   string `json:"crate"`
		Num     string `json:"num"`
		License string `json:"license"`
	} `json:"version"`
}
