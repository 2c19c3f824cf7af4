package rubygems

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/licensebat/pkg/integrations"
)

// DefaultBaseURL is the public RubyGems API.
const DefaultBaseURL = "https://rubygems.org/api/v2"

// VersionInfo holds the license metadata of one published gem version.
//
// Zero values: Name and Version are empty, Licenses is nil. A nil Licenses
// slice means the gemspec declares no license.
type VersionInfo struct {
	Name     string
	Version  string
	Licenses []string // Declared licenses, each one an identifier
}

// Client provides access to the RubyGems package registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a RubyGems client on top of the shared HTTP client.
// An empty baseURL selects [DefaultBaseURL].
func NewClient(shared *integrations.Client, baseURL string) *Client {
	return &Client{
		Client:  shared,
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchVersion retrieves the metadata of gem at version.
//
// The gem parameter is trimmed of whitespace; gem names are case-sensitive.
//
// Returns:
//   - [integrations.ErrNotFound] if the gem or version doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, non-200, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchVersion(ctx context.Context, gem, version string) (*VersionInfo, error) {
	gem = strings.TrimSpace(gem)

	var data versionResponse
	url := fmt.Sprintf("%s/rubygems/%s/versions/%s.json", c.baseURL, gem, version)
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: gem %s (%s)", err, gem, version)
		}
		return nil, err
	}

	var licenses []string
	for _, l := range data.Licenses {
		if l = strings.TrimSpace(l); l != "" {
			licenses = append(licenses, l)
		}
	}

	return &VersionInfo{
		Name:     data.Name,
		Version:  data.Version,
		Licenses: licenses,
	}, nil
}

// BrowseURL is the rubygems.org page of a specific gem version.
func BrowseURL(gem, version string) string {
	return fmt.Sprintf("https://rubygems.org/gems/%s/versions/%s", gem, version)
}

type versionResponse struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Licenses []string `json:"licenses"`
}
