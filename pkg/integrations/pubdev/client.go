package pubdev

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/licensebat/pkg/integrations"
)

// DefaultBaseURL is pub.dev, which serves both the JSON API and the HTML pages.
const DefaultBaseURL = "https://pub.dev"

const licenseTagPrefix = "license:"

// Classification tags carried next to the actual license tags.
var classificationTags = map[string]bool{
	"license:fsf-libre":    true,
	"license:osi-approved": true,
}

// Score holds the tags pub.dev derived for a package.
type Score struct {
	Tags []string
}

// LicenseTags returns the license identifiers found in the score tags,
// e.g. "license:bsd-3-clause" becomes "bsd-3-clause". Classification tags
// are skipped.
func (s *Score) LicenseTags() []string {
	var out []string
	for _, tag := range s.Tags {
		if !strings.HasPrefix(tag, licenseTagPrefix) || classificationTags[tag] {
			continue
		}
		if id := strings.TrimPrefix(tag, licenseTagPrefix); id != "" && id != "unknown" {
			out = append(out, id)
		}
	}
	return out
}

// Client provides access to the pub.dev API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a pub.dev client on top of the shared HTTP client.
// An empty baseURL selects [DefaultBaseURL].
func NewClient(shared *integrations.Client, baseURL string) *Client {
	return &Client{
		Client:  shared,
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchScore retrieves the score document of pkg.
//
// Returns:
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, non-200, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchScore(ctx context.Context, pkg string) (*Score, error) {
	var data scoreResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/api/packages/%s/score", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: pub package %s", err, pkg)
		}
		return nil, err
	}
	return &Score{Tags: data.Tags}, nil
}

// FetchLicenseText retrieves the license page of pkg at version and returns
// its visible text with markup removed.
func (c *Client) FetchLicenseText(ctx context.Context, pkg, version string) (string, error) {
	page, err := c.GetText(ctx, c.LicensePageURL(pkg, version))
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: license page of %s %s", err, pkg, version)
		}
		return "", err
	}
	return pageText(page), nil
}

// LicensePageURL is the license tab of a specific package version.
func (c *Client) LicensePageURL(pkg, version string) string {
	return fmt.Sprintf("%s/packages/%s/versions/%s/license", c.baseURL, pkg, version)
}

// BrowseURL is the pub.dev page of a specific package version.
func BrowseURL(pkg, version string) string {
	return fmt.Sprintf("https://pub.dev/packages/%s/versions/%s", pkg, version)
}

// pageText returns the visible text of page: script and style bodies,
// comments and markup are dropped, entities decoded, whitespace collapsed.
func pageText(page string) string {
	var (
		words []string
		skip  int
	)
	z := html.NewTokenizer(strings.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(words, " ")
		case html.StartTagToken:
			if name, _ := z.TagName(); isHidden(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isHidden(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				words = append(words, strings.Fields(string(z.Text()))...)
			}
		}
	}
}

func isHidden(tag []byte) bool {
	switch string(tag) {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

type scoreResponse struct {
	Tags []string `json:"tags"`
}
