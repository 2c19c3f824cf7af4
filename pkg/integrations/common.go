package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// UserAgent identifies licensebat to registries that require one (crates.io).
const UserAgent = "licensebat (https://github.com/matzehuels/licensebat)"

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-200 responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503
// normalization rules used by PyPI.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// BaseURL returns override when it is set and fallback otherwise, without a
// trailing slash. Registry clients use it to point at test servers.
func BaseURL(override, fallback string) string {
	if override == "" {
		override = fallback
	}
	return strings.TrimRight(override, "/")
}
