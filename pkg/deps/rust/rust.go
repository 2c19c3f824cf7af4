package rust

import (
	"context"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/integrations/crates"
)

// Ecosystem is the dependency type of records resolved through crates.io.
const Ecosystem = "rust"

// Retriever resolves licenses through the crates.io API.
type Retriever struct {
	client *crates.Client
}

// NewRetriever creates a Retriever using client.
func NewRetriever(client *crates.Client) *Retriever {
	return &Retriever{client: client}
}

// Fetch looks up the exact crate version. The license expression is split
// with [deps.CargoLegacy], which also breaks the "MIT/Apache-2.0" form
// older crates publish.
func (r *Retriever) Fetch(ctx context.Context, dep deps.Dependency) deps.RetrievedDependency {
	url := crates.BrowseURL(dep.Name, dep.Version)
	if err := errs.ValidatePackageName(dep.Name); err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}

	info, err := r.client.FetchVersion(ctx, dep.Name, dep.Version)
	if err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}
	licenses := deps.SplitLicenses([]string{info.License}, deps.CargoLegacy...)
	return deps.NewRetrieved(dep, Ecosystem, url, licenses, nil)
}
