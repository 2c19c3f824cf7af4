package python

import (
	"context"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/integrations/pypi"
)

// Ecosystem is the dependency type of records resolved through PyPI.
const Ecosystem = "python"

// Retriever resolves licenses through the PyPI JSON API.
type Retriever struct {
	client *pypi.Client
}

// NewRetriever creates a Retriever using client.
func NewRetriever(client *pypi.Client) *Retriever {
	return &Retriever{client: client}
}

// Fetch looks up the exact release. License expressions are split like npm
// expressions; classifier names are kept whole.
func (r *Retriever) Fetch(ctx context.Context, dep deps.Dependency) deps.RetrievedDependency {
	url := pypi.BrowseURL(dep.Name, dep.Version)
	if err := errs.ValidatePackageName(dep.Name); err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}

	info, err := r.client.FetchRelease(ctx, dep.Name, dep.Version)
	if err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}
	licenses, expression := info.DeclaredLicenses()
	if expression {
		licenses = deps.SplitLicenses(licenses, deps.SPDX...)
	}
	return deps.NewRetrieved(dep, Ecosystem, url, licenses, nil)
}
