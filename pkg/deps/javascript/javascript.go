package javascript

import (
	"context"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/integrations/npm"
)

// Ecosystem is the dependency type of records resolved through npm.
const Ecosystem = "npm"

// Retriever resolves licenses through the npm registry. It serves both
// package-lock.json and yarn.lock collectors.
type Retriever struct {
	client *npm.Client
}

// NewRetriever creates a Retriever using client.
func NewRetriever(client *npm.Client) *Retriever {
	return &Retriever{client: client}
}

// Fetch looks up dep in the registry. Licenses follow
// [npm.Packument.DeclaredLicenses] and are split with [deps.SPDX].
func (r *Retriever) Fetch(ctx context.Context, dep deps.Dependency) deps.RetrievedDependency {
	url := npm.BrowseURL(dep.Name, dep.Version)
	if err := errs.ValidatePackageName(dep.Name); err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}

	doc, err := r.client.FetchPackument(ctx, dep.Name)
	if err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}
	licenses := deps.SplitLicenses(doc.DeclaredLicenses(dep.Version), deps.SPDX...)
	return deps.NewRetrieved(dep, Ecosystem, url, licenses, nil)
}
