package ruby

import (
	"context"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/integrations/rubygems"
)

// Ecosystem is the dependency type of records resolved through RubyGems.
const Ecosystem = "ruby"

// Retriever resolves licenses through the RubyGems v2 API.
type Retriever struct {
	client *rubygems.Client
}

// NewRetriever creates a Retriever using client.
func NewRetriever(client *rubygems.Client) *Retriever {
	return &Retriever{client: client}
}

// Fetch looks up the exact gem version. Entries of the licenses array are
// taken as they are.
func (r *Retriever) Fetch(ctx context.Context, dep deps.Dependency) deps.RetrievedDependency {
	url := rubygems.BrowseURL(dep.Name, dep.Version)
	if err := errs.ValidatePackageName(dep.Name); err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}

	info, err := r.client.FetchVersion(ctx, dep.Name, dep.Version)
	if err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}
	return deps.NewRetrieved(dep, Ecosystem, url, deps.SplitLicenses(info.Licenses), nil)
}
