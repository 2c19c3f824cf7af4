package dart

import (
	"context"
	"errors"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/integrations"
	"github.com/matzehuels/licensebat/pkg/integrations/pubdev"
	"github.com/matzehuels/licensebat/pkg/licensetext"
)

// Ecosystem is the dependency type of records resolved through pub.dev.
const Ecosystem = "dart"

// Retriever resolves licenses through pub.dev.
type Retriever struct {
	client *pubdev.Client
	store  *licensetext.Store
}

// NewRetriever creates a Retriever using client. store classifies license
// pages when pub.dev has not tagged a package; a nil store disables that
// fallback.
func NewRetriever(client *pubdev.Client, store *licensetext.Store) *Retriever {
	return &Retriever{client: client, store: store}
}

// Fetch reads the license tags of the package score. Without a tag the
// license page of the exact version is downloaded and classified offline.
// A missing license page means the package ships no license.
func (r *Retriever) Fetch(ctx context.Context, dep deps.Dependency) deps.RetrievedDependency {
	url := pubdev.BrowseURL(dep.Name, dep.Version)
	if err := errs.ValidatePackageName(dep.Name); err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}

	score, err := r.client.FetchScore(ctx, dep.Name)
	if err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}
	if tags := score.LicenseTags(); len(tags) > 0 {
		return deps.NewRetrieved(dep, Ecosystem, url, r.canonical(tags), nil)
	}
	if r.store == nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, nil)
	}

	text, err := r.client.FetchLicenseText(ctx, dep.Name, dep.Version)
	if errors.Is(err, integrations.ErrNotFound) {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, nil)
	}
	if err != nil {
		return deps.NewRetrieved(dep, Ecosystem, url, nil, err)
	}
	var licenses []string
	if m, ok := r.store.Classify(text); ok {
		licenses = []string{m.ID}
	}
	return deps.NewRetrieved(dep, Ecosystem, url, licenses, nil)
}

// canonical maps pub.dev's lowercase tag ids to their SPDX spelling.
func (r *Retriever) canonical(tags []string) []string {
	if r.store == nil {
		return tags
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = r.store.Canonical(t)
	}
	return out
}
