package deps

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Retriever looks up the license of a single dependency in its registry.
type Retriever interface {
	// Fetch blocks until the registry answered. It never fails: transport
	// and decoding errors are recorded on the returned record.
	Fetch(ctx context.Context, dep Dependency) RetrievedDependency
}

// RetrieverFunc adapts a function to the [Retriever] interface.
type RetrieverFunc func(ctx context.Context, dep Dependency) RetrievedDependency

// Fetch calls f.
func (f RetrieverFunc) Fetch(ctx context.Context, dep Dependency) RetrievedDependency {
	return f(ctx, dep)
}

// Stream delivers license records in completion order. It is closed once
// every retrieval finished.
type Stream <-chan RetrievedDependency

// Drain reads s until it is closed.
func (s Stream) Drain() []RetrievedDependency {
	var out []RetrievedDependency
	for rec := range s {
		out = append(out, rec)
	}
	return out
}

type limitKey struct{}

// WithConcurrency bounds the number of retrievals [Fanout] runs at once for
// streams started with ctx. n <= 0 means one goroutine per dependency.
func WithConcurrency(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, limitKey{}, n)
}

func concurrency(ctx context.Context) int {
	n, _ := ctx.Value(limitKey{}).(int)
	return n
}

// Fanout starts one retrieval per dependency and returns the stream of
// their records. The stream is buffered to len(list), so producers never
// block on a slow or absent consumer and always terminate.
//
// A retriever that panics yields an error record for its dependency, so
// the stream carries exactly one record per dependency.
func Fanout(ctx context.Context, ecosystem string, list []Dependency, r Retriever) Stream {
	out := make(chan RetrievedDependency, len(list))

	var g errgroup.Group
	if n := concurrency(ctx); n > 0 {
		g.SetLimit(n)
	}

	go func() {
		defer close(out)
		for _, dep := range list {
			g.Go(func() error {
				out <- fetch(ctx, ecosystem, r, dep)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out
}

func fetch(ctx context.Context, ecosystem string, r Retriever, dep Dependency) (rec RetrievedDependency) {
	defer func() {
		if p := recover(); p != nil {
			rec = NewRetrieved(dep, ecosystem, "", nil, fmt.Errorf("retriever panic: %v", p))
		}
	}()
	return r.Fetch(ctx, dep)
}
