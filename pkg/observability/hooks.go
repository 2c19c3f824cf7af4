// Package observability lets the binary observe pipeline runs and registry
// traffic without the libraries importing a metrics or tracing backend.
//
// Libraries emit events through [Pipeline] and [HTTP]; the binary registers
// implementations once at startup. Until then every event goes to a no-op.
//
//	observability.SetHTTPHooks(&logHooks{logger: logger})
//
//	// in library code
//	observability.Pipeline().OnCollected(ctx, "npm", len(list))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the collection and validation pipeline.
type PipelineHooks interface {
	// OnRunStart fires before a collector is selected for lockfile.
	OnRunStart(ctx context.Context, lockfile string)

	// OnCollected fires once the lockfile was parsed and count retrievals
	// were started by the named ecosystem's collector.
	OnCollected(ctx context.Context, ecosystem string, count int)

	// OnDependencyRetrieved fires for every record leaving the stream.
	OnDependencyRetrieved(ctx context.Context, ecosystem, name string, failed bool)

	// OnRunComplete fires when the stream was drained or the run failed.
	OnRunComplete(ctx context.Context, lockfile string, count int, duration time.Duration, err error)
}

// HTTPHooks receives events from registry requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires for transport failures, not for error statuses.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnCollected(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnDependencyRetrieved(context.Context, string, string, bool)      {}
func (NoopPipelineHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks ignores every event. Embed it to implement a subset.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// The registered hooks are boxed so atomic.Pointer can hold an interface.
type (
	pipelineBox struct{ PipelineHooks }
	httpBox     struct{ HTTPHooks }
)

var (
	pipelineHooks atomic.Pointer[pipelineBox]
	httpHooks     atomic.Pointer[httpBox]
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.Store(&pipelineBox{h})
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.Store(&httpBox{h})
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	if b := pipelineHooks.Load(); b != nil {
		return b.PipelineHooks
	}
	return NoopPipelineHooks{}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	if b := httpHooks.Load(); b != nil {
		return b.HTTPHooks
	}
	return NoopHTTPHooks{}
}

// Reset restores the no-op hooks. Tests use it between cases.
func Reset() {
	pipelineHooks.Store(nil)
	httpHooks.Store(nil)
}
