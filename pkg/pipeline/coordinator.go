package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/observability"
	"github.com/matzehuels/licensebat/pkg/policy"
)

// Coordinator dispatches lockfiles to collectors and drains their streams.
//
// A Coordinator holds no per-run state; multiple goroutines can run
// lockfiles through the same Coordinator.
type Coordinator struct {
	collectors []deps.Collector
	opts       Options
	logger     *log.Logger
}

// NewCoordinator creates a coordinator over collectors. Registration order
// is selection precedence.
func NewCoordinator(collectors ...deps.Collector) *Coordinator {
	return (&Coordinator{collectors: collectors}).WithOptions(Options{})
}

// WithOptions returns a copy of c using opts.
func (c *Coordinator) WithOptions(opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{collectors: c.collectors, opts: opts, logger: logger}
}

// Collectors returns the registered collectors in precedence order.
func (c *Coordinator) Collectors() []deps.Collector {
	return c.collectors
}

// Select returns the collector responsible for path.
func (c *Coordinator) Select(path string) (deps.Collector, error) {
	col, ok := deps.Detect(path, c.collectors...)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupportedLockfile, "no collector for %s", path)
	}
	return col, nil
}

// Run collects every dependency of the lockfile at path and returns their
// records unvalidated, in completion order.
func (c *Coordinator) Run(ctx context.Context, path, content string) ([]deps.RetrievedDependency, error) {
	res, err := c.Execute(ctx, path, content, nil)
	if err != nil {
		return nil, err
	}
	return res.Dependencies, nil
}

// Check is [Coordinator.Run] with p applied to each record as it arrives.
func (c *Coordinator) Check(ctx context.Context, path, content string, p *policy.Policy) ([]deps.RetrievedDependency, error) {
	res, err := c.Execute(ctx, path, content, p)
	if err != nil {
		return nil, err
	}
	return res.Dependencies, nil
}

// Execute runs the pipeline and returns the full result. A nil policy
// leaves records unvalidated; a policy with unknown outcomes fails before
// any registry request.
func (c *Coordinator) Execute(ctx context.Context, path, content string, p *policy.Policy) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, path)
	defer func() {
		count := 0
		if res != nil {
			count = res.Stats.Count
		}
		hooks.OnRunComplete(ctx, path, count, time.Since(start), err)
	}()

	if p != nil {
		if err := p.Check(); err != nil {
			return nil, err
		}
	}
	col, err := c.Select(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("selected collector", "lockfile", path, "collector", col.Name())

	if c.opts.Concurrency > 0 {
		ctx = deps.WithConcurrency(ctx, c.opts.Concurrency)
	}
	stream, err := col.Collect(ctx, content)
	if err != nil {
		if errs.GetCode(err) == "" {
			err = errs.Wrap(errs.ErrCodeInvalidLockfile, err, "parse %s", path)
		}
		return nil, err
	}
	hooks.OnCollected(ctx, col.Name(), cap(stream))
	c.logger.Debug("collected dependencies", "count", cap(stream))

	res = &Result{
		ID:           uuid.NewString(),
		Lockfile:     path,
		Collector:    col.Name(),
		Dependencies: make([]deps.RetrievedDependency, 0, cap(stream)),
		Validated:    p != nil,
	}
	for rec := range stream {
		if p != nil {
			p.Validate(&rec)
		}
		hooks.OnDependencyRetrieved(ctx, rec.DependencyType, rec.Name, rec.Error != nil)
		if rec.Error != nil {
			c.logger.Debug("retrieval failed", "dependency", rec.Name, "version", rec.Version, "error", *rec.Error)
		}
		res.Dependencies = append(res.Dependencies, rec)
	}
	res.Stats = Stats{Count: len(res.Dependencies), Duration: time.Since(start)}
	c.logger.Debug("run complete", "count", res.Stats.Count, "duration", res.Stats.Duration)
	return res, nil
}
