package pipeline

import (
	"context"
	"log/slog"

	"github.com/eg467/docdirscan/internal/model"
	"github.com/eg467/docdirscan/internal/report"
)

// Run is the shared state a pipeline's steps accumulate: the profiles
// gathered so far and the summary of how gathering went.
type Run struct {
	// Summary accumulates counts and failures across steps.
	Summary *report.RunSummary

	// IbxProfiles holds parsed insurance-network profiles awaiting
	// persistence.
	IbxProfiles []*model.IbxProfile

	// LvhnProfiles holds assembled hospital-network profiles awaiting
	// persistence.
	LvhnProfiles []*model.LvhnProfile
}

// NewRun creates a Run with a fresh summary.
func NewRun(source, label, sourceURI string) *Run {
	return &Run{Summary: report.NewRunSummary(source, label, sourceURI)}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// run state from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., priority, dependencies)
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the run to modify.
	// Returns an error if the step fails critically; per-item errors
	// should be recorded in the run summary and return nil.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, a default logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and recorded in the run
// summary, but subsequent steps still execute.
//
// Design decision: The default is to stop on error because an early
// failure usually means nothing downstream can succeed (a crawl that
// found nothing leaves nothing to persist).
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence and stamps the summary when
// done. It respects context cancellation between steps.
//
// Design decision: We check context.Done() before each step rather than
// during, because steps check cancellation between their own items. This
// allows graceful cleanup between steps while still respecting
// cancellation.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps complete (errors are recorded in the summary).
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	defer run.Summary.Finish()

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			run.Summary.Cancelled = true
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"source", run.Summary.Source,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", run.Summary.Source,
				"error", err,
			)
			run.Summary.AddFailure(step.Name(), err)
			if ctx.Err() != nil {
				run.Summary.Cancelled = true
			}
			if !p.continueOnError {
				return err
			}
			continue
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"source", run.Summary.Source,
		)
	}
	return nil
}
