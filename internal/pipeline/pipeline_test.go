package pipeline

import (
	"context"
	"fmt"
	"testing"
)

// stubStep records whether it ran and optionally fails.
type stubStep struct {
	name string
	fail bool
	ran  bool
}

func (s *stubStep) Name() string { return s.name }

func (s *stubStep) Do(ctx context.Context, run *Run) error {
	s.ran = true
	if s.fail {
		return fmt.Errorf("%s failed", s.name)
	}
	return nil
}

func TestPipelineStopsOnError(t *testing.T) {
	t.Parallel()

	first := &stubStep{name: "first", fail: true}
	second := &stubStep{name: "second"}

	p := New()
	p.AddSteps(first, second)

	run := NewRun("lvhn", "label", "uri")
	if err := p.Execute(context.Background(), run); err == nil {
		t.Fatal("Execute() succeeded with a failing step")
	}
	if second.ran {
		t.Error("second step ran after a failure without continueOnError")
	}
	if run.Summary.FailureCount() != 1 {
		t.Errorf("summary failures = %d, want 1", run.Summary.FailureCount())
	}
	if run.Summary.FinishedAt.IsZero() {
		t.Error("summary not finished after Execute")
	}
}

func TestPipelineContinueOnError(t *testing.T) {
	t.Parallel()

	first := &stubStep{name: "first", fail: true}
	second := &stubStep{name: "second"}

	p := New(WithContinueOnError(true))
	p.AddSteps(first, second)

	run := NewRun("lvhn", "label", "uri")
	if err := p.Execute(context.Background(), run); err != nil {
		t.Fatalf("Execute() error = %v with continueOnError", err)
	}
	if !second.ran {
		t.Error("second step did not run despite continueOnError")
	}
}

func TestPipelineCancellation(t *testing.T) {
	t.Parallel()

	step := &stubStep{name: "never"}
	p := New()
	p.AddStep(step)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := NewRun("ibx", "", "")
	if err := p.Execute(ctx, run); err != context.Canceled {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if step.ran {
		t.Error("step ran under a cancelled context")
	}
	if !run.Summary.Cancelled {
		t.Error("summary not marked cancelled")
	}
}
