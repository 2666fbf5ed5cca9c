package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/eg467/docdirscan/internal/ibx"
	"github.com/eg467/docdirscan/internal/model"
)

// memorySaver is an in-memory sink double that tracks lifecycle calls.
type memorySaver[T any] struct {
	started  bool
	saved    bool
	profiles []T
	failOn   int // 1-based index of the AddProfile call to fail, 0 for none
	calls    int
}

func (m *memorySaver[T]) StartSession(ctx context.Context, label, sourceURI string) error {
	m.started = true
	return nil
}

func (m *memorySaver[T]) AddProfile(ctx context.Context, profile T) error {
	m.calls++
	if m.failOn != 0 && m.calls == m.failOn {
		return fmt.Errorf("sink rejected profile %d", m.calls)
	}
	m.profiles = append(m.profiles, profile)
	return nil
}

func (m *memorySaver[T]) Save() error {
	m.saved = true
	return nil
}

func TestIbxFeedStep(t *testing.T) {
	t.Parallel()

	feed := ibx.NewFeed(4)
	docs := []ibx.Document{
		{URI: "one.json", Body: `{"id": 1, "provider": {"fullName": "Jane Roe, MD"}}`},
		{URI: "broken.json", Body: `{not json`},
		{URI: "two.json", Body: `{"id": 2, "provider": {"fullName": "John Smith, DO"}}`},
	}
	ctx := context.Background()
	for _, doc := range docs {
		if err := feed.Publish(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}
	feed.Close()

	run := NewRun("ibx", "", "fixtures")
	if err := NewIbxFeedStep(feed).Do(ctx, run); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(run.IbxProfiles) != 2 {
		t.Fatalf("parsed %d profiles, want 2", len(run.IbxProfiles))
	}
	if run.Summary.FailureCount() != 1 {
		t.Errorf("failures = %d, want 1 for the malformed document", run.Summary.FailureCount())
	}
	if run.Summary.Failures[0].Ref != "broken.json" {
		t.Errorf("failure ref = %q, want the document URI", run.Summary.Failures[0].Ref)
	}
}

func TestIbxPersistStepContinuesPastFailures(t *testing.T) {
	t.Parallel()

	saver := &memorySaver[*model.IbxProfile]{failOn: 2}
	run := NewRun("ibx", "label", "uri")
	run.IbxProfiles = []*model.IbxProfile{
		{ID: 1}, {ID: 2}, {ID: 3},
	}

	if err := NewIbxPersistStep(saver).Do(context.Background(), run); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !saver.started || !saver.saved {
		t.Error("sink lifecycle incomplete")
	}
	if len(saver.profiles) != 2 {
		t.Errorf("sink holds %d profiles, want 2 (one rejected)", len(saver.profiles))
	}
	if run.Summary.Processed != 3 {
		t.Errorf("processed = %d, want 3", run.Summary.Processed)
	}
	if run.Summary.FailureCount() != 1 {
		t.Errorf("failures = %d, want 1", run.Summary.FailureCount())
	}
	if run.Summary.Failures[0].Ref != "2" {
		t.Errorf("failure ref = %q, want the profile id", run.Summary.Failures[0].Ref)
	}
}

func TestLvhnPersistStep(t *testing.T) {
	t.Parallel()

	saver := &memorySaver[*model.LvhnProfile]{}
	run := NewRun("lvhn", "label", "uri")
	run.LvhnProfiles = []*model.LvhnProfile{
		{Summary: &model.LvhnSummary{Name: "Jane Roe, MD"}},
	}

	if err := NewLvhnPersistStep(saver).Do(context.Background(), run); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(saver.profiles) != 1 || run.Summary.Processed != 1 {
		t.Errorf("persisted %d, processed %d; want 1, 1", len(saver.profiles), run.Summary.Processed)
	}
}
