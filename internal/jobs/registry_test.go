package jobs

import (
	"errors"
	"testing"

	"github.com/kittchy/kotoba-cutouter/models"
)

type recordedTransition struct {
	videoID string
	state   State
	errMsg  string
}

type fakeRecorder struct {
	transitions []recordedTransition
}

func (f *fakeRecorder) Record(videoID string, state State, errMsg string) {
	f.transitions = append(f.transitions, recordedTransition{videoID, state, errMsg})
}

func TestRegistryLifecycle(t *testing.T) {
	recorder := &fakeRecorder{}
	registry := NewRegistry(recorder)

	record, err := registry.Begin("vid-1")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if record.State != StatePending {
		t.Errorf("state after Begin = %s, want %s", record.State, StatePending)
	}

	registry.MarkRunning("vid-1")
	if rec, _ := registry.Get("vid-1"); rec.State != StateRunning {
		t.Errorf("state after MarkRunning = %s", rec.State)
	}

	transcript := &models.Transcript{VideoID: "vid-1", Language: "ja"}
	registry.MarkDone("vid-1", transcript)
	rec, ok := registry.Get("vid-1")
	if !ok || rec.State != StateDone {
		t.Fatalf("state after MarkDone = %+v, ok=%v", rec, ok)
	}
	if rec.Transcript == nil || rec.Transcript.VideoID != "vid-1" {
		t.Errorf("done record carries no transcript: %+v", rec)
	}

	wantStates := []State{StatePending, StateRunning, StateDone}
	if len(recorder.transitions) != len(wantStates) {
		t.Fatalf("recorded %d transitions, want %d", len(recorder.transitions), len(wantStates))
	}
	for i, want := range wantStates {
		if recorder.transitions[i].state != want {
			t.Errorf("transition %d = %s, want %s", i, recorder.transitions[i].state, want)
		}
	}
}

func TestRegistryRejectsConcurrentJob(t *testing.T) {
	registry := NewRegistry(nil)

	if _, err := registry.Begin("vid-1"); err != nil {
		t.Fatalf("first Begin failed: %v", err)
	}
	if _, err := registry.Begin("vid-1"); !errors.Is(err, ErrJobExists) {
		t.Errorf("second Begin = %v, want ErrJobExists", err)
	}

	registry.MarkRunning("vid-1")
	if _, err := registry.Begin("vid-1"); !errors.Is(err, ErrJobExists) {
		t.Errorf("Begin while running = %v, want ErrJobExists", err)
	}

	// Other video IDs are unaffected.
	if _, err := registry.Begin("vid-2"); err != nil {
		t.Errorf("Begin for a different video = %v, want nil", err)
	}
}

func TestRegistryAllowsRestartAfterCompletion(t *testing.T) {
	registry := NewRegistry(nil)

	registry.Begin("vid-1")
	registry.MarkFailed("vid-1", "ffmpeg exploded")

	rec, _ := registry.Get("vid-1")
	if rec.State != StateFailed || rec.Err != "ffmpeg exploded" {
		t.Fatalf("failed record = %+v", rec)
	}

	// A finished job, successful or not, may be replaced by a new run.
	record, err := registry.Begin("vid-1")
	if err != nil {
		t.Fatalf("Begin after failure = %v, want nil", err)
	}
	if record.State != StatePending || record.Err != "" {
		t.Errorf("restarted record = %+v", record)
	}
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Begin("vid-1")

	rec, _ := registry.Get("vid-1")
	rec.State = StateFailed

	fresh, _ := registry.Get("vid-1")
	if fresh.State != StatePending {
		t.Errorf("mutating a returned record leaked into the registry: %s", fresh.State)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := NewRegistry(nil)
	if _, ok := registry.Get("missing"); ok {
		t.Error("Get on unknown ID reported a record")
	}
}
