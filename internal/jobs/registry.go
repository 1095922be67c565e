// Package jobs tracks background transcription work. The registry is the
// single source of truth for job state: the query path reads it instead of
// inferring progress from transcript-file existence, which races with the
// writer.
package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/kittchy/kotoba-cutouter/models"
)

// State is the lifecycle state of a transcription job.
type State string

const (
	StatePending State = "PENDING"
	StateRunning State = "PROCESSING"
	StateDone    State = "COMPLETED"
	StateFailed  State = "FAILED"
)

// live reports whether a job in this state is still in flight.
func (s State) live() bool {
	return s == StatePending || s == StateRunning
}

// ErrJobExists is returned by Begin when a live job already exists for the
// video ID. At most one transcription runs per video at a time.
var ErrJobExists = errors.New("a transcription job is already in progress for this video")

// Record is the job state for one video ID. Transcript is set when the job
// completes, Err when it fails.
type Record struct {
	VideoID    string             `json:"video_id"`
	State      State              `json:"state"`
	Transcript *models.Transcript `json:"-"`
	Err        string             `json:"error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// StatusRecorder mirrors job state transitions to an external sink. A nil
// recorder is a no-op.
type StatusRecorder interface {
	Record(videoID string, state State, errMsg string)
}

// Registry is an in-memory job store keyed by video ID.
type Registry struct {
	mu       sync.RWMutex
	records  map[string]*Record
	recorder StatusRecorder
}

// NewRegistry creates a Registry. recorder may be nil.
func NewRegistry(recorder StatusRecorder) *Registry {
	return &Registry{
		records:  make(map[string]*Record),
		recorder: recorder,
	}
}

// Begin registers a pending job for the video ID. A finished or failed job
// may be restarted; a live one is rejected with ErrJobExists.
func (r *Registry) Begin(videoID string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.records[videoID]; ok && existing.State.live() {
		return nil, ErrJobExists
	}

	now := time.Now()
	rec := &Record{VideoID: videoID, State: StatePending, CreatedAt: now, UpdatedAt: now}
	r.records[videoID] = rec
	r.report(videoID, StatePending, "")
	return rec.clone(), nil
}

// MarkRunning transitions the job to the running state.
func (r *Registry) MarkRunning(videoID string) {
	r.transition(videoID, StateRunning, nil, "")
}

// MarkDone records a successful result.
func (r *Registry) MarkDone(videoID string, t *models.Transcript) {
	r.transition(videoID, StateDone, t, "")
}

// MarkFailed records a failure with its reason.
func (r *Registry) MarkFailed(videoID, reason string) {
	r.transition(videoID, StateFailed, nil, reason)
}

// Get returns a copy of the job record for the video ID, if any.
func (r *Registry) Get(videoID string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[videoID]
	if !ok {
		return nil, false
	}
	return rec.clone(), true
}

func (r *Registry) transition(videoID string, state State, t *models.Transcript, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[videoID]
	if !ok {
		return
	}
	rec.State = state
	rec.Transcript = t
	rec.Err = errMsg
	rec.UpdatedAt = time.Now()
	r.report(videoID, state, errMsg)
}

// report must be called with the lock held so mirror writes keep the same
// order as the transitions they describe.
func (r *Registry) report(videoID string, state State, errMsg string) {
	if r.recorder != nil {
		r.recorder.Record(videoID, state, errMsg)
	}
}

func (rec *Record) clone() *Record {
	out := *rec
	return &out
}
