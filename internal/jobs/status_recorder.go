package jobs

import (
	"fmt"
	"time"

	postgrest "github.com/supabase-community/postgrest-go"
	"github.com/sirupsen/logrus"
)

const jobStatusTable = "transcription_jobs"

// jobStatusRow maps to the transcription_jobs table.
type jobStatusRow struct {
	VideoID      string    `json:"video_id"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupabaseRecorder mirrors job state transitions into Supabase so operators
// can watch job progress without shell access to the host. Mirror failures
// are logged and never affect the job itself.
type SupabaseRecorder struct {
	client *postgrest.Client
	log    *logrus.Logger
}

// NewSupabaseRecorder builds a recorder against the project's REST endpoint.
func NewSupabaseRecorder(supabaseURL, serviceKey string, log *logrus.Logger) *SupabaseRecorder {
	client := postgrest.NewClient(supabaseURL+"/rest/v1", "", map[string]string{
		"apikey":        serviceKey,
		"Authorization": fmt.Sprintf("Bearer %s", serviceKey),
	})
	return &SupabaseRecorder{client: client, log: log}
}

// Record implements StatusRecorder.
func (r *SupabaseRecorder) Record(videoID string, state State, errMsg string) {
	row := jobStatusRow{
		VideoID:   videoID,
		Status:    string(state),
		UpdatedAt: time.Now(),
	}
	if errMsg != "" {
		row.ErrorMessage = &errMsg
	}

	_, _, err := r.client.From(jobStatusTable).
		Insert(row, true, "video_id", "minimal", "").
		Execute()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"video_id": videoID,
			"status":   state,
			"error":    err.Error(),
		}).Warn("Failed to mirror job status to Supabase")
	}
}
