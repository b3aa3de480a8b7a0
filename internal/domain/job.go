package domain

import (
	"errors"
	"time"
)

// JobStatus enumerates the lifecycle of a video generation job.
type JobStatus string

const (
	JobStatusCreated JobStatus = "created"
	JobStatusPending JobStatus = "pending"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"
)

// NoVideoLinkMessage is reported when the remote operation finished without a result URI.
const NoVideoLinkMessage = "Video generation completed but no link was provided."

var (
	errAlreadyAcknowledged = errors.New("job already acknowledged")
	errEmptyHandle         = errors.New("job handle is empty")
)

// GenerationJob tracks one asynchronous video request from submission to a
// terminal state. It is only mutated through Acknowledge, Apply and Fail.
type GenerationJob struct {
	ID          string    `json:"job_id"`
	UserID      string    `json:"user_id"`
	Handle      string    `json:"-"`
	Model       string    `json:"model"`
	Prompt      string    `json:"prompt"`
	AspectRatio string    `json:"aspect_ratio"`
	Resolution  string    `json:"resolution"`
	Status      JobStatus `json:"status"`
	ResultURI   string    `json:"-"`
	Error       string    `json:"error,omitempty"`
	Err         error     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusReport is what one poll of the remote operation observed.
type StatusReport struct {
	Done      bool
	ResultURI string
	Err       error
}

// NewGenerationJob returns a job in the created state.
func NewGenerationJob(id, userID string, now time.Time) *GenerationJob {
	return &GenerationJob{
		ID:        id,
		UserID:    userID,
		Status:    JobStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTerminal reports whether the job reached done or failed.
func (j *GenerationJob) IsTerminal() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusFailed
}

// Acknowledge records the remote handle and moves the job to pending.
func (j *GenerationJob) Acknowledge(handle string) error {
	if j.Status != JobStatusCreated {
		return errAlreadyAcknowledged
	}
	if handle == "" {
		return errEmptyHandle
	}
	j.Handle = handle
	j.Status = JobStatusPending
	j.UpdatedAt = time.Now()
	return nil
}

// Apply folds a status report into the job and returns the resulting status.
// Reports against a terminal or not yet acknowledged job change nothing.
func (j *GenerationJob) Apply(r StatusReport) JobStatus {
	if j.Status != JobStatusPending {
		return j.Status
	}
	switch {
	case r.Err != nil:
		j.fail(r.Err)
	case !r.Done:
	case r.ResultURI == "":
		j.fail(&NoOutputError{Reason: NoVideoLinkMessage})
	default:
		j.ResultURI = r.ResultURI
		j.Status = JobStatusDone
		j.UpdatedAt = time.Now()
	}
	return j.Status
}

// Fail moves a non-terminal job to failed. Used for local conditions such as
// a poll timeout or a materialization error.
func (j *GenerationJob) Fail(err error) JobStatus {
	if j.IsTerminal() {
		return j.Status
	}
	j.fail(err)
	return j.Status
}

func (j *GenerationJob) fail(err error) {
	j.Status = JobStatusFailed
	j.Err = err
	j.Error = err.Error()
	var noOut *NoOutputError
	if errors.As(err, &noOut) {
		j.Error = noOut.Reason
	}
	j.UpdatedAt = time.Now()
}
