package generation

import (
	"context"
	"errors"
	"sync"
	"time"

	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/poller"
)

// DefaultJobRetention is how long a finished job stays queryable.
const DefaultJobRetention = time.Hour

// Error codes reported on failed video jobs.
const (
	JobErrorAuthExpired = "auth_expired"
	JobErrorRemote      = "remote_error"
	JobErrorNoOutput    = "no_output"
	JobErrorTimeout     = "timeout"
	JobErrorFailed      = "generation_failed"
)

// Materializer turns a finished job into a playable URL.
type Materializer interface {
	Materialize(ctx context.Context, job domain.GenerationJob) (string, error)
	Mode() string
}

// JobError describes why a video job failed.
type JobError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// VideoStatus is what a client sees for a tracked video job.
type VideoStatus struct {
	JobID       string           `json:"job_id"`
	Status      domain.JobStatus `json:"status"`
	Label       string           `json:"label,omitempty"`
	VideoURL    string           `json:"video_url,omitempty"`
	AspectRatio string           `json:"aspect_ratio"`
	Resolution  string           `json:"resolution"`
	Error       *JobError        `json:"error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type trackedJob struct {
	userID     string
	handle     *poller.Handle
	url        string
	finishedAt time.Time
}

// VideoJobs tracks running video jobs in memory, keyed by job id. Jobs do
// not survive a restart.
type VideoJobs struct {
	service   *Service
	poller    *poller.Poller
	media     Materializer
	videos    domain.VideoRepository
	retention time.Duration
	now       func() time.Time
	logger    *infra.Logger

	mu   sync.Mutex
	jobs map[string]*trackedJob
}

func NewVideoJobs(service *Service, p *poller.Poller, media Materializer, videos domain.VideoRepository, logger *infra.Logger) *VideoJobs {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &VideoJobs{
		service:   service,
		poller:    p,
		media:     media,
		videos:    videos,
		retention: DefaultJobRetention,
		now:       time.Now,
		logger:    logger,
		jobs:      make(map[string]*trackedJob),
	}
}

// Start submits the video request and begins polling it in the background.
// Polling outlives the request context.
func (v *VideoJobs) Start(ctx context.Context, req VideoRequest) (VideoStatus, error) {
	job, err := v.service.SubmitVideo(ctx, req)
	if err != nil {
		return VideoStatus{}, err
	}
	v.sweep()

	t := &trackedJob{userID: job.UserID}
	base := context.WithoutCancel(ctx)
	check := func(ctx context.Context, handle string) (domain.StatusReport, error) {
		return v.check(ctx, t, *job, handle)
	}
	onTick := func(s poller.Snapshot) {
		if s.Job.IsTerminal() {
			v.finish(base, t, s.Job)
		}
	}

	v.mu.Lock()
	t.handle = v.poller.Start(base, *job, check, onTick)
	v.jobs[job.ID] = t
	v.mu.Unlock()

	return v.status(t), nil
}

// check polls the remote operation and, once it is done, materializes the
// result before the job is allowed to report done.
func (v *VideoJobs) check(ctx context.Context, t *trackedJob, job domain.GenerationJob, handle string) (domain.StatusReport, error) {
	report, err := v.service.PollVideo(ctx, handle)
	if err != nil || !report.Done || report.Err != nil || report.ResultURI == "" {
		return report, err
	}
	job.ResultURI = report.ResultURI
	url, err := v.media.Materialize(ctx, job)
	if err != nil {
		return domain.StatusReport{Done: true, Err: err}, nil
	}
	v.mu.Lock()
	t.url = url
	v.mu.Unlock()
	return report, nil
}

func (v *VideoJobs) finish(ctx context.Context, t *trackedJob, job domain.GenerationJob) {
	v.mu.Lock()
	t.finishedAt = v.now()
	url := t.url
	v.mu.Unlock()

	if job.Status != domain.JobStatusDone {
		v.logger.Warn().Str("job_id", job.ID).Str("error", job.Error).Msg("video job failed")
		return
	}
	artifact := &domain.VideoArtifact{
		UserID:      job.UserID,
		JobID:       job.ID,
		Prompt:      job.Prompt,
		URL:         url,
		Delivery:    v.media.Mode(),
		AspectRatio: job.AspectRatio,
		Resolution:  job.Resolution,
	}
	if _, err := v.videos.Save(ctx, artifact); err != nil {
		v.logger.Error().Err(err).Str("job_id", job.ID).Msg("save video artifact")
		return
	}
	v.logger.Info().Str("job_id", job.ID).Str("video_id", artifact.ID).Msg("video job done")
}

// Status returns the job as seen by userID. Jobs owned by someone else are
// reported as not found.
func (v *VideoJobs) Status(userID, jobID string) (VideoStatus, error) {
	t, err := v.lookup(userID, jobID)
	if err != nil {
		return VideoStatus{}, err
	}
	return v.status(t), nil
}

// Cancel stops polling and forgets the job. A result arriving afterwards is dropped.
func (v *VideoJobs) Cancel(userID, jobID string) error {
	t, err := v.lookup(userID, jobID)
	if err != nil {
		return err
	}
	t.handle.Cancel()
	v.mu.Lock()
	delete(v.jobs, jobID)
	v.mu.Unlock()
	v.logger.Info().Str("job_id", jobID).Msg("video job cancelled")
	return nil
}

func (v *VideoJobs) lookup(userID, jobID string) (*trackedJob, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	t, ok := v.jobs[jobID]
	if !ok || t.userID != userID {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (v *VideoJobs) status(t *trackedJob) VideoStatus {
	snap := t.handle.Snapshot()
	job := snap.Job
	out := VideoStatus{
		JobID:       job.ID,
		Status:      job.Status,
		AspectRatio: job.AspectRatio,
		Resolution:  job.Resolution,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
	switch job.Status {
	case domain.JobStatusDone:
		v.mu.Lock()
		out.VideoURL = t.url
		v.mu.Unlock()
	case domain.JobStatusFailed:
		out.Error = &JobError{Code: JobErrorCode(job.Err), Message: job.Error}
	default:
		out.Label = snap.Label
	}
	return out
}

// sweep drops finished jobs older than the retention window.
func (v *VideoJobs) sweep() {
	cutoff := v.now().Add(-v.retention)
	v.mu.Lock()
	defer v.mu.Unlock()
	for id, t := range v.jobs {
		if !t.finishedAt.IsZero() && t.finishedAt.Before(cutoff) {
			delete(v.jobs, id)
		}
	}
}

// JobErrorCode classifies the error that failed a job.
func JobErrorCode(err error) string {
	var (
		authErr   *domain.AuthExpiredError
		noOutput  *domain.NoOutputError
		remoteErr *domain.RemoteServiceError
	)
	switch {
	case errors.As(err, &authErr):
		return JobErrorAuthExpired
	case errors.Is(err, domain.ErrPollTimeout):
		return JobErrorTimeout
	case errors.As(err, &noOutput):
		return JobErrorNoOutput
	case errors.As(err, &remoteErr):
		return JobErrorRemote
	default:
		return JobErrorFailed
	}
}
