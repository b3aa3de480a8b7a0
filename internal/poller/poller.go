// Package poller drives a GenerationJob to a terminal state by checking the
// remote operation on a fixed interval.
package poller

import (
	"context"
	"sync"
	"time"

	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/metrics"
)

// DefaultLabels are shown to the user while a video renders.
var DefaultLabels = []string{
	"Analyzing reference frames...",
	"Interpolating motion vectors...",
	"Simulating cinematic lighting...",
	"Synthesizing temporal consistency...",
	"Rendering high-fidelity textures...",
}

// DefaultInterval applies when Interval is not positive.
const DefaultInterval = 10 * time.Second

// CheckFunc asks the remote service for the state of handle.
type CheckFunc func(ctx context.Context, handle string) (domain.StatusReport, error)

// TickFunc observes the job after every applied status report.
type TickFunc func(Snapshot)

// Poller checks at a fixed interval with no backoff and no attempt cap.
// A zero Timeout polls until the job is terminal or cancelled.
type Poller struct {
	Interval time.Duration
	Timeout  time.Duration
	Labels   []string
	Logger   *infra.Logger
}

// Snapshot is a copy of the job state plus the current progress label.
type Snapshot struct {
	Job   domain.GenerationJob
	Label string
	Ticks int
}

// Handle controls one running poll loop.
type Handle struct {
	mu        sync.Mutex
	job       domain.GenerationJob
	label     string
	ticks     int
	cancelled bool
	stop      context.CancelFunc
	done      chan struct{}
}

// Start begins polling job, which must already be pending. The loop runs
// until the job is terminal, the timeout elapses, ctx ends or Cancel is called.
func (p *Poller) Start(ctx context.Context, job domain.GenerationJob, check CheckFunc, onTick TickFunc) *Handle {
	labels := p.Labels
	if len(labels) == 0 {
		labels = DefaultLabels
	}
	logger := p.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	loopCtx, stop := context.WithCancel(ctx)
	h := &Handle{job: job, label: labels[0], stop: stop, done: make(chan struct{})}
	if job.IsTerminal() {
		stop()
		close(h.done)
		return h
	}

	metrics.VideoJobsActive.Inc()
	go func() {
		defer metrics.VideoJobsActive.Dec()
		defer close(h.done)
		defer stop()
		p.run(loopCtx, h, interval, labels, logger, check, onTick)
	}()
	return h
}

func (p *Poller) run(ctx context.Context, h *Handle, interval time.Duration, labels []string, logger *infra.Logger, check CheckFunc, onTick TickFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if p.Timeout > 0 {
		timer := time.NewTimer(p.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	handle := h.Snapshot().Job.Handle
	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			if h.update(func() { h.job.Fail(domain.ErrPollTimeout) }) {
				logger.Warn().Str("job_id", h.Snapshot().Job.ID).Dur("timeout", p.Timeout).Msg("video poll timed out")
				finish(h, onTick)
			}
			return
		case <-ticker.C:
		}

		metrics.VideoPollTicks.Inc()
		report, err := check(ctx, handle)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			report = domain.StatusReport{Done: true, Err: err}
		}

		var status domain.JobStatus
		applied := h.update(func() {
			status = h.job.Apply(report)
			h.ticks++
			h.label = labels[h.ticks%len(labels)]
		})
		if !applied {
			return
		}
		snap := h.Snapshot()
		logger.Debug().Str("job_id", snap.Job.ID).Str("status", string(status)).Int("tick", snap.Ticks).Msg("video poll tick")
		if onTick != nil {
			onTick(snap)
		}
		if snap.Job.IsTerminal() {
			metrics.VideoJobsFinished.WithLabelValues(string(status)).Inc()
			return
		}
	}
}

func finish(h *Handle, onTick TickFunc) {
	snap := h.Snapshot()
	metrics.VideoJobsFinished.WithLabelValues(string(snap.Job.Status)).Inc()
	if onTick != nil {
		onTick(snap)
	}
}

// update runs fn under the lock unless the handle was cancelled, in which
// case the result is discarded and false is returned.
func (h *Handle) update(fn func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return false
	}
	fn()
	return true
}

// Cancel stops scheduling checks. A check already in flight has its result discarded.
func (h *Handle) Cancel() {
	h.mu.Lock()
	h.cancelled = true
	h.mu.Unlock()
	h.stop()
}

// Cancelled reports whether Cancel was called.
func (h *Handle) Cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Snapshot{Job: h.job, Label: h.label, Ticks: h.ticks}
}

// Wait blocks until the loop exits or ctx ends and returns the latest snapshot.
func (h *Handle) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-h.done:
		return h.Snapshot(), nil
	case <-ctx.Done():
		return h.Snapshot(), ctx.Err()
	}
}
