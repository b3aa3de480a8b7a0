package domain

import (
	"errors"
	"testing"
	"time"
)

func pendingJob(t *testing.T) *GenerationJob {
	t.Helper()
	job := NewGenerationJob("job-1", "user-1", time.Now())
	if err := job.Acknowledge("models/veo/operations/abc"); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	return job
}

func TestGenerationJobAcknowledge(t *testing.T) {
	job := NewGenerationJob("job-1", "user-1", time.Now())
	if job.Status != JobStatusCreated {
		t.Fatalf("new job status = %q", job.Status)
	}
	if err := job.Acknowledge(""); err == nil {
		t.Fatal("expected error for empty handle")
	}
	if err := job.Acknowledge("op-1"); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if job.Status != JobStatusPending || job.Handle != "op-1" {
		t.Fatalf("job = %+v", job)
	}
	if err := job.Acknowledge("op-2"); err == nil {
		t.Fatal("expected error on second acknowledge")
	}
}

func TestGenerationJobTransitions(t *testing.T) {
	authErr := &AuthExpiredError{Message: "Requested entity was not found."}
	tests := []struct {
		name      string
		report    StatusReport
		want      JobStatus
		wantURI   string
		wantError string
	}{
		{name: "still running", report: StatusReport{}, want: JobStatusPending},
		{name: "done with uri", report: StatusReport{Done: true, ResultURI: "https://files/v.mp4"}, want: JobStatusDone, wantURI: "https://files/v.mp4"},
		{name: "done without uri", report: StatusReport{Done: true}, want: JobStatusFailed, wantError: NoVideoLinkMessage},
		{name: "remote error", report: StatusReport{Done: true, Err: &RemoteServiceError{Status: 500, Message: "boom"}}, want: JobStatusFailed, wantError: "remote status 500: boom"},
		{name: "auth expired", report: StatusReport{Err: authErr}, want: JobStatusFailed, wantError: authErr.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := pendingJob(t)
			if got := job.Apply(tt.report); got != tt.want {
				t.Fatalf("Apply = %q, want %q", got, tt.want)
			}
			if job.ResultURI != tt.wantURI {
				t.Fatalf("ResultURI = %q, want %q", job.ResultURI, tt.wantURI)
			}
			if job.Error != tt.wantError {
				t.Fatalf("Error = %q, want %q", job.Error, tt.wantError)
			}
		})
	}
}

func TestGenerationJobAuthExpiredIsDistinct(t *testing.T) {
	job := pendingJob(t)
	job.Apply(StatusReport{Err: &AuthExpiredError{Message: "Requested entity was not found."}})
	var authErr *AuthExpiredError
	if !errors.As(job.Err, &authErr) {
		t.Fatalf("expected AuthExpiredError, got %T", job.Err)
	}
}

func TestGenerationJobApplyIsIdempotentOnceTerminal(t *testing.T) {
	for _, first := range []StatusReport{
		{Done: true, ResultURI: "https://files/v.mp4"},
		{Err: errors.New("quota")},
	} {
		job := pendingJob(t)
		status := job.Apply(first)
		snapshot := *job

		for _, next := range []StatusReport{
			{},
			{Done: true, ResultURI: "https://files/other.mp4"},
			{Err: errors.New("late failure")},
		} {
			if got := job.Apply(next); got != status {
				t.Fatalf("Apply on terminal job = %q, want %q", got, status)
			}
		}
		if job.Fail(errors.New("timeout")) != status {
			t.Fatal("Fail changed a terminal job")
		}
		if job.ResultURI != snapshot.ResultURI || job.Error != snapshot.Error || !job.UpdatedAt.Equal(snapshot.UpdatedAt) {
			t.Fatalf("terminal job mutated: before %+v after %+v", snapshot, *job)
		}
	}
}

func TestGenerationJobApplyBeforeAcknowledge(t *testing.T) {
	job := NewGenerationJob("job-1", "user-1", time.Now())
	if got := job.Apply(StatusReport{Done: true, ResultURI: "x"}); got != JobStatusCreated {
		t.Fatalf("Apply before acknowledge = %q", got)
	}
}
