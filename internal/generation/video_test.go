package generation

import (
	"context"
	"errors"
	"testing"

	"markova/internal/domain"
	"markova/internal/domain/jsoncfg"
	"markova/internal/genai"
)

func TestPlanVideoBranchesOnImageCount(t *testing.T) {
	cases := []struct {
		name       string
		images     int
		opts       jsoncfg.VideoOptions
		model      string
		aspect     string
		resolution string
	}{
		{name: "text only defaults", images: 0, model: "veo-fast", aspect: "9:16", resolution: "720p"},
		{name: "start frame", images: 1, opts: jsoncfg.VideoOptions{AspectRatio: "16:9", Resolution: "1080p"}, model: "veo-fast", aspect: "16:9", resolution: "1080p"},
		{name: "start and end frame", images: 2, opts: jsoncfg.VideoOptions{Resolution: "1080p"}, model: "veo-fast", aspect: "9:16", resolution: "1080p"},
		{name: "asset references override", images: 3, opts: jsoncfg.VideoOptions{AspectRatio: "9:16", Resolution: "1080p"}, model: "veo-quality", aspect: "16:9", resolution: "720p"},
	}
	svc := newTestService(&fakeRemote{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			images := make([]ReferenceImage, tc.images)
			for i := range images {
				images[i] = pngRef()
			}
			plan, err := svc.PlanVideo(VideoRequest{UserID: "user-1", Prompt: "A drone shot over dunes", Images: images, Options: tc.opts})
			if err != nil {
				t.Fatalf("PlanVideo: %v", err)
			}
			if plan.Model != tc.model {
				t.Fatalf("model = %q, want %q", plan.Model, tc.model)
			}
			params := plan.Payload.Parameters
			if params.AspectRatio != tc.aspect || params.Resolution != tc.resolution {
				t.Fatalf("parameters = %+v", params)
			}
			inst := plan.Payload.Instances[0]
			switch tc.images {
			case 0:
				if inst.Image != nil || inst.LastFrame != nil || len(inst.ReferenceImages) != 0 {
					t.Fatalf("unexpected images: %+v", inst)
				}
			case 1:
				if inst.Image == nil || inst.LastFrame != nil {
					t.Fatalf("instance = %+v", inst)
				}
			case 2:
				if inst.Image == nil || inst.LastFrame == nil {
					t.Fatalf("instance = %+v", inst)
				}
			case 3:
				if inst.Image != nil || len(inst.ReferenceImages) != 3 {
					t.Fatalf("instance = %+v", inst)
				}
				for _, ref := range inst.ReferenceImages {
					if ref.ReferenceType != genai.ReferenceTypeAsset {
						t.Fatalf("reference type = %q", ref.ReferenceType)
					}
				}
			}
		})
	}
}

func TestPlanVideoRejectsInvalidInput(t *testing.T) {
	svc := newTestService(&fakeRemote{})
	cases := map[string]struct {
		req   VideoRequest
		field string
	}{
		"empty prompt":   {req: VideoRequest{Prompt: "  "}, field: "prompt"},
		"bad aspect":     {req: VideoRequest{Prompt: "x", Options: jsoncfg.VideoOptions{AspectRatio: "4:3"}}, field: "options"},
		"bad res":        {req: VideoRequest{Prompt: "x", Options: jsoncfg.VideoOptions{Resolution: "4k"}}, field: "options"},
		"four images":    {req: VideoRequest{Prompt: "x", Images: []ReferenceImage{pngRef(), pngRef(), pngRef(), pngRef()}}, field: "images"},
		"non image mime": {req: VideoRequest{Prompt: "x", Images: []ReferenceImage{{MIMEType: "video/mp4", Data: []byte{1}}}}, field: "images[0]"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.PlanVideo(tc.req)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("err = %v, want validation error on %q", err, tc.field)
			}
		})
	}
}

func TestSubmitVideoReturnsPendingJob(t *testing.T) {
	remote := &fakeRemote{handle: "models/veo-quality/operations/abc"}
	svc := newTestService(remote)
	job, err := svc.SubmitVideo(context.Background(), VideoRequest{
		UserID: "user-1",
		Prompt: "Product turntable",
		Images: []ReferenceImage{pngRef(), pngRef(), pngRef()},
	})
	if err != nil {
		t.Fatalf("SubmitVideo: %v", err)
	}
	if job.Status != domain.JobStatusPending || job.Handle != remote.handle || job.ID == "" {
		t.Fatalf("job = %+v", job)
	}
	if job.AspectRatio != "16:9" || job.Resolution != "720p" || job.Model != "veo-quality" {
		t.Fatalf("job output shape = %+v", job)
	}
	if remote.startMdl[0] != "veo-quality" || remote.startReqs[0].Parameters.NumberOfVideos != 1 {
		t.Fatalf("start request = %q %+v", remote.startMdl[0], remote.startReqs[0])
	}
}

func TestSubmitVideoStartFailure(t *testing.T) {
	remote := &fakeRemote{startErr: &domain.RemoteServiceError{Status: 400, Message: "Invalid prompt."}}
	_, err := newTestService(remote).SubmitVideo(context.Background(), VideoRequest{UserID: "user-1", Prompt: "x"})
	var remoteErr *domain.RemoteServiceError
	if !errors.As(err, &remoteErr) || remoteErr.Message != "Invalid prompt." {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitVideoEmptyHandle(t *testing.T) {
	_, err := newTestService(&fakeRemote{}).SubmitVideo(context.Background(), VideoRequest{UserID: "user-1", Prompt: "x"})
	if err == nil {
		t.Fatal("expected an error for an empty operation handle")
	}
}
