package generation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"markova/internal/domain"
	"markova/internal/domain/jsoncfg"
	"markova/internal/genai"
)

// VideoRequest asks for one video. Images are interpreted by count: one is
// the start frame, two are start and end frames, three are subject assets.
type VideoRequest struct {
	UserID  string
	Prompt  string
	Images  []ReferenceImage
	Options jsoncfg.VideoOptions
}

func (VideoRequest) Kind() Kind { return KindVideo }

func (r VideoRequest) References() []ReferenceImage { return r.Images }

// VideoPlan is the outbound start request derived from a VideoRequest.
type VideoPlan struct {
	Model   string
	Payload genai.PredictLongRunningRequest
	Options jsoncfg.VideoOptions
}

// PlanVideo builds the start payload. With three images the asset-reference
// mode is used, which only produces 720p widescreen output, so the caller's
// aspect ratio and resolution are overridden.
func (s *Service) PlanVideo(req VideoRequest) (VideoPlan, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return VideoPlan{}, domain.NewValidationError("prompt", "is required")
	}
	if err := validateReferences("images", req.Images); err != nil {
		return VideoPlan{}, err
	}
	opts := req.Options
	opts.Normalize()

	instance := genai.VideoInstance{Prompt: prompt}
	model := s.models.VeoFast
	switch len(req.Images) {
	case 0:
	case 1:
		instance.Image = req.Images[0].videoImage()
	case 2:
		instance.Image = req.Images[0].videoImage()
		instance.LastFrame = req.Images[1].videoImage()
	default:
		model = s.models.VeoQuality
		for _, img := range req.Images {
			instance.ReferenceImages = append(instance.ReferenceImages, genai.VideoReference{
				Image:         *img.videoImage(),
				ReferenceType: genai.ReferenceTypeAsset,
			})
		}
		opts.ForceAssetMode()
	}
	if err := opts.Validate(); err != nil {
		return VideoPlan{}, &domain.ValidationError{Field: "options", Message: err.Error()}
	}

	return VideoPlan{
		Model: model,
		Payload: genai.PredictLongRunningRequest{
			Instances: []genai.VideoInstance{instance},
			Parameters: genai.VideoParameters{
				AspectRatio:    opts.AspectRatio,
				Resolution:     opts.Resolution,
				NumberOfVideos: 1,
			},
		},
		Options: opts,
	}, nil
}

// SubmitVideo starts the remote operation and returns the job in the pending state.
func (s *Service) SubmitVideo(ctx context.Context, req VideoRequest) (*domain.GenerationJob, error) {
	plan, err := s.PlanVideo(req)
	if err != nil {
		return nil, err
	}
	job := domain.NewGenerationJob(uuid.NewString(), req.UserID, time.Now())
	job.Model = plan.Model
	job.Prompt = strings.TrimSpace(req.Prompt)
	job.AspectRatio = plan.Options.AspectRatio
	job.Resolution = plan.Options.Resolution

	handle, err := s.remote.StartVideo(ctx, plan.Model, plan.Payload)
	if err != nil {
		return nil, err
	}
	if err := job.Acknowledge(handle); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("job_id", job.ID).
		Str("model", plan.Model).
		Int("images", len(req.Images)).
		Str("aspect_ratio", job.AspectRatio).
		Str("resolution", job.Resolution).
		Msg("video job started")
	return job, nil
}

// PollVideo checks the remote operation behind handle.
func (s *Service) PollVideo(ctx context.Context, handle string) (domain.StatusReport, error) {
	return s.remote.VideoOperation(ctx, handle)
}
