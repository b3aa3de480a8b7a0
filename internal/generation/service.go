package generation

import (
	"context"
	"errors"

	"markova/internal/domain"
	"markova/internal/genai"
	"markova/internal/infra"
)

// RemoteClient is the part of genai.Client the service drives.
type RemoteClient interface {
	GenerateContent(ctx context.Context, model string, req genai.GenerateContentRequest) (*genai.GenerateContentResponse, error)
	StartVideo(ctx context.Context, model string, req genai.PredictLongRunningRequest) (string, error)
	VideoOperation(ctx context.Context, handle string) (domain.StatusReport, error)
}

// Models names the remote model used for each request kind.
type Models struct {
	Text       string
	Image      string
	VeoFast    string
	VeoQuality string
}

// Service turns generation requests into remote calls and typed results.
type Service struct {
	remote RemoteClient
	brands domain.BrandKitRepository
	models Models
	logger *infra.Logger
}

func NewService(remote RemoteClient, brands domain.BrandKitRepository, models Models, logger *infra.Logger) *Service {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Service{remote: remote, brands: brands, models: models, logger: logger}
}

// brand loads a brand kit owned by userID. Missing or foreign kits are
// reported against the brand_id field.
func (s *Service) brand(ctx context.Context, userID, brandID string) (*domain.BrandKit, error) {
	if brandID == "" {
		return nil, domain.NewValidationError("brand_id", "a brand kit is required")
	}
	kit, err := s.brands.GetByID(ctx, brandID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && kit.UserID != userID) {
		return nil, domain.NewValidationError("brand_id", "brand kit %s not found", brandID)
	}
	if err != nil {
		return nil, err
	}
	return kit, nil
}
