package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"markova/internal/domain"
	"markova/internal/genai"
	"markova/internal/validation"
)

const strategyThinkingBudget = 4000

// StrategyRequest asks for a 12-month strategic plan for one brand.
type StrategyRequest struct {
	UserID       string `json:"-"`
	BrandID      string `json:"brand_id" validate:"required"`
	Goals        string `json:"goals" validate:"required,max=2000"`
	TargetRegion string `json:"target_region" validate:"required,max=200"`
}

type strategyResponse struct {
	SWOT             *domain.SWOT         `json:"swot"`
	Competitors      []domain.Competitor  `json:"competitors"`
	AudiencePersonas []domain.Persona     `json:"audience_personas"`
	Roadmap          []domain.RoadmapStep `json:"roadmap"`
}

// SubmitStrategy generates a strategic plan. The result is not persisted.
func (s *Service) SubmitStrategy(ctx context.Context, req StrategyRequest) (*domain.StrategicPlan, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	brand, err := s.brand(ctx, req.UserID, req.BrandID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Task: Create a 12-month strategic plan.
Brand: %s (%s)
Tone: %s
Goals: %s
Region: %s
Output: JSON with keys swot {strengths, weaknesses, opportunities, threats}, competitors [{name, strength, weakness, advantage}], audience_personas [{name, age, interests, pain_points}] and roadmap with one entry per month [{month, focus, tasks, budget}].`,
		brand.Name, brand.Industry, brand.ToneOfVoice, req.Goals, req.TargetRegion)

	resp, err := s.remote.GenerateContent(ctx, s.models.Text, genai.GenerateContentRequest{
		Contents: []genai.Content{{Role: "user", Parts: []genai.Part{{Text: prompt}}}},
		GenerationConfig: &genai.GenerationConfig{
			ResponseMimeType: "application/json",
			ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: strategyThinkingBudget},
		},
	})
	if err != nil {
		return nil, err
	}

	var out strategyResponse
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text())), &out); err != nil {
		return nil, &domain.NoOutputError{Reason: "strategy response is not valid JSON"}
	}
	if out.SWOT == nil || len(out.Roadmap) == 0 {
		return nil, &domain.NoOutputError{Reason: "strategy response is missing swot or roadmap"}
	}

	brandID := brand.ID
	return &domain.StrategicPlan{
		UserID:           req.UserID,
		BrandID:          &brandID,
		Title:            strings.TrimSpace(fmt.Sprintf("%s: %s", brand.Name, req.TargetRegion)),
		SWOT:             *out.SWOT,
		Competitors:      out.Competitors,
		AudiencePersonas: out.AudiencePersonas,
		Roadmap:          out.Roadmap,
	}, nil
}
