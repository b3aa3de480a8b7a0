package generation

import (
	"context"
	"errors"
	"testing"

	"markova/internal/domain"
	"markova/internal/genai"
)

const strategyJSON = `{
  "swot": {"strengths": ["Loyal base"], "weaknesses": ["Small team"], "opportunities": ["Delivery"], "threats": ["Chains"]},
  "competitors": [{"name": "Brew Co", "strength": "Price", "weakness": "Service", "advantage": "Origin beans"}],
  "audience_personas": [{"name": "Sara", "age": "28", "interests": ["Design"], "pain_points": ["Long queues"]}],
  "roadmap": [{"month": "January", "focus": "Awareness", "tasks": ["Launch reels"], "budget": "2000 SAR"}]
}`

func TestSubmitStrategy(t *testing.T) {
	remote := &fakeRemote{generate: func(string, genai.GenerateContentRequest) (*genai.GenerateContentResponse, error) {
		return textResponse(strategyJSON), nil
	}}
	plan, err := newTestService(remote).SubmitStrategy(context.Background(), StrategyRequest{
		UserID: "user-1", BrandID: "brand-1", Goals: "Double weekday sales", TargetRegion: "Jeddah",
	})
	if err != nil {
		t.Fatalf("SubmitStrategy: %v", err)
	}
	if plan.Title != "Qahwa House: Jeddah" || len(plan.Roadmap) != 1 || len(plan.SWOT.Strengths) != 1 {
		t.Fatalf("plan = %+v", plan)
	}
	cfg := remote.callsFor(testModels.Text)[0].req.GenerationConfig
	if cfg.ThinkingConfig.ThinkingBudget != 4000 || cfg.ResponseMimeType != "application/json" {
		t.Fatalf("generation config = %+v", cfg)
	}
}

func TestSubmitStrategyRejectsIncompletePlan(t *testing.T) {
	remote := &fakeRemote{generate: func(string, genai.GenerateContentRequest) (*genai.GenerateContentResponse, error) {
		return textResponse(`{"swot": {"strengths": []}, "roadmap": []}`), nil
	}}
	_, err := newTestService(remote).SubmitStrategy(context.Background(), StrategyRequest{
		UserID: "user-1", BrandID: "brand-1", Goals: "g", TargetRegion: "r",
	})
	var noOutput *domain.NoOutputError
	if !errors.As(err, &noOutput) {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitStrategyValidatesInput(t *testing.T) {
	_, err := newTestService(&fakeRemote{}).SubmitStrategy(context.Background(), StrategyRequest{UserID: "user-1", BrandID: "brand-1"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "goals" {
		t.Fatalf("err = %v", err)
	}
}
