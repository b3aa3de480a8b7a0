package domain

import "time"

// SWOT groups the four analysis quadrants of a strategic plan.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type Competitor struct {
	Name      string `json:"name"`
	Strength  string `json:"strength"`
	Weakness  string `json:"weakness"`
	Advantage string `json:"advantage"`
}

type Persona struct {
	Name       string   `json:"name"`
	Age        string   `json:"age"`
	Interests  []string `json:"interests"`
	PainPoints []string `json:"pain_points"`
}

// RoadmapStep is one month of the yearly roadmap.
type RoadmapStep struct {
	Month  string   `json:"month"`
	Focus  string   `json:"focus"`
	Tasks  []string `json:"tasks"`
	Budget string   `json:"budget"`
}

// StrategicPlan is a generated marketing strategy for one brand.
type StrategicPlan struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	BrandID          *string       `json:"brand_id,omitempty"`
	Title            string        `json:"title"`
	SWOT             SWOT          `json:"swot"`
	Competitors      []Competitor  `json:"competitors"`
	AudiencePersonas []Persona     `json:"audience_personas"`
	Roadmap          []RoadmapStep `json:"roadmap"`
	CreatedAt        time.Time     `json:"created_at"`
}
