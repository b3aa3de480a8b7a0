package domain

import "context"

// BrandKitFilter narrows BrandKitRepository.List.
type BrandKitFilter struct {
	UserID string
}

// CampaignFilter narrows CampaignRepository.List.
type CampaignFilter struct {
	UserID string
	Limit  int
}

// UserFilter narrows UserRepository.List. Empty Status lists everyone.
type UserFilter struct {
	Status SubscriptionStatus
}

// PlanFilter narrows PlanRepository.List.
type PlanFilter struct {
	ActiveOnly bool
}

// BrandKitRepository persists brand kits.
type BrandKitRepository interface {
	Save(ctx context.Context, kit *BrandKit) (string, error)
	Update(ctx context.Context, kit *BrandKit) error
	GetByID(ctx context.Context, id string) (*BrandKit, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BrandKitFilter) ([]BrandKit, error)
}

// CampaignRepository persists campaigns together with their child rows.
type CampaignRepository interface {
	Save(ctx context.Context, campaign *Campaign) (string, error)
	Update(ctx context.Context, campaign *Campaign) error
	UpdatePost(ctx context.Context, post *CampaignPost) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter CampaignFilter) ([]Campaign, error)
}

// UserRepository persists users.
type UserRepository interface {
	Save(ctx context.Context, user *User) (string, error)
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]User, error)
}

// PlanRepository persists subscription plans.
type PlanRepository interface {
	Save(ctx context.Context, plan *Plan) (string, error)
	Update(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PlanFilter) ([]Plan, error)
}

// StrategyRepository persists strategic plans.
type StrategyRepository interface {
	Save(ctx context.Context, plan *StrategicPlan) (string, error)
	GetByID(ctx context.Context, id string) (*StrategicPlan, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string) ([]StrategicPlan, error)
}

// VideoRepository persists materialized videos.
type VideoRepository interface {
	Save(ctx context.Context, video *VideoArtifact) (string, error)
	List(ctx context.Context, userID string) ([]VideoArtifact, error)
}
