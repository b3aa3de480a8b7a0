package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// SubscriptionStatus enumerates a user's billing state.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionBanned   SubscriptionStatus = "banned"
)

// User is an account known to the platform. Identity is issued by the
// external auth provider; ID matches the token subject.
type User struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name" validate:"max=120"`
	Email              string             `json:"email" validate:"required,email"`
	Role               UserRole           `json:"role" validate:"required,oneof=user admin"`
	PlanID             *string            `json:"plan_id,omitempty" validate:"omitempty,uuid"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status" validate:"required,oneof=active inactive trialing banned"`
	CreatedAt          time.Time          `json:"created_at"`
}

// IsAdmin reports whether the user may use the admin endpoints.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// PlanFeatures caps what a subscription tier allows.
type PlanFeatures struct {
	BrandsLimit    int `json:"brands_limit" validate:"min=0"`
	CampaignsLimit int `json:"campaigns_limit" validate:"min=0"`
	ExportsLimit   int `json:"exports_limit" validate:"min=0"`
	TeamLimit      int `json:"team_limit" validate:"min=0"`
}

// Plan is a subscription tier.
type Plan struct {
	ID           string       `json:"id"`
	Name         string       `json:"name" validate:"required,max=80"`
	PriceMonthly float64      `json:"price_monthly" validate:"min=0"`
	PriceYearly  float64      `json:"price_yearly" validate:"min=0"`
	IsActive     bool         `json:"is_active"`
	Features     PlanFeatures `json:"features"`
	CreatedAt    time.Time    `json:"created_at"`
}
