package pricingplan

import "github.com/simp-lee/sitecms/internal/domain"

// TranslationInput is the per-locale text of a plan in requests.
type TranslationInput struct {
	PlanName    string `json:"planName" binding:"required,max=100"`
	Description string `json:"description"`
	CTAText     string `json:"ctaText" binding:"max=100"`
}

// FeatureInput links a feature to a plan in requests.
type FeatureInput struct {
	FeatureID    uint   `json:"featureId" binding:"required"`
	IsIncluded   *bool  `json:"isIncluded"`
	LimitValue   string `json:"limitValue" binding:"max=100"`
	DisplayOrder int    `json:"displayOrder" binding:"gte=0"`
}

// CreateRequest is the request body for creating a pricing plan.
type CreateRequest struct {
	PlanCode          string                             `json:"planCode" binding:"required,max=50"`
	MinUsers          int                                `json:"minUsers" binding:"required,gte=1"`
	MaxUsers          *int                               `json:"maxUsers" binding:"omitempty,gte=1"`
	PricePerUserMonth float64                            `json:"pricePerUserMonth" binding:"gte=0"`
	PricePerUserYear  *float64                           `json:"pricePerUserYear" binding:"omitempty,gte=0"`
	Currency          string                             `json:"currency" binding:"omitempty,len=3"`
	IsPopular         bool                               `json:"isPopular"`
	DisplayOrder      int                                `json:"displayOrder" binding:"gte=0"`
	IsActive          *bool                              `json:"isActive"`
	Translations      map[domain.Locale]TranslationInput `json:"translations" binding:"required,dive"`
	Features          []FeatureInput                     `json:"features" binding:"omitempty,dive"`
}

// UpdateRequest is the request body for updating a pricing plan. Nil fields
// are left unchanged. The plan code cannot be changed.
type UpdateRequest struct {
	MinUsers          *int                               `json:"minUsers" binding:"omitempty,gte=1"`
	MaxUsers          *int                               `json:"maxUsers" binding:"omitempty,gte=1"`
	PricePerUserMonth *float64                           `json:"pricePerUserMonth" binding:"omitempty,gte=0"`
	PricePerUserYear  *float64                           `json:"pricePerUserYear" binding:"omitempty,gte=0"`
	Currency          *string                            `json:"currency" binding:"omitempty,len=3"`
	IsPopular         *bool                              `json:"isPopular"`
	DisplayOrder      *int                               `json:"displayOrder" binding:"omitempty,gte=0"`
	IsActive          *bool                              `json:"isActive"`
	Translations      map[domain.Locale]TranslationInput `json:"translations" binding:"omitempty,dive"`
	Features          *[]FeatureInput                    `json:"features" binding:"omitempty,dive"`
}

// PlanFeatureView is a feature of a plan in responses.
type PlanFeatureView struct {
	FeatureID    uint                                 `json:"featureId"`
	FeatureCode  string                               `json:"featureCode"`
	Category     string                               `json:"category"`
	IsIncluded   bool                                 `json:"isIncluded"`
	LimitValue   string                               `json:"limitValue"`
	DisplayOrder int                                  `json:"displayOrder"`
	FeatureName  string                               `json:"featureName,omitempty"`
	Translations map[domain.Locale]domain.FeatureText `json:"translations,omitempty"`
}

// PlanView is a pricing plan in responses. Public views carry the text of one
// locale flattened onto the plan; admin views carry every locale.
type PlanView struct {
	*domain.PricingPlan
	*domain.PricingPlanText
	Locale       domain.Locale                            `json:"locale,omitempty"`
	Translations map[domain.Locale]domain.PricingPlanText `json:"translations,omitempty"`
	Features     []PlanFeatureView                        `json:"features"`
}
