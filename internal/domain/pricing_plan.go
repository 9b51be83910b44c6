package domain

import "context"

// PricingPlan is a subscription tier shown on the pricing page.
// Prices are stored exactly as supplied; currency formatting is left to clients.
type PricingPlan struct {
	BaseModel
	PlanCode          string   `gorm:"size:50;not null;uniqueIndex:uq_pricing_plans_code,where:deleted_at IS NULL" json:"planCode"`
	MinUsers          int      `gorm:"not null" json:"minUsers"`
	MaxUsers          *int     `json:"maxUsers"`
	PricePerUserMonth float64  `gorm:"not null" json:"pricePerUserMonth"`
	PricePerUserYear  *float64 `json:"pricePerUserYear"`
	Currency          string   `gorm:"size:3;not null" json:"currency"`
	IsPopular         bool     `gorm:"not null" json:"isPopular"`
	DisplayOrder      int      `gorm:"not null;index" json:"displayOrder"`
	IsActive          bool     `gorm:"not null" json:"isActive"`
	AuditFields
	SoftDelete
	Translations []PricingPlanTranslation `gorm:"foreignKey:PricingPlanID" json:"-"`
	Features     []PlanFeature            `gorm:"foreignKey:PricingPlanID" json:"-"`
}

// TableName overrides the default table name.
func (PricingPlan) TableName() string { return "pricing_plans" }

// PricingPlanText holds the locale-varying fields of a pricing plan.
type PricingPlanText struct {
	PlanName    string `gorm:"size:100;not null" json:"planName"`
	Description string `gorm:"type:text" json:"description"`
	CTAText     string `gorm:"size:100" json:"ctaText"`
}

// PricingPlanTranslation is one locale row of a pricing plan.
type PricingPlanTranslation struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	PricingPlanID uint   `gorm:"not null;uniqueIndex:uq_pricing_plan_translations_locale" json:"-"`
	Locale        Locale `gorm:"size:5;not null;uniqueIndex:uq_pricing_plan_translations_locale" json:"locale"`
	PricingPlanText
}

// TableName overrides the default table name.
func (PricingPlanTranslation) TableName() string { return "pricing_plan_translations" }

func (t PricingPlanTranslation) TranslationLocale() Locale        { return t.Locale }
func (t PricingPlanTranslation) TranslationText() PricingPlanText { return t.PricingPlanText }

// PlanFeature links a feature to a plan, optionally with a limit such as "10 GB".
type PlanFeature struct {
	ID            uint     `gorm:"primaryKey" json:"-"`
	PricingPlanID uint     `gorm:"not null;uniqueIndex:uq_plan_features_feature" json:"-"`
	FeatureID     uint     `gorm:"not null;uniqueIndex:uq_plan_features_feature" json:"featureId"`
	IsIncluded    bool     `gorm:"not null" json:"isIncluded"`
	LimitValue    string   `gorm:"size:100" json:"limitValue"`
	DisplayOrder  int      `gorm:"not null" json:"displayOrder"`
	Feature       *Feature `gorm:"foreignKey:FeatureID" json:"-"`
}

// TableName overrides the default table name.
func (PlanFeature) TableName() string { return "plan_features" }

// PricingPlanPatch describes a partial update of a pricing plan.
// Nil Translations or Features leave the stored rows untouched; a non-nil
// Features pointer replaces the whole mapping, even with an empty slice.
type PricingPlanPatch struct {
	Fields       map[string]any
	Translations []PricingPlanTranslation
	Features     *[]PlanFeature
}

// PricingPlanRepository defines the data access interface for pricing plans.
type PricingPlanRepository interface {
	Create(ctx context.Context, plan *PricingPlan) error
	GetByID(ctx context.Context, id uint) (*PricingPlan, error)
	GetByCode(ctx context.Context, code string) (*PricingPlan, error)
	List(ctx context.Context, req PageRequest) (*PageResult[PricingPlan], error)
	Update(ctx context.Context, id uint, patch PricingPlanPatch) error
	SoftDelete(ctx context.Context, id uint, actor *string) error
	CodeTaken(ctx context.Context, code string) (bool, error)
	// MissingFeatures returns the ids among ids that do not name a live feature.
	MissingFeatures(ctx context.Context, ids []uint) ([]uint, error)
}
