package domain

import "context"

// Feature is a product capability that pricing plans and feature pages refer to.
type Feature struct {
	BaseModel
	FeatureCode  string `gorm:"size:50;not null;uniqueIndex:uq_features_code,where:deleted_at IS NULL" json:"featureCode"`
	Category     string `gorm:"size:50;index" json:"category"`
	Icon         string `gorm:"size:100" json:"icon"`
	DisplayOrder int    `gorm:"not null;index" json:"displayOrder"`
	IsActive     bool   `gorm:"not null" json:"isActive"`
	AuditFields
	SoftDelete
	Translations []FeatureTranslation `gorm:"foreignKey:FeatureID" json:"-"`
}

// TableName overrides the default table name.
func (Feature) TableName() string { return "features" }

// FeatureText holds the locale-varying fields of a feature.
type FeatureText struct {
	FeatureName string `gorm:"size:150;not null" json:"featureName"`
	Description string `gorm:"type:text" json:"description"`
}

// FeatureTranslation is one locale row of a feature.
type FeatureTranslation struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	FeatureID uint   `gorm:"not null;uniqueIndex:uq_feature_translations_locale" json:"-"`
	Locale    Locale `gorm:"size:5;not null;uniqueIndex:uq_feature_translations_locale" json:"locale"`
	FeatureText
}

// TableName overrides the default table name.
func (FeatureTranslation) TableName() string { return "feature_translations" }

func (t FeatureTranslation) TranslationLocale() Locale    { return t.Locale }
func (t FeatureTranslation) TranslationText() FeatureText { return t.FeatureText }

// FeaturePatch describes a partial update of a feature.
// A nil Translations slice leaves the stored translations untouched.
type FeaturePatch struct {
	Fields       map[string]any
	Translations []FeatureTranslation
}

// FeatureRepository defines the data access interface for features.
type FeatureRepository interface {
	Create(ctx context.Context, feature *Feature) error
	GetByID(ctx context.Context, id uint) (*Feature, error)
	GetByCode(ctx context.Context, code string) (*Feature, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Feature], error)
	Update(ctx context.Context, id uint, patch FeaturePatch) error
	SoftDelete(ctx context.Context, id uint, actor *string) error
	CodeTaken(ctx context.Context, code string) (bool, error)
}
