package domain

import "context"

// FeaturePage is a long-form landing page describing one feature.
type FeaturePage struct {
	BaseModel
	Slug         string `gorm:"size:150;not null;uniqueIndex:uq_feature_pages_slug,where:deleted_at IS NULL" json:"slug"`
	FeatureID    *uint  `gorm:"index" json:"featureId"`
	HeroMediaID  *uint  `json:"heroMediaId"`
	DisplayOrder int    `gorm:"not null;index" json:"displayOrder"`
	IsActive     bool   `gorm:"not null" json:"isActive"`
	AuditFields
	SoftDelete
	Translations []FeaturePageTranslation `gorm:"foreignKey:FeaturePageID" json:"-"`
}

// TableName overrides the default table name.
func (FeaturePage) TableName() string { return "feature_pages" }

// FeaturePageText holds the locale-varying fields of a feature page.
type FeaturePageText struct {
	Title           string `gorm:"size:200;not null" json:"title"`
	Subtitle        string `gorm:"size:300" json:"subtitle"`
	Content         string `gorm:"type:text" json:"content"`
	MetaTitle       string `gorm:"size:200" json:"metaTitle"`
	MetaDescription string `gorm:"size:500" json:"metaDescription"`
}

// FeaturePageTranslation is one locale row of a feature page.
type FeaturePageTranslation struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	FeaturePageID uint   `gorm:"not null;uniqueIndex:uq_feature_page_translations_locale" json:"-"`
	Locale        Locale `gorm:"size:5;not null;uniqueIndex:uq_feature_page_translations_locale" json:"locale"`
	FeaturePageText
}

// TableName overrides the default table name.
func (FeaturePageTranslation) TableName() string { return "feature_page_translations" }

func (t FeaturePageTranslation) TranslationLocale() Locale        { return t.Locale }
func (t FeaturePageTranslation) TranslationText() FeaturePageText { return t.FeaturePageText }

// FeaturePagePatch describes a partial update of a feature page.
type FeaturePagePatch struct {
	Fields       map[string]any
	Translations []FeaturePageTranslation
}

// FeaturePageRepository defines the data access interface for feature pages.
type FeaturePageRepository interface {
	Create(ctx context.Context, page *FeaturePage) error
	GetByID(ctx context.Context, id uint) (*FeaturePage, error)
	GetBySlug(ctx context.Context, slug string) (*FeaturePage, error)
	List(ctx context.Context, req PageRequest) (*PageResult[FeaturePage], error)
	Update(ctx context.Context, id uint, patch FeaturePagePatch) error
	SoftDelete(ctx context.Context, id uint, actor *string) error
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	// FeatureExists reports whether a live feature with id exists.
	FeatureExists(ctx context.Context, id uint) (bool, error)
}
