package featurepage

import "github.com/simp-lee/sitecms/internal/domain"

// TranslationInput is the per-locale text of a feature page in requests.
type TranslationInput struct {
	Title           string `json:"title" binding:"required,max=200"`
	Subtitle        string `json:"subtitle" binding:"max=300"`
	Content         string `json:"content"`
	MetaTitle       string `json:"metaTitle" binding:"max=200"`
	MetaDescription string `json:"metaDescription" binding:"max=500"`
}

// CreateRequest is the request body for creating a feature page.
type CreateRequest struct {
	Slug         string                             `json:"slug" binding:"required,max=150"`
	FeatureID    *uint                              `json:"featureId"`
	HeroMediaID  *uint                              `json:"heroMediaId"`
	DisplayOrder int                                `json:"displayOrder" binding:"gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"required,dive"`
}

// UpdateRequest is the request body for updating a feature page.
type UpdateRequest struct {
	Slug         *string                            `json:"slug" binding:"omitempty,max=150"`
	FeatureID    *uint                              `json:"featureId"`
	HeroMediaID  *uint                              `json:"heroMediaId"`
	DisplayOrder *int                               `json:"displayOrder" binding:"omitempty,gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"omitempty,dive"`
}

// View is a feature page in responses.
type View struct {
	*domain.FeaturePage
	*domain.FeaturePageText
	Locale       domain.Locale                            `json:"locale,omitempty"`
	Translations map[domain.Locale]domain.FeaturePageText `json:"translations,omitempty"`
}
