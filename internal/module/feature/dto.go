package feature

import "github.com/simp-lee/sitecms/internal/domain"

// TranslationInput is the per-locale text of a feature in requests.
type TranslationInput struct {
	FeatureName string `json:"featureName" binding:"required,max=150"`
	Description string `json:"description"`
}

// CreateRequest is the request body for creating a feature.
type CreateRequest struct {
	FeatureCode  string                             `json:"featureCode" binding:"required,max=50"`
	Category     string                             `json:"category" binding:"max=50"`
	Icon         string                             `json:"icon" binding:"max=100"`
	DisplayOrder int                                `json:"displayOrder" binding:"gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"required,dive"`
}

// UpdateRequest is the request body for updating a feature. The feature code
// cannot be changed.
type UpdateRequest struct {
	Category     *string                            `json:"category" binding:"omitempty,max=50"`
	Icon         *string                            `json:"icon" binding:"omitempty,max=100"`
	DisplayOrder *int                               `json:"displayOrder" binding:"omitempty,gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"omitempty,dive"`
}

// View is a feature in responses.
type View struct {
	*domain.Feature
	*domain.FeatureText
	Locale       domain.Locale                        `json:"locale,omitempty"`
	Translations map[domain.Locale]domain.FeatureText `json:"translations,omitempty"`
}
