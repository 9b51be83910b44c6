package faq

import "github.com/simp-lee/sitecms/internal/domain"

// TranslationInput is the per-locale text of a FAQ in requests.
type TranslationInput struct {
	Question string `json:"question" binding:"required,max=500"`
	Answer   string `json:"answer" binding:"required"`
}

// CreateRequest is the request body for creating a FAQ.
type CreateRequest struct {
	Category     string                             `json:"category" binding:"max=50"`
	DisplayOrder int                                `json:"displayOrder" binding:"gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"required,dive"`
}

// UpdateRequest is the request body for updating a FAQ.
type UpdateRequest struct {
	Category     *string                            `json:"category" binding:"omitempty,max=50"`
	DisplayOrder *int                               `json:"displayOrder" binding:"omitempty,gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"omitempty,dive"`
}

// View is a FAQ in responses.
type View struct {
	*domain.FAQ
	*domain.FAQText
	Locale       domain.Locale                    `json:"locale,omitempty"`
	Translations map[domain.Locale]domain.FAQText `json:"translations,omitempty"`
}
