package industry

import "github.com/simp-lee/sitecms/internal/domain"

// TranslationInput is the per-locale text of an industry in requests.
type TranslationInput struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
}

// ItemTranslationInput is the per-locale text of a problem or solution.
type ItemTranslationInput struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// ItemInput is a problem or solution entry in requests.
type ItemInput struct {
	Icon         string                                 `json:"icon" binding:"max=100"`
	DisplayOrder int                                    `json:"displayOrder" binding:"gte=0"`
	Translations map[domain.Locale]ItemTranslationInput `json:"translations" binding:"required,dive"`
}

// CreateRequest is the request body for creating an industry.
type CreateRequest struct {
	Slug         string                             `json:"slug" binding:"required,max=120"`
	Icon         string                             `json:"icon" binding:"max=100"`
	ImageMediaID *uint                              `json:"imageMediaId"`
	DisplayOrder int                                `json:"displayOrder" binding:"gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"required,dive"`
	Problems     []ItemInput                        `json:"problems" binding:"omitempty,dive"`
	Solutions    []ItemInput                        `json:"solutions" binding:"omitempty,dive"`
}

// UpdateRequest is the request body for updating an industry. A present
// problems or solutions list replaces that whole collection.
type UpdateRequest struct {
	Slug         *string                            `json:"slug" binding:"omitempty,max=120"`
	Icon         *string                            `json:"icon" binding:"omitempty,max=100"`
	ImageMediaID *uint                              `json:"imageMediaId"`
	DisplayOrder *int                               `json:"displayOrder" binding:"omitempty,gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"omitempty,dive"`
	Problems     *[]ItemInput                       `json:"problems" binding:"omitempty,dive"`
	Solutions    *[]ItemInput                       `json:"solutions" binding:"omitempty,dive"`
}

// ItemView is a problem or solution in responses.
type ItemView struct {
	ID           uint   `json:"id"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"displayOrder"`
	*domain.IndustryItemText
	Translations map[domain.Locale]domain.IndustryItemText `json:"translations,omitempty"`
}

// View is an industry in responses.
type View struct {
	*domain.Industry
	*domain.IndustryText
	Locale       domain.Locale                         `json:"locale,omitempty"`
	Translations map[domain.Locale]domain.IndustryText `json:"translations,omitempty"`
	Problems     []ItemView                            `json:"problems"`
	Solutions    []ItemView                            `json:"solutions"`
}
