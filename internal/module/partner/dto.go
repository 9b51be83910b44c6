package partner

import "github.com/simp-lee/sitecms/internal/domain"

// TranslationInput is the per-locale text of a partner in requests.
type TranslationInput struct {
	Description string `json:"description"`
}

// CreateRequest is the request body for creating a partner.
type CreateRequest struct {
	PartnerCode  string                             `json:"partnerCode" binding:"required,max=50"`
	Name         string                             `json:"name" binding:"required,max=150"`
	PartnerType  domain.PartnerType                 `json:"partnerType" binding:"required"`
	LogoMediaID  *uint                              `json:"logoMediaId"`
	WebsiteURL   string                             `json:"websiteUrl" binding:"omitempty,url,max=255"`
	DisplayOrder int                                `json:"displayOrder" binding:"gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"required"`
}

// UpdateRequest is the request body for updating a partner. The partner code
// cannot be changed.
type UpdateRequest struct {
	Name         *string                            `json:"name" binding:"omitempty,max=150"`
	PartnerType  *domain.PartnerType                `json:"partnerType"`
	LogoMediaID  *uint                              `json:"logoMediaId"`
	WebsiteURL   *string                            `json:"websiteUrl" binding:"omitempty,max=255"`
	DisplayOrder *int                               `json:"displayOrder" binding:"omitempty,gte=0"`
	IsActive     *bool                              `json:"isActive"`
	Translations map[domain.Locale]TranslationInput `json:"translations"`
}

// View is a partner in responses.
type View struct {
	*domain.Partner
	*domain.PartnerText
	Locale       domain.Locale                        `json:"locale,omitempty"`
	Translations map[domain.Locale]domain.PartnerText `json:"translations,omitempty"`
}
