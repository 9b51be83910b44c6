package domain

import "context"

// PartnerType groups partners on the website.
type PartnerType string

const (
	PartnerClient     PartnerType = "client"
	PartnerTechnology PartnerType = "technology"
	PartnerReseller   PartnerType = "reseller"
)

// IsValid reports whether t is a known partner type.
func (t PartnerType) IsValid() bool {
	switch t {
	case PartnerClient, PartnerTechnology, PartnerReseller:
		return true
	}
	return false
}

// Partner is a client or partner company shown with its logo.
type Partner struct {
	BaseModel
	PartnerCode  string      `gorm:"size:50;not null;uniqueIndex:uq_partners_code,where:deleted_at IS NULL" json:"partnerCode"`
	Name         string      `gorm:"size:150;not null" json:"name"`
	PartnerType  PartnerType `gorm:"size:20;not null;index" json:"partnerType"`
	LogoMediaID  *uint       `json:"logoMediaId"`
	WebsiteURL   string      `gorm:"size:255" json:"websiteUrl"`
	DisplayOrder int         `gorm:"not null;index" json:"displayOrder"`
	IsActive     bool        `gorm:"not null" json:"isActive"`
	AuditFields
	SoftDelete
	Translations []PartnerTranslation `gorm:"foreignKey:PartnerID" json:"-"`
}

// TableName overrides the default table name.
func (Partner) TableName() string { return "partners" }

// PartnerText holds the locale-varying fields of a partner.
type PartnerText struct {
	Description string `gorm:"type:text" json:"description"`
}

// PartnerTranslation is one locale row of a partner.
type PartnerTranslation struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	PartnerID uint   `gorm:"not null;uniqueIndex:uq_partner_translations_locale" json:"-"`
	Locale    Locale `gorm:"size:5;not null;uniqueIndex:uq_partner_translations_locale" json:"locale"`
	PartnerText
}

// TableName overrides the default table name.
func (PartnerTranslation) TableName() string { return "partner_translations" }

func (t PartnerTranslation) TranslationLocale() Locale    { return t.Locale }
func (t PartnerTranslation) TranslationText() PartnerText { return t.PartnerText }

// PartnerPatch describes a partial update of a partner.
type PartnerPatch struct {
	Fields       map[string]any
	Translations []PartnerTranslation
}

// PartnerRepository defines the data access interface for partners.
type PartnerRepository interface {
	Create(ctx context.Context, partner *Partner) error
	GetByID(ctx context.Context, id uint) (*Partner, error)
	GetByCode(ctx context.Context, code string) (*Partner, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Partner], error)
	Update(ctx context.Context, id uint, patch PartnerPatch) error
	SoftDelete(ctx context.Context, id uint, actor *string) error
	CodeTaken(ctx context.Context, code string) (bool, error)
}
