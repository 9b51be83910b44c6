package domain

import "context"

// FAQ is a frequently asked question grouped by category.
type FAQ struct {
	BaseModel
	Category     string `gorm:"size:50;index" json:"category"`
	DisplayOrder int    `gorm:"not null;index" json:"displayOrder"`
	IsActive     bool   `gorm:"not null" json:"isActive"`
	AuditFields
	SoftDelete
	Translations []FAQTranslation `gorm:"foreignKey:FAQID" json:"-"`
}

// TableName overrides the default table name.
func (FAQ) TableName() string { return "faqs" }

// FAQText holds the locale-varying fields of a FAQ.
type FAQText struct {
	Question string `gorm:"size:500;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
}

// FAQTranslation is one locale row of a FAQ.
type FAQTranslation struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	FAQID  uint   `gorm:"column:faq_id;not null;uniqueIndex:uq_faq_translations_locale" json:"-"`
	Locale Locale `gorm:"size:5;not null;uniqueIndex:uq_faq_translations_locale" json:"locale"`
	FAQText
}

// TableName overrides the default table name.
func (FAQTranslation) TableName() string { return "faq_translations" }

func (t FAQTranslation) TranslationLocale() Locale { return t.Locale }
func (t FAQTranslation) TranslationText() FAQText  { return t.FAQText }

// FAQPatch describes a partial update of a FAQ.
type FAQPatch struct {
	Fields       map[string]any
	Translations []FAQTranslation
}

// FAQRepository defines the data access interface for FAQs.
type FAQRepository interface {
	Create(ctx context.Context, faq *FAQ) error
	GetByID(ctx context.Context, id uint) (*FAQ, error)
	List(ctx context.Context, req PageRequest) (*PageResult[FAQ], error)
	Update(ctx context.Context, id uint, patch FAQPatch) error
	SoftDelete(ctx context.Context, id uint, actor *string) error
	Categories(ctx context.Context) ([]string, error)
}
