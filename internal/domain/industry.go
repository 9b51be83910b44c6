package domain

import "context"

// IndustryItemKind distinguishes the child collections of an industry.
type IndustryItemKind string

const (
	IndustryItemProblem  IndustryItemKind = "problem"
	IndustryItemSolution IndustryItemKind = "solution"
)

// Industry is a vertical the product is marketed to, with its typical problems
// and the matching solutions.
type Industry struct {
	BaseModel
	Slug         string `gorm:"size:120;not null;uniqueIndex:uq_industries_slug,where:deleted_at IS NULL" json:"slug"`
	Icon         string `gorm:"size:100" json:"icon"`
	ImageMediaID *uint  `json:"imageMediaId"`
	DisplayOrder int    `gorm:"not null;index" json:"displayOrder"`
	IsActive     bool   `gorm:"not null" json:"isActive"`
	AuditFields
	SoftDelete
	Translations []IndustryTranslation `gorm:"foreignKey:IndustryID" json:"-"`
	Items        []IndustryItem        `gorm:"foreignKey:IndustryID" json:"-"`
}

// TableName overrides the default table name.
func (Industry) TableName() string { return "industries" }

// IndustryText holds the locale-varying fields of an industry.
type IndustryText struct {
	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// IndustryTranslation is one locale row of an industry.
type IndustryTranslation struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	IndustryID uint   `gorm:"not null;uniqueIndex:uq_industry_translations_locale" json:"-"`
	Locale     Locale `gorm:"size:5;not null;uniqueIndex:uq_industry_translations_locale" json:"locale"`
	IndustryText
}

// TableName overrides the default table name.
func (IndustryTranslation) TableName() string { return "industry_translations" }

func (t IndustryTranslation) TranslationLocale() Locale     { return t.Locale }
func (t IndustryTranslation) TranslationText() IndustryText { return t.IndustryText }

// IndustryItem is a problem or solution entry of an industry.
type IndustryItem struct {
	ID           uint                      `gorm:"primaryKey" json:"id"`
	IndustryID   uint                      `gorm:"not null;index:idx_industry_items_kind" json:"-"`
	Kind         IndustryItemKind          `gorm:"size:20;not null;index:idx_industry_items_kind" json:"-"`
	Icon         string                    `gorm:"size:100" json:"icon"`
	DisplayOrder int                       `gorm:"not null" json:"displayOrder"`
	Translations []IndustryItemTranslation `gorm:"foreignKey:ItemID" json:"-"`
}

// TableName overrides the default table name.
func (IndustryItem) TableName() string { return "industry_items" }

// IndustryItemText holds the locale-varying fields of an industry item.
type IndustryItemText struct {
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

// IndustryItemTranslation is one locale row of an industry item.
type IndustryItemTranslation struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	ItemID uint   `gorm:"not null;uniqueIndex:uq_industry_item_translations_locale" json:"-"`
	Locale Locale `gorm:"size:5;not null;uniqueIndex:uq_industry_item_translations_locale" json:"locale"`
	IndustryItemText
}

// TableName overrides the default table name.
func (IndustryItemTranslation) TableName() string { return "industry_item_translations" }

func (t IndustryItemTranslation) TranslationLocale() Locale         { return t.Locale }
func (t IndustryItemTranslation) TranslationText() IndustryItemText { return t.IndustryItemText }

// IndustryPatch describes a partial update of an industry. Each entry of
// Items replaces the whole collection of its kind.
type IndustryPatch struct {
	Fields       map[string]any
	Translations []IndustryTranslation
	Items        map[IndustryItemKind][]IndustryItem
}

// IndustryRepository defines the data access interface for industries.
type IndustryRepository interface {
	Create(ctx context.Context, industry *Industry) error
	GetByID(ctx context.Context, id uint) (*Industry, error)
	GetBySlug(ctx context.Context, slug string) (*Industry, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Industry], error)
	Update(ctx context.Context, id uint, patch IndustryPatch) error
	SoftDelete(ctx context.Context, id uint, actor *string) error
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}
