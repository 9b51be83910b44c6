package domain

import (
	"context"
	"time"
)

// EmploymentType enumerates the contract kinds of a job posting.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

// IsValid reports whether t is a known employment type.
func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// JobItemKind distinguishes the child collections of a job posting.
type JobItemKind string

const (
	JobItemRequirement    JobItemKind = "requirement"
	JobItemResponsibility JobItemKind = "responsibility"
	JobItemBenefit        JobItemKind = "benefit"
)

// JobItemKinds lists the child collections in presentation order.
var JobItemKinds = []JobItemKind{JobItemRequirement, JobItemResponsibility, JobItemBenefit}

// JobPosting is an open position on the careers page.
type JobPosting struct {
	BaseModel
	JobCode        string         `gorm:"size:50;not null;uniqueIndex:uq_job_postings_code,where:deleted_at IS NULL" json:"jobCode"`
	Slug           string         `gorm:"size:150;not null;uniqueIndex:uq_job_postings_slug,where:deleted_at IS NULL" json:"slug"`
	Department     string         `gorm:"size:100;index" json:"department"`
	Location       string         `gorm:"size:150" json:"location"`
	EmploymentType EmploymentType `gorm:"size:20;not null;index" json:"employmentType"`
	SalaryMin      *float64       `json:"salaryMin"`
	SalaryMax      *float64       `json:"salaryMax"`
	IsFeatured     bool           `gorm:"not null;index" json:"isFeatured"`
	IsActive       bool           `gorm:"not null" json:"isActive"`
	PublishedAt    *time.Time     `gorm:"index" json:"publishedAt"`
	ClosingDate    *time.Time     `json:"closingDate"`
	ViewCount      int            `gorm:"not null" json:"viewCount"`
	AuditFields
	SoftDelete
	Translations []JobPostingTranslation `gorm:"foreignKey:JobPostingID" json:"-"`
	Items        []JobPostingItem        `gorm:"foreignKey:JobPostingID" json:"-"`
}

// TableName overrides the default table name.
func (JobPosting) TableName() string { return "job_postings" }

// JobPostingText holds the locale-varying fields of a job posting.
type JobPostingText struct {
	Title       string `gorm:"size:200;not null" json:"title"`
	Summary     string `gorm:"size:500" json:"summary"`
	Description string `gorm:"type:text" json:"description"`
}

// JobPostingTranslation is one locale row of a job posting.
type JobPostingTranslation struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	JobPostingID uint   `gorm:"not null;uniqueIndex:uq_job_posting_translations_locale" json:"-"`
	Locale       Locale `gorm:"size:5;not null;uniqueIndex:uq_job_posting_translations_locale" json:"locale"`
	JobPostingText
}

// TableName overrides the default table name.
func (JobPostingTranslation) TableName() string { return "job_posting_translations" }

func (t JobPostingTranslation) TranslationLocale() Locale       { return t.Locale }
func (t JobPostingTranslation) TranslationText() JobPostingText { return t.JobPostingText }

// JobPostingItem is a requirement, responsibility or benefit bullet.
type JobPostingItem struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	JobPostingID uint                        `gorm:"not null;index:idx_job_posting_items_kind" json:"-"`
	Kind         JobItemKind                 `gorm:"size:20;not null;index:idx_job_posting_items_kind" json:"-"`
	DisplayOrder int                         `gorm:"not null" json:"displayOrder"`
	Translations []JobPostingItemTranslation `gorm:"foreignKey:ItemID" json:"-"`
}

// TableName overrides the default table name.
func (JobPostingItem) TableName() string { return "job_posting_items" }

// JobPostingItemText holds the locale-varying fields of a job posting item.
type JobPostingItemText struct {
	Content string `gorm:"type:text;not null" json:"content"`
}

// JobPostingItemTranslation is one locale row of a job posting item.
type JobPostingItemTranslation struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	ItemID uint   `gorm:"not null;uniqueIndex:uq_job_posting_item_translations_locale" json:"-"`
	Locale Locale `gorm:"size:5;not null;uniqueIndex:uq_job_posting_item_translations_locale" json:"locale"`
	JobPostingItemText
}

// TableName overrides the default table name.
func (JobPostingItemTranslation) TableName() string { return "job_posting_item_translations" }

func (t JobPostingItemTranslation) TranslationLocale() Locale           { return t.Locale }
func (t JobPostingItemTranslation) TranslationText() JobPostingItemText { return t.JobPostingItemText }

// JobPostingPatch describes a partial update of a job posting. Each entry of
// Items replaces the whole collection of its kind.
type JobPostingPatch struct {
	Fields       map[string]any
	Translations []JobPostingTranslation
	Items        map[JobItemKind][]JobPostingItem
}

// JobPostingRepository defines the data access interface for job postings.
type JobPostingRepository interface {
	Create(ctx context.Context, posting *JobPosting) error
	GetByID(ctx context.Context, id uint) (*JobPosting, error)
	GetBySlug(ctx context.Context, slug string) (*JobPosting, error)
	List(ctx context.Context, req PageRequest) (*PageResult[JobPosting], error)
	Update(ctx context.Context, id uint, patch JobPostingPatch) error
	SoftDelete(ctx context.Context, id uint, actor *string) error
	IncrementViewCount(ctx context.Context, id uint) error
	CodeTaken(ctx context.Context, code string) (bool, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}
