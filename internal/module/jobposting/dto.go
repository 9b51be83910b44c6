package jobposting

import (
	"time"

	"github.com/simp-lee/sitecms/internal/domain"
)

// TranslationInput is the per-locale text of a job posting in requests.
type TranslationInput struct {
	Title       string `json:"title" binding:"required,max=200"`
	Summary     string `json:"summary" binding:"max=500"`
	Description string `json:"description"`
}

// ItemTranslationInput is the per-locale text of a job posting bullet.
type ItemTranslationInput struct {
	Content string `json:"content" binding:"required"`
}

// ItemInput is a requirement, responsibility or benefit in requests.
type ItemInput struct {
	DisplayOrder int                                    `json:"displayOrder" binding:"gte=0"`
	Translations map[domain.Locale]ItemTranslationInput `json:"translations" binding:"required,dive"`
}

// CreateRequest is the request body for creating a job posting.
type CreateRequest struct {
	JobCode          string                             `json:"jobCode" binding:"required,max=50"`
	Slug             string                             `json:"slug" binding:"required,max=150"`
	Department       string                             `json:"department" binding:"max=100"`
	Location         string                             `json:"location" binding:"max=150"`
	EmploymentType   domain.EmploymentType              `json:"employmentType" binding:"required"`
	SalaryMin        *float64                           `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax        *float64                           `json:"salaryMax" binding:"omitempty,gte=0"`
	IsFeatured       bool                               `json:"isFeatured"`
	IsActive         *bool                              `json:"isActive"`
	PublishedAt      *time.Time                         `json:"publishedAt"`
	ClosingDate      *time.Time                         `json:"closingDate"`
	Translations     map[domain.Locale]TranslationInput `json:"translations" binding:"required,dive"`
	Requirements     []ItemInput                        `json:"requirements" binding:"omitempty,dive"`
	Responsibilities []ItemInput                        `json:"responsibilities" binding:"omitempty,dive"`
	Benefits         []ItemInput                        `json:"benefits" binding:"omitempty,dive"`
}

// UpdateRequest is the request body for updating a job posting. Nil fields are
// left unchanged and the job code cannot be changed. A present item list
// replaces that whole collection.
type UpdateRequest struct {
	Slug             *string                            `json:"slug" binding:"omitempty,max=150"`
	Department       *string                            `json:"department" binding:"omitempty,max=100"`
	Location         *string                            `json:"location" binding:"omitempty,max=150"`
	EmploymentType   *domain.EmploymentType             `json:"employmentType"`
	SalaryMin        *float64                           `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax        *float64                           `json:"salaryMax" binding:"omitempty,gte=0"`
	IsFeatured       *bool                              `json:"isFeatured"`
	IsActive         *bool                              `json:"isActive"`
	PublishedAt      *time.Time                         `json:"publishedAt"`
	ClosingDate      *time.Time                         `json:"closingDate"`
	Translations     map[domain.Locale]TranslationInput `json:"translations" binding:"omitempty,dive"`
	Requirements     *[]ItemInput                       `json:"requirements" binding:"omitempty,dive"`
	Responsibilities *[]ItemInput                       `json:"responsibilities" binding:"omitempty,dive"`
	Benefits         *[]ItemInput                       `json:"benefits" binding:"omitempty,dive"`
}

func (r UpdateRequest) items() map[domain.JobItemKind]*[]ItemInput {
	return map[domain.JobItemKind]*[]ItemInput{
		domain.JobItemRequirement:    r.Requirements,
		domain.JobItemResponsibility: r.Responsibilities,
		domain.JobItemBenefit:        r.Benefits,
	}
}

// ItemView is a job posting bullet in responses.
type ItemView struct {
	ID           uint `json:"id"`
	DisplayOrder int  `json:"displayOrder"`
	*domain.JobPostingItemText
	Translations map[domain.Locale]domain.JobPostingItemText `json:"translations,omitempty"`
}

// View is a job posting in responses.
type View struct {
	*domain.JobPosting
	*domain.JobPostingText
	Locale           domain.Locale                           `json:"locale,omitempty"`
	Translations     map[domain.Locale]domain.JobPostingText `json:"translations,omitempty"`
	Requirements     []ItemView                              `json:"requirements"`
	Responsibilities []ItemView                              `json:"responsibilities"`
	Benefits         []ItemView                              `json:"benefits"`
}
