package domain

import (
	"regexp"
	"time"
)

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuditFields records which principal created and last changed a row.
type AuditFields struct {
	CreatedBy *string `gorm:"size:64" json:"createdBy,omitempty"`
	UpdatedBy *string `gorm:"size:64" json:"updatedBy,omitempty"`
}

// SoftDelete marks a row as logically deleted. A nil DeletedAt means the row is live.
//
// The column is filtered explicitly by pkg.NotDeleted instead of relying on
// gorm.DeletedAt, so admin views can opt into deleted rows.
type SoftDelete struct {
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

// PageRequest holds pagination, filtering and search parameters for list queries.
type PageRequest struct {
	Page           int
	Limit          int
	Sort           string
	Search         string
	IncludeDeleted bool
	Filter         map[string]string
}

// WithFilter returns a copy of req with key set to value in the filter map.
func (req PageRequest) WithFilter(key, value string) PageRequest {
	filter := make(map[string]string, len(req.Filter)+1)
	for k, v := range req.Filter {
		filter[k] = v
	}
	filter[key] = value
	req.Filter = filter
	return req
}

// PageResult is one page of a list query together with its pagination metadata.
type PageResult[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// MapPage converts the items of a page while keeping its pagination metadata.
func MapPage[T, V any](p *PageResult[T], fn func(T) V) *PageResult[V] {
	items := make([]V, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return &PageResult[V]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

// DeleteResult confirms a delete without returning the removed entity.
type DeleteResult struct {
	ID      uint `json:"id"`
	Deleted bool `json:"deleted"`
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks that s is a lowercase, hyphen-separated URL slug.
func ValidateSlug(s string) error {
	if !slugPattern.MatchString(s) {
		return ValidationFailed("slug '" + s + "' must contain only lowercase letters, digits and single hyphens")
	}
	return nil
}
