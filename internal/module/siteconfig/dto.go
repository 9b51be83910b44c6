package siteconfig

import "github.com/simp-lee/sitecms/internal/domain"

// TranslationInput is the per-locale label of a site config in requests.
type TranslationInput struct {
	Label       string `json:"label" binding:"max=150"`
	Description string `json:"description"`
}

// SetRequest is the request body for creating or overwriting one site config.
// Value may be any JSON value; non-string values are stored in their JSON
// text form. Omitted category and isPublic keep the stored values.
type SetRequest struct {
	Value        any                                `json:"value"`
	ValueType    string                             `json:"valueType" binding:"omitempty,max=10"`
	Category     *string                            `json:"category" binding:"omitempty,max=50"`
	IsPublic     *bool                              `json:"isPublic"`
	Translations map[domain.Locale]TranslationInput `json:"translations" binding:"omitempty,dive"`
}

// BulkItem is one entry of a bulk set request.
type BulkItem struct {
	ConfigKey string `json:"configKey" binding:"required,max=100"`
	SetRequest
}

// BulkRequest is the request body for setting several site configs at once.
type BulkRequest struct {
	Configs []BulkItem `json:"configs" binding:"required,min=1,dive"`
}

// BulkFailure reports why one entry of a bulk request was not stored.
type BulkFailure struct {
	ConfigKey string `json:"configKey"`
	Error     string `json:"error"`
}

// BulkResult is the outcome of a bulk set. Entries are applied independently.
type BulkResult struct {
	Updated []View        `json:"updated"`
	Failed  []BulkFailure `json:"failed"`
}

// DeleteResult confirms a hard delete.
type DeleteResult struct {
	ConfigKey string `json:"configKey"`
	Deleted   bool   `json:"deleted"`
}

// View is a site config in admin responses.
type View struct {
	*domain.SiteConfig
	RawValue     string                                  `json:"rawValue"`
	Value        any                                     `json:"value"`
	Translations map[domain.Locale]domain.SiteConfigText `json:"translations"`
}

// PublicView is a public site config with its label in one locale.
type PublicView struct {
	ConfigKey string                 `json:"configKey"`
	Value     any                    `json:"value"`
	ValueType domain.ConfigValueType `json:"valueType"`
	Category  string                 `json:"category"`
	domain.SiteConfigText
	Locale domain.Locale `json:"locale"`
}
