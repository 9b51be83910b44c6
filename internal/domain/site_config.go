package domain

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// ConfigValueType tags how a stored site config value is decoded.
type ConfigValueType string

const (
	ConfigString  ConfigValueType = "string"
	ConfigNumber  ConfigValueType = "number"
	ConfigBoolean ConfigValueType = "boolean"
	ConfigJSON    ConfigValueType = "json"
)

// ParseConfigValueType reports whether s names a known value type.
// An empty string means ConfigString.
func ParseConfigValueType(s string) (ConfigValueType, bool) {
	switch t := ConfigValueType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ConfigString, true
	case ConfigString, ConfigNumber, ConfigBoolean, ConfigJSON:
		return t, true
	default:
		return "", false
	}
}

// SiteConfig is a key-value setting of the website. Rows are hard-deleted.
type SiteConfig struct {
	BaseModel
	ConfigKey    string                  `gorm:"size:100;not null;uniqueIndex:uq_site_configs_key" json:"configKey"`
	ConfigValue  string                  `gorm:"type:text;not null" json:"-"`
	ValueType    ConfigValueType         `gorm:"size:10;not null" json:"valueType"`
	Category     string                  `gorm:"size:50;not null;index" json:"category"`
	IsPublic     bool                    `gorm:"not null" json:"isPublic"`
	UpdatedBy    *string                 `gorm:"size:64" json:"updatedBy,omitempty"`
	Translations []SiteConfigTranslation `gorm:"foreignKey:SiteConfigID" json:"-"`
}

// TableName overrides the default table name.
func (SiteConfig) TableName() string { return "site_configs" }

// TypedValue returns the stored value decoded according to its type tag.
func (c SiteConfig) TypedValue() any {
	return DecodeConfigValue(c.ConfigValue, c.ValueType)
}

// DecodeConfigValue converts a raw stored string into its typed value.
// Decoding never fails: invalid JSON yields the raw string, booleans are true
// only for the literal "true", and unparseable numbers yield 0.
func DecodeConfigValue(raw string, t ConfigValueType) any {
	switch t {
	case ConfigJSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return raw
		}
		return v
	case ConfigBoolean:
		return raw == "true"
	case ConfigNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return float64(0)
		}
		return f
	default:
		return raw
	}
}

// SiteConfigText holds the locale-varying fields of a site config.
type SiteConfigText struct {
	Label       string `gorm:"size:150" json:"label"`
	Description string `gorm:"type:text" json:"description"`
}

// SiteConfigTranslation is one locale row of a site config.
type SiteConfigTranslation struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	SiteConfigID uint   `gorm:"not null;uniqueIndex:uq_site_config_translations_locale" json:"-"`
	Locale       Locale `gorm:"size:5;not null;uniqueIndex:uq_site_config_translations_locale" json:"locale"`
	SiteConfigText
}

// TableName overrides the default table name.
func (SiteConfigTranslation) TableName() string { return "site_config_translations" }

func (t SiteConfigTranslation) TranslationLocale() Locale       { return t.Locale }
func (t SiteConfigTranslation) TranslationText() SiteConfigText { return t.SiteConfigText }

// SiteConfigRepository defines the data access interface for site configs.
type SiteConfigRepository interface {
	GetByKey(ctx context.Context, key string) (*SiteConfig, error)
	ListPublic(ctx context.Context, category string) ([]SiteConfig, error)
	List(ctx context.Context, req PageRequest) (*PageResult[SiteConfig], error)
	// Upsert creates or overwrites the row with cfg.ConfigKey. A nil
	// translations slice leaves stored translations untouched.
	Upsert(ctx context.Context, cfg *SiteConfig, translations []SiteConfigTranslation) error
	Delete(ctx context.Context, key string) error
}
