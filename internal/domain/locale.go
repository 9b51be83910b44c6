package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Locale identifies the language of a translation row.
type Locale string

// Recognized locales.
const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"
)

// DefaultLocale is used whenever a requested locale is missing or unrecognized.
const DefaultLocale = LocaleID

var supportedLocales = []Locale{LocaleID, LocaleEN}

// SupportedLocales returns the recognized locales, default first.
func SupportedLocales() []Locale {
	out := make([]Locale, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

// ParseLocale normalizes s and reports whether it names a recognized locale.
func ParseLocale(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range supportedLocales {
		if l == supported {
			return l, true
		}
	}
	return "", false
}

// ResolveLocale returns the recognized locale named by s, or DefaultLocale.
func ResolveLocale(s string) Locale {
	if l, ok := ParseLocale(s); ok {
		return l
	}
	return DefaultLocale
}

// IsValid reports whether l is a recognized locale.
func (l Locale) IsValid() bool {
	_, ok := ParseLocale(string(l))
	return ok
}

// ValidateLocaleKeys checks that every key of a locale map is recognized and
// that the default locale is present when requireDefault is set.
func ValidateLocaleKeys[F any](m map[Locale]F, requireDefault bool) error {
	keys := make([]string, 0, len(m))
	for l := range m {
		keys = append(keys, string(l))
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !Locale(k).IsValid() {
			return ValidationFailed(fmt.Sprintf("unsupported translation locale '%s': must be one of %q", k, SupportedLocales()))
		}
	}
	if requireDefault {
		if _, ok := m[DefaultLocale]; !ok {
			return ValidationFailed("translation for default locale '" + string(DefaultLocale) + "' is required")
		}
	}
	return nil
}
