package pkg

import (
	"sort"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
)

// Translated is implemented by translation rows: one parent, one locale, one
// bag of text fields F.
type Translated[F any] interface {
	TranslationLocale() domain.Locale
	TranslationText() F
}

// MergeTranslations collapses translation rows into a locale-keyed map.
// An empty input yields an empty, non-nil map.
func MergeTranslations[T Translated[F], F any](rows []T) map[domain.Locale]F {
	out := make(map[domain.Locale]F, len(rows))
	for _, row := range rows {
		out[row.TranslationLocale()] = row.TranslationText()
	}
	return out
}

// LocalizeTranslations returns the text for loc, falling back to the default
// locale when loc is unrecognized or has no row. The returned locale is the
// one whose row was used; ok is false when neither row exists, in which case
// the zero text is returned.
func LocalizeTranslations[T Translated[F], F any](rows []T, loc domain.Locale) (text F, used domain.Locale, ok bool) {
	if !loc.IsValid() {
		loc = domain.DefaultLocale
	}

	var fallback *T
	for i := range rows {
		switch rows[i].TranslationLocale() {
		case loc:
			return rows[i].TranslationText(), loc, true
		case domain.DefaultLocale:
			fallback = &rows[i]
		}
	}
	if fallback != nil {
		return (*fallback).TranslationText(), domain.DefaultLocale, true
	}
	return text, loc, false
}

// BuildTranslations turns a locale map into translation rows using build.
// Rows are produced in locale order so inserts are deterministic.
func BuildTranslations[F, T any](m map[domain.Locale]F, build func(domain.Locale, F) T) []T {
	if len(m) == 0 {
		return nil
	}
	locales := make([]string, 0, len(m))
	for l := range m {
		locales = append(locales, string(l))
	}
	sort.Strings(locales)

	out := make([]T, 0, len(m))
	for _, l := range locales {
		out = append(out, build(domain.Locale(l), m[domain.Locale(l)]))
	}
	return out
}

// ReplaceTranslations removes every translation row of T whose parentColumn
// equals parentID and inserts rows in their place. An empty rows slice leaves
// the stored translations untouched. tx must be the caller's transaction.
func ReplaceTranslations[T any](tx *gorm.DB, parentColumn string, parentID uint, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Where(parentColumn+" = ?", parentID).Delete(new(T)).Error; err != nil {
		return err
	}
	return tx.Create(&rows).Error
}

// ReplaceKindItems replaces the child items of kind belonging to parentID,
// together with their translation rows of type TR (linked by item_id).
// items may carry nested translations and are inserted as given; an empty
// items slice clears the collection. tx must be the caller's transaction.
func ReplaceKindItems[I, TR any](tx *gorm.DB, parentColumn string, parentID uint, kind string, items []I) error {
	owned := tx.Model(new(I)).Select("id").Where(parentColumn+" = ? AND kind = ?", parentID, kind)
	if err := tx.Where("item_id IN (?)", owned).Delete(new(TR)).Error; err != nil {
		return err
	}
	if err := tx.Where(parentColumn+" = ? AND kind = ?", parentID, kind).Delete(new(I)).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}
