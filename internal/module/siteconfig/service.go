package siteconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const defaultCategory = "general"

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9]+(?:[._-][a-zA-Z0-9]+)*$`)

// Service defines the business operations on site configs.
type Service interface {
	ListPublic(ctx context.Context, category string, loc domain.Locale) ([]PublicView, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error)
	Get(ctx context.Context, key string) (*View, error)
	Set(ctx context.Context, key string, req SetRequest) (*View, error)
	BulkSet(ctx context.Context, items []BulkItem) *BulkResult
	Delete(ctx context.Context, key string) (*DeleteResult, error)
}

type service struct {
	repo  domain.SiteConfigRepository
	audit audit.Recorder
}

// NewService creates a site config service. A nil recorder disables auditing.
func NewService(repo domain.SiteConfigRepository, rec audit.Recorder) Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &service{repo: repo, audit: rec}
}

func (s *service) ListPublic(ctx context.Context, category string, loc domain.Locale) ([]PublicView, error) {
	configs, err := s.repo.ListPublic(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	out := make([]PublicView, 0, len(configs))
	for i := range configs {
		out = append(out, publicView(&configs[i], loc))
	}
	return out, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(c domain.SiteConfig) View { return adminView(&c) }), nil
}

func (s *service) Get(ctx context.Context, key string) (*View, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	cfg, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	view := adminView(cfg)
	return &view, nil
}

func (s *service) Set(ctx context.Context, key string, req SetRequest) (*View, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	if req.Value == nil {
		return nil, domain.ValidationFailed("value is required")
	}
	if err := domain.ValidateLocaleKeys(req.Translations, false); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByKey(ctx, key)
	switch {
	case domain.IsNotFound(err):
		current = nil
	case err != nil:
		return nil, err
	}

	valueType, err := resolveValueType(req.ValueType, req.Value, current)
	if err != nil {
		return nil, err
	}
	raw, err := encodeValue(req.Value)
	if err != nil {
		return nil, err
	}

	cfg := &domain.SiteConfig{
		ConfigKey:   key,
		ConfigValue: raw,
		ValueType:   valueType,
		Category:    defaultCategory,
		UpdatedBy:   domain.ActorID(ctx),
	}
	var before any
	if current != nil {
		cfg.Category = current.Category
		cfg.IsPublic = current.IsPublic
		before = adminView(current)
	}
	if req.Category != nil {
		if c := strings.TrimSpace(*req.Category); c != "" {
			cfg.Category = c
		}
	}
	if req.IsPublic != nil {
		cfg.IsPublic = *req.IsPublic
	}

	if err := s.repo.Upsert(ctx, cfg, buildTranslations(req.Translations)); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	view := adminView(stored)
	action := audit.ActionUpdate
	if current == nil {
		action = audit.ActionCreate
	}
	audit.Mutation(ctx, s.audit, action, entityName, key, before, view)
	return &view, nil
}

// normalizeKey trims key and checks it is a well-formed config key.
func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if !keyPattern.MatchString(key) || len(key) > 100 {
		return "", domain.ValidationFailed("invalid configKey: " + key)
	}
	return key, nil
}

// BulkSet applies every item as its own upsert. A failing item is reported
// and does not roll back the others.
func (s *service) BulkSet(ctx context.Context, items []BulkItem) *BulkResult {
	result := &BulkResult{Updated: []View{}, Failed: []BulkFailure{}}
	for _, item := range items {
		view, err := s.Set(ctx, item.ConfigKey, item.SetRequest)
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{ConfigKey: item.ConfigKey, Error: failureMessage(err)})
			continue
		}
		result.Updated = append(result.Updated, *view)
	}
	return result
}

func (s *service) Delete(ctx context.Context, key string) (*DeleteResult, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return nil, err
	}
	audit.Mutation(ctx, s.audit, audit.ActionDelete, entityName, key, adminView(current), nil)
	return &DeleteResult{ConfigKey: key, Deleted: true}, nil
}

// resolveValueType picks the explicit type, then the stored one, then infers
// it from the JSON kind of value.
func resolveValueType(explicit string, value any, current *domain.SiteConfig) (domain.ConfigValueType, error) {
	if strings.TrimSpace(explicit) != "" {
		t, ok := domain.ParseConfigValueType(explicit)
		if !ok {
			return "", domain.ValidationFailed(fmt.Sprintf("invalid valueType %q", explicit))
		}
		return t, nil
	}
	if current != nil {
		return current.ValueType, nil
	}
	switch value.(type) {
	case bool:
		return domain.ConfigBoolean, nil
	case float64, json.Number:
		return domain.ConfigNumber, nil
	case string:
		return domain.ConfigString, nil
	default:
		return domain.ConfigJSON, nil
	}
}

// encodeValue converts a decoded JSON value into its stored text form.
// Strings are stored verbatim.
func encodeValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", domain.ValidationFailed("value is not JSON encodable")
		}
		return string(b), nil
	}
}

func failureMessage(err error) string {
	if domain.IsInternal(err) {
		return "internal server error"
	}
	return err.Error()
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.SiteConfigTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.SiteConfigTranslation {
		return domain.SiteConfigTranslation{
			Locale: l,
			SiteConfigText: domain.SiteConfigText{
				Label:       strings.TrimSpace(t.Label),
				Description: t.Description,
			},
		}
	})
}

func adminView(c *domain.SiteConfig) View {
	return View{
		SiteConfig:   c,
		RawValue:     c.ConfigValue,
		Value:        c.TypedValue(),
		Translations: pkg.MergeTranslations[domain.SiteConfigTranslation, domain.SiteConfigText](c.Translations),
	}
}

func publicView(c *domain.SiteConfig, loc domain.Locale) PublicView {
	text, used, _ := pkg.LocalizeTranslations[domain.SiteConfigTranslation, domain.SiteConfigText](c.Translations, loc)
	return PublicView{
		ConfigKey:      c.ConfigKey,
		Value:          c.TypedValue(),
		ValueType:      c.ValueType,
		Category:       c.Category,
		SiteConfigText: text,
		Locale:         used,
	}
}
