package feature

import (
	"context"
	"strings"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Service defines the business operations on features.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*View, error)
	Get(ctx context.Context, id uint) (*View, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error)
	Update(ctx context.Context, id uint, req UpdateRequest) (*View, error)
	Delete(ctx context.Context, id uint) (*domain.DeleteResult, error)
	ListPublic(ctx context.Context, req domain.PageRequest, loc domain.Locale) (*domain.PageResult[View], error)
	GetPublic(ctx context.Context, code string, loc domain.Locale) (*View, error)
}

type service struct {
	repo  domain.FeatureRepository
	audit audit.Recorder
}

// NewService creates a feature service. A nil recorder disables auditing.
func NewService(repo domain.FeatureRepository, rec audit.Recorder) Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &service{repo: repo, audit: rec}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	code := strings.TrimSpace(req.FeatureCode)
	if code == "" {
		return nil, domain.ValidationFailed("featureCode is required")
	}
	if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
		return nil, err
	}

	taken, err := s.repo.CodeTaken(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ConflictError(entityName, "featureCode", code)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	actor := domain.ActorID(ctx)

	feature := &domain.Feature{
		FeatureCode:  code,
		Category:     strings.TrimSpace(req.Category),
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
		AuditFields:  domain.AuditFields{CreatedBy: actor, UpdatedBy: actor},
		Translations: buildTranslations(req.Translations),
	}
	if err := s.repo.Create(ctx, feature); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, feature.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(created)
	audit.Mutation(ctx, s.audit, audit.ActionCreate, entityName, pkg.FormatID(created.ID), nil, view)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uint) (*View, error) {
	feature, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(feature)
	return &view, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(f domain.Feature) View { return adminView(&f) }), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRequest) (*View, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := adminView(current)

	fields := make(map[string]any)
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.DisplayOrder != nil {
		fields["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if actor := domain.ActorID(ctx); actor != nil {
		fields["updated_by"] = *actor
	}

	patch := domain.FeaturePatch{Fields: fields}
	if len(req.Translations) > 0 {
		if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
			return nil, err
		}
		patch.Translations = buildTranslations(req.Translations)
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(updated)
	audit.Mutation(ctx, s.audit, audit.ActionUpdate, entityName, pkg.FormatID(id), before, view)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, id uint) (*domain.DeleteResult, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SoftDelete(ctx, id, domain.ActorID(ctx)); err != nil {
		return nil, err
	}
	audit.Mutation(ctx, s.audit, audit.ActionDelete, entityName, pkg.FormatID(id), adminView(current), nil)
	return &domain.DeleteResult{ID: id, Deleted: true}, nil
}

func (s *service) ListPublic(ctx context.Context, req domain.PageRequest, loc domain.Locale) (*domain.PageResult[View], error) {
	req.IncludeDeleted = false
	page, err := s.repo.List(ctx, req.WithFilter("isActive", "true"))
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(f domain.Feature) View { return publicView(&f, loc) }), nil
}

func (s *service) GetPublic(ctx context.Context, code string, loc domain.Locale) (*View, error) {
	feature, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !feature.IsActive {
		return nil, domain.NotFoundError(entityName)
	}
	view := publicView(feature, loc)
	return &view, nil
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.FeatureTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.FeatureTranslation {
		return domain.FeatureTranslation{
			Locale: l,
			FeatureText: domain.FeatureText{
				FeatureName: strings.TrimSpace(t.FeatureName),
				Description: t.Description,
			},
		}
	})
}

func adminView(f *domain.Feature) View {
	return View{
		Feature:      f,
		Translations: pkg.MergeTranslations[domain.FeatureTranslation, domain.FeatureText](f.Translations),
	}
}

func publicView(f *domain.Feature, loc domain.Locale) View {
	text, used, _ := pkg.LocalizeTranslations[domain.FeatureTranslation, domain.FeatureText](f.Translations, loc)
	return View{Feature: f, FeatureText: &text, Locale: used}
}
