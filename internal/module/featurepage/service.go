package featurepage

import (
	"context"
	"fmt"
	"strings"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Service defines the business operations on feature pages.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*View, error)
	Get(ctx context.Context, id uint) (*View, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error)
	Update(ctx context.Context, id uint, req UpdateRequest) (*View, error)
	Delete(ctx context.Context, id uint) (*domain.DeleteResult, error)
	ListPublic(ctx context.Context, req domain.PageRequest, loc domain.Locale) (*domain.PageResult[View], error)
	GetPublic(ctx context.Context, slug string, loc domain.Locale) (*View, error)
}

type service struct {
	repo  domain.FeaturePageRepository
	audit audit.Recorder
}

// NewService creates a feature page service. A nil recorder disables auditing.
func NewService(repo domain.FeaturePageRepository, rec audit.Recorder) Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &service{repo: repo, audit: rec}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	slug := strings.TrimSpace(req.Slug)
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, err
	}
	if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
		return nil, err
	}
	if err := s.checkFeature(ctx, req.FeatureID); err != nil {
		return nil, err
	}

	taken, err := s.repo.SlugTaken(ctx, slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ConflictError(entityName, "slug", slug)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	actor := domain.ActorID(ctx)

	page := &domain.FeaturePage{
		Slug:         slug,
		FeatureID:    req.FeatureID,
		HeroMediaID:  req.HeroMediaID,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
		AuditFields:  domain.AuditFields{CreatedBy: actor, UpdatedBy: actor},
		Translations: buildTranslations(req.Translations),
	}
	if err := s.repo.Create(ctx, page); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(created)
	audit.Mutation(ctx, s.audit, audit.ActionCreate, entityName, pkg.FormatID(created.ID), nil, view)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uint) (*View, error) {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(page)
	return &view, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(p domain.FeaturePage) View { return adminView(&p) }), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRequest) (*View, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := adminView(current)

	fields := make(map[string]any)
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if err := domain.ValidateSlug(slug); err != nil {
			return nil, err
		}
		if slug != current.Slug {
			taken, err := s.repo.SlugTaken(ctx, slug, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ConflictError(entityName, "slug", slug)
			}
		}
		fields["slug"] = slug
	}
	if req.FeatureID != nil {
		if err := s.checkFeature(ctx, req.FeatureID); err != nil {
			return nil, err
		}
		fields["feature_id"] = *req.FeatureID
	}
	if req.HeroMediaID != nil {
		fields["hero_media_id"] = *req.HeroMediaID
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

	patch := domain.FeaturePagePatch{Fields: fields}
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
	return domain.MapPage(page, func(p domain.FeaturePage) View { return publicView(&p, loc) }), nil
}

func (s *service) GetPublic(ctx context.Context, slug string, loc domain.Locale) (*View, error) {
	page, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !page.IsActive {
		return nil, domain.NotFoundError(entityName)
	}
	view := publicView(page, loc)
	return &view, nil
}

func (s *service) checkFeature(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.repo.FeatureExists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ValidationFailed(fmt.Sprintf("unknown feature id %d", *id))
	}
	return nil
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.FeaturePageTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.FeaturePageTranslation {
		return domain.FeaturePageTranslation{
			Locale: l,
			FeaturePageText: domain.FeaturePageText{
				Title:           strings.TrimSpace(t.Title),
				Subtitle:        strings.TrimSpace(t.Subtitle),
				Content:         t.Content,
				MetaTitle:       strings.TrimSpace(t.MetaTitle),
				MetaDescription: strings.TrimSpace(t.MetaDescription),
			},
		}
	})
}

func adminView(p *domain.FeaturePage) View {
	return View{
		FeaturePage:  p,
		Translations: pkg.MergeTranslations[domain.FeaturePageTranslation, domain.FeaturePageText](p.Translations),
	}
}

func publicView(p *domain.FeaturePage, loc domain.Locale) View {
	text, used, _ := pkg.LocalizeTranslations[domain.FeaturePageTranslation, domain.FeaturePageText](p.Translations, loc)
	return View{FeaturePage: p, FeaturePageText: &text, Locale: used}
}
