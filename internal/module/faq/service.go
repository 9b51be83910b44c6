package faq

import (
	"context"
	"strings"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Service defines the business operations on FAQs.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*View, error)
	Get(ctx context.Context, id uint) (*View, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error)
	Update(ctx context.Context, id uint, req UpdateRequest) (*View, error)
	Delete(ctx context.Context, id uint) (*domain.DeleteResult, error)
	ListPublic(ctx context.Context, req domain.PageRequest, loc domain.Locale) (*domain.PageResult[View], error)
	GetPublic(ctx context.Context, id uint, loc domain.Locale) (*View, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	repo  domain.FAQRepository
	audit audit.Recorder
}

// NewService creates a FAQ service. A nil recorder disables auditing.
func NewService(repo domain.FAQRepository, rec audit.Recorder) Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &service{repo: repo, audit: rec}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	actor := domain.ActorID(ctx)

	faq := &domain.FAQ{
		Category:     strings.TrimSpace(req.Category),
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
		AuditFields:  domain.AuditFields{CreatedBy: actor, UpdatedBy: actor},
		Translations: buildTranslations(req.Translations),
	}
	if err := s.repo.Create(ctx, faq); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, faq.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(created)
	audit.Mutation(ctx, s.audit, audit.ActionCreate, entityName, pkg.FormatID(created.ID), nil, view)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uint) (*View, error) {
	faq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(faq)
	return &view, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(f domain.FAQ) View { return adminView(&f) }), nil
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
	if req.DisplayOrder != nil {
		fields["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if actor := domain.ActorID(ctx); actor != nil {
		fields["updated_by"] = *actor
	}

	patch := domain.FAQPatch{Fields: fields}
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
	return domain.MapPage(page, func(f domain.FAQ) View { return publicView(&f, loc) }), nil
}

func (s *service) GetPublic(ctx context.Context, id uint, loc domain.Locale) (*View, error) {
	faq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !faq.IsActive {
		return nil, domain.NotFoundError(entityName)
	}
	view := publicView(faq, loc)
	return &view, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.FAQTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.FAQTranslation {
		return domain.FAQTranslation{
			Locale: l,
			FAQText: domain.FAQText{
				Question: strings.TrimSpace(t.Question),
				Answer:   t.Answer,
			},
		}
	})
}

func adminView(f *domain.FAQ) View {
	return View{
		FAQ:          f,
		Translations: pkg.MergeTranslations[domain.FAQTranslation, domain.FAQText](f.Translations),
	}
}

func publicView(f *domain.FAQ, loc domain.Locale) View {
	text, used, _ := pkg.LocalizeTranslations[domain.FAQTranslation, domain.FAQText](f.Translations, loc)
	return View{FAQ: f, FAQText: &text, Locale: used}
}
