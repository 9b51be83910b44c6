package industry

import (
	"context"
	"fmt"
	"strings"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Service defines the business operations on industries.
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
	repo  domain.IndustryRepository
	audit audit.Recorder
}

// NewService creates an industry service. A nil recorder disables auditing.
func NewService(repo domain.IndustryRepository, rec audit.Recorder) Service {
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
	problems, err := buildItems(domain.IndustryItemProblem, req.Problems)
	if err != nil {
		return nil, err
	}
	solutions, err := buildItems(domain.IndustryItemSolution, req.Solutions)
	if err != nil {
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

	industry := &domain.Industry{
		Slug:         slug,
		Icon:         req.Icon,
		ImageMediaID: req.ImageMediaID,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
		AuditFields:  domain.AuditFields{CreatedBy: actor, UpdatedBy: actor},
		Translations: buildTranslations(req.Translations),
		Items:        append(problems, solutions...),
	}
	if err := s.repo.Create(ctx, industry); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, industry.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(created)
	audit.Mutation(ctx, s.audit, audit.ActionCreate, entityName, pkg.FormatID(created.ID), nil, view)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uint) (*View, error) {
	industry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(industry)
	return &view, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(i domain.Industry) View { return adminView(&i) }), nil
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
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.ImageMediaID != nil {
		fields["image_media_id"] = *req.ImageMediaID
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

	patch := domain.IndustryPatch{Fields: fields, Items: make(map[domain.IndustryItemKind][]domain.IndustryItem)}
	if len(req.Translations) > 0 {
		if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
			return nil, err
		}
		patch.Translations = buildTranslations(req.Translations)
	}
	for kind, in := range map[domain.IndustryItemKind]*[]ItemInput{
		domain.IndustryItemProblem:  req.Problems,
		domain.IndustryItemSolution: req.Solutions,
	} {
		if in == nil {
			continue
		}
		items, err := buildItems(kind, *in)
		if err != nil {
			return nil, err
		}
		patch.Items[kind] = items
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
	return domain.MapPage(page, func(i domain.Industry) View { return publicView(&i, loc) }), nil
}

func (s *service) GetPublic(ctx context.Context, slug string, loc domain.Locale) (*View, error) {
	industry, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !industry.IsActive {
		return nil, domain.NotFoundError(entityName)
	}
	view := publicView(industry, loc)
	return &view, nil
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.IndustryTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.IndustryTranslation {
		return domain.IndustryTranslation{
			Locale: l,
			IndustryText: domain.IndustryText{
				Name:        strings.TrimSpace(t.Name),
				Description: t.Description,
			},
		}
	})
}

func buildItems(kind domain.IndustryItemKind, in []ItemInput) ([]domain.IndustryItem, error) {
	items := make([]domain.IndustryItem, 0, len(in))
	for i, item := range in {
		if err := domain.ValidateLocaleKeys(item.Translations, true); err != nil {
			return nil, domain.ValidationFailed(fmt.Sprintf("%ss[%d]: %v", kind, i, err))
		}
		items = append(items, domain.IndustryItem{
			Kind:         kind,
			Icon:         item.Icon,
			DisplayOrder: item.DisplayOrder,
			Translations: pkg.BuildTranslations(item.Translations, func(l domain.Locale, t ItemTranslationInput) domain.IndustryItemTranslation {
				return domain.IndustryItemTranslation{
					Locale: l,
					IndustryItemText: domain.IndustryItemText{
						Title:       strings.TrimSpace(t.Title),
						Description: t.Description,
					},
				}
			}),
		})
	}
	return items, nil
}

func itemViews(items []domain.IndustryItem, kind domain.IndustryItemKind, loc domain.Locale, public bool) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		if item.Kind != kind {
			continue
		}
		v := ItemView{ID: item.ID, Icon: item.Icon, DisplayOrder: item.DisplayOrder}
		if public {
			text, _, _ := pkg.LocalizeTranslations[domain.IndustryItemTranslation, domain.IndustryItemText](item.Translations, loc)
			v.IndustryItemText = &text
		} else {
			v.Translations = pkg.MergeTranslations[domain.IndustryItemTranslation, domain.IndustryItemText](item.Translations)
		}
		out = append(out, v)
	}
	return out
}

func adminView(i *domain.Industry) View {
	return View{
		Industry:     i,
		Translations: pkg.MergeTranslations[domain.IndustryTranslation, domain.IndustryText](i.Translations),
		Problems:     itemViews(i.Items, domain.IndustryItemProblem, "", false),
		Solutions:    itemViews(i.Items, domain.IndustryItemSolution, "", false),
	}
}

func publicView(i *domain.Industry, loc domain.Locale) View {
	text, used, _ := pkg.LocalizeTranslations[domain.IndustryTranslation, domain.IndustryText](i.Translations, loc)
	return View{
		Industry:     i,
		IndustryText: &text,
		Locale:       used,
		Problems:     itemViews(i.Items, domain.IndustryItemProblem, loc, true),
		Solutions:    itemViews(i.Items, domain.IndustryItemSolution, loc, true),
	}
}
