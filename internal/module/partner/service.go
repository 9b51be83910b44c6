package partner

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Service defines the business operations on partners.
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
	repo  domain.PartnerRepository
	audit audit.Recorder
}

// NewService creates a partner service. A nil recorder disables auditing.
func NewService(repo domain.PartnerRepository, rec audit.Recorder) Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &service{repo: repo, audit: rec}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	code := strings.TrimSpace(req.PartnerCode)
	if code == "" {
		return nil, domain.ValidationFailed("partnerCode is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ValidationFailed("name is required")
	}
	if err := checkPartnerType(req.PartnerType); err != nil {
		return nil, err
	}
	website, err := normalizeWebsite(req.WebsiteURL)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
		return nil, err
	}

	taken, err := s.repo.CodeTaken(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ConflictError(entityName, "partnerCode", code)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	actor := domain.ActorID(ctx)

	partner := &domain.Partner{
		PartnerCode:  code,
		Name:         name,
		PartnerType:  req.PartnerType,
		LogoMediaID:  req.LogoMediaID,
		WebsiteURL:   website,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
		AuditFields:  domain.AuditFields{CreatedBy: actor, UpdatedBy: actor},
		Translations: buildTranslations(req.Translations),
	}
	if err := s.repo.Create(ctx, partner); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, partner.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(created)
	audit.Mutation(ctx, s.audit, audit.ActionCreate, entityName, pkg.FormatID(created.ID), nil, view)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uint) (*View, error) {
	partner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(partner)
	return &view, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(p domain.Partner) View { return adminView(&p) }), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRequest) (*View, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := adminView(current)

	fields := make(map[string]any)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ValidationFailed("name must not be empty")
		}
		fields["name"] = name
	}
	if req.PartnerType != nil {
		if err := checkPartnerType(*req.PartnerType); err != nil {
			return nil, err
		}
		fields["partner_type"] = *req.PartnerType
	}
	if req.WebsiteURL != nil {
		website, err := normalizeWebsite(*req.WebsiteURL)
		if err != nil {
			return nil, err
		}
		fields["website_url"] = website
	}
	if req.LogoMediaID != nil {
		fields["logo_media_id"] = *req.LogoMediaID
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

	patch := domain.PartnerPatch{Fields: fields}
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
	return domain.MapPage(page, func(p domain.Partner) View { return publicView(&p, loc) }), nil
}

func (s *service) GetPublic(ctx context.Context, code string, loc domain.Locale) (*View, error) {
	partner, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !partner.IsActive {
		return nil, domain.NotFoundError(entityName)
	}
	view := publicView(partner, loc)
	return &view, nil
}

func checkPartnerType(t domain.PartnerType) error {
	if !t.IsValid() {
		return domain.ValidationFailed(fmt.Sprintf("invalid partnerType %q", t))
	}
	return nil
}

// normalizeWebsite trims raw and requires an absolute http(s) URL. An empty
// value clears the website.
func normalizeWebsite(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", domain.ValidationFailed("websiteUrl must be an absolute http or https URL")
	}
	return raw, nil
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.PartnerTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.PartnerTranslation {
		return domain.PartnerTranslation{
			Locale:      l,
			PartnerText: domain.PartnerText{Description: t.Description},
		}
	})
}

func adminView(p *domain.Partner) View {
	return View{
		Partner:      p,
		Translations: pkg.MergeTranslations[domain.PartnerTranslation, domain.PartnerText](p.Translations),
	}
}

func publicView(p *domain.Partner, loc domain.Locale) View {
	text, used, _ := pkg.LocalizeTranslations[domain.PartnerTranslation, domain.PartnerText](p.Translations, loc)
	return View{Partner: p, PartnerText: &text, Locale: used}
}
