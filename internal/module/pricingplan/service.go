package pricingplan

import (
	"context"
	"fmt"
	"strings"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const defaultCurrency = "IDR"

// Service defines the business operations on pricing plans.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PlanView, error)
	Get(ctx context.Context, id uint) (*PlanView, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[PlanView], error)
	Update(ctx context.Context, id uint, req UpdateRequest) (*PlanView, error)
	Delete(ctx context.Context, id uint) (*domain.DeleteResult, error)
	ListPublic(ctx context.Context, req domain.PageRequest, loc domain.Locale) (*domain.PageResult[PlanView], error)
	GetPublic(ctx context.Context, code string, loc domain.Locale) (*PlanView, error)
}

type service struct {
	repo  domain.PricingPlanRepository
	audit audit.Recorder
}

// NewService creates a pricing plan service. A nil recorder disables auditing.
func NewService(repo domain.PricingPlanRepository, rec audit.Recorder) Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &service{repo: repo, audit: rec}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*PlanView, error) {
	code := strings.TrimSpace(req.PlanCode)
	if code == "" {
		return nil, domain.ValidationFailed("planCode is required")
	}
	if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
		return nil, err
	}
	if err := checkUserRange(req.MinUsers, req.MaxUsers); err != nil {
		return nil, err
	}
	features, err := s.buildFeatures(ctx, req.Features)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.CodeTaken(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ConflictError(entityName, "planCode", code)
	}

	currency := defaultCurrency
	if req.Currency != "" {
		currency = strings.ToUpper(req.Currency)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	actor := domain.ActorID(ctx)

	plan := &domain.PricingPlan{
		PlanCode:          code,
		MinUsers:          req.MinUsers,
		MaxUsers:          req.MaxUsers,
		PricePerUserMonth: req.PricePerUserMonth,
		PricePerUserYear:  req.PricePerUserYear,
		Currency:          currency,
		IsPopular:         req.IsPopular,
		DisplayOrder:      req.DisplayOrder,
		IsActive:          isActive,
		AuditFields:       domain.AuditFields{CreatedBy: actor, UpdatedBy: actor},
		Translations:      buildTranslations(req.Translations),
		Features:          features,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(created)
	audit.Mutation(ctx, s.audit, audit.ActionCreate, entityName, pkg.FormatID(created.ID), nil, view)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uint) (*PlanView, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(plan)
	return &view, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[PlanView], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(p domain.PricingPlan) PlanView { return adminView(&p) }), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRequest) (*PlanView, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := adminView(current)

	minUsers := current.MinUsers
	if req.MinUsers != nil {
		minUsers = *req.MinUsers
	}
	maxUsers := current.MaxUsers
	if req.MaxUsers != nil {
		maxUsers = req.MaxUsers
	}
	if err := checkUserRange(minUsers, maxUsers); err != nil {
		return nil, err
	}

	patch := domain.PricingPlanPatch{Fields: updateFields(req)}
	if actor := domain.ActorID(ctx); actor != nil {
		patch.Fields["updated_by"] = *actor
	}
	if len(req.Translations) > 0 {
		if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
			return nil, err
		}
		patch.Translations = buildTranslations(req.Translations)
	}
	if req.Features != nil {
		features, err := s.buildFeatures(ctx, *req.Features)
		if err != nil {
			return nil, err
		}
		if features == nil {
			features = []domain.PlanFeature{}
		}
		patch.Features = &features
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

func (s *service) ListPublic(ctx context.Context, req domain.PageRequest, loc domain.Locale) (*domain.PageResult[PlanView], error) {
	req.IncludeDeleted = false
	page, err := s.repo.List(ctx, req.WithFilter("isActive", "true"))
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(p domain.PricingPlan) PlanView { return publicView(&p, loc) }), nil
}

func (s *service) GetPublic(ctx context.Context, code string, loc domain.Locale) (*PlanView, error) {
	plan, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, domain.NotFoundError(entityName)
	}
	view := publicView(plan, loc)
	return &view, nil
}

func (s *service) buildFeatures(ctx context.Context, in []FeatureInput) ([]domain.PlanFeature, error) {
	if len(in) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(in))
	seen := make(map[uint]bool, len(in))
	features := make([]domain.PlanFeature, 0, len(in))
	for _, f := range in {
		if seen[f.FeatureID] {
			return nil, domain.ValidationFailed(fmt.Sprintf("feature %d is listed more than once", f.FeatureID))
		}
		seen[f.FeatureID] = true
		ids = append(ids, f.FeatureID)

		included := true
		if f.IsIncluded != nil {
			included = *f.IsIncluded
		}
		features = append(features, domain.PlanFeature{
			FeatureID:    f.FeatureID,
			IsIncluded:   included,
			LimitValue:   strings.TrimSpace(f.LimitValue),
			DisplayOrder: f.DisplayOrder,
		})
	}

	missing, err := s.repo.MissingFeatures(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, domain.ValidationFailed(fmt.Sprintf("unknown feature ids: %v", missing))
	}
	return features, nil
}

func checkUserRange(minUsers int, maxUsers *int) error {
	if maxUsers != nil && *maxUsers < minUsers {
		return domain.ValidationFailed("maxUsers must be greater than or equal to minUsers")
	}
	return nil
}

func updateFields(req UpdateRequest) map[string]any {
	fields := make(map[string]any)
	if req.MinUsers != nil {
		fields["min_users"] = *req.MinUsers
	}
	if req.MaxUsers != nil {
		fields["max_users"] = *req.MaxUsers
	}
	if req.PricePerUserMonth != nil {
		fields["price_per_user_month"] = *req.PricePerUserMonth
	}
	if req.PricePerUserYear != nil {
		fields["price_per_user_year"] = *req.PricePerUserYear
	}
	if req.Currency != nil {
		fields["currency"] = strings.ToUpper(*req.Currency)
	}
	if req.IsPopular != nil {
		fields["is_popular"] = *req.IsPopular
	}
	if req.DisplayOrder != nil {
		fields["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return fields
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.PricingPlanTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.PricingPlanTranslation {
		return domain.PricingPlanTranslation{
			Locale: l,
			PricingPlanText: domain.PricingPlanText{
				PlanName:    strings.TrimSpace(t.PlanName),
				Description: t.Description,
				CTAText:     strings.TrimSpace(t.CTAText),
			},
		}
	})
}

func adminView(p *domain.PricingPlan) PlanView {
	features := make([]PlanFeatureView, 0, len(p.Features))
	for _, f := range p.Features {
		if f.Feature == nil {
			continue
		}
		features = append(features, PlanFeatureView{
			FeatureID:    f.FeatureID,
			FeatureCode:  f.Feature.FeatureCode,
			Category:     f.Feature.Category,
			IsIncluded:   f.IsIncluded,
			LimitValue:   f.LimitValue,
			DisplayOrder: f.DisplayOrder,
			Translations: pkg.MergeTranslations[domain.FeatureTranslation, domain.FeatureText](f.Feature.Translations),
		})
	}
	return PlanView{
		PricingPlan:  p,
		Translations: pkg.MergeTranslations[domain.PricingPlanTranslation, domain.PricingPlanText](p.Translations),
		Features:     features,
	}
}

func publicView(p *domain.PricingPlan, loc domain.Locale) PlanView {
	text, used, _ := pkg.LocalizeTranslations[domain.PricingPlanTranslation, domain.PricingPlanText](p.Translations, loc)

	features := make([]PlanFeatureView, 0, len(p.Features))
	for _, f := range p.Features {
		if f.Feature == nil || !f.Feature.IsActive {
			continue
		}
		name, _, _ := pkg.LocalizeTranslations[domain.FeatureTranslation, domain.FeatureText](f.Feature.Translations, loc)
		features = append(features, PlanFeatureView{
			FeatureID:    f.FeatureID,
			FeatureCode:  f.Feature.FeatureCode,
			Category:     f.Feature.Category,
			IsIncluded:   f.IsIncluded,
			LimitValue:   f.LimitValue,
			DisplayOrder: f.DisplayOrder,
			FeatureName:  name.FeatureName,
		})
	}
	return PlanView{
		PricingPlan:     p,
		PricingPlanText: &text,
		Locale:          used,
		Features:        features,
	}
}
