package jobposting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/metrics"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Service defines the business operations on job postings.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*View, error)
	Get(ctx context.Context, id uint) (*View, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error)
	Update(ctx context.Context, id uint, req UpdateRequest) (*View, error)
	Delete(ctx context.Context, id uint) (*domain.DeleteResult, error)
	ListPublic(ctx context.Context, req domain.PageRequest, loc domain.Locale) (*domain.PageResult[View], error)
	// GetPublic returns an active posting and counts the view. The returned
	// posting carries the count as it was before this view.
	GetPublic(ctx context.Context, slug string, loc domain.Locale) (*View, error)
}

type service struct {
	repo  domain.JobPostingRepository
	audit audit.Recorder
	now   func() time.Time
}

// NewService creates a job posting service. A nil recorder disables auditing.
func NewService(repo domain.JobPostingRepository, rec audit.Recorder) Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &service{repo: repo, audit: rec, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	code := strings.TrimSpace(req.JobCode)
	if code == "" {
		return nil, domain.ValidationFailed("jobCode is required")
	}
	slug := strings.TrimSpace(req.Slug)
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, err
	}
	if err := checkEmploymentType(req.EmploymentType); err != nil {
		return nil, err
	}
	if err := checkSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}
	if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
		return nil, err
	}

	var items []domain.JobPostingItem
	for kind, in := range map[domain.JobItemKind][]ItemInput{
		domain.JobItemRequirement:    req.Requirements,
		domain.JobItemResponsibility: req.Responsibilities,
		domain.JobItemBenefit:        req.Benefits,
	} {
		built, err := buildItems(kind, in)
		if err != nil {
			return nil, err
		}
		items = append(items, built...)
	}

	taken, err := s.repo.CodeTaken(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ConflictError(entityName, "jobCode", code)
	}
	taken, err = s.repo.SlugTaken(ctx, slug, 0)
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
	publishedAt := req.PublishedAt
	if publishedAt == nil {
		now := s.now()
		publishedAt = &now
	}
	actor := domain.ActorID(ctx)

	posting := &domain.JobPosting{
		JobCode:        code,
		Slug:           slug,
		Department:     strings.TrimSpace(req.Department),
		Location:       strings.TrimSpace(req.Location),
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		IsFeatured:     req.IsFeatured,
		IsActive:       isActive,
		PublishedAt:    publishedAt,
		ClosingDate:    req.ClosingDate,
		AuditFields:    domain.AuditFields{CreatedBy: actor, UpdatedBy: actor},
		Translations:   buildTranslations(req.Translations),
		Items:          items,
	}
	if err := s.repo.Create(ctx, posting); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, posting.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(created)
	audit.Mutation(ctx, s.audit, audit.ActionCreate, entityName, pkg.FormatID(created.ID), nil, view)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uint) (*View, error) {
	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := adminView(posting)
	return &view, nil
}

func (s *service) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[View], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.MapPage(page, func(p domain.JobPosting) View { return adminView(&p) }), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRequest) (*View, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := adminView(current)

	if req.EmploymentType != nil {
		if err := checkEmploymentType(*req.EmploymentType); err != nil {
			return nil, err
		}
	}
	salaryMin, salaryMax := current.SalaryMin, current.SalaryMax
	if req.SalaryMin != nil {
		salaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		salaryMax = req.SalaryMax
	}
	if err := checkSalaryRange(salaryMin, salaryMax); err != nil {
		return nil, err
	}

	fields := updateFields(req)
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
	if actor := domain.ActorID(ctx); actor != nil {
		fields["updated_by"] = *actor
	}

	patch := domain.JobPostingPatch{Fields: fields, Items: make(map[domain.JobItemKind][]domain.JobPostingItem)}
	if len(req.Translations) > 0 {
		if err := domain.ValidateLocaleKeys(req.Translations, true); err != nil {
			return nil, err
		}
		patch.Translations = buildTranslations(req.Translations)
	}
	for kind, in := range req.items() {
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
	return domain.MapPage(page, func(p domain.JobPosting) View { return publicView(&p, loc) }), nil
}

func (s *service) GetPublic(ctx context.Context, slug string, loc domain.Locale) (*View, error) {
	posting, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !posting.IsActive {
		return nil, domain.NotFoundError(entityName)
	}
	view := publicView(posting, loc)

	// A failed increment never fails the read.
	if err := s.repo.IncrementViewCount(ctx, posting.ID); err != nil {
		metrics.ViewCountErrorsTotal.Inc()
		slog.WarnContext(ctx, "failed to increment job posting view count",
			"job_posting_id", posting.ID,
			"error", err,
		)
	}
	return &view, nil
}

func checkEmploymentType(t domain.EmploymentType) error {
	if !t.IsValid() {
		return domain.ValidationFailed(fmt.Sprintf("invalid employmentType %q", t))
	}
	return nil
}

func checkSalaryRange(salaryMin, salaryMax *float64) error {
	if salaryMin != nil && salaryMax != nil && *salaryMax < *salaryMin {
		return domain.ValidationFailed("salaryMax must be greater than or equal to salaryMin")
	}
	return nil
}

func updateFields(req UpdateRequest) map[string]any {
	fields := make(map[string]any)
	if req.Department != nil {
		fields["department"] = strings.TrimSpace(*req.Department)
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.EmploymentType != nil {
		fields["employment_type"] = *req.EmploymentType
	}
	if req.SalaryMin != nil {
		fields["salary_min"] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		fields["salary_max"] = *req.SalaryMax
	}
	if req.IsFeatured != nil {
		fields["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.PublishedAt != nil {
		fields["published_at"] = *req.PublishedAt
	}
	if req.ClosingDate != nil {
		fields["closing_date"] = *req.ClosingDate
	}
	return fields
}

func buildTranslations(in map[domain.Locale]TranslationInput) []domain.JobPostingTranslation {
	return pkg.BuildTranslations(in, func(l domain.Locale, t TranslationInput) domain.JobPostingTranslation {
		return domain.JobPostingTranslation{
			Locale: l,
			JobPostingText: domain.JobPostingText{
				Title:       strings.TrimSpace(t.Title),
				Summary:     strings.TrimSpace(t.Summary),
				Description: t.Description,
			},
		}
	})
}

func buildItems(kind domain.JobItemKind, in []ItemInput) ([]domain.JobPostingItem, error) {
	items := make([]domain.JobPostingItem, 0, len(in))
	for i, item := range in {
		if err := domain.ValidateLocaleKeys(item.Translations, true); err != nil {
			return nil, domain.ValidationFailed(fmt.Sprintf("%ss[%d]: %v", kind, i, err))
		}
		items = append(items, domain.JobPostingItem{
			Kind:         kind,
			DisplayOrder: item.DisplayOrder,
			Translations: pkg.BuildTranslations(item.Translations, func(l domain.Locale, t ItemTranslationInput) domain.JobPostingItemTranslation {
				return domain.JobPostingItemTranslation{
					Locale:             l,
					JobPostingItemText: domain.JobPostingItemText{Content: strings.TrimSpace(t.Content)},
				}
			}),
		})
	}
	return items, nil
}

func itemViews(items []domain.JobPostingItem, kind domain.JobItemKind, loc domain.Locale, public bool) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		if item.Kind != kind {
			continue
		}
		v := ItemView{ID: item.ID, DisplayOrder: item.DisplayOrder}
		if public {
			text, _, _ := pkg.LocalizeTranslations[domain.JobPostingItemTranslation, domain.JobPostingItemText](item.Translations, loc)
			v.JobPostingItemText = &text
		} else {
			v.Translations = pkg.MergeTranslations[domain.JobPostingItemTranslation, domain.JobPostingItemText](item.Translations)
		}
		out = append(out, v)
	}
	return out
}

func adminView(p *domain.JobPosting) View {
	return View{
		JobPosting:       p,
		Translations:     pkg.MergeTranslations[domain.JobPostingTranslation, domain.JobPostingText](p.Translations),
		Requirements:     itemViews(p.Items, domain.JobItemRequirement, "", false),
		Responsibilities: itemViews(p.Items, domain.JobItemResponsibility, "", false),
		Benefits:         itemViews(p.Items, domain.JobItemBenefit, "", false),
	}
}

func publicView(p *domain.JobPosting, loc domain.Locale) View {
	text, used, _ := pkg.LocalizeTranslations[domain.JobPostingTranslation, domain.JobPostingText](p.Translations, loc)
	return View{
		JobPosting:       p,
		JobPostingText:   &text,
		Locale:           used,
		Requirements:     itemViews(p.Items, domain.JobItemRequirement, loc, true),
		Responsibilities: itemViews(p.Items, domain.JobItemResponsibility, loc, true),
		Benefits:         itemViews(p.Items, domain.JobItemBenefit, loc, true),
	}
}
