package jobposting

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "job posting"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 10

var filterFields = pkg.Filters{
	"isActive":       {Column: "is_active", Kind: pkg.FilterBool},
	"isFeatured":     {Column: "is_featured", Kind: pkg.FilterBool},
	"employmentType": {Column: "employment_type"},
	"department":     {Column: "department", Kind: pkg.FilterText},
	"location":       {Column: "location", Kind: pkg.FilterText},
	"jobCode":        {Column: "job_code", Kind: pkg.FilterText},
}

var sortFields = map[string]string{
	"publishedAt": "published_at",
	"createdAt":   "created_at",
	"closingDate": "closing_date",
	"viewCount":   "view_count",
	"jobCode":     "job_code",
}

// Newest featured postings first; id DESC keeps pages disjoint.
var defaultOrder = []pkg.OrderBy{
	{Column: "is_featured", Desc: true},
	{Column: "published_at", Desc: true},
	{Column: "created_at", Desc: true},
	{Column: "id", Desc: true},
}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"job_code", "department", "location"},
	Translations: []pkg.TranslationSearch{{
		Table:        "job_posting_translations",
		ParentColumn: "job_posting_id",
		Columns:      []string{"title", "summary", "description"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed job posting repository.
func NewRepository(db *gorm.DB) domain.JobPostingRepository {
	return &repository{db: db}
}

func hydrate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Translations").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Items.Translations")
}

func (r *repository) Create(ctx context.Context, posting *domain.JobPosting) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return pkg.MapError(tx.Create(posting).Error, entityName)
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*domain.JobPosting, error) {
	var posting domain.JobPosting
	if err := hydrate(r.db.WithContext(ctx)).Scopes(pkg.Live).First(&posting, id).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &posting, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*domain.JobPosting, error) {
	var posting domain.JobPosting
	err := hydrate(r.db.WithContext(ctx)).
		Scopes(pkg.Live).
		Where("slug = ?", slug).
		First(&posting).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &posting, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.JobPosting], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.JobPosting{}).Scopes(
			pkg.NotDeleted(req),
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var postings []domain.JobPosting
	err := hydrate(query()).
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&postings).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(postings, total, req), nil
}

func (r *repository) Update(ctx context.Context, id uint, patch domain.JobPostingPatch) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var posting domain.JobPosting
		if err := tx.Scopes(pkg.Live).First(&posting, id).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		fields := patch.Fields
		if len(fields) == 0 {
			fields = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&posting).Updates(fields).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range patch.Translations {
			patch.Translations[i].JobPostingID = id
		}
		if err := pkg.ReplaceTranslations(tx, "job_posting_id", id, patch.Translations); err != nil {
			return pkg.MapError(err, entityName)
		}

		for _, kind := range domain.JobItemKinds {
			items, ok := patch.Items[kind]
			if !ok {
				continue
			}
			for i := range items {
				items[i].JobPostingID = id
				items[i].Kind = kind
			}
			err := pkg.ReplaceKindItems[domain.JobPostingItem, domain.JobPostingItemTranslation](tx, "job_posting_id", id, string(kind), items)
			if err != nil {
				return pkg.MapError(err, entityName)
			}
		}
		return nil
	})
}

func (r *repository) SoftDelete(ctx context.Context, id uint, actor *string) error {
	return pkg.MarkDeleted[domain.JobPosting](ctx, r.db, entityName, id, actor)
}

// IncrementViewCount adds one to the stored view count in a single statement,
// so concurrent readers never lose increments. updated_at is left unchanged.
func (r *repository) IncrementViewCount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&domain.JobPosting{}).
		Where("id = ?", id).
		Scopes(pkg.Live).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return pkg.MapError(result.Error, entityName)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError(entityName)
	}
	return nil
}

func (r *repository) CodeTaken(ctx context.Context, code string) (bool, error) {
	return pkg.LiveValueTaken[domain.JobPosting](ctx, r.db, "job_code", code, 0)
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return pkg.LiveValueTaken[domain.JobPosting](ctx, r.db, "slug", slug, excludeID)
}
