package featurepage

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "feature page"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 20

var filterFields = pkg.Filters{
	"isActive":  {Column: "is_active", Kind: pkg.FilterBool},
	"featureId": {Column: "feature_id", Kind: pkg.FilterInt},
	"slug":      {Column: "slug", Kind: pkg.FilterText},
}

var sortFields = map[string]string{
	"displayOrder": "display_order",
	"slug":         "slug",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

var defaultOrder = []pkg.OrderBy{{Column: "display_order"}}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"slug"},
	Translations: []pkg.TranslationSearch{{
		Table:        "feature_page_translations",
		ParentColumn: "feature_page_id",
		Columns:      []string{"title", "subtitle", "content"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed feature page repository.
func NewRepository(db *gorm.DB) domain.FeaturePageRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, page *domain.FeaturePage) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return pkg.MapError(tx.Create(page).Error, entityName)
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*domain.FeaturePage, error) {
	var page domain.FeaturePage
	err := r.db.WithContext(ctx).Preload("Translations").Scopes(pkg.Live).First(&page, id).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &page, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*domain.FeaturePage, error) {
	var page domain.FeaturePage
	err := r.db.WithContext(ctx).Preload("Translations").
		Scopes(pkg.Live).
		Where("slug = ?", slug).
		First(&page).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &page, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.FeaturePage], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.FeaturePage{}).Scopes(
			pkg.NotDeleted(req),
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var pages []domain.FeaturePage
	err := query().Preload("Translations").
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&pages).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(pages, total, req), nil
}

func (r *repository) Update(ctx context.Context, id uint, patch domain.FeaturePagePatch) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var page domain.FeaturePage
		if err := tx.Scopes(pkg.Live).First(&page, id).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		fields := patch.Fields
		if len(fields) == 0 {
			fields = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&page).Updates(fields).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range patch.Translations {
			patch.Translations[i].FeaturePageID = id
		}
		return pkg.MapError(pkg.ReplaceTranslations(tx, "feature_page_id", id, patch.Translations), entityName)
	})
}

func (r *repository) SoftDelete(ctx context.Context, id uint, actor *string) error {
	return pkg.MarkDeleted[domain.FeaturePage](ctx, r.db, entityName, id, actor)
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return pkg.LiveValueTaken[domain.FeaturePage](ctx, r.db, "slug", slug, excludeID)
}

func (r *repository) FeatureExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Feature{}).
		Where("id = ?", id).
		Scopes(pkg.Live).
		Count(&count).Error
	if err != nil {
		return false, pkg.MapError(err, entityName)
	}
	return count > 0, nil
}
