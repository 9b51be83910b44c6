package industry

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "industry"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 20

var filterFields = pkg.Filters{
	"isActive": {Column: "is_active", Kind: pkg.FilterBool},
	"slug":     {Column: "slug", Kind: pkg.FilterText},
}

var sortFields = map[string]string{
	"displayOrder": "display_order",
	"slug":         "slug",
	"createdAt":    "created_at",
}

var defaultOrder = []pkg.OrderBy{{Column: "display_order"}}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"slug"},
	Translations: []pkg.TranslationSearch{{
		Table:        "industry_translations",
		ParentColumn: "industry_id",
		Columns:      []string{"name", "description"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed industry repository.
func NewRepository(db *gorm.DB) domain.IndustryRepository {
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

func (r *repository) Create(ctx context.Context, industry *domain.Industry) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return pkg.MapError(tx.Create(industry).Error, entityName)
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*domain.Industry, error) {
	var industry domain.Industry
	if err := hydrate(r.db.WithContext(ctx)).Scopes(pkg.Live).First(&industry, id).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &industry, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*domain.Industry, error) {
	var industry domain.Industry
	err := hydrate(r.db.WithContext(ctx)).
		Scopes(pkg.Live).
		Where("slug = ?", slug).
		First(&industry).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &industry, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Industry], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Industry{}).Scopes(
			pkg.NotDeleted(req),
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var industries []domain.Industry
	err := hydrate(query()).
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&industries).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(industries, total, req), nil
}

func (r *repository) Update(ctx context.Context, id uint, patch domain.IndustryPatch) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var industry domain.Industry
		if err := tx.Scopes(pkg.Live).First(&industry, id).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		fields := patch.Fields
		if len(fields) == 0 {
			fields = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&industry).Updates(fields).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range patch.Translations {
			patch.Translations[i].IndustryID = id
		}
		if err := pkg.ReplaceTranslations(tx, "industry_id", id, patch.Translations); err != nil {
			return pkg.MapError(err, entityName)
		}

		kinds := make([]string, 0, len(patch.Items))
		for kind := range patch.Items {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			items := patch.Items[domain.IndustryItemKind(kind)]
			for i := range items {
				items[i].IndustryID = id
				items[i].Kind = domain.IndustryItemKind(kind)
			}
			err := pkg.ReplaceKindItems[domain.IndustryItem, domain.IndustryItemTranslation](tx, "industry_id", id, kind, items)
			if err != nil {
				return pkg.MapError(err, entityName)
			}
		}
		return nil
	})
}

func (r *repository) SoftDelete(ctx context.Context, id uint, actor *string) error {
	return pkg.MarkDeleted[domain.Industry](ctx, r.db, entityName, id, actor)
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return pkg.LiveValueTaken[domain.Industry](ctx, r.db, "slug", slug, excludeID)
}
