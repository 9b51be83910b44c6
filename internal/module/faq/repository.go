package faq

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "faq"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 20

var filterFields = pkg.Filters{
	"isActive": {Column: "is_active", Kind: pkg.FilterBool},
	"category": {Column: "category", Kind: pkg.FilterExact},
}

var sortFields = map[string]string{
	"displayOrder": "display_order",
	"category":     "category",
	"createdAt":    "created_at",
}

var defaultOrder = []pkg.OrderBy{{Column: "display_order"}}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"category"},
	Translations: []pkg.TranslationSearch{{
		Table:        "faq_translations",
		ParentColumn: "faq_id",
		Columns:      []string{"question", "answer"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed FAQ repository.
func NewRepository(db *gorm.DB) domain.FAQRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, faq *domain.FAQ) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return pkg.MapError(tx.Create(faq).Error, entityName)
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*domain.FAQ, error) {
	var faq domain.FAQ
	err := r.db.WithContext(ctx).Preload("Translations").Scopes(pkg.Live).First(&faq, id).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &faq, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.FAQ], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.FAQ{}).Scopes(
			pkg.NotDeleted(req),
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var faqs []domain.FAQ
	err := query().Preload("Translations").
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&faqs).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(faqs, total, req), nil
}

func (r *repository) Update(ctx context.Context, id uint, patch domain.FAQPatch) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var faq domain.FAQ
		if err := tx.Scopes(pkg.Live).First(&faq, id).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		fields := patch.Fields
		if len(fields) == 0 {
			fields = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&faq).Updates(fields).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range patch.Translations {
			patch.Translations[i].FAQID = id
		}
		return pkg.MapError(pkg.ReplaceTranslations(tx, "faq_id", id, patch.Translations), entityName)
	})
}

func (r *repository) SoftDelete(ctx context.Context, id uint, actor *string) error {
	return pkg.MarkDeleted[domain.FAQ](ctx, r.db, entityName, id, actor)
}

// Categories returns the distinct non-empty categories of live, active FAQs.
func (r *repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&domain.FAQ{}).
		Scopes(pkg.Live).
		Where("is_active = ? AND category <> ''", true).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
