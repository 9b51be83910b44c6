package feature

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "feature"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 50

var filterFields = pkg.Filters{
	"isActive":    {Column: "is_active", Kind: pkg.FilterBool},
	"category":    {Column: "category", Kind: pkg.FilterExact},
	"featureCode": {Column: "feature_code", Kind: pkg.FilterText},
}

var sortFields = map[string]string{
	"displayOrder": "display_order",
	"featureCode":  "feature_code",
	"category":     "category",
	"createdAt":    "created_at",
}

var defaultOrder = []pkg.OrderBy{{Column: "display_order"}}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"feature_code", "category"},
	Translations: []pkg.TranslationSearch{{
		Table:        "feature_translations",
		ParentColumn: "feature_id",
		Columns:      []string{"feature_name", "description"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed feature repository.
func NewRepository(db *gorm.DB) domain.FeatureRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, feature *domain.Feature) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return pkg.MapError(tx.Create(feature).Error, entityName)
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*domain.Feature, error) {
	var feature domain.Feature
	err := r.db.WithContext(ctx).Preload("Translations").Scopes(pkg.Live).First(&feature, id).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &feature, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*domain.Feature, error) {
	var feature domain.Feature
	err := r.db.WithContext(ctx).Preload("Translations").
		Scopes(pkg.Live).
		Where("feature_code = ?", code).
		First(&feature).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &feature, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Feature], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Feature{}).Scopes(
			pkg.NotDeleted(req),
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var features []domain.Feature
	err := query().Preload("Translations").
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&features).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(features, total, req), nil
}

func (r *repository) Update(ctx context.Context, id uint, patch domain.FeaturePatch) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var feature domain.Feature
		if err := tx.Scopes(pkg.Live).First(&feature, id).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		fields := patch.Fields
		if len(fields) == 0 {
			fields = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&feature).Updates(fields).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range patch.Translations {
			patch.Translations[i].FeatureID = id
		}
		return pkg.MapError(pkg.ReplaceTranslations(tx, "feature_id", id, patch.Translations), entityName)
	})
}

func (r *repository) SoftDelete(ctx context.Context, id uint, actor *string) error {
	return pkg.MarkDeleted[domain.Feature](ctx, r.db, entityName, id, actor)
}

func (r *repository) CodeTaken(ctx context.Context, code string) (bool, error) {
	return pkg.LiveValueTaken[domain.Feature](ctx, r.db, "feature_code", code, 0)
}
