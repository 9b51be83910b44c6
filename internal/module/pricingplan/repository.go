package pricingplan

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "pricing plan"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 20

var filterFields = pkg.Filters{
	"isActive":  {Column: "is_active", Kind: pkg.FilterBool},
	"isPopular": {Column: "is_popular", Kind: pkg.FilterBool},
	"currency":  {Column: "currency", Kind: pkg.FilterExact},
	"planCode":  {Column: "plan_code", Kind: pkg.FilterText},
}

var sortFields = map[string]string{
	"displayOrder":      "display_order",
	"planCode":          "plan_code",
	"pricePerUserMonth": "price_per_user_month",
	"createdAt":         "created_at",
}

var defaultOrder = []pkg.OrderBy{{Column: "display_order"}}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"plan_code"},
	Translations: []pkg.TranslationSearch{{
		Table:        "pricing_plan_translations",
		ParentColumn: "pricing_plan_id",
		Columns:      []string{"plan_name", "description"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed pricing plan repository.
func NewRepository(db *gorm.DB) domain.PricingPlanRepository {
	return &repository{db: db}
}

func hydrate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Translations").
		Preload("Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Features.Feature", pkg.Live).
		Preload("Features.Feature.Translations")
}

func (r *repository) Create(ctx context.Context, plan *domain.PricingPlan) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return pkg.MapError(tx.Create(plan).Error, entityName)
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*domain.PricingPlan, error) {
	var plan domain.PricingPlan
	if err := hydrate(r.db.WithContext(ctx)).Scopes(pkg.Live).First(&plan, id).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &plan, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*domain.PricingPlan, error) {
	var plan domain.PricingPlan
	err := hydrate(r.db.WithContext(ctx)).
		Scopes(pkg.Live).
		Where("plan_code = ?", code).
		First(&plan).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &plan, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.PricingPlan], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.PricingPlan{}).Scopes(
			pkg.NotDeleted(req),
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var plans []domain.PricingPlan
	err := hydrate(query()).
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&plans).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(plans, total, req), nil
}

func (r *repository) Update(ctx context.Context, id uint, patch domain.PricingPlanPatch) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var plan domain.PricingPlan
		if err := tx.Scopes(pkg.Live).First(&plan, id).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		fields := patch.Fields
		if len(fields) == 0 {
			fields = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&plan).Updates(fields).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range patch.Translations {
			patch.Translations[i].PricingPlanID = id
		}
		if err := pkg.ReplaceTranslations(tx, "pricing_plan_id", id, patch.Translations); err != nil {
			return pkg.MapError(err, entityName)
		}

		if patch.Features != nil {
			if err := tx.Where("pricing_plan_id = ?", id).Delete(&domain.PlanFeature{}).Error; err != nil {
				return pkg.MapError(err, entityName)
			}
			features := *patch.Features
			for i := range features {
				features[i].PricingPlanID = id
			}
			if len(features) > 0 {
				if err := tx.Create(&features).Error; err != nil {
					return pkg.MapError(err, entityName)
				}
			}
		}
		return nil
	})
}

func (r *repository) SoftDelete(ctx context.Context, id uint, actor *string) error {
	return pkg.MarkDeleted[domain.PricingPlan](ctx, r.db, entityName, id, actor)
}

func (r *repository) CodeTaken(ctx context.Context, code string) (bool, error) {
	return pkg.LiveValueTaken[domain.PricingPlan](ctx, r.db, "plan_code", code, 0)
}

func (r *repository) MissingFeatures(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	err := r.db.WithContext(ctx).Model(&domain.Feature{}).
		Scopes(pkg.Live).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	live := make(map[uint]bool, len(found))
	for _, id := range found {
		live[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !live[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
