package partner

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "partner"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 50

var filterFields = pkg.Filters{
	"isActive":    {Column: "is_active", Kind: pkg.FilterBool},
	"partnerType": {Column: "partner_type"},
	"partnerCode": {Column: "partner_code", Kind: pkg.FilterText},
	"name":        {Column: "name", Kind: pkg.FilterText},
}

var sortFields = map[string]string{
	"displayOrder": "display_order",
	"name":         "name",
	"partnerCode":  "partner_code",
	"createdAt":    "created_at",
}

var defaultOrder = []pkg.OrderBy{{Column: "display_order"}}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"partner_code", "name"},
	Translations: []pkg.TranslationSearch{{
		Table:        "partner_translations",
		ParentColumn: "partner_id",
		Columns:      []string{"description"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed partner repository.
func NewRepository(db *gorm.DB) domain.PartnerRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, partner *domain.Partner) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return pkg.MapError(tx.Create(partner).Error, entityName)
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*domain.Partner, error) {
	var partner domain.Partner
	err := r.db.WithContext(ctx).Preload("Translations").Scopes(pkg.Live).First(&partner, id).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &partner, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*domain.Partner, error) {
	var partner domain.Partner
	err := r.db.WithContext(ctx).Preload("Translations").
		Scopes(pkg.Live).
		Where("partner_code = ?", code).
		First(&partner).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &partner, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Partner], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Partner{}).Scopes(
			pkg.NotDeleted(req),
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var partners []domain.Partner
	err := query().Preload("Translations").
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&partners).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(partners, total, req), nil
}

func (r *repository) Update(ctx context.Context, id uint, patch domain.PartnerPatch) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var partner domain.Partner
		if err := tx.Scopes(pkg.Live).First(&partner, id).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		fields := patch.Fields
		if len(fields) == 0 {
			fields = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&partner).Updates(fields).Error; err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range patch.Translations {
			patch.Translations[i].PartnerID = id
		}
		return pkg.MapError(pkg.ReplaceTranslations(tx, "partner_id", id, patch.Translations), entityName)
	})
}

func (r *repository) SoftDelete(ctx context.Context, id uint, actor *string) error {
	return pkg.MarkDeleted[domain.Partner](ctx, r.db, entityName, id, actor)
}

func (r *repository) CodeTaken(ctx context.Context, code string) (bool, error) {
	return pkg.LiveValueTaken[domain.Partner](ctx, r.db, "partner_code", code, 0)
}
