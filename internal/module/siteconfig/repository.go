package siteconfig

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const entityName = "site config"

// DefaultLimit is the page size used when a list request sets none.
const DefaultLimit = 50

var filterFields = pkg.Filters{
	"category":  {Column: "category"},
	"isPublic":  {Column: "is_public", Kind: pkg.FilterBool},
	"valueType": {Column: "value_type"},
	"configKey": {Column: "config_key", Kind: pkg.FilterText},
}

var sortFields = map[string]string{
	"configKey": "config_key",
	"category":  "category",
	"updatedAt": "updated_at",
}

var defaultOrder = []pkg.OrderBy{{Column: "category"}, {Column: "config_key"}}

var searchSpec = pkg.SearchSpec{
	Columns: []string{"config_key", "config_value"},
	Translations: []pkg.TranslationSearch{{
		Table:        "site_config_translations",
		ParentColumn: "site_config_id",
		Columns:      []string{"label", "description"},
	}},
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed site config repository.
func NewRepository(db *gorm.DB) domain.SiteConfigRepository {
	return &repository{db: db}
}

func (r *repository) GetByKey(ctx context.Context, key string) (*domain.SiteConfig, error) {
	var cfg domain.SiteConfig
	err := r.db.WithContext(ctx).Preload("Translations").
		Where("config_key = ?", key).
		First(&cfg).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return &cfg, nil
}

func (r *repository) ListPublic(ctx context.Context, category string) ([]domain.SiteConfig, error) {
	q := r.db.WithContext(ctx).Preload("Translations").Where("is_public = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var configs []domain.SiteConfig
	if err := q.Order("category ASC, config_key ASC").Find(&configs).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return configs, nil
}

func (r *repository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.SiteConfig], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.SiteConfig{}).Scopes(
			pkg.Filter(req, filterFields),
			pkg.Search(req, searchSpec),
		)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapError(err, entityName)
	}

	var configs []domain.SiteConfig
	err := query().Preload("Translations").
		Scopes(pkg.Sort(req, sortFields, defaultOrder...), pkg.Paginate(req)).
		Find(&configs).Error
	if err != nil {
		return nil, pkg.MapError(err, entityName)
	}
	return pkg.NewPageResult(configs, total, req), nil
}

func (r *repository) Upsert(ctx context.Context, cfg *domain.SiteConfig, translations []domain.SiteConfigTranslation) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var existing domain.SiteConfig
		err := tx.Where("config_key = ?", cfg.ConfigKey).First(&existing).Error
		switch {
		case err == nil:
			cfg.ID = existing.ID
			cfg.CreatedAt = existing.CreatedAt
			err = tx.Model(&existing).Updates(map[string]any{
				"config_value": cfg.ConfigValue,
				"value_type":   cfg.ValueType,
				"category":     cfg.Category,
				"is_public":    cfg.IsPublic,
				"updated_by":   cfg.UpdatedBy,
				"updated_at":   tx.NowFunc(),
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			err = tx.Omit("Translations").Create(cfg).Error
		}
		if err != nil {
			return pkg.MapError(err, entityName)
		}

		for i := range translations {
			translations[i].SiteConfigID = cfg.ID
		}
		return pkg.MapError(pkg.ReplaceTranslations(tx, "site_config_id", cfg.ID, translations), entityName)
	})
}

func (r *repository) Delete(ctx context.Context, key string) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var cfg domain.SiteConfig
		if err := tx.Where("config_key = ?", key).First(&cfg).Error; err != nil {
			return pkg.MapError(err, entityName)
		}
		if err := tx.Where("site_config_id = ?", cfg.ID).Delete(&domain.SiteConfigTranslation{}).Error; err != nil {
			return pkg.MapError(err, entityName)
		}
		return pkg.MapError(tx.Delete(&cfg).Error, entityName)
	})
}
