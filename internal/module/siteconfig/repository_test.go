package siteconfig

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the site config tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&domain.SiteConfig{}, &domain.SiteConfigTranslation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func label(l domain.Locale, text string) domain.SiteConfigTranslation {
	return domain.SiteConfigTranslation{Locale: l, SiteConfigText: domain.SiteConfigText{Label: text}}
}

func TestRepository_UpsertOverwritesByKey(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	first := &domain.SiteConfig{ConfigKey: "site.name", ConfigValue: "Acme", ValueType: domain.ConfigString, Category: "general", IsPublic: true}
	if err := repo.Upsert(ctx, first, []domain.SiteConfigTranslation{label(domain.LocaleID, "Nama situs")}); err != nil {
		t.Fatalf("Upsert create: %v", err)
	}

	second := &domain.SiteConfig{ConfigKey: "site.name", ConfigValue: "Acme HR", ValueType: domain.ConfigString, Category: "branding"}
	if err := repo.Upsert(ctx, second, nil); err != nil {
		t.Fatalf("Upsert overwrite: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected overwrite to keep id %d, got %d", first.ID, second.ID)
	}

	got, err := repo.GetByKey(ctx, "site.name")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got.ConfigValue != "Acme HR" || got.Category != "branding" || got.IsPublic {
		t.Errorf("unexpected stored config %+v", got)
	}
	if len(got.Translations) != 1 || got.Translations[0].Label != "Nama situs" {
		t.Errorf("expected translations untouched, got %+v", got.Translations)
	}
}

func TestRepository_ListPublic(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for _, c := range []*domain.SiteConfig{
		{ConfigKey: "social.twitter", ConfigValue: "@acme", Category: "social", IsPublic: true},
		{ConfigKey: "contact.phone", ConfigValue: "021", Category: "contact", IsPublic: true},
		{ConfigKey: "contact.email", ConfigValue: "hi@acme.test", Category: "contact", IsPublic: true},
		{ConfigKey: "smtp.password", ConfigValue: "secret", Category: "contact"},
	} {
		c.ValueType = domain.ConfigString
		if err := repo.Upsert(ctx, c, nil); err != nil {
			t.Fatalf("Upsert %s: %v", c.ConfigKey, err)
		}
	}

	all, err := repo.ListPublic(ctx, "")
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	var keys []string
	for _, c := range all {
		keys = append(keys, c.ConfigKey)
	}
	want := []string{"contact.email", "contact.phone", "social.twitter"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys = %v, want %v", keys, want)
			break
		}
	}

	contact, err := repo.ListPublic(ctx, "contact")
	if err != nil {
		t.Fatalf("ListPublic contact: %v", err)
	}
	if len(contact) != 2 {
		t.Errorf("expected 2 public contact configs, got %d", len(contact))
	}
}

func TestRepository_DeleteIsHard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cfg := &domain.SiteConfig{ConfigKey: "site.name", ConfigValue: "Acme", ValueType: domain.ConfigString, Category: "general"}
	if err := repo.Upsert(ctx, cfg, []domain.SiteConfigTranslation{label(domain.LocaleID, "Nama")}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Delete(ctx, "site.name"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var rows int64
	db.Model(&domain.SiteConfigTranslation{}).Count(&rows)
	if rows != 0 {
		t.Errorf("expected translations removed, got %d", rows)
	}
	if err := repo.Delete(ctx, "site.name"); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
	if err := repo.Upsert(ctx, &domain.SiteConfig{ConfigKey: "site.name", ConfigValue: "New", ValueType: domain.ConfigString, Category: "general"}, nil); err != nil {
		t.Errorf("expected key reuse after hard delete, got %v", err)
	}
}
