package partner

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the partner tables.
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

	if err := db.AutoMigrate(&domain.Partner{}, &domain.PartnerTranslation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newPartner(code, name string, typ domain.PartnerType, order int) *domain.Partner {
	return &domain.Partner{
		PartnerCode:  code,
		Name:         name,
		PartnerType:  typ,
		DisplayOrder: order,
		IsActive:     true,
		Translations: []domain.PartnerTranslation{
			{Locale: domain.LocaleID, PartnerText: domain.PartnerText{Description: "Mitra " + name}},
		},
	}
}

func TestRepository_ListFilters(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for _, p := range []*domain.Partner{
		newPartner("ACME", "Acme Corp", domain.PartnerClient, 2),
		newPartner("GLOBEX", "Globex", domain.PartnerClient, 1),
		newPartner("AWS", "Amazon Web Services", domain.PartnerTechnology, 3),
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", p.PartnerCode, err)
		}
	}

	tests := []struct {
		name    string
		filters map[string]string
		search  string
		want    []string
	}{
		{"by type keeps display order", map[string]string{"partnerType": "client"}, "", []string{"GLOBEX", "ACME"}},
		{"name substring", map[string]string{"name": "WEB"}, "", []string{"AWS"}},
		{"search description", nil, "mitra globex", []string{"GLOBEX"}},
		{"unknown filter ignored", map[string]string{"color": "red"}, "", []string{"GLOBEX", "ACME", "AWS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(ctx, domain.PageRequest{Page: 1, Limit: DefaultLimit, Filter: tt.filters, Search: tt.search})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			var got []string
			for _, p := range res.Items {
				got = append(got, p.PartnerCode)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRepository_GetByCodeExcludesDeleted(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	p := newPartner("ACME", "Acme Corp", domain.PartnerClient, 0)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.GetByCode(ctx, "ACME"); err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if err := repo.SoftDelete(ctx, p.ID, nil); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := repo.GetByCode(ctx, "ACME"); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}

	res, err := repo.List(ctx, domain.PageRequest{Page: 1, Limit: DefaultLimit, IncludeDeleted: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 || res.Items[0].DeletedAt == nil {
		t.Errorf("expected deleted partner with includeDeleted, got %+v", res.Items)
	}
}
