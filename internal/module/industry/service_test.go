package industry

import (
	"context"
	"testing"

	"github.com/simp-lee/sitecms/internal/domain"
)

func retailRequest() CreateRequest {
	return CreateRequest{
		Slug: "retail",
		Translations: map[domain.Locale]TranslationInput{
			domain.LocaleID: {Name: "Ritel"},
			domain.LocaleEN: {Name: "Retail"},
		},
		Problems: []ItemInput{{
			DisplayOrder: 1,
			Translations: map[domain.Locale]ItemTranslationInput{
				domain.LocaleID: {Title: "Stok tidak akurat"},
				domain.LocaleEN: {Title: "Inaccurate stock"},
			},
		}},
		Solutions: []ItemInput{{
			Translations: map[domain.Locale]ItemTranslationInput{
				domain.LocaleID: {Title: "Sinkronisasi stok"},
			},
		}},
	}
}

func TestService_CreateAndLocalize(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, retailRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.Problems) != 1 || len(created.Solutions) != 1 {
		t.Fatalf("expected split children, got %d problems and %d solutions", len(created.Problems), len(created.Solutions))
	}
	if created.Problems[0].Translations[domain.LocaleEN].Title != "Inaccurate stock" {
		t.Errorf("admin item should carry all locales, got %+v", created.Problems[0].Translations)
	}

	en, err := svc.GetPublic(ctx, "retail", domain.LocaleEN)
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if en.Name != "Retail" || en.Problems[0].Title != "Inaccurate stock" {
		t.Errorf("unexpected English view %+v", en)
	}
	// The solution has no English row and falls back to the default locale.
	if en.Solutions[0].Title != "Sinkronisasi stok" {
		t.Errorf("expected item fallback to id, got %q", en.Solutions[0].Title)
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"bad slug", func(r *CreateRequest) { r.Slug = "Retail Shops" }},
		{"item without default locale", func(r *CreateRequest) {
			r.Solutions[0].Translations = map[domain.Locale]ItemTranslationInput{domain.LocaleEN: {Title: "Stock sync"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(NewRepository(setupTestDB(t)), nil)
			req := retailRequest()
			tt.mutate(&req)
			if _, err := svc.Create(context.Background(), req); !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestService_UpdateSlugConflict(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, retailRequest())
	if err != nil {
		t.Fatalf("Create retail: %v", err)
	}
	req := retailRequest()
	req.Slug = "logistics"
	second, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create logistics: %v", err)
	}

	taken := "retail"
	if _, err := svc.Update(ctx, second.ID, UpdateRequest{Slug: &taken}); !domain.IsAlreadyExists(err) {
		t.Errorf("expected conflict, got %v", err)
	}
	if _, err := svc.Update(ctx, first.ID, UpdateRequest{Slug: &taken}); err != nil {
		t.Errorf("keeping own slug should succeed, got %v", err)
	}
}

func TestService_UpdateChildren(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, retailRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	empty := []ItemInput{}
	updated, err := svc.Update(ctx, created.ID, UpdateRequest{Problems: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Problems) != 0 || len(updated.Solutions) != 1 {
		t.Errorf("expected problems cleared and solutions kept, got %d and %d", len(updated.Problems), len(updated.Solutions))
	}
	if len(updated.Translations) != 2 {
		t.Errorf("expected translations untouched, got %d", len(updated.Translations))
	}
}
