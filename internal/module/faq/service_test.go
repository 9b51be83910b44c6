package faq

import (
	"context"
	"testing"

	"github.com/simp-lee/sitecms/internal/domain"
)

func TestService_Lifecycle(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Category: "billing",
		Translations: map[domain.Locale]TranslationInput{
			domain.LocaleID: {Question: "Bagaimana cara membayar?", Answer: "Transfer bank."},
			domain.LocaleEN: {Question: "How do I pay?", Answer: "Bank transfer."},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	en, err := svc.GetPublic(ctx, created.ID, domain.LocaleEN)
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if en.Question != "How do I pay?" {
		t.Errorf("question = %q", en.Question)
	}

	// Omitting translations keeps both locales.
	order := 3
	updated, err := svc.Update(ctx, created.ID, UpdateRequest{DisplayOrder: &order})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DisplayOrder != 3 || len(updated.Translations) != 2 {
		t.Errorf("unexpected update %+v", updated)
	}

	if _, err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetPublic(ctx, created.ID, domain.LocaleEN); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
	if _, err := svc.Delete(ctx, created.ID); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
}

func TestService_Create_RequiresDefaultLocale(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		Translations: map[domain.Locale]TranslationInput{
			domain.LocaleEN: {Question: "How do I pay?", Answer: "Bank transfer."},
		},
	})
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestService_ListPublic_ActiveOnly(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	inactive := false
	for _, active := range []*bool{nil, &inactive} {
		_, err := svc.Create(ctx, CreateRequest{
			IsActive:     active,
			Translations: map[domain.Locale]TranslationInput{domain.LocaleID: {Question: "Q", Answer: "A"}},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// A caller-supplied isActive filter cannot reveal inactive rows.
	req := domain.PageRequest{Page: 1, Limit: 20, IncludeDeleted: true, Filter: map[string]string{"isActive": "false"}}
	page, err := svc.ListPublic(ctx, req, domain.LocaleID)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if page.Total != 1 || !page.Items[0].IsActive {
		t.Errorf("expected only the active faq, got %d", page.Total)
	}
}
