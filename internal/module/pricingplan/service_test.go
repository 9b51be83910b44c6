package pricingplan

import (
	"context"
	"testing"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/domain"
)

type recordingAudit struct {
	entries []audit.Entry
}

func (r *recordingAudit) Record(_ context.Context, e audit.Entry) {
	r.entries = append(r.entries, e)
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func starterRequest() CreateRequest {
	return CreateRequest{
		PlanCode:          "STARTER",
		MinUsers:          1,
		MaxUsers:          intPtr(10),
		PricePerUserMonth: 50000,
		Translations: map[domain.Locale]TranslationInput{
			domain.LocaleID: {PlanName: "Paket Starter"},
			domain.LocaleEN: {PlanName: "Starter Plan"},
		},
	}
}

func newTestService(t *testing.T) (Service, *recordingAudit) {
	t.Helper()
	rec := &recordingAudit{}
	return NewService(NewRepository(setupTestDB(t)), rec), rec
}

func TestService_CreateStarterAndListPublic(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := domain.WithPrincipal(context.Background(), domain.Principal{UserID: "u-1", Role: "admin"})

	created, err := svc.Create(ctx, starterRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Currency != "IDR" || !created.IsActive {
		t.Errorf("expected defaults IDR/active, got %s/%v", created.Currency, created.IsActive)
	}
	if created.CreatedBy == nil || *created.CreatedBy != "u-1" {
		t.Errorf("expected createdBy u-1, got %v", created.CreatedBy)
	}
	if created.Translations[domain.LocaleEN].PlanName != "Starter Plan" {
		t.Errorf("expected admin view to carry all locales, got %+v", created.Translations)
	}

	page, err := svc.ListPublic(context.Background(), domain.PageRequest{Page: 1, Limit: 20}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 public plan, got %d", len(page.Items))
	}
	item := page.Items[0]
	if item.PricingPlanText == nil || item.PlanName != "Starter Plan" {
		t.Errorf("expected English plan name, got %+v", item.PricingPlanText)
	}
	if item.PricePerUserMonth != 50000 {
		t.Errorf("pricePerUserMonth = %v, want 50000", item.PricePerUserMonth)
	}

	if len(rec.entries) != 1 || rec.entries[0].ActionType != audit.ActionCreate || rec.entries[0].EntityType != entityName {
		t.Errorf("expected one create audit entry, got %+v", rec.entries)
	}
}

func TestService_GetPublic_LocaleFallback(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, starterRequest()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetPublic(ctx, "STARTER", domain.Locale("fr"))
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if got.PlanName != "Paket Starter" || got.Locale != domain.LocaleID {
		t.Errorf("expected default locale fallback, got %q (%s)", got.PlanName, got.Locale)
	}
}

func TestService_PublicHidesInactive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := starterRequest()
	req.IsActive = boolPtr(false)
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.GetPublic(ctx, "STARTER", domain.LocaleEN); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound for inactive plan, got %v", err)
	}
	page, err := svc.ListPublic(ctx, domain.PageRequest{Page: 1, Limit: 20}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("expected inactive plan to be hidden, got %d", page.Total)
	}

	admin, err := svc.List(ctx, domain.PageRequest{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if admin.Total != 1 {
		t.Errorf("expected admin list to include inactive plan, got %d", admin.Total)
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"missing default locale", func(r *CreateRequest) {
			r.Translations = map[domain.Locale]TranslationInput{domain.LocaleEN: {PlanName: "Starter Plan"}}
		}},
		{"unknown locale", func(r *CreateRequest) {
			r.Translations[domain.Locale("fr")] = TranslationInput{PlanName: "Forfait"}
		}},
		{"max below min", func(r *CreateRequest) {
			r.MinUsers = 5
			r.MaxUsers = intPtr(2)
		}},
		{"unknown feature", func(r *CreateRequest) {
			r.Features = []FeatureInput{{FeatureID: 404}}
		}},
		{"blank code", func(r *CreateRequest) {
			r.PlanCode = "   "
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rec := newTestService(t)
			req := starterRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(rec.entries) != 0 {
				t.Errorf("expected no audit entry on failure")
			}
		})
	}
}

func TestService_Create_Conflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, starterRequest()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, starterRequest())
	if !domain.IsAlreadyExists(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestService_UpdateTranslations(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, starterRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Omitting translations keeps both locales.
	updated, err := svc.Update(ctx, created.ID, UpdateRequest{DisplayOrder: intPtr(7)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DisplayOrder != 7 || len(updated.Translations) != 2 {
		t.Errorf("expected displayOrder 7 and 2 locales, got %d and %d", updated.DisplayOrder, len(updated.Translations))
	}

	// Supplying translations replaces the whole set.
	updated, err = svc.Update(ctx, created.ID, UpdateRequest{
		Translations: map[domain.Locale]TranslationInput{domain.LocaleID: {PlanName: "Paket Hemat"}},
	})
	if err != nil {
		t.Fatalf("Update translations: %v", err)
	}
	if _, ok := updated.Translations[domain.LocaleEN]; ok {
		t.Error("expected en translation to be gone after replacement")
	}
	if updated.Translations[domain.LocaleID].PlanName != "Paket Hemat" {
		t.Errorf("unexpected id translation %+v", updated.Translations[domain.LocaleID])
	}

	en, err := svc.GetPublic(ctx, "STARTER", domain.LocaleEN)
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if en.PlanName != "Paket Hemat" {
		t.Errorf("expected fallback to id after en removal, got %q", en.PlanName)
	}

	last := rec.entries[len(rec.entries)-1]
	if last.ActionType != audit.ActionUpdate || last.OldValues == nil || last.NewValues == nil {
		t.Errorf("expected update audit entry with both snapshots, got %+v", last)
	}
}

func TestService_Update_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, starterRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, created.ID, UpdateRequest{MaxUsers: intPtr(0), MinUsers: intPtr(3)}); !domain.IsValidation(err) {
		t.Errorf("expected validation error for max below min, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, UpdateRequest{
		Translations: map[domain.Locale]TranslationInput{domain.LocaleEN: {PlanName: "Only English"}},
	}); !domain.IsValidation(err) {
		t.Errorf("expected validation error without default locale, got %v", err)
	}
	if _, err := svc.Update(ctx, 999, UpdateRequest{IsActive: boolPtr(false)}); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, starterRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !result.Deleted || result.ID != created.ID {
		t.Errorf("unexpected delete result %+v", result)
	}
	if _, err := svc.Get(ctx, created.ID); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
	if _, err := svc.Delete(ctx, created.ID); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
	if last := rec.entries[len(rec.entries)-1]; last.ActionType != audit.ActionDelete {
		t.Errorf("expected delete audit entry, got %s", last.ActionType)
	}
}
