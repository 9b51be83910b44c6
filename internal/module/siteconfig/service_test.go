package siteconfig

import (
	"context"
	"testing"

	"github.com/simp-lee/sitecms/internal/domain"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func TestService_SetTypedValues(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		req  SetRequest
		want any
	}{
		{"boolean literal", "feature.chat", SetRequest{Value: "true", ValueType: "boolean"}, true},
		{"boolean other text", "feature.blog", SetRequest{Value: "yes", ValueType: "boolean"}, false},
		{"number", "pricing.discount", SetRequest{Value: "12.5", ValueType: "number"}, 12.5},
		{"number fallback", "pricing.tax", SetRequest{Value: "abc", ValueType: "number"}, float64(0)},
		{"invalid json kept raw", "home.hero", SetRequest{Value: "not-json", ValueType: "json"}, "not-json"},
		{"inferred boolean", "feature.maintenance", SetRequest{Value: false}, false},
		{"inferred number", "stats.customers", SetRequest{Value: float64(1200)}, float64(1200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.Set(ctx, tt.key, tt.req)
			if err != nil {
				t.Fatalf("Set: %v", err)
			}
			if view.Value != tt.want {
				t.Errorf("value = %#v, want %#v", view.Value, tt.want)
			}
		})
	}

	got, err := svc.Set(ctx, "home.sections", SetRequest{Value: map[string]any{"hero": true}})
	if err != nil {
		t.Fatalf("Set json: %v", err)
	}
	if got.ValueType != domain.ConfigJSON || got.RawValue != `{"hero":true}` {
		t.Errorf("unexpected json config type=%s raw=%s", got.ValueType, got.RawValue)
	}
	if m, ok := got.Value.(map[string]any); !ok || m["hero"] != true {
		t.Errorf("expected decoded object, got %#v", got.Value)
	}
}

func TestService_SetKeepsStoredAttributes(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	_, err := svc.Set(ctx, "contact.email", SetRequest{
		Value:    "hi@acme.test",
		Category: strPtr("contact"),
		IsPublic: boolPtr(true),
		Translations: map[domain.Locale]TranslationInput{
			domain.LocaleID: {Label: "Surel"},
			domain.LocaleEN: {Label: "Email"},
		},
	})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	updated, err := svc.Set(ctx, "contact.email", SetRequest{Value: "sales@acme.test"})
	if err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if updated.Category != "contact" || !updated.IsPublic || len(updated.Translations) != 2 {
		t.Errorf("expected stored attributes kept, got %+v", updated)
	}

	public, err := svc.ListPublic(ctx, "contact", domain.LocaleEN)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(public) != 1 || public[0].Value != "sales@acme.test" || public[0].Label != "Email" {
		t.Errorf("unexpected public configs %+v", public)
	}
}

func TestService_Set_Validation(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		req  SetRequest
	}{
		{"missing value", "site.name", SetRequest{}},
		{"unknown value type", "site.name", SetRequest{Value: "x", ValueType: "date"}},
		{"bad key", "site name", SetRequest{Value: "x"}},
		{"unknown locale", "site.name", SetRequest{Value: "x", Translations: map[domain.Locale]TranslationInput{"fr": {Label: "Nom"}}}},
	}
	for _, tt := range tests {
		if _, err := svc.Set(ctx, tt.key, tt.req); !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tt.name, err)
		}
	}
}

func TestService_BulkSetPartialFailure(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	result := svc.BulkSet(ctx, []BulkItem{
		{ConfigKey: "site.name", SetRequest: SetRequest{Value: "Acme"}},
		{ConfigKey: "site.launch", SetRequest: SetRequest{Value: "soon", ValueType: "date"}},
		{ConfigKey: "site.visible", SetRequest: SetRequest{Value: true}},
	})

	if len(result.Updated) != 2 || len(result.Failed) != 1 {
		t.Fatalf("expected 2 updated and 1 failed, got %+v", result)
	}
	if result.Failed[0].ConfigKey != "site.launch" || result.Failed[0].Error == "" {
		t.Errorf("unexpected failure %+v", result.Failed[0])
	}
	if _, err := svc.Get(ctx, "site.visible"); err != nil {
		t.Errorf("entry after the failure should be stored, got %v", err)
	}
	if _, err := svc.Get(ctx, "site.launch"); !domain.IsNotFound(err) {
		t.Errorf("failed entry must not be stored, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	if _, err := svc.Set(ctx, "site.name", SetRequest{Value: "Acme"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	result, err := svc.Delete(ctx, "site.name")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !result.Deleted || result.ConfigKey != "site.name" {
		t.Errorf("unexpected delete result %+v", result)
	}
	if _, err := svc.Delete(ctx, "site.name"); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestService_KeyNormalizedOnEveryPath(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	if _, err := svc.Set(ctx, " site.name ", SetRequest{Value: "Acme"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := svc.Get(ctx, "site.name  ")
	if err != nil {
		t.Fatalf("Get with padded key: %v", err)
	}
	if got.ConfigKey != "site.name" {
		t.Errorf("ConfigKey = %q, want site.name", got.ConfigKey)
	}
	if _, err := svc.Get(ctx, "bad key!"); !domain.IsValidation(err) {
		t.Errorf("Get malformed key: expected validation error, got %v", err)
	}
	if _, err := svc.Delete(ctx, "bad key!"); !domain.IsValidation(err) {
		t.Errorf("Delete malformed key: expected validation error, got %v", err)
	}

	result, err := svc.Delete(ctx, "\tsite.name")
	if err != nil {
		t.Fatalf("Delete with padded key: %v", err)
	}
	if result.ConfigKey != "site.name" {
		t.Errorf("deleted key = %q, want site.name", result.ConfigKey)
	}
}
