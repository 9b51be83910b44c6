package pkg

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
)

func setupTxDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&domain.FAQ{}, &domain.FAQTranslation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// createFAQ inserts a FAQ and one translation through tx.
func createFAQ(tx *gorm.DB, question string) error {
	faq := &domain.FAQ{Category: "general", IsActive: true}
	if err := tx.Omit("Translations").Create(faq).Error; err != nil {
		return err
	}
	return tx.Create(&domain.FAQTranslation{
		FAQID:   faq.ID,
		Locale:  domain.LocaleID,
		FAQText: domain.FAQText{Question: question, Answer: "A"},
	}).Error
}

func countFAQRows(t *testing.T, db *gorm.DB) (faqs, translations int64) {
	t.Helper()
	db.Model(&domain.FAQ{}).Count(&faqs)
	db.Model(&domain.FAQTranslation{}).Count(&translations)
	return faqs, translations
}

func TestWithTx_CommitOnSuccess(t *testing.T) {
	db := setupTxDB(t)
	err := WithTx(context.Background(), db, func(tx *gorm.DB) error {
		return createFAQ(tx, "Q1")
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if faqs, translations := countFAQRows(t, db); faqs != 1 || translations != 1 {
		t.Errorf("rows = %d/%d, want 1/1", faqs, translations)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := setupTxDB(t)
	sentinel := errors.New("translation rejected")

	err := WithTx(context.Background(), db, func(tx *gorm.DB) error {
		if err := createFAQ(tx, "Q1"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("WithTx error = %v, want %v", err, sentinel)
	}
	if faqs, translations := countFAQRows(t, db); faqs != 0 || translations != 0 {
		t.Errorf("rows = %d/%d, want parent and translations rolled back", faqs, translations)
	}
}

func TestWithTx_RollbackAndRepanic(t *testing.T) {
	db := setupTxDB(t)

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Fatalf("recovered %v, want boom", r)
			}
		}()
		_ = WithTx(context.Background(), db, func(tx *gorm.DB) error {
			if err := createFAQ(tx, "Q1"); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if faqs, _ := countFAQRows(t, db); faqs != 0 {
		t.Errorf("faqs = %d, want 0 after panic", faqs)
	}
}

func TestWithTx_NestedRollsBackInnerOnly(t *testing.T) {
	db := setupTxDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *gorm.DB) error {
		if err := createFAQ(tx, "outer"); err != nil {
			return err
		}
		_ = WithTx(ctx, tx, func(inner *gorm.DB) error {
			if err := createFAQ(inner, "inner"); err != nil {
				return err
			}
			return errors.New("inner failed")
		})
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if faqs, translations := countFAQRows(t, db); faqs != 1 || translations != 1 {
		t.Errorf("rows = %d/%d, want only the outer faq", faqs, translations)
	}
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupTxDB(t)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	called := false
	err := WithTx(context.Background(), db, func(*gorm.DB) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected begin error on a closed database")
	}
	if called {
		t.Error("fn must not run when the transaction cannot begin")
	}
}

func TestWithTx_CanceledContext(t *testing.T) {
	db := setupTxDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithTx(ctx, db, func(tx *gorm.DB) error {
		return createFAQ(tx, "Q1")
	})
	if err == nil {
		t.Fatal("expected error for a canceled context")
	}
	if faqs, _ := countFAQRows(t, db); faqs != 0 {
		t.Errorf("faqs = %d, want 0", faqs)
	}
}
