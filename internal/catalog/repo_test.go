package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/pkg/db/models"
)

func TestRepositoryProductFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	category := models.Category{Name: "Outerwear", Slug: "outerwear-test"}
	if err := repo.CreateCategory(ctx, &category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	product := models.Product{
		Name:       "Field Jacket",
		Price:      decimal.RequireFromString("189.00"),
		Colors:     pq.StringArray{`{"name":"Olive","hex":"#556b2f"}`},
		CategoryID: &category.ID,
		Stock:      8,
		IsVisible:  true,
	}
	if err := repo.CreateProduct(ctx, &product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	fetched, err := repo.FindProduct(ctx, product.ID, false)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if fetched.Category == nil || fetched.Category.Slug != "outerwear-test" {
		t.Fatalf("expected joined category, got %+v", fetched.Category)
	}

	fetched.Name = "Waxed Field Jacket"
	if err := repo.SaveProduct(ctx, fetched); err != nil {
		t.Fatalf("save product: %v", err)
	}

	page, total, _, err := repo.ListProducts(ctx, ListParams{CategorySlug: "outerwear-test"})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if total < 1 || len(page) < 1 {
		t.Fatalf("expected listed product, got total=%d len=%d", total, len(page))
	}

	if err := repo.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
}

func TestRepositoryVisibilityFilter(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	hidden := models.Product{
		Name:      "Archive Sample",
		Price:     decimal.NewFromInt(10),
		IsVisible: false,
	}
	if err := repo.CreateProduct(ctx, &hidden); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if _, err := repo.FindProduct(ctx, hidden.ID, false); err == nil {
		t.Fatal("expected hidden product to be filtered from storefront reads")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}

	if _, err := repo.FindProduct(ctx, hidden.ID, true); err != nil {
		t.Fatalf("admin read should see hidden product: %v", err)
	}
}
