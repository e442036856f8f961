package services_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"aquastock/internal/domain"
	applog "aquastock/internal/log"
	"aquastock/internal/repos"
	"aquastock/internal/services"
)

func newProductSvc(t *testing.T) (*services.ProductService, *sqlx.DB) {
	t.Helper()
	db := memdb(t)
	return services.NewProductService(repos.NewProductRepo(db), applog.NewFileLog(discard{})), db
}

func findBySKU(t *testing.T, products []domain.Product, sku string) domain.Product {
	t.Helper()
	for _, p := range products {
		if p.SKU == sku {
			return p
		}
	}
	t.Fatalf("no product with SKU %s", sku)
	return domain.Product{}
}

func TestListDerivesAvailability(t *testing.T) {
	svc, _ := newProductSvc(t)

	products, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(products) == 0 {
		t.Fatal("seed should provide products")
	}

	// Zero stock overrides the persisted "Available" label.
	sparkling := findBySKU(t, products, "WTR-SPK-1L")
	if sparkling.StockLevel != 0 || sparkling.AvailabilityStatus != domain.AvailOutOfStock {
		t.Fatalf("zero stock must read Out of Stock: %+v", sparkling)
	}

	// Positive stock keeps whatever status is persisted.
	berry := findBySKU(t, products, "CST-BRY")
	if berry.AvailabilityStatus != domain.AvailPreOrder {
		t.Fatalf("persisted Pre-Order must survive: %+v", berry)
	}

	// Below restock level flags low stock.
	juice := findBySKU(t, products, "JCE-ORG")
	if !juice.LowStock() {
		t.Fatalf("stock %d below restock %d must flag low stock", juice.StockLevel, juice.RestockLevel)
	}
}

func TestAvailabilityCheck(t *testing.T) {
	svc, _ := newProductSvc(t)

	products, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	sparkling := findBySKU(t, products, "WTR-SPK-1L")

	a, err := svc.Availability(sparkling.ItemID)
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != domain.AvailOutOfStock || a.StockLevel != 0 || !a.LowStock {
		t.Fatalf("bad availability: %+v", a)
	}

	if _, err := svc.Availability(9999); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want sql.ErrNoRows for unknown product, got %v", err)
	}
}

func TestBulkDeleteReportsDeletedAndMissing(t *testing.T) {
	svc, db := newProductSvc(t)

	// Seed ids run 1..6; add id 9 so the batch [3,7,9] has one absent id.
	db.MustExec(`INSERT INTO products(ItemID,productName,SKU,Price,Category,stockLevel,restockLevel,availabilityStatus)
	  VALUES (9,'Lemon Juice 1L','JCE-LMN',19.99,'Juices',10,5,'Available')`)

	var before int
	if err := db.Get(&before, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}

	rep, err := svc.BulkDelete([]int{3, 7, 9})
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Success || rep.Message != "Selected products have been deleted." {
		t.Fatalf("bad report: %+v", rep)
	}
	if len(rep.Deleted) != 2 || rep.Deleted[0] != 3 || rep.Deleted[1] != 9 {
		t.Fatalf("want deleted [3 9], got %v", rep.Deleted)
	}
	if len(rep.Missing) != 1 || rep.Missing[0] != 7 {
		t.Fatalf("want missing [7], got %v", rep.Missing)
	}

	var after int
	if err := db.Get(&after, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if after != before-2 {
		t.Fatalf("want exactly two rows removed, got %d -> %d", before, after)
	}
	var left int
	if err := db.Get(&left, `SELECT COUNT(*) FROM products WHERE ItemID IN (3, 9)`); err != nil {
		t.Fatal(err)
	}
	if left != 0 {
		t.Fatalf("ids 3 and 9 must be gone, %d remain", left)
	}
}
