package repos

import (
	"github.com/jmoiron/sqlx"

	"aquastock/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  ItemID, productName, SKU, Price, Category, stockLevel, restockLevel,
  availabilityStatus, volume, imageURL, expirationDate, createdAt`

// ListAll returns every product row. Filtering is client-side by contract, so
// there is no WHERE; the order is fixed for a stable table.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY ItemID`)
	return out, err
}

func (r *ProductRepo) Get(id int) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE ItemID = ?`, id)
	return p, err
}

// Insert adds a product row and returns its generated ItemID.
func (r *ProductRepo) Insert(p domain.Product) (int, error) {
	res, err := r.db.Exec(`
		INSERT INTO products(productName, SKU, Price, Category, stockLevel, restockLevel,
		                     availabilityStatus, volume, imageURL, expirationDate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ProductName, p.SKU, p.Price, p.Category, p.StockLevel, p.RestockLevel,
		p.AvailabilityStatus, p.Volume, p.ImageURL, p.ExpirationDate)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// DeleteByIDs removes the given rows in one IN(...) statement and reports
// which ids were actually present. Absent ids are no-ops, not errors.
func (r *ProductRepo) DeleteByIDs(ids []int) (deleted, missing []int, err error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := sqlx.In(`SELECT ItemID FROM products WHERE ItemID IN (?)`, ids)
	if err != nil {
		return nil, nil, err
	}
	var existing []int
	if err := tx.Select(&existing, query, args...); err != nil {
		return nil, nil, err
	}

	query, args, err = sqlx.In(`DELETE FROM products WHERE ItemID IN (?)`, ids)
	if err != nil {
		return nil, nil, err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	present := make(map[int]bool, len(existing))
	for _, id := range existing {
		present[id] = true
	}
	for _, id := range ids {
		if present[id] {
			deleted = append(deleted, id)
		} else {
			missing = append(missing, id)
		}
	}
	return deleted, missing, nil
}
