package services

import (
	"fmt"
	"strings"

	"aquastock/internal/domain"
	applog "aquastock/internal/log"
	"aquastock/internal/repos"
)

type ProductService struct {
	Products *repos.ProductRepo
	Debug    *applog.FileLog
}

func NewProductService(products *repos.ProductRepo, debug *applog.FileLog) *ProductService {
	return &ProductService{Products: products, Debug: debug}
}

// List returns every product with its availability derived at read time:
// zero stock always reads "Out of Stock" regardless of the persisted label.
func (s *ProductService) List() ([]domain.Product, error) {
	out, err := s.Products.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AvailabilityStatus = out[i].EffectiveAvailability()
	}
	return out, nil
}

func (s *ProductService) Get(id int) (domain.Product, error) {
	p, err := s.Products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.AvailabilityStatus = p.EffectiveAvailability()
	return p, nil
}

// Availability maps a product's stock to the panel's availability labels,
// the same derivation the table rows use.
func (s *ProductService) Availability(id int) (domain.Availability, error) {
	p, err := s.Products.Get(id)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.Availability{
		Status:     p.EffectiveAvailability(),
		StockLevel: p.StockLevel,
		LowStock:   p.LowStock(),
	}, nil
}

// Create inserts a new product (the panel's Add Product form) and returns it
// with its generated id and derived availability.
func (s *ProductService) Create(p domain.Product) (domain.Product, error) {
	id, err := s.Products.Insert(p)
	if err != nil {
		s.Debug.Logf("Error adding product %s: %v", p.SKU, err)
		return domain.Product{}, err
	}
	s.Debug.Logf("Added product %s (SKU %s) with Item ID %d", p.ProductName, p.SKU, id)
	return s.Get(id)
}

// DeleteReport splits a bulk delete into the ids actually removed and the
// ids that matched nothing.
type DeleteReport struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted []int  `json:"deleted"`
	Missing []int  `json:"missing"`
}

// BulkDelete removes the given product ids in one statement. Ids with no
// matching row are silent no-ops at the SQL level; the report surfaces them.
func (s *ProductService) BulkDelete(ids []int) (DeleteReport, error) {
	s.Debug.Logf("Delete request received for Item IDs: %s", joinIDs(ids))

	deleted, missing, err := s.Products.DeleteByIDs(ids)
	if err != nil {
		s.Debug.Logf("Error deleting products: %v", err)
		return DeleteReport{Success: false, Message: "Error deleting products."}, err
	}

	s.Debug.Logf("Successfully deleted Item IDs: %s", joinIDs(deleted))
	return DeleteReport{
		Success: true,
		Message: "Selected products have been deleted.",
		Deleted: deleted,
		Missing: missing,
	}, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
