package handlers

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"aquastock/internal/domain"
	applog "aquastock/internal/log"
	"aquastock/internal/services"
	"aquastock/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

// Page handles GET /products: the admin table page with the full listing.
func (h *ProductHandler) Page(c *fiber.Ctx) error {
	products, err := h.Products.List()
	if err != nil {
		applog.Error(c, "products.page", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("Error in query execution")
	}
	return c.Render("products", fiber.Map{"Products": products})
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.List()
	if err != nil {
		applog.Error(c, "products.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}
	return c.JSON(products)
}

// Detail handles GET /api/v1/products/:id (backs the view/edit modals).
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product id"})
	}
	p, err := h.Products.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		applog.Error(c, "products.get", err, map[string]any{"item_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch product"})
	}
	return c.JSON(p)
}

// Delete handles POST /products with deleteItems[] form values: one batch
// statement, reported as deleted vs missing ids.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	ids := formIDs(c, "deleteItems[]", "deleteItems")
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No items selected."})
	}

	rep, err := h.Products.BulkDelete(ids)
	if err != nil {
		applog.Error(c, "products.delete", err, map[string]any{"ids": ids})
		return c.Status(fiber.StatusInternalServerError).JSON(rep)
	}
	applog.Audit(c, "products.delete", map[string]any{"deleted": rep.Deleted, "missing": rep.Missing})
	return c.JSON(rep)
}

// Create handles POST /api/v1/products (the Add Product form). Category and
// availability are closed sets; unrecognized values are rejected, not stored.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	name := c.FormValue("productName")
	sku := c.FormValue("SKU")
	if name == "" || sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing productName or SKU"})
	}
	category, ok := validate.Category(c.FormValue("Category"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category"})
	}
	avail, ok := validate.AvailabilityStatus(c.FormValue("availabilityStatus"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid availability status"})
	}
	price, _ := strconv.ParseFloat(c.FormValue("Price"), 64)
	stock, _ := strconv.Atoi(c.FormValue("stockLevel"))
	restock, _ := strconv.Atoi(c.FormValue("restockLevel"))
	if price < 0 || stock < 0 || restock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Negative values are not allowed"})
	}

	p, err := h.Products.Create(domain.Product{
		ProductName:        name,
		SKU:                sku,
		Price:              price,
		Category:           category,
		StockLevel:         stock,
		RestockLevel:       restock,
		AvailabilityStatus: avail,
		Volume:             c.FormValue("volume"),
		ImageURL:           c.FormValue("imageURL"),
		ExpirationDate:     optionalForm(c, "expirationDate"),
	})
	if err != nil {
		applog.Error(c, "products.create", err, map[string]any{"sku": sku})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add product"})
	}
	applog.Audit(c, "products.create", map[string]any{"item_id": p.ItemID, "sku": p.SKU})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Availability handles GET /api/v1/availability?itemId=<int>.
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	raw := c.Query("itemId")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing itemId"})
	}
	id, ok := validate.ID(raw)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid itemId"})
	}
	avail, err := h.Products.Availability(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		applog.Error(c, "products.availability", err, map[string]any{"item_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check availability"})
	}
	return c.JSON(avail)
}

// formIDs collects integer form values posted under any of the given keys.
// Values are coerced the way the panel always did: non-numeric becomes 0,
// which matches no row.
func formIDs(c *fiber.Ctx, keys ...string) []int {
	var out []int
	args := c.Request().PostArgs()
	for _, key := range keys {
		for _, v := range args.PeekMulti(key) {
			n, _ := strconv.Atoi(string(v))
			out = append(out, n)
		}
	}
	return out
}
