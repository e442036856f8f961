package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "aquastock/internal/log"
	"aquastock/internal/repos"
	"aquastock/internal/services"
	"aquastock/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

// Get handles GET /order?orderID=<int>.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	raw := c.Query("orderID")
	if raw == "" {
		h.Order.Debug.Logf("Error: Missing orderID parameter")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing orderID parameter"})
	}
	// Non-numeric input coerces to 0 and falls out as not-found, matching
	// the panel's long-standing behavior.
	orderID, _ := strconv.Atoi(raw)

	detail, err := h.Order.Fetch(orderID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		case errors.Is(err, repos.ErrPrepareOrderQuery):
			applog.Error(c, "order.fetch.prepare", err, map[string]any{"order_id": orderID})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare order query"})
		default:
			applog.Error(c, "order.fetch", err, map[string]any{"order_id": orderID})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch order details"})
		}
	}
	return c.JSON(detail)
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	orders, err := h.Order.List(limit)
	if err != nil {
		applog.Error(c, "orders.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(orders)
}

// Items handles GET /api/v1/orders/:id/items.
func (h *OrderHandler) Items(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}
	items, err := h.Order.Items(id)
	if err != nil {
		applog.Error(c, "orders.items", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch order items"})
	}
	return c.JSON(items)
}

// Update handles POST /order/update (form-encoded). Any other method gets
// the panel's "Invalid request method." response.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request method.",
		})
	}

	orderID, _ := strconv.Atoi(c.FormValue("order_id"))
	totalAmount, _ := strconv.ParseFloat(c.FormValue("total_amount"), 64)

	req := services.UpdateRequest{
		OrderID:         orderID,
		CustomerName:    c.FormValue("customer_name"),
		CustomerEmail:   c.FormValue("customer_email"),
		TotalAmount:     totalAmount,
		Status:          c.FormValue("status"),
		ShipmentDate:    optionalForm(c, "shipment_date"),
		PromoCode:       optionalForm(c, "promo_code"),
		DeliveryAddress: c.FormValue("delivery_address"),
		City:            c.FormValue("city"),
		ItemsJSON:       c.FormValue("order_items"),
	}

	res, err := h.Order.Update(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) || errors.Is(err, services.ErrBadItemsJSON) {
			return c.Status(fiber.StatusBadRequest).JSON(res)
		}
		applog.Error(c, "order.update", err, map[string]any{"order_id": orderID})
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}

	applog.Audit(c, "order.update", map[string]any{"order_id": orderID, "user_rows": res.UserRows})
	return c.JSON(res)
}

// optionalForm distinguishes an absent field (nil) from a submitted empty
// value, so optional columns can stay NULL.
func optionalForm(c *fiber.Ctx, key string) *string {
	if !c.Request().PostArgs().Has(key) {
		return nil
	}
	v := c.FormValue(key)
	return &v
}
