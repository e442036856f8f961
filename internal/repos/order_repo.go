package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"aquastock/internal/domain"
)

// Sentinel wrap targets so the service layer can keep the panel's
// prepare-vs-execute failure taxonomy.
var (
	ErrPrepareOrderQuery  = errors.New("prepare order query")
	ErrPrepareOrderUpdate = errors.New("prepare orders update")
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// joined row of orders x users x order_items
type orderItemJoin struct {
	ID              int     `db:"id"`
	OrderNumber     string  `db:"order_number"`
	TotalAmount     float64 `db:"total_amount"`
	Status          string  `db:"status"`
	ShipmentDate    *string `db:"shipment_date"`
	DeliveryAddress string  `db:"delivery_address"`
	FirstName       string  `db:"customer_first_name"`
	LastName        string  `db:"customer_last_name"`
	Email           string  `db:"customer_email"`
	SKU             string  `db:"sku"`
	ProductName     string  `db:"product_name"`
	Quantity        int     `db:"quantity"`
	Price           float64 `db:"price"`
	TotalPrice      float64 `db:"total_price"`
}

// GetDetail returns the composed order for one id. The inner join means an
// order whose header exists but has zero items yields zero rows, so it is
// reported as sql.ErrNoRows; callers surface that as "Order not found".
func (r *OrderRepo) GetDetail(orderID int) (domain.OrderDetail, error) {
	stmt, err := r.db.Preparex(`
		SELECT o.id, o.order_number, o.total_amount, o.status, o.shipment_date, o.delivery_address,
		       u.first_name AS customer_first_name, u.last_name AS customer_last_name, u.email AS customer_email,
		       oi.sku, oi.product_name, oi.quantity, oi.price, oi.total_price
		FROM orders o
		JOIN users u ON o.user_id = u.id
		JOIN order_items oi ON o.id = oi.order_id
		WHERE o.id = ?
		ORDER BY oi.id
	`)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("%w: %v", ErrPrepareOrderQuery, err)
	}
	defer stmt.Close()

	var rows []orderItemJoin
	if err := stmt.Select(&rows, orderID); err != nil {
		return domain.OrderDetail{}, err
	}
	if len(rows) == 0 {
		return domain.OrderDetail{}, sql.ErrNoRows
	}

	head := rows[0]
	out := domain.OrderDetail{
		ID:              head.ID,
		OrderNumber:     head.OrderNumber,
		TotalAmount:     head.TotalAmount,
		Status:          head.Status,
		ShipmentDate:    head.ShipmentDate,
		DeliveryAddress: head.DeliveryAddress,
		CustomerName:    head.FirstName + " " + head.LastName,
		CustomerEmail:   head.Email,
		Items:           make([]domain.OrderItemDetail, 0, len(rows)),
	}
	for _, row := range rows {
		out.Items = append(out.Items, domain.OrderItemDetail{
			SKU:         row.SKU,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Price:       row.Price,
			TotalPrice:  row.TotalPrice,
		})
	}
	return out, nil
}

// ListLatest returns the most recent order headers for the admin table.
func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT id, order_number, total_amount, status, shipment_date, delivery_address, promo_code, user_id
		FROM orders
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	return out, err
}

// ItemsByOrder returns an order's line items with their row ids, which the
// edit form needs to address item patches.
func (r *OrderRepo) ItemsByOrder(orderID int) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := r.db.Select(&out, `
		SELECT id, order_id, sku, product_name, quantity, price, total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID)
	return out, err
}

// HeaderUpdate carries the order-row fields of an update request.
type HeaderUpdate struct {
	OrderID         int
	TotalAmount     float64
	Status          string
	ShipmentDate    *string
	PromoCode       *string
	DeliveryAddress string
}

// ItemUpdate patches one order item, matched by item id AND order id.
type ItemUpdate struct {
	ID       int     `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// UserUpdate patches the contact row matched by the original email.
type UserUpdate struct {
	FirstName string
	LastName  string
	Email     string
	City      string
}

type ItemOutcome struct {
	ID      int  `json:"id"`
	Updated bool `json:"updated"`
}

type UpdateReport struct {
	OrderRows int64
	Items     []ItemOutcome
	UserRows  int64
}

// UpdateCascade applies the order header, item, and user updates in a single
// transaction; any statement failure rolls back all three steps. An item or
// user update that matches zero rows is not a failure, it just shows up as
// zero in the report.
func (r *OrderRepo) UpdateCascade(h HeaderUpdate, items []ItemUpdate, u UserUpdate) (UpdateReport, error) {
	var rep UpdateReport

	tx, err := r.db.Beginx()
	if err != nil {
		return rep, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Preparex(`
		UPDATE orders SET
		  total_amount = ?,
		  status = ?,
		  shipment_date = ?,
		  promo_code = ?,
		  delivery_address = ?
		WHERE id = ?
	`)
	if err != nil {
		return rep, fmt.Errorf("%w: %v", ErrPrepareOrderUpdate, err)
	}
	res, err := stmt.Exec(h.TotalAmount, h.Status, h.ShipmentDate, h.PromoCode, h.DeliveryAddress, h.OrderID)
	stmt.Close()
	if err != nil {
		return rep, err
	}
	rep.OrderRows, _ = res.RowsAffected()

	for _, it := range items {
		res, err := tx.Exec(`
			UPDATE order_items SET quantity = ?, price = ?
			WHERE id = ? AND order_id = ?
		`, it.Quantity, it.Price, it.ID, h.OrderID)
		if err != nil {
			return UpdateReport{}, err
		}
		n, _ := res.RowsAffected()
		rep.Items = append(rep.Items, ItemOutcome{ID: it.ID, Updated: n > 0})
	}

	res, err = tx.Exec(`
		UPDATE users SET first_name = ?, last_name = ?, email = ?, city = ?
		WHERE email = ?
	`, u.FirstName, u.LastName, u.Email, u.City, u.Email)
	if err != nil {
		return UpdateReport{}, err
	}
	rep.UserRows, _ = res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return UpdateReport{}, err
	}
	return rep, nil
}
