package services

import (
	"database/sql"
	"encoding/json"
	"errors"

	"aquastock/internal/domain"
	applog "aquastock/internal/log"
	"aquastock/internal/repos"
	"aquastock/internal/validate"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrBadItemsJSON  = errors.New("invalid order_items payload")
)

type OrderService struct {
	Orders *repos.OrderRepo
	Debug  *applog.FileLog
}

func NewOrderService(orders *repos.OrderRepo, debug *applog.FileLog) *OrderService {
	return &OrderService{Orders: orders, Debug: debug}
}

// Fetch composes the order detail for one id. Every attempt, success or
// failure, lands in the debug log.
func (s *OrderService) Fetch(orderID int) (domain.OrderDetail, error) {
	d, err := s.Orders.GetDetail(orderID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			s.Debug.Logf("Error for Order ID %d: Order not found", orderID)
			return domain.OrderDetail{}, ErrOrderNotFound
		case errors.Is(err, repos.ErrPrepareOrderQuery):
			s.Debug.Logf("Error for Order ID %d: Failed to prepare order query", orderID)
			return domain.OrderDetail{}, err
		default:
			s.Debug.Logf("Error for Order ID %d: Failed to fetch order details", orderID)
			return domain.OrderDetail{}, err
		}
	}

	if b, err := json.Marshal(d); err == nil {
		s.Debug.Logf("Fetched order details for Order ID %d: %s", orderID, b)
	}
	return d, nil
}

// List returns the latest order headers for the admin table.
func (s *OrderService) List(limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(limit)
}

// Items returns an order's line items with row ids for the edit form.
func (s *OrderService) Items(orderID int) ([]domain.OrderItem, error) {
	return s.Orders.ItemsByOrder(orderID)
}

// UpdateRequest is the form payload of an order update.
type UpdateRequest struct {
	OrderID         int
	CustomerName    string
	CustomerEmail   string
	TotalAmount     float64
	Status          string
	ShipmentDate    *string
	PromoCode       *string
	DeliveryAddress string
	City            string
	ItemsJSON       string
}

// UpdateResult reports the outcome of every sub-operation: the header update
// drives Success, item patches are listed one by one, and UserRows makes the
// lookup-by-email ambiguity visible instead of silent.
type UpdateResult struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Items    []repos.ItemOutcome `json:"items,omitempty"`
	UserRows int64               `json:"user_rows"`
}

// Update applies the order header, item, and user changes in one transaction.
// An item id that does not belong to the order shows up as updated:false but
// does not fail the request.
func (s *OrderService) Update(req UpdateRequest) (UpdateResult, error) {
	s.Debug.Logf("Received data: orderID=%d, customerName=%s, email=%s, totalAmount=%.2f, status=%s, city=%s",
		req.OrderID, req.CustomerName, req.CustomerEmail, req.TotalAmount, req.Status, req.City)

	status, ok := validate.OrderStatus(req.Status)
	if !ok {
		s.Debug.Logf("Error for Order ID %d: invalid status %q", req.OrderID, req.Status)
		return UpdateResult{Success: false, Message: "Invalid status value."}, ErrInvalidStatus
	}

	var items []repos.ItemUpdate
	if req.ItemsJSON != "" {
		if err := json.Unmarshal([]byte(req.ItemsJSON), &items); err != nil {
			s.Debug.Logf("Error for Order ID %d: malformed order_items JSON", req.OrderID)
			return UpdateResult{Success: false, Message: "Invalid order_items payload."}, ErrBadItemsJSON
		}
	}

	first, last := validate.SplitName(req.CustomerName)

	rep, err := s.Orders.UpdateCascade(
		repos.HeaderUpdate{
			OrderID:         req.OrderID,
			TotalAmount:     req.TotalAmount,
			Status:          status,
			ShipmentDate:    req.ShipmentDate,
			PromoCode:       req.PromoCode,
			DeliveryAddress: req.DeliveryAddress,
		},
		items,
		repos.UserUpdate{FirstName: first, LastName: last, Email: req.CustomerEmail, City: req.City},
	)
	if err != nil {
		msg := "Failed to update order."
		if errors.Is(err, repos.ErrPrepareOrderUpdate) {
			msg = "Failed to prepare update statement for orders."
		}
		s.Debug.Logf("Error for Order ID %d: %s", req.OrderID, msg)
		return UpdateResult{Success: false, Message: msg}, err
	}

	s.Debug.Logf("Order ID %d updated successfully.", req.OrderID)
	return UpdateResult{
		Success:  true,
		Message:  "Order and related data updated successfully.",
		Items:    rep.Items,
		UserRows: rep.UserRows,
	}, nil
}
