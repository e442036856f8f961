package domain

// Order statuses form a closed set; anything else is rejected at the boundary
// rather than persisted.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Product categories carried by the panel.
const (
	CategoryWater        = "Water"
	CategoryJuices       = "Juices"
	CategoryCustomised   = "Customised Beverages"
	CategoryDistillation = "Distillation Equipment"
	CategoryIce          = "Ice"
)

// Persisted availability labels. The effective label shown to callers is
// derived at read time: zero stock always reads as "Out of Stock".
const (
	AvailAvailable  = "Available"
	AvailOutOfStock = "Out of Stock"
	AvailPreOrder   = "Pre-Order"
)

// Order is the orders-table header row.
type Order struct {
	ID              int     `db:"id" json:"id"`
	OrderNumber     string  `db:"order_number" json:"order_number"`
	TotalAmount     float64 `db:"total_amount" json:"total_amount"`
	Status          string  `db:"status" json:"status"`
	ShipmentDate    *string `db:"shipment_date" json:"shipment_date"`
	DeliveryAddress string  `db:"delivery_address" json:"delivery_address"`
	PromoCode       *string `db:"promo_code" json:"promo_code"`
	UserID          int     `db:"user_id" json:"user_id"`
}

// OrderItem is one product line within an order. Unlike OrderItemDetail it
// carries the row id the edit form needs to address item patches.
type OrderItem struct {
	ID          int     `db:"id" json:"id"`
	OrderID     int     `db:"order_id" json:"order_id"`
	SKU         string  `db:"sku" json:"sku"`
	ProductName string  `db:"product_name" json:"product_name"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	TotalPrice  float64 `db:"total_price" json:"total_price"`
}

// OrderDetail is the composed order the retrieval endpoint returns: header
// fields, the owning user's contact data, and the line items.
type OrderDetail struct {
	ID              int               `json:"id"`
	OrderNumber     string            `json:"order_number"`
	TotalAmount     float64           `json:"total_amount"`
	Status          string            `json:"status"`
	ShipmentDate    *string           `json:"shipment_date"`
	DeliveryAddress string            `json:"delivery_address"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	Items           []OrderItemDetail `json:"items"`
}

type OrderItemDetail struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"total_price"`
}

// Product keeps the panel's existing column and JSON names (the table was
// created with mixed-case identifiers and the UI scripts read them verbatim).
type Product struct {
	ItemID             int     `db:"ItemID" json:"ItemID"`
	ProductName        string  `db:"productName" json:"productName"`
	SKU                string  `db:"SKU" json:"SKU"`
	Price              float64 `db:"Price" json:"Price"`
	Category           string  `db:"Category" json:"Category"`
	StockLevel         int     `db:"stockLevel" json:"stockLevel"`
	RestockLevel       int     `db:"restockLevel" json:"restockLevel"`
	AvailabilityStatus string  `db:"availabilityStatus" json:"availabilityStatus"`
	Volume             string  `db:"volume" json:"volume"`
	ImageURL           string  `db:"imageURL" json:"imageURL"`
	ExpirationDate     *string `db:"expirationDate" json:"expirationDate"`
	CreatedAt          string  `db:"createdAt" json:"createdAt"`
}

// EffectiveAvailability derives the label the table shows: zero stock wins
// over whatever status is persisted.
func (p Product) EffectiveAvailability() string {
	if p.StockLevel == 0 {
		return AvailOutOfStock
	}
	return p.AvailabilityStatus
}

// LowStock reports whether the row gets the low-stock badge.
func (p Product) LowStock() bool { return p.StockLevel < p.RestockLevel }

type Availability struct {
	Status     string `json:"status"`
	StockLevel int    `json:"stock_level"`
	LowStock   bool   `json:"low_stock"`
}
