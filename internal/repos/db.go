package repos

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo rows if the DB is empty (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users (order contacts; email is the update lookup key, so keep it unique)
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL,
  city TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_number TEXT NOT NULL,
  total_amount NUMERIC NOT NULL CHECK (total_amount >= 0),
  status TEXT NOT NULL CHECK (status IN ('Pending','Processing','Shipped','Delivered','Cancelled')),
  shipment_date TEXT,
  delivery_address TEXT NOT NULL DEFAULT '',
  promo_code TEXT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  sku TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  price NUMERIC NOT NULL CHECK (price >= 0),
  total_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Products (column names predate this service; the panel scripts read them verbatim)
CREATE TABLE IF NOT EXISTS products(
  ItemID INTEGER PRIMARY KEY AUTOINCREMENT,
  productName TEXT NOT NULL,
  SKU TEXT NOT NULL,
  Price NUMERIC NOT NULL CHECK (Price >= 0),
  Category TEXT NOT NULL CHECK (Category IN ('Water','Juices','Customised Beverages','Distillation Equipment','Ice')),
  stockLevel INTEGER NOT NULL DEFAULT 0 CHECK (stockLevel >= 0),
  restockLevel INTEGER NOT NULL DEFAULT 0 CHECK (restockLevel >= 0),
  availabilityStatus TEXT NOT NULL CHECK (availabilityStatus IN ('Available','Out of Stock','Pre-Order')),
  volume TEXT NOT NULL DEFAULT '',
  imageURL TEXT NOT NULL DEFAULT '',
  expirationDate TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(Category);
`
	_, err := db.Exec(schema)
	return err
}

func orderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/orders/products")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(id,first_name,last_name,email,city) VALUES
	  (1,'Jane','Doe','jane.doe@example.com','Cape Town'),
	  (2,'Sipho','Ndlovu','sipho.ndlovu@example.com','Durban'),
	  (3,'Maria','van der Merwe','maria.vdm@example.com','Johannesburg')`)

	tx.MustExec(`INSERT INTO orders(id,order_number,total_amount,status,shipment_date,delivery_address,promo_code,user_id) VALUES
	  (1,?,259.80,'Processing','2026-09-05','12 Main Rd, Cape Town','SPRING10',1),
	  (2,?,89.97,'Pending',NULL,'45 Beach Front, Durban',NULL,2),
	  (3,?,540.00,'Shipped','2026-08-28','7 Oak Ave, Johannesburg',NULL,3)`,
		orderNumber(), orderNumber(), orderNumber())

	// Order 3 deliberately has no line items; the retrieval join reports it
	// as not found, which mirrors the panel's documented behavior.
	tx.MustExec(`INSERT INTO order_items(order_id,sku,product_name,quantity,price,total_price) VALUES
	  (1,'WTR-500','Still Water 500ml',12,9.99,119.88),
	  (1,'JCE-ORG','Orange Juice 1L',6,23.32,139.92),
	  (2,'ICE-5KG','Ice Cubes 5kg',3,29.99,89.97)`)

	tx.MustExec(`INSERT INTO products(productName,SKU,Price,Category,stockLevel,restockLevel,availabilityStatus,volume,imageURL,expirationDate) VALUES
	  ('Still Water 500ml','WTR-500',9.99,'Water',240,50,'Available','500ml','/media/products/wtr-500.jpg',NULL),
	  ('Sparkling Water 1L','WTR-SPK-1L',14.50,'Water',0,40,'Available','1L','/media/products/wtr-spk.jpg',NULL),
	  ('Orange Juice 1L','JCE-ORG',23.32,'Juices',35,60,'Available','1L','/media/products/jce-org.jpg','2026-11-30'),
	  ('Berry Blend Custom Mix','CST-BRY',49.00,'Customised Beverages',12,10,'Pre-Order','750ml','/media/products/cst-bry.jpg','2026-10-15'),
	  ('Copper Still 20L','DST-CU20',5400.00,'Distillation Equipment',4,2,'Available','20L','/media/products/dst-cu20.jpg',NULL),
	  ('Ice Cubes 5kg','ICE-5KG',29.99,'Ice',80,25,'Available','5kg','/media/products/ice-5kg.jpg',NULL)`)

	return tx.Commit()
}
