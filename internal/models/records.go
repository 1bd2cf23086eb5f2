package models

import "time"

// Collection identifies one logical grouping of entities on the remote service.
type Collection string

// Collections the store synchronizes
const (
	CollectionProducts   Collection = "products"
	CollectionCategories Collection = "categories"
	CollectionOrders     Collection = "orders"
	CollectionCustomers  Collection = "customers"
	CollectionStats      Collection = "dashboard_stats"
)

// Entity is any record the store can hold in a slice.
// EntityID returns the stable identifier merges are keyed by.
type Entity interface {
	EntityID() string
}

// Product represents one storefront product
type Product struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	ImageURLs   []string  `json:"image_urls"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
}

// EntityID implements Entity
func (p Product) EntityID() string { return p.ID }

// Category represents one product category
type Category struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  string    `json:"parent_id"`
}

// EntityID implements Entity
func (c Category) EntityID() string { return c.ID }

// OrderItem is one line item of an order
type OrderItem struct {
	ProductID string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Order statuses used by the storefront
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Order represents one customer order
type Order struct {
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
}

// EntityID implements Entity
func (o Order) EntityID() string { return o.ID }

// Customer represents one registered customer
type Customer struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
}

// EntityID implements Entity
func (c Customer) EntityID() string { return c.ID }

// DashboardStats holds the server-computed admin dashboard aggregates.
// There is at most one row, so the id is fixed.
type DashboardStats struct {
	GeneratedAt   time.Time `json:"generated_at"`
	TotalRevenue  float64   `json:"total_revenue"`
	OrderCount    int       `json:"order_count"`
	ProductCount  int       `json:"product_count"`
	CustomerCount int       `json:"customer_count"`
	PendingOrders int       `json:"pending_orders"`
	LowStockCount int       `json:"low_stock_count"`
}

// EntityID implements Entity
func (DashboardStats) EntityID() string { return string(CollectionStats) }
