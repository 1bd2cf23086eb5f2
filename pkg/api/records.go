package api

// Wire shapes returned by the remote data service. Optional fields are
// pointers so that "absent" and "zero" stay distinguishable until the
// normalization layer fills in the documented defaults.

// ProductRecord is the raw product row as the remote service returns it
type ProductRecord struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	CreatedAt   *string  `json:"created_at,omitempty"`
	UpdatedAt   *string  `json:"updated_at,omitempty"`
	ID          string   `json:"id"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// CategoryRecord is the raw category row
type CategoryRecord struct {
	Name      *string `json:"name,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
	ID        string  `json:"id"`
}

// OrderItemRecord is one line item inside an order row
type OrderItemRecord struct {
	ProductID *string  `json:"product_id,omitempty"`
	Quantity  *int     `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// OrderRecord is the raw order row
type OrderRecord struct {
	CustomerID *string           `json:"customer_id,omitempty"`
	Status     *string           `json:"status,omitempty"`
	Total      *float64          `json:"total,omitempty"`
	CreatedAt  *string           `json:"created_at,omitempty"`
	UpdatedAt  *string           `json:"updated_at,omitempty"`
	ID         string            `json:"id"`
	Items      []OrderItemRecord `json:"items,omitempty"`
}

// CustomerRecord is the raw customer row
type CustomerRecord struct {
	Email     *string `json:"email,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
	ID        string  `json:"id"`
}

// StatsRecord is the raw dashboard statistics row computed by the remote service
type StatsRecord struct {
	TotalRevenue  *float64 `json:"total_revenue,omitempty"`
	OrderCount    *int     `json:"order_count,omitempty"`
	ProductCount  *int     `json:"product_count,omitempty"`
	CustomerCount *int     `json:"customer_count,omitempty"`
	PendingOrders *int     `json:"pending_orders,omitempty"`
	LowStockCount *int     `json:"low_stock_count,omitempty"`
	GeneratedAt   *string  `json:"generated_at,omitempty"`
}
