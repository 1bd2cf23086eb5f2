package models

import (
	"time"

	"github.com/novakart/storesync/pkg/api"
)

// Normalization of loosely-typed remote records into domain entities.
// Defaults for absent optional fields are declared here, once:
// empty strings, empty slices, zero numerics, current time for timestamps.

func strOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// timeOr parses an RFC3339 timestamp, falling back to now for absent
// or malformed values. Stale writes are harmless downstream, a wrong
// zero time is not.
func timeOr(v *string, now time.Time) time.Time {
	if v == nil {
		return now
	}
	ts, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return now
	}
	return ts
}

// NormalizeProduct maps a wire product record to the domain shape
func NormalizeProduct(rec api.ProductRecord) Product {
	now := time.Now()
	urls := rec.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return Product{
		ID:          rec.ID,
		Name:        strOr(rec.Name, ""),
		Description: strOr(rec.Description, ""),
		Price:       floatOr(rec.Price, 0),
		Stock:       intOr(rec.Stock, 0),
		CategoryID:  strOr(rec.CategoryID, ""),
		ImageURLs:   urls,
		CreatedAt:   timeOr(rec.CreatedAt, now),
		UpdatedAt:   timeOr(rec.UpdatedAt, now),
	}
}

// NormalizeCategory maps a wire category record to the domain shape
func NormalizeCategory(rec api.CategoryRecord) Category {
	return Category{
		ID:        rec.ID,
		Name:      strOr(rec.Name, ""),
		Slug:      strOr(rec.Slug, ""),
		ParentID:  strOr(rec.ParentID, ""),
		CreatedAt: timeOr(rec.CreatedAt, time.Now()),
	}
}

// NormalizeOrder maps a wire order record to the domain shape
func NormalizeOrder(rec api.OrderRecord) Order {
	now := time.Now()
	items := make([]OrderItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, OrderItem{
			ProductID: strOr(it.ProductID, ""),
			Quantity:  intOr(it.Quantity, 0),
			UnitPrice: floatOr(it.UnitPrice, 0),
		})
	}
	return Order{
		ID:         rec.ID,
		CustomerID: strOr(rec.CustomerID, ""),
		Status:     strOr(rec.Status, OrderStatusPending),
		Items:      items,
		Total:      floatOr(rec.Total, 0),
		CreatedAt:  timeOr(rec.CreatedAt, now),
		UpdatedAt:  timeOr(rec.UpdatedAt, now),
	}
}

// NormalizeCustomer maps a wire customer record to the domain shape
func NormalizeCustomer(rec api.CustomerRecord) Customer {
	return Customer{
		ID:        rec.ID,
		Email:     strOr(rec.Email, ""),
		FullName:  strOr(rec.FullName, ""),
		Phone:     strOr(rec.Phone, ""),
		CreatedAt: timeOr(rec.CreatedAt, time.Now()),
	}
}

// NormalizeStats maps a wire stats record to the domain shape
func NormalizeStats(rec api.StatsRecord) DashboardStats {
	return DashboardStats{
		TotalRevenue:  floatOr(rec.TotalRevenue, 0),
		OrderCount:    intOr(rec.OrderCount, 0),
		ProductCount:  intOr(rec.ProductCount, 0),
		CustomerCount: intOr(rec.CustomerCount, 0),
		PendingOrders: intOr(rec.PendingOrders, 0),
		LowStockCount: intOr(rec.LowStockCount, 0),
		GeneratedAt:   timeOr(rec.GeneratedAt, time.Now()),
	}
}
