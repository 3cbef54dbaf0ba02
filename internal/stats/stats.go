// Package stats derives dashboard counters from store snapshots.
package stats

import (
	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

// LowStockThreshold: stok di bawah ini (dan > 0) dianggap menipis.
const LowStockThreshold = 20

type ProductStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Draft      int `json:"draft"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// Products counts by status. LowStock looks at stock only, whatever the
// status, while OutOfStock follows the status field.
func Products(ps []catalog.Product) ProductStats {
	st := ProductStats{Total: len(ps)}
	for _, p := range ps {
		switch p.Status {
		case catalog.ProductActive:
			st.Active++
		case catalog.ProductDraft:
			st.Draft++
		case catalog.ProductOutOfStock:
			st.OutOfStock++
		}
		if isLowStock(p) {
			st.LowStock++
		}
	}
	return st
}

func isLowStock(p catalog.Product) bool {
	return p.Stock > 0 && p.Stock < LowStockThreshold
}

func LowStockAlerts(ps []catalog.Product) []catalog.StockAlert {
	out := []catalog.StockAlert{}
	for _, p := range ps {
		if isLowStock(p) {
			out = append(out, catalog.StockAlert{Name: p.Name, Stock: p.Stock})
		}
	}
	return out
}

type OrderStats struct {
	Total     int                         `json:"total"`
	ByStatus  map[catalog.OrderStatus]int `json:"byStatus"`
	Pending   int                         `json:"pending"`
	Shipped   int                         `json:"shipped"`
	Delivered int                         `json:"delivered"`
	Revenue   float64                     `json:"revenue"`
}

func Orders(orders []catalog.Order) OrderStats {
	st := OrderStats{Total: len(orders), ByStatus: make(map[catalog.OrderStatus]int, len(catalog.OrderStatuses))}
	for _, s := range catalog.OrderStatuses {
		st.ByStatus[s] = 0
	}
	for _, o := range orders {
		st.ByStatus[o.Status]++
		if o.Status.CountsAsRevenue() {
			st.Revenue += o.Amount
		}
	}
	st.Pending = st.ByStatus[catalog.OrderPending]
	st.Shipped = st.ByStatus[catalog.OrderShipped]
	st.Delivered = st.ByStatus[catalog.OrderDelivered]
	return st
}

func VideosByProduct(vs []catalog.VideoContent, productID string) []catalog.VideoContent {
	out := []catalog.VideoContent{}
	for _, v := range vs {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out
}

type EngagementTotals struct {
	Videos   int `json:"videos"`
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Reach    int `json:"reach"`
}

func Engagement(vs []catalog.VideoContent) EngagementTotals {
	t := EngagementTotals{Videos: len(vs)}
	for _, v := range vs {
		t.Views += v.Views
		t.Likes += v.Likes
		t.Comments += v.Comments
		t.Shares += v.Shares
		t.Reach += v.Reach
	}
	return t
}

type ContentCount struct {
	Videos int `json:"videos"`
	Reels  int `json:"reels"`
}

// ProductContent counts videos and reels per product id.
func ProductContent(vs []catalog.VideoContent) map[string]ContentCount {
	out := make(map[string]ContentCount)
	for _, v := range vs {
		c := out[v.ProductID]
		if v.Type == catalog.VideoTypeReel {
			c.Reels++
		} else {
			c.Videos++
		}
		out[v.ProductID] = c
	}
	return out
}
