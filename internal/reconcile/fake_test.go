package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

var errDown = &apiclient.APIError{Message: "Network error occurred", Code: apiclient.CodeNetwork, Err: errors.New("connection refused")}

// fakeBackend implements every gateway. When down is set all calls fail
// the way an unreachable backend does.
type fakeBackend struct {
	mu       sync.Mutex
	down     bool
	calls    int
	seq      int
	products []catalog.Product
	videos   []catalog.VideoContent
	orders   []catalog.Order
	money    catalog.MoneyData
}

func (f *fakeBackend) enter() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.down {
		return errDown
	}
	return nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeBackend) nextID(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func page[T any](items []T, pg, limit int) ([]T, apiclient.Pagination) {
	total := len(items)
	start := min((pg-1)*limit, total)
	end := min(start+limit, total)
	return append([]T(nil), items[start:end]...), apiclient.Pagination{
		Page: pg, Limit: limit, Total: total, TotalPages: (total + limit - 1) / limit,
	}
}

func (f *fakeBackend) ListProducts(_ context.Context, pg, limit int) ([]catalog.Product, apiclient.Pagination, error) {
	if err := f.enter(); err != nil {
		return nil, apiclient.Pagination{}, err
	}
	items, p := page(f.products, pg, limit)
	return items, p, nil
}

func (f *fakeBackend) CreateProduct(_ context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if err := f.enter(); err != nil {
		return catalog.Product{}, err
	}
	return in.Product(f.nextID("srv"), "2024-01-01T00:00:00Z"), nil
}

func (f *fakeBackend) UpdateProduct(_ context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	if err := f.enter(); err != nil {
		return catalog.Product{}, err
	}
	p := patch.Apply(catalog.Product{ID: id, Name: "from server"})
	p.UpdatedAt = "2024-02-01T00:00:00Z"
	return p, nil
}

func (f *fakeBackend) DeleteProduct(context.Context, string) error { return f.enter() }

func (f *fakeBackend) ListVideoContent(_ context.Context, _ string) ([]catalog.VideoContent, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return append([]catalog.VideoContent(nil), f.videos...), nil
}

func (f *fakeBackend) CreateVideoContent(_ context.Context, in catalog.VideoInput) (catalog.VideoContent, error) {
	if err := f.enter(); err != nil {
		return catalog.VideoContent{}, err
	}
	return in.Video(f.nextID("vid"), "2024-01-01T00:00:00Z"), nil
}

func (f *fakeBackend) UpdateVideoContent(_ context.Context, id string, patch catalog.VideoPatch) (catalog.VideoContent, error) {
	if err := f.enter(); err != nil {
		return catalog.VideoContent{}, err
	}
	return patch.Apply(catalog.VideoContent{ID: id, Title: "from server"}), nil
}

func (f *fakeBackend) DeleteVideoContent(context.Context, string) error { return f.enter() }

func (f *fakeBackend) ListOrders(_ context.Context, pg, limit int) ([]catalog.Order, apiclient.Pagination, error) {
	if err := f.enter(); err != nil {
		return nil, apiclient.Pagination{}, err
	}
	items, p := page(f.orders, pg, limit)
	return items, p, nil
}

func (f *fakeBackend) UpdateOrderStatus(_ context.Context, id string, status catalog.OrderStatus) (catalog.Order, error) {
	if err := f.enter(); err != nil {
		return catalog.Order{}, err
	}
	return catalog.Order{ID: id, Status: status, UpdatedAt: "2024-02-01T00:00:00Z"}, nil
}

func (f *fakeBackend) GetMoneyData(context.Context) (catalog.MoneyData, error) {
	if err := f.enter(); err != nil {
		return catalog.MoneyData{}, err
	}
	return f.money, nil
}

func (f *fakeBackend) GetSocialMetrics(context.Context) (catalog.SocialMetrics, error) {
	if err := f.enter(); err != nil {
		return catalog.SocialMetrics{}, err
	}
	return catalog.SocialMetrics{Followers: 1}, nil
}

func (f *fakeBackend) GetAnalytics(_ context.Context, start, _ string) (catalog.Analytics, error) {
	if err := f.enter(); err != nil {
		return catalog.Analytics{}, err
	}
	return catalog.Analytics{TotalSales: len(start)}, nil
}
