package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

func (c *Client) ListOrders(ctx context.Context, page, limit int) ([]catalog.Order, Pagination, error) {
	return list[catalog.Order](ctx, c, fmt.Sprintf("/orders?page=%d&limit=%d", page, limit))
}

func (c *Client) GetOrder(ctx context.Context, id string) (catalog.Order, error) {
	return one[catalog.Order](ctx, c, http.MethodGet, "/orders/"+url.PathEscape(id), nil)
}

func (c *Client) CreateOrder(ctx context.Context, in catalog.OrderInput) (catalog.Order, error) {
	return one[catalog.Order](ctx, c, http.MethodPost, "/orders", in)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status catalog.OrderStatus) (catalog.Order, error) {
	body := map[string]catalog.OrderStatus{"status": status}
	return one[catalog.Order](ctx, c, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", body)
}
