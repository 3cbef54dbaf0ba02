package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

func (c *Client) ListProducts(ctx context.Context, page, limit int) ([]catalog.Product, Pagination, error) {
	return list[catalog.Product](ctx, c, fmt.Sprintf("/products?page=%d&limit=%d", page, limit))
}

func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	return one[catalog.Product](ctx, c, http.MethodGet, "/products/"+url.PathEscape(id), nil)
}

func (c *Client) CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	return one[catalog.Product](ctx, c, http.MethodPost, "/products", in)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	return one[catalog.Product](ctx, c, http.MethodPut, "/products/"+url.PathEscape(id), patch)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.remove(ctx, "/products/"+url.PathEscape(id))
}

// ---- helper generik untuk envelope ----

func one[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	var r Response[T]
	status, err := c.call(ctx, method, endpoint, body, &r)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.value(status)
}

func list[T any](ctx context.Context, c *Client, endpoint string) ([]T, Pagination, error) {
	var r Paginated[T]
	status, err := c.call(ctx, http.MethodGet, endpoint, nil, &r)
	if err != nil {
		return nil, Pagination{}, err
	}
	if !r.Success {
		return nil, Pagination{}, rejected(status, r.Message, "", "")
	}
	return r.Data, r.Pagination, nil
}

func (c *Client) remove(ctx context.Context, endpoint string) error {
	var r Response[map[string]any]
	status, err := c.call(ctx, http.MethodDelete, endpoint, nil, &r)
	if err != nil {
		return err
	}
	if !r.Success {
		return rejected(status, r.Message, r.Error, r.Code)
	}
	return nil
}
