package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

// ListVideoContent lists every video, or only those of productID when set.
func (c *Client) ListVideoContent(ctx context.Context, productID string) ([]catalog.VideoContent, error) {
	endpoint := "/video-content"
	if productID != "" {
		endpoint += "?productId=" + url.QueryEscape(productID)
	}
	return one[[]catalog.VideoContent](ctx, c, http.MethodGet, endpoint, nil)
}

func (c *Client) CreateVideoContent(ctx context.Context, in catalog.VideoInput) (catalog.VideoContent, error) {
	return one[catalog.VideoContent](ctx, c, http.MethodPost, "/video-content", in)
}

func (c *Client) UpdateVideoContent(ctx context.Context, id string, patch catalog.VideoPatch) (catalog.VideoContent, error) {
	return one[catalog.VideoContent](ctx, c, http.MethodPut, "/video-content/"+url.PathEscape(id), patch)
}

func (c *Client) DeleteVideoContent(ctx context.Context, id string) error {
	return c.remove(ctx, "/video-content/"+url.PathEscape(id))
}
