package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

func (c *Client) GetMoneyData(ctx context.Context) (catalog.MoneyData, error) {
	return one[catalog.MoneyData](ctx, c, http.MethodGet, "/money", nil)
}

func (c *Client) GetSocialMetrics(ctx context.Context) (catalog.SocialMetrics, error) {
	return one[catalog.SocialMetrics](ctx, c, http.MethodGet, "/social-metrics", nil)
}

func (c *Client) UpdateSocialMetrics(ctx context.Context, m catalog.SocialMetrics) (catalog.SocialMetrics, error) {
	return one[catalog.SocialMetrics](ctx, c, http.MethodPut, "/social-metrics", m)
}

// GetAnalytics filters by an optional date range (YYYY-MM-DD).
func (c *Client) GetAnalytics(ctx context.Context, startDate, endDate string) (catalog.Analytics, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	endpoint := "/analytics"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	return one[catalog.Analytics](ctx, c, http.MethodGet, endpoint, nil)
}
