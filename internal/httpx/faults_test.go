package httpx

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
)

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServerErrorInjection(t *testing.T) {
	srv, faults := newMockAPI(t)
	c := apiclient.New(srv.URL + "/api")

	resp := post(t, srv.URL+"/admin/inject-error", `{"mode":"server_error","server_error_rate":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := c.GetMoneyData(context.Background())
	var ae *apiclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", ae.Code)

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode, "health check bypasses faults")

	post(t, srv.URL+"/admin/reset", "")
	assert.Equal(t, FaultNormal, faults.Config().Mode)
	_, err = c.GetMoneyData(context.Background())
	assert.NoError(t, err)
}

func TestRateLimitInjection(t *testing.T) {
	srv, faults := newMockAPI(t)
	faults.Set(FaultConfig{Mode: FaultRateLimit, RateLimitAfter: 2})
	c := apiclient.New(srv.URL + "/api")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.GetMoneyData(ctx)
		require.NoError(t, err)
	}
	_, err := c.GetMoneyData(ctx)
	var ae *apiclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.Status)
	assert.Equal(t, int64(3), faults.Config().RequestCount)
}

func TestInjectRejectsUnknownMode(t *testing.T) {
	srv, _ := newMockAPI(t)
	resp := post(t, srv.URL+"/admin/inject-error", `{"mode":"chaos"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
