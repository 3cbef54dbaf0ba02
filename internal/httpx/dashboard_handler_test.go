package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
	"github.com/ariefcatur/go-seller-dashboard/internal/reconcile"
	"github.com/ariefcatur/go-seller-dashboard/internal/transient"
)

type dashboardEnv struct {
	srv    *httptest.Server
	faults *Faults
	recent *notify.Recorder
	h      *DashboardHandler
}

// newDashboard wires the BFF to a live mock API, like cmd/dashboard does.
func newDashboard(t *testing.T, opts ...func(*DashboardHandler)) *dashboardEnv {
	t.Helper()
	api, faults := newMockAPI(t)
	client := apiclient.New(api.URL + "/api")

	recent := notify.NewRecorder(100)
	cfg := reconcile.Config{Notifier: recent, TTL: time.Second}
	h := &DashboardHandler{
		Products:  reconcile.NewProducts(client, cfg),
		Videos:    reconcile.NewVideos(client, cfg),
		Orders:    reconcile.NewOrders(client, cfg),
		Snapshots: reconcile.NewSnapshots(client, cfg),
		Uploads:   client,
		Progress:  transient.NewTracker(),
		Simulator: transient.Simulator{Interval: time.Millisecond, MaxStep: 50, Settle: time.Millisecond},
		Recent:    recent,
	}
	t.Cleanup(h.Products.Close)
	t.Cleanup(h.Videos.Close)
	t.Cleanup(h.Orders.Close)

	ctx := context.Background()
	_, err := h.Products.Fetch(ctx)
	require.NoError(t, err)
	_, err = h.Videos.Fetch(ctx)
	require.NoError(t, err)
	_, err = h.Orders.Fetch(ctx)
	require.NoError(t, err)

	for _, opt := range opts {
		opt(h)
	}
	r := NewRouter(nil)
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &dashboardEnv{srv: srv, faults: faults, recent: recent, h: h}
}

func (e *dashboardEnv) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestDashboardCatalog(t *testing.T) {
	e := newDashboard(t)

	var view catalogView
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/catalog", nil, &view))
	assert.Len(t, view.Products, 5)
	assert.Equal(t, 5, view.Stats.Total)
	assert.Nil(t, view.RecentlyAdded)
	assert.Nil(t, view.Error)
	assert.False(t, view.Loading)
	assert.NotEmpty(t, view.Content)
}

func TestDashboardCreateRemoteThenLocal(t *testing.T) {
	e := newDashboard(t)
	in := catalog.ProductInput{Name: "Test", Stock: 5, Status: catalog.ProductActive}

	var res reconcile.Result[catalog.Product]
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/products", in, &res))
	assert.Equal(t, reconcile.SourceRemote, res.Source)

	e.faults.Set(FaultConfig{Mode: FaultServerError, ServerErrorRate: 1})
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/products", in, &res))
	assert.Equal(t, reconcile.SourceLocal, res.Source)

	var view catalogView
	e.do(t, http.MethodGet, "/catalog", nil, &view)
	assert.Len(t, view.Products, 7)
	require.NotNil(t, view.RecentlyAdded)
	assert.Equal(t, res.Value.ID, *view.RecentlyAdded)

	var ns []notify.Notification
	e.do(t, http.MethodGet, "/notifications", nil, &ns)
	require.Len(t, ns, 2)
	assert.Equal(t, "Product Added", ns[0].Title)
	assert.Equal(t, "Product Added (Local)", ns[1].Title)
}

func withSimulator(s transient.Simulator) func(*DashboardHandler) {
	return func(h *DashboardHandler) { h.Simulator = s }
}

// postJSON is safe to call from a goroutine other than the test's.
func (e *dashboardEnv) postJSON(path string, body any) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	resp, err := http.Post(e.srv.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// progressOf returns the upload's progress and whether it is registered.
func (e *dashboardEnv) progressOf(id string) (transient.ProgressState, bool) {
	var st transient.ProgressState
	resp, err := http.Get(e.srv.URL + "/uploads/" + id + "/progress")
	if err != nil {
		return st, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return st, false
	}
	_ = json.NewDecoder(resp.Body).Decode(&st)
	return st, true
}

func TestDashboardCreateWithSimulatedProgress(t *testing.T) {
	e := newDashboard(t, withSimulator(transient.Simulator{Interval: 3 * time.Millisecond, MaxStep: 10, Settle: 30 * time.Millisecond}))
	in := catalog.ProductInput{Name: "Slow", Status: catalog.ProductDraft}

	type result struct {
		code int
		err  error
	}
	done := make(chan result, 1)
	go func() {
		code, err := e.postJSON("/products?simulate=1&uploadId=form-1", in)
		done <- result{code, err}
	}()

	var seen []int
	var res result
poll:
	for {
		select {
		case res = <-done:
			break poll
		default:
			if st, ok := e.progressOf("form-1"); ok && st.Uploading {
				seen = append(seen, st.Percent)
			}
			time.Sleep(time.Millisecond)
		}
	}
	require.NoError(t, res.err)
	require.Equal(t, http.StatusCreated, res.code)

	require.NotEmpty(t, seen, "progress was never visible while the form ran")
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1], "progress went backwards: %v", seen)
	}
	assert.Equal(t, 100, seen[len(seen)-1])

	_, ok := e.progressOf("form-1")
	assert.False(t, ok, "finished uploads are forgotten")
}

func TestDashboardConcurrentUploadsDoNotShareProgress(t *testing.T) {
	e := newDashboard(t, withSimulator(transient.Simulator{Interval: 5 * time.Millisecond, MaxStep: 5, Settle: 50 * time.Millisecond}))
	in := catalog.ProductInput{Name: "Parallel", Status: catalog.ProductDraft}

	codes := make(chan int, 2)
	for _, id := range []string{"a", "b"} {
		go func(id string) {
			code, _ := e.postJSON("/products?simulate=1&uploadId="+id, in)
			codes <- code
		}(id)
	}
	require.Eventually(t, func() bool {
		_, okA := e.progressOf("a")
		_, okB := e.progressOf("b")
		return okA && okB
	}, time.Second, time.Millisecond)

	// id yang masih berjalan tidak boleh dipakai ulang
	assert.Equal(t, http.StatusConflict, e.do(t, http.MethodPost, "/products?simulate=1&uploadId=a", in, nil))

	// menunggu b naik tidak boleh menurunkan progress a
	before, _ := e.progressOf("a")
	require.Eventually(t, func() bool {
		st, ok := e.progressOf("b")
		return ok && st.Percent > 0
	}, time.Second, time.Millisecond)
	if after, ok := e.progressOf("a"); ok && after.Uploading {
		assert.GreaterOrEqual(t, after.Percent, before.Percent)
	}

	assert.Equal(t, http.StatusCreated, <-codes)
	assert.Equal(t, http.StatusCreated, <-codes)
	assert.Zero(t, e.h.Progress.Active())
}

func TestDashboardSimulatedCreateValidatesFirst(t *testing.T) {
	e := newDashboard(t, withSimulator(transient.Simulator{Interval: 50 * time.Millisecond, MaxStep: 1, Settle: 2 * time.Second}))

	start := time.Now()
	code := e.do(t, http.MethodPost, "/products?simulate=1&uploadId=bad", catalog.ProductInput{Status: catalog.ProductActive}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Less(t, time.Since(start), time.Second, "invalid input must not run the simulated progress")
	assert.Zero(t, e.h.Progress.Active())
	assert.Len(t, e.h.Products.Items(), 5)
}

func TestDashboardValidationAndMissing(t *testing.T) {
	e := newDashboard(t)

	var errBody map[string]string
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/products", catalog.ProductInput{Status: catalog.ProductActive}, &errBody))
	assert.NotEmpty(t, errBody["error"])

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPut, "/products/nope", catalog.ProductPatch{Name: catalog.Ptr("x")}, nil))
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPatch, "/orders/ORD-001/status", map[string]string{"status": "lost"}, nil))
}

func TestDashboardDeleteWhileBackendDown(t *testing.T) {
	e := newDashboard(t)
	e.faults.Set(FaultConfig{Mode: FaultServerError, ServerErrorRate: 1})

	var out map[string]string
	require.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, "/products/1", nil, &out))
	assert.Equal(t, "local", out["source"])
	_, found := e.h.Products.Find("1")
	assert.False(t, found)

	last, _ := e.recent.Last()
	assert.Equal(t, "Product Deleted (Local)", last.Title)
	assert.Equal(t, notify.VariantDestructive, last.Variant)
}

func TestDashboardVideosAndOrders(t *testing.T) {
	e := newDashboard(t)

	var vids struct {
		Videos []catalog.VideoContent `json:"videos"`
	}
	e.do(t, http.MethodGet, "/videos?productId=1", nil, &vids)
	require.NotEmpty(t, vids.Videos)
	for _, v := range vids.Videos {
		assert.Equal(t, "1", v.ProductID)
	}

	var res reconcile.Result[catalog.Order]
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/orders/ORD-001/cancel", nil, &res))
	assert.Equal(t, catalog.OrderCancelled, res.Value.Status)
	assert.Equal(t, reconcile.SourceRemote, res.Source)

	var orders struct {
		Stats struct {
			Total int `json:"total"`
		} `json:"stats"`
	}
	e.do(t, http.MethodGet, "/orders", nil, &orders)
	assert.Equal(t, 6, orders.Stats.Total)
}

func TestDashboardSnapshotsFallBack(t *testing.T) {
	e := newDashboard(t)
	e.faults.Set(FaultConfig{Mode: FaultServerError, ServerErrorRate: 1})

	var money reconcile.Result[catalog.MoneyData]
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/money", nil, &money))
	assert.Equal(t, reconcile.SourceLocal, money.Source)
	assert.NotZero(t, money.Value.TotalIncome)

	var refresh map[string]any
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/products/refresh", nil, &refresh))
	assert.Equal(t, "local", refresh["source"])
}

func TestDashboardUploadForwards(t *testing.T) {
	e := newDashboard(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("type", "image"))
	fw, err := mw.CreateFormFile("file", "shot.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte(strings.Repeat("p", 2048)))
	require.NoError(t, mw.Close())

	resp, err := http.Post(e.srv.URL+"/uploads?uploadId=shot-1", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "shot-1", resp.Header.Get("X-Upload-Id"))

	var res catalog.UploadResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.True(t, strings.HasSuffix(res.Filename, "-shot.png"))

	last, _ := e.recent.Last()
	assert.Equal(t, "Upload Complete", last.Title)
	assert.Zero(t, e.h.Progress.Active())
}
