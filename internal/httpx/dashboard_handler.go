package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
	"github.com/ariefcatur/go-seller-dashboard/internal/reconcile"
	"github.com/ariefcatur/go-seller-dashboard/internal/stats"
	"github.com/ariefcatur/go-seller-dashboard/internal/store"
	"github.com/ariefcatur/go-seller-dashboard/internal/transient"
)

type Uploader interface {
	UploadFile(ctx context.Context, kind catalog.UploadKind, filename string, r io.Reader) (catalog.UploadResult, error)
}

// DashboardHandler exposes the reconciled stores and derived views to the
// dashboard front end.
type DashboardHandler struct {
	Products  *reconcile.Products
	Videos    *reconcile.Videos
	Orders    *reconcile.Orders
	Snapshots *reconcile.Snapshots
	Uploads   Uploader
	Progress  *transient.Tracker
	Simulator transient.Simulator
	Notifier  notify.Notifier
	Recent    *notify.Recorder
	Log       *zap.Logger
}

// Register fills unset helpers with defaults before mounting the routes.
func (h *DashboardHandler) Register(r chi.Router) {
	if h.Log == nil {
		h.Log = zap.NewNop()
	}
	if h.Progress == nil {
		h.Progress = transient.NewTracker()
	}
	if h.Simulator == (transient.Simulator{}) {
		h.Simulator = transient.DefaultSimulator
	}
	if h.Recent == nil {
		h.Recent = notify.NewRecorder(50)
	}
	if h.Notifier == nil {
		h.Notifier = h.Recent
	}

	r.Get("/catalog", h.catalog)
	r.Post("/products", h.createProduct)
	r.Put("/products/{id}", h.updateProduct)
	r.Delete("/products/{id}", h.deleteProduct)
	r.Post("/products/refresh", h.refreshProducts)

	r.Get("/videos", h.listVideos)
	r.Post("/videos", h.createVideo)
	r.Put("/videos/{id}", h.updateVideo)
	r.Delete("/videos/{id}", h.deleteVideo)

	r.Get("/orders", h.listOrders)
	r.Patch("/orders/{id}/status", h.updateOrderStatus)
	r.Post("/orders/{id}/cancel", h.cancelOrder)

	r.Get("/money", h.money)
	r.Get("/social", h.social)
	r.Get("/analytics", h.analytics)

	r.Post("/uploads", h.upload)
	r.Get("/uploads/{id}/progress", h.uploadProgress)
	r.Get("/notifications", h.notifications)
}

// statusOf maps hook errors onto HTTP codes. Backend failures never get
// here since the hooks absorb them.
func statusOf(err error) int {
	var fe *reconcile.FallbackError
	switch {
	case errors.Is(err, catalog.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateID), errors.Is(err, store.ErrEmptyID):
		return http.StatusConflict
	case errors.As(err, &fe):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errString(err error) *string {
	if err == nil {
		return nil
	}
	s := err.Error()
	return &s
}

type catalogView struct {
	Products       []catalog.Product             `json:"products"`
	RecentlyAdded  *string                       `json:"recentlyAdded"`
	Stats          stats.ProductStats            `json:"stats"`
	LowStockAlerts []catalog.StockAlert          `json:"lowStockAlerts"`
	Content        map[string]stats.ContentCount `json:"content"`
	Engagement     stats.EngagementTotals        `json:"engagement"`
	Loading        bool                          `json:"loading"`
	Error          *string                       `json:"error"`
}

func (h *DashboardHandler) catalog(w http.ResponseWriter, r *http.Request) {
	ps := h.Products.Items()
	vs := h.Videos.Items()
	view := catalogView{
		Products:       ps,
		Stats:          stats.Products(ps),
		LowStockAlerts: stats.LowStockAlerts(ps),
		Content:        stats.ProductContent(vs),
		Engagement:     stats.Engagement(vs),
		Loading:        h.Products.Loading(),
		Error:          errString(h.Products.Err()),
	}
	if id, ok := h.Products.RecentlyAdded(); ok {
		view.RecentlyAdded = &id
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *DashboardHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	// simulate=1: jalankan progress palsu dulu seperti form upload di UI,
	// tapi hanya untuk input yang valid
	if r.URL.Query().Get("simulate") == "1" {
		if err := in.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, p, ok := h.startUpload(w, r)
		if !ok {
			return
		}
		err := h.Simulator.Run(r.Context(), p)
		h.Progress.Finish(id)
		if err != nil {
			writeError(w, statusOf(err), err.Error())
			return
		}
	}
	res, err := h.Products.Create(r.Context(), in)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *DashboardHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch catalog.ProductPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.Products.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *DashboardHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	src := h.Products.Delete(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]reconcile.Source{"source": src})
}

func (h *DashboardHandler) refreshProducts(w http.ResponseWriter, r *http.Request) {
	src, err := h.Products.Fetch(r.Context())
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"source": src, "count": len(h.Products.Items())})
}

func (h *DashboardHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	var vs []catalog.VideoContent
	if pid := r.URL.Query().Get("productId"); pid != "" {
		vs = h.Videos.ByProduct(pid)
	} else {
		vs = h.Videos.Items()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"videos":     vs,
		"engagement": stats.Engagement(vs),
		"loading":    h.Videos.Loading(),
		"error":      errString(h.Videos.Err()),
	})
}

func (h *DashboardHandler) createVideo(w http.ResponseWriter, r *http.Request) {
	var in catalog.VideoInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.Videos.Create(r.Context(), in)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *DashboardHandler) updateVideo(w http.ResponseWriter, r *http.Request) {
	var patch catalog.VideoPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.Videos.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *DashboardHandler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	src := h.Videos.Delete(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]reconcile.Source{"source": src})
}

func (h *DashboardHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.Orders.Items()
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":  orders,
		"stats":   stats.Orders(orders),
		"loading": h.Orders.Loading(),
		"error":   errString(h.Orders.Err()),
	})
}

func (h *DashboardHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status catalog.OrderStatus `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.Orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *DashboardHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.Orders.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *DashboardHandler) money(w http.ResponseWriter, r *http.Request) {
	res, err := h.Snapshots.Money(r.Context())
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *DashboardHandler) social(w http.ResponseWriter, r *http.Request) {
	res, err := h.Snapshots.Social(r.Context())
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *DashboardHandler) analytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.Snapshots.Analytics(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// upload forwards the file to the backend while the upload's progress
// follows the bytes actually sent.
func (h *DashboardHandler) upload(w http.ResponseWriter, r *http.Request) {
	if h.Uploads == nil {
		writeError(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "multipart form expected")
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer f.Close()

	id, p, ok := h.startUpload(w, r)
	if !ok {
		return
	}
	body := transient.NewReader(f, hdr.Size, p)
	res, err := h.Uploads.UploadFile(r.Context(), catalog.UploadKind(r.FormValue("type")), hdr.Filename, body)
	h.Progress.Finish(id)
	if err != nil {
		h.Log.Warn("upload failed", zap.String("filename", hdr.Filename), zap.Error(err))
		code := statusOf(err)
		if code == http.StatusInternalServerError {
			code = http.StatusBadGateway
		}
		writeError(w, code, err.Error())
		return
	}
	h.Notifier.Notify(r.Context(), notify.Notification{
		Title:       "Upload Complete",
		Description: res.Filename + " has been uploaded.",
	})
	writeJSON(w, http.StatusOK, res)
}

// startUpload registers the run under the caller's uploadId (or a new one)
// and echoes it in X-Upload-Id so the client can poll its progress.
func (h *DashboardHandler) startUpload(w http.ResponseWriter, r *http.Request) (string, *transient.Progress, bool) {
	id, p, err := h.Progress.Start(r.URL.Query().Get("uploadId"))
	if errors.Is(err, transient.ErrUploadBusy) {
		writeError(w, http.StatusConflict, err.Error())
		return "", nil, false
	}
	w.Header().Set("X-Upload-Id", id)
	return id, p, true
}

func (h *DashboardHandler) uploadProgress(w http.ResponseWriter, r *http.Request) {
	st, ok := h.Progress.State(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown upload")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *DashboardHandler) notifications(w http.ResponseWriter, r *http.Request) {
	all := h.Recent.All()
	if all == nil {
		all = []notify.Notification{}
	}
	writeJSON(w, http.StatusOK, all)
}
