package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
	"github.com/ariefcatur/go-seller-dashboard/internal/backend"
	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

const defaultPageSize = 20

// APIHandler serves the seller REST API (envelope responses) under /api.
type APIHandler struct {
	Svc *backend.Service
	Log *zap.Logger
}

func NewAPIHandler(svc *backend.Service, log *zap.Logger) *APIHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIHandler{Svc: svc, Log: log}
}

func (h *APIHandler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Post("/products", h.createProduct)
		r.Get("/products/{id}", h.getProduct)
		r.Put("/products/{id}", h.updateProduct)
		r.Delete("/products/{id}", h.deleteProduct)

		r.Get("/video-content", h.listVideos)
		r.Post("/video-content", h.createVideo)
		r.Put("/video-content/{id}", h.updateVideo)
		r.Delete("/video-content/{id}", h.deleteVideo)

		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.getOrder)
		r.Patch("/orders/{id}/status", h.updateOrderStatus)

		r.Get("/money", h.money)
		r.Get("/social-metrics", h.social)
		r.Put("/social-metrics", h.updateSocial)
		r.Get("/analytics", h.analytics)

		r.Post("/upload", h.upload)
	})
}

// ---- envelope helpers ----

func ok[T any](w http.ResponseWriter, code int, v T) {
	writeJSON(w, code, apiclient.Response[T]{Success: true, Data: &v})
}

func paged[T any](w http.ResponseWriter, items []T, page, limit, total int) {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, apiclient.Paginated[T]{
		Success:    true,
		Data:       items,
		Pagination: apiclient.Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages},
	})
}

func fail(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, apiclient.Response[struct{}]{Message: msg, Code: errCode})
}

func (h *APIHandler) failErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalid):
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, backend.ErrNotFound):
		fail(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, backend.ErrAlreadyExists):
		fail(w, http.StatusConflict, "CONFLICT", err.Error())
	default:
		h.Log.Error("api request failed", zap.Error(err))
		fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	}
}

func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, min(limit, 100)
}

// ---- products ----

func (h *APIHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	items, total, err := h.Svc.ListProducts(r.Context(), page, limit)
	if err != nil {
		h.failErr(w, err)
		return
	}
	paged(w, items, page, limit, total)
}

func (h *APIHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, p)
}

func (h *APIHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := decode(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	p, err := h.Svc.CreateProduct(r.Context(), in)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusCreated, p)
}

func (h *APIHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch catalog.ProductPatch
	if err := decode(r, &patch); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	p, err := h.Svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, p)
}

func (h *APIHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Svc.DeleteProduct(r.Context(), id); err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, map[string]string{"id": id})
}

// ---- video content ----

func (h *APIHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	vs, err := h.Svc.ListVideos(r.Context(), r.URL.Query().Get("productId"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	if vs == nil {
		vs = []catalog.VideoContent{}
	}
	ok(w, http.StatusOK, vs)
}

func (h *APIHandler) createVideo(w http.ResponseWriter, r *http.Request) {
	var in catalog.VideoInput
	if err := decode(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	v, err := h.Svc.CreateVideo(r.Context(), in)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusCreated, v)
}

func (h *APIHandler) updateVideo(w http.ResponseWriter, r *http.Request) {
	var patch catalog.VideoPatch
	if err := decode(r, &patch); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	v, err := h.Svc.UpdateVideo(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, v)
}

func (h *APIHandler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Svc.DeleteVideo(r.Context(), id); err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, map[string]string{"id": id})
}

// ---- orders ----

func (h *APIHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	items, total, err := h.Svc.ListOrders(r.Context(), page, limit)
	if err != nil {
		h.failErr(w, err)
		return
	}
	paged(w, items, page, limit, total)
}

func (h *APIHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Svc.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, o)
}

func (h *APIHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in catalog.OrderInput
	if err := decode(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	o, err := h.Svc.CreateOrder(r.Context(), in)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusCreated, o)
}

func (h *APIHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status catalog.OrderStatus `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	o, err := h.Svc.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, o)
}

// ---- aggregates ----

func (h *APIHandler) money(w http.ResponseWriter, r *http.Request) {
	m, err := h.Svc.Money(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, m)
}

func (h *APIHandler) social(w http.ResponseWriter, r *http.Request) {
	m, err := h.Svc.Social(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, m)
}

func (h *APIHandler) updateSocial(w http.ResponseWriter, r *http.Request) {
	var m catalog.SocialMetrics
	if err := decode(r, &m); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	m, err := h.Svc.UpdateSocial(r.Context(), m)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, m)
}

func (h *APIHandler) analytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := h.Svc.Analytics(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, a)
}

const maxUploadMemory = 32 << 20

func (h *APIHandler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "multipart form expected")
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return
	}
	defer f.Close()

	res, err := h.Svc.Upload(r.Context(), catalog.UploadKind(r.FormValue("type")), hdr.Filename, f)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, http.StatusOK, res)
}
