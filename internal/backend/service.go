package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/stats"
)

// Service owns validation, id assignment and timestamps; the repository
// only stores what it is given.
type Service struct {
	Repo *Repository
	Log  *zap.Logger
	Now  func() time.Time
}

func NewService(repo *Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Repo: repo, Log: log, Now: time.Now}
}

func (s *Service) stamp() string { return s.Now().UTC().Format(time.RFC3339) }

// Seed loads the dataset into an empty repository. Rows and documents that
// already exist are left alone, so seeding twice is harmless.
func (s *Service) Seed(ctx context.Context, ds *fallback.Dataset) error {
	for _, p := range ds.Products {
		if err := s.Repo.Products.Insert(ctx, p); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	for _, v := range ds.VideoContent {
		if err := s.Repo.Videos.Insert(ctx, v); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return fmt.Errorf("seed video %s: %w", v.ID, err)
		}
	}
	for _, o := range ds.Orders {
		if err := s.Repo.Orders.Insert(ctx, o); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
	}
	docs := map[string]any{DocMoney: ds.Money, DocSocial: ds.Social, DocAnalytics: ds.Analytics}
	for name, v := range docs {
		var existing map[string]any
		err := s.Repo.Docs.Load(ctx, name, &existing)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.Repo.Docs.Save(ctx, name, v); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	s.Log.Info("repository seeded",
		zap.Int("products", len(ds.Products)),
		zap.Int("videos", len(ds.VideoContent)),
		zap.Int("orders", len(ds.Orders)))
	return nil
}

// ---- products ----

func (s *Service) ListProducts(ctx context.Context, page, limit int) ([]catalog.Product, int, error) {
	return s.Repo.Products.List(ctx, page, limit)
}

func (s *Service) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	return s.Repo.Products.Get(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if err := in.Validate(); err != nil {
		return catalog.Product{}, err
	}
	p := in.Product(uuid.NewString(), s.stamp())
	p.BackendID = p.ID
	if err := s.Repo.Products.Insert(ctx, p); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	if err := patch.Validate(); err != nil {
		return catalog.Product{}, err
	}
	return s.Repo.Products.Update(ctx, id, func(cur catalog.Product) (catalog.Product, error) {
		next := patch.Apply(cur)
		next.UpdatedAt = s.stamp()
		return next, nil
	})
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.Repo.Products.Delete(ctx, id)
}

// ---- video content ----

// ListVideos returns every video, or only those of productID when set.
func (s *Service) ListVideos(ctx context.Context, productID string) ([]catalog.VideoContent, error) {
	vs, _, err := s.Repo.Videos.List(ctx, 0, 0)
	if err != nil || productID == "" {
		return vs, err
	}
	return stats.VideosByProduct(vs, productID), nil
}

func (s *Service) CreateVideo(ctx context.Context, in catalog.VideoInput) (catalog.VideoContent, error) {
	if err := in.Validate(); err != nil {
		return catalog.VideoContent{}, err
	}
	v := in.Video(uuid.NewString(), s.stamp())
	v.BackendID = v.ID
	if v.UploadDate == "" {
		v.UploadDate = s.Now().UTC().Format(time.DateOnly)
	}
	if err := s.Repo.Videos.Insert(ctx, v); err != nil {
		return catalog.VideoContent{}, err
	}
	return v, nil
}

func (s *Service) UpdateVideo(ctx context.Context, id string, patch catalog.VideoPatch) (catalog.VideoContent, error) {
	if err := patch.Validate(); err != nil {
		return catalog.VideoContent{}, err
	}
	return s.Repo.Videos.Update(ctx, id, func(cur catalog.VideoContent) (catalog.VideoContent, error) {
		next := patch.Apply(cur)
		next.UpdatedAt = s.stamp()
		return next, nil
	})
}

func (s *Service) DeleteVideo(ctx context.Context, id string) error {
	return s.Repo.Videos.Delete(ctx, id)
}

// ---- orders ----

func (s *Service) ListOrders(ctx context.Context, page, limit int) ([]catalog.Order, int, error) {
	return s.Repo.Orders.List(ctx, page, limit)
}

func (s *Service) GetOrder(ctx context.Context, id string) (catalog.Order, error) {
	return s.Repo.Orders.Get(ctx, id)
}

func (s *Service) CreateOrder(ctx context.Context, in catalog.OrderInput) (catalog.Order, error) {
	if err := in.Validate(); err != nil {
		return catalog.Order{}, err
	}
	o := in.Order("ORD-"+uuid.NewString()[:8], s.stamp())
	o.BackendID = o.ID
	if o.Date == "" {
		o.Date = s.Now().UTC().Format(time.DateOnly)
	}
	if err := s.Repo.Orders.Insert(ctx, o); err != nil {
		return catalog.Order{}, err
	}
	return o, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status catalog.OrderStatus) (catalog.Order, error) {
	if !status.Valid() {
		return catalog.Order{}, fmt.Errorf("%w: unknown order status %q", catalog.ErrInvalid, status)
	}
	return s.Repo.Orders.Update(ctx, id, func(cur catalog.Order) (catalog.Order, error) {
		cur.Status = status
		cur.UpdatedAt = s.stamp()
		return cur, nil
	})
}

// ---- aggregates ----

func (s *Service) Money(ctx context.Context) (catalog.MoneyData, error) {
	var m catalog.MoneyData
	err := s.Repo.Docs.Load(ctx, DocMoney, &m)
	return m, err
}

func (s *Service) Social(ctx context.Context) (catalog.SocialMetrics, error) {
	var m catalog.SocialMetrics
	err := s.Repo.Docs.Load(ctx, DocSocial, &m)
	return m, err
}

func (s *Service) UpdateSocial(ctx context.Context, m catalog.SocialMetrics) (catalog.SocialMetrics, error) {
	m.UpdatedAt = s.stamp()
	if err := s.Repo.Docs.Save(ctx, DocSocial, m); err != nil {
		return catalog.SocialMetrics{}, err
	}
	return m, nil
}

// Analytics returns the stored report with live low-stock alerts. A date
// range (YYYY-MM-DD, inclusive) recounts TotalSales from the orders.
func (s *Service) Analytics(ctx context.Context, startDate, endDate string) (catalog.Analytics, error) {
	var a catalog.Analytics
	if err := s.Repo.Docs.Load(ctx, DocAnalytics, &a); err != nil {
		return a, err
	}
	ps, _, err := s.Repo.Products.List(ctx, 0, 0)
	if err != nil {
		return a, err
	}
	a.LowStockAlerts = stats.LowStockAlerts(ps)

	if startDate == "" && endDate == "" {
		return a, nil
	}
	orders, _, err := s.Repo.Orders.List(ctx, 0, 0)
	if err != nil {
		return a, err
	}
	a.TotalSales = 0
	for _, o := range orders {
		if (startDate == "" || o.Date >= startDate) && (endDate == "" || o.Date <= endDate) {
			a.TotalSales += o.Quantity
		}
	}
	return a, nil
}

// Upload drains r and hands back where the file would be served from.
func (s *Service) Upload(_ context.Context, kind catalog.UploadKind, filename string, r io.Reader) (catalog.UploadResult, error) {
	if kind != catalog.UploadImage && kind != catalog.UploadVideo {
		return catalog.UploadResult{}, fmt.Errorf("%w: unknown upload type %q", catalog.ErrInvalid, kind)
	}
	base := filepath.Base(filename)
	if base == "." || base == "/" || base == "" {
		return catalog.UploadResult{}, fmt.Errorf("%w: filename is required", catalog.ErrInvalid)
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return catalog.UploadResult{}, err
	}
	name := uuid.NewString() + "-" + base
	s.Log.Info("file uploaded", zap.String("type", string(kind)), zap.String("filename", name), zap.Int64("bytes", n))
	return catalog.UploadResult{URL: "/uploads/" + name, Filename: name}, nil
}
