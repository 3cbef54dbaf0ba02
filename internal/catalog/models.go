package catalog

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

type Product struct {
	BackendID string        `json:"_id,omitempty" yaml:"_id,omitempty"`
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Category  string        `json:"category" yaml:"category"`
	Price     float64       `json:"price" yaml:"price"`
	Stock     int           `json:"stock" yaml:"stock"`
	Status    ProductStatus `json:"status" yaml:"status"`
	Images    int           `json:"images" yaml:"images"`
	Reels     int           `json:"reels" yaml:"reels"`
	CreatedAt string        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string        `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (p Product) Key() string { return p.ID }

type VideoContent struct {
	BackendID  string      `json:"_id,omitempty" yaml:"_id,omitempty"`
	ID         string      `json:"id" yaml:"id"`
	Title      string      `json:"title" yaml:"title"`
	Type       VideoType   `json:"type" yaml:"type"`
	Thumbnail  string      `json:"thumbnail" yaml:"thumbnail"`
	Duration   int         `json:"duration" yaml:"duration"` // detik
	Views      int         `json:"views" yaml:"views"`
	Likes      int         `json:"likes" yaml:"likes"`
	Comments   int         `json:"comments" yaml:"comments"`
	Shares     int         `json:"shares" yaml:"shares"`
	Reach      int         `json:"reach" yaml:"reach"`
	UploadDate string      `json:"uploadDate" yaml:"uploadDate"`
	Status     VideoStatus `json:"status" yaml:"status"`
	ProductID  string      `json:"productId" yaml:"productId"` // weak ref, tidak ada cascade delete
	CreatedAt  string      `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt  string      `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (v VideoContent) Key() string { return v.ID }

type Order struct {
	BackendID     string      `json:"_id,omitempty" yaml:"_id,omitempty"`
	ID            string      `json:"id" yaml:"id"`
	ProductName   string      `json:"productName" yaml:"productName"` // salinan, bukan referensi
	ProductID     string      `json:"productId,omitempty" yaml:"productId,omitempty"`
	CustomerName  string      `json:"customerName" yaml:"customerName"`
	CustomerEmail string      `json:"customerEmail,omitempty" yaml:"customerEmail,omitempty"`
	Status        OrderStatus `json:"status" yaml:"status"`
	Date          string      `json:"date" yaml:"date"`
	Amount        float64     `json:"amount" yaml:"amount"`
	Quantity      int         `json:"quantity" yaml:"quantity"`
	CreatedAt     string      `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt     string      `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (o Order) Key() string { return o.ID }

type IncomePoint struct {
	Month      string  `json:"month" yaml:"month"`
	Income     float64 `json:"income" yaml:"income"`
	Commission float64 `json:"commission" yaml:"commission"`
}

type MoneyData struct {
	TotalIncome   float64       `json:"totalIncome" yaml:"totalIncome"`
	Commission    float64       `json:"commission" yaml:"commission"`
	PendingPayout float64       `json:"pendingPayout" yaml:"pendingPayout"`
	IncomeHistory []IncomePoint `json:"incomeHistory" yaml:"incomeHistory"`
	UpdatedAt     string        `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

type SocialMetrics struct {
	Followers            int            `json:"followers" yaml:"followers"`
	TotalViews           int            `json:"totalViews" yaml:"totalViews"`
	TotalLikes           int            `json:"totalLikes" yaml:"totalLikes"`
	TotalShares          int            `json:"totalShares" yaml:"totalShares"`
	TotalReach           int            `json:"totalReach" yaml:"totalReach"`
	EngagementRate       float64        `json:"engagementRate" yaml:"engagementRate"`
	TopPerformingContent []VideoContent `json:"topPerformingContent" yaml:"topPerformingContent"`
	UpdatedAt            string         `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

type ProductSales struct {
	Name  string `json:"name" yaml:"name"`
	Sales int    `json:"sales" yaml:"sales"`
}

type CategoryShare struct {
	Category string  `json:"category" yaml:"category"`
	Value    float64 `json:"value" yaml:"value"`
}

type StockAlert struct {
	Name  string `json:"name" yaml:"name"`
	Stock int    `json:"stock" yaml:"stock"`
}

type Analytics struct {
	TotalSales      int             `json:"totalSales" yaml:"totalSales"`
	ConversionRate  float64         `json:"conversionRate" yaml:"conversionRate"`
	TopProducts     []ProductSales  `json:"topProducts" yaml:"topProducts"`
	SalesByCategory []CategoryShare `json:"salesByCategory" yaml:"salesByCategory"`
	LowStockAlerts  []StockAlert    `json:"lowStockAlerts" yaml:"lowStockAlerts"`
}

type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// ---- input (entity tanpa id/_id/createdAt) ----

type ProductInput struct {
	Name     string        `json:"name" validate:"required,notblank"`
	Category string        `json:"category"`
	Price    float64       `json:"price" validate:"gte=0"`
	Stock    int           `json:"stock" validate:"gte=0"`
	Status   ProductStatus `json:"status" validate:"oneof=active draft out-of-stock"`
	Images   int           `json:"images" validate:"gte=0"`
	Reels    int           `json:"reels" validate:"gte=0"`
}

func (in ProductInput) Validate() error { return check(in) }

// Product builds the entity for a given id and creation time.
func (in ProductInput) Product(id, createdAt string) Product {
	return Product{
		ID:        id,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Stock:     in.Stock,
		Status:    in.Status,
		Images:    in.Images,
		Reels:     in.Reels,
		CreatedAt: createdAt,
	}
}

type VideoInput struct {
	Title      string      `json:"title" validate:"required,notblank"`
	Type       VideoType   `json:"type" validate:"oneof=video reel"`
	Thumbnail  string      `json:"thumbnail"`
	Duration   int         `json:"duration" validate:"gte=0"`
	Views      int         `json:"views" validate:"gte=0"`
	Likes      int         `json:"likes" validate:"gte=0"`
	Comments   int         `json:"comments" validate:"gte=0"`
	Shares     int         `json:"shares" validate:"gte=0"`
	Reach      int         `json:"reach" validate:"gte=0"`
	UploadDate string      `json:"uploadDate"`
	Status     VideoStatus `json:"status" validate:"oneof=published draft processing"`
	ProductID  string      `json:"productId"`
}

func (in VideoInput) Validate() error { return check(in) }

func (in VideoInput) Video(id, createdAt string) VideoContent {
	return VideoContent{
		ID:         id,
		Title:      in.Title,
		Type:       in.Type,
		Thumbnail:  in.Thumbnail,
		Duration:   in.Duration,
		Views:      in.Views,
		Likes:      in.Likes,
		Comments:   in.Comments,
		Shares:     in.Shares,
		Reach:      in.Reach,
		UploadDate: in.UploadDate,
		Status:     in.Status,
		ProductID:  in.ProductID,
		CreatedAt:  createdAt,
	}
}

type OrderInput struct {
	ProductName   string      `json:"productName" validate:"required,notblank"`
	ProductID     string      `json:"productId,omitempty"`
	CustomerName  string      `json:"customerName" validate:"required,notblank"`
	CustomerEmail string      `json:"customerEmail,omitempty" validate:"omitempty,email"`
	Status        OrderStatus `json:"status" validate:"oneof=pending shipped delivered returned cancelled"`
	Date          string      `json:"date"`
	Amount        float64     `json:"amount" validate:"gte=0"`
	Quantity      int         `json:"quantity" validate:"gt=0"`
}

func (in OrderInput) Validate() error { return check(in) }

func (in OrderInput) Order(id, createdAt string) Order {
	return Order{
		ID:            id,
		ProductName:   in.ProductName,
		ProductID:     in.ProductID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Status:        in.Status,
		Date:          in.Date,
		Amount:        in.Amount,
		Quantity:      in.Quantity,
		CreatedAt:     createdAt,
	}
}
