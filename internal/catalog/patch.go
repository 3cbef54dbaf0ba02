package catalog

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name      *string        `json:"name,omitempty" validate:"omitempty,notblank"`
	Category  *string        `json:"category,omitempty"`
	Price     *float64       `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock     *int           `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Status    *ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=active draft out-of-stock"`
	Images    *int           `json:"images,omitempty" validate:"omitempty,gte=0"`
	Reels     *int           `json:"reels,omitempty" validate:"omitempty,gte=0"`
	CreatedAt *string        `json:"createdAt,omitempty"`
}

func (p ProductPatch) Validate() error { return check(p) }

// Apply shallow-merges the patch onto p. Identity is never touched.
func (p ProductPatch) Apply(dst Product) Product {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Images != nil {
		dst.Images = *p.Images
	}
	if p.Reels != nil {
		dst.Reels = *p.Reels
	}
	if p.CreatedAt != nil {
		dst.CreatedAt = *p.CreatedAt
	}
	return dst
}

type VideoPatch struct {
	Title      *string      `json:"title,omitempty" validate:"omitempty,notblank"`
	Type       *VideoType   `json:"type,omitempty" validate:"omitempty,oneof=video reel"`
	Thumbnail  *string      `json:"thumbnail,omitempty"`
	Duration   *int         `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Views      *int         `json:"views,omitempty" validate:"omitempty,gte=0"`
	Likes      *int         `json:"likes,omitempty" validate:"omitempty,gte=0"`
	Comments   *int         `json:"comments,omitempty" validate:"omitempty,gte=0"`
	Shares     *int         `json:"shares,omitempty" validate:"omitempty,gte=0"`
	Reach      *int         `json:"reach,omitempty" validate:"omitempty,gte=0"`
	UploadDate *string      `json:"uploadDate,omitempty"`
	Status     *VideoStatus `json:"status,omitempty" validate:"omitempty,oneof=published draft processing"`
	ProductID  *string      `json:"productId,omitempty"`
}

func (p VideoPatch) Validate() error { return check(p) }

func (p VideoPatch) Apply(dst VideoContent) VideoContent {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.Thumbnail != nil {
		dst.Thumbnail = *p.Thumbnail
	}
	if p.Duration != nil {
		dst.Duration = *p.Duration
	}
	if p.Views != nil {
		dst.Views = *p.Views
	}
	if p.Likes != nil {
		dst.Likes = *p.Likes
	}
	if p.Comments != nil {
		dst.Comments = *p.Comments
	}
	if p.Shares != nil {
		dst.Shares = *p.Shares
	}
	if p.Reach != nil {
		dst.Reach = *p.Reach
	}
	if p.UploadDate != nil {
		dst.UploadDate = *p.UploadDate
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.ProductID != nil {
		dst.ProductID = *p.ProductID
	}
	return dst
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }
