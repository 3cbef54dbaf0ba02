package catalog

type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductDraft      ProductStatus = "draft"
	ProductOutOfStock ProductStatus = "out-of-stock"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductActive, ProductDraft, ProductOutOfStock:
		return true
	}
	return false
}

type VideoType string

const (
	VideoTypeVideo VideoType = "video"
	VideoTypeReel  VideoType = "reel"
)

func (t VideoType) Valid() bool {
	return t == VideoTypeVideo || t == VideoTypeReel
}

type VideoStatus string

const (
	VideoPublished  VideoStatus = "published"
	VideoDraft      VideoStatus = "draft"
	VideoProcessing VideoStatus = "processing"
)

func (s VideoStatus) Valid() bool {
	switch s {
	case VideoPublished, VideoDraft, VideoProcessing:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderReturned  OrderStatus = "returned"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses urutan yang dipakai dropdown status di dashboard.
var OrderStatuses = []OrderStatus{OrderPending, OrderShipped, OrderDelivered, OrderReturned, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CountsAsRevenue: cancelled & returned tidak dihitung ke revenue.
func (s OrderStatus) CountsAsRevenue() bool {
	return s != OrderCancelled && s != OrderReturned
}

// UploadKind is the "type" field of a file upload.
type UploadKind string

const (
	UploadImage UploadKind = "image"
	UploadVideo UploadKind = "video"
)

func (k UploadKind) Valid() bool {
	return k == UploadImage || k == UploadVideo
}
