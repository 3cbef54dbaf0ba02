// Package backend is the reference seller API the dashboard talks to.
// It backs cmd/mockapi and keeps data in memory or in Postgres.
package backend

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/store"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Table is an ordered collection of one entity type. Listing with a
// non-positive limit returns everything.
type Table[T store.Entity] interface {
	List(ctx context.Context, page, limit int) (items []T, total int, err error)
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, item T) error
	Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error)
	Delete(ctx context.Context, id string) error
}

// Documents holds the singleton aggregates (money, social metrics,
// analytics) as whole JSON documents.
type Documents interface {
	Load(ctx context.Context, name string, out any) error
	Save(ctx context.Context, name string, v any) error
}

const (
	DocMoney     = "money"
	DocSocial    = "social"
	DocAnalytics = "analytics"
)

type Repository struct {
	Products Table[catalog.Product]
	Videos   Table[catalog.VideoContent]
	Orders   Table[catalog.Order]
	Docs     Documents
}
