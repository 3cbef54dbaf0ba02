package reconcile

import (
	"context"

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
)

type ProductGateway interface {
	ListProducts(ctx context.Context, page, limit int) ([]catalog.Product, apiclient.Pagination, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Products struct {
	*collection[catalog.Product]
	gw ProductGateway
}

func NewProducts(gw ProductGateway, cfg Config) *Products {
	return &Products{collection: newCollection[catalog.Product]("products", cfg), gw: gw}
}

func (p *Products) Fetch(ctx context.Context) (Source, error) {
	return p.fetch(ctx,
		func(ctx context.Context) ([]catalog.Product, error) { return listAll(ctx, p.gw.ListProducts) },
		func(ds *fallback.Dataset) []catalog.Product { return ds.Products },
	)
}

func (p *Products) Create(ctx context.Context, in catalog.ProductInput) (Result[catalog.Product], error) {
	if err := in.Validate(); err != nil {
		p.fail(ctx, err)
		return Result[catalog.Product]{}, err
	}

	src := SourceRemote
	created, err := p.gw.CreateProduct(ctx, in)
	if err != nil {
		p.remoteFailed("create product", err)
		created, src = in.Product(p.ids.Next(), p.createdAt()), SourceLocal
	}
	if err := p.add(created); err != nil {
		p.fail(ctx, err)
		return Result[catalog.Product]{}, err
	}

	p.notify(ctx, notify.Notification{
		Title: pick(src, "Product Added", "Product Added (Local)"),
		Description: pick(src,
			in.Name+" has been added to your catalog.",
			in.Name+" has been added locally. Connect to backend to persist."),
	})
	return Result[catalog.Product]{Value: created, Source: src}, nil
}

// Update replaces the product with the backend's copy, or merges the patch
// locally when the backend is unreachable. Nothing is rolled back.
func (p *Products) Update(ctx context.Context, id string, patch catalog.ProductPatch) (Result[catalog.Product], error) {
	if err := patch.Validate(); err != nil {
		p.fail(ctx, err)
		return Result[catalog.Product]{}, err
	}

	src := SourceRemote
	updated, err := p.gw.UpdateProduct(ctx, id, patch)
	if err == nil {
		err = p.replace(id, updated)
	} else {
		p.remoteFailed("update product", err)
		src = SourceLocal
		updated, err = p.merge(id, patch.Apply)
	}
	if err != nil {
		p.fail(ctx, err)
		return Result[catalog.Product]{}, err
	}

	p.notify(ctx, notify.Notification{
		Title: pick(src, "Product Updated", "Product Updated (Local)"),
		Description: pick(src,
			"Product has been successfully updated.",
			"Product updated locally. Connect to backend to persist."),
	})
	return Result[catalog.Product]{Value: updated, Source: src}, nil
}

// Delete always removes the product locally, whatever the backend says.
func (p *Products) Delete(ctx context.Context, id string) Source {
	prev, _ := p.store.Find(id)

	src := SourceRemote
	if err := p.gw.DeleteProduct(ctx, id); err != nil {
		p.remoteFailed("delete product", err)
		src = SourceLocal
	}
	p.store.Remove(id)

	p.notify(ctx, notify.Notification{
		Title: pick(src, "Product Deleted", "Product Deleted (Local)"),
		Description: pick(src,
			prev.Name+" has been removed from your catalog.",
			prev.Name+" removed locally. Connect to backend to persist."),
		Variant: notify.VariantDestructive,
	})
	return src
}
