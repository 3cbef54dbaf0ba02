package reconcile

import (
	"context"
	"fmt"

	"github.com/ariefcatur/go-seller-dashboard/internal/apiclient"
	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
)

type OrderGateway interface {
	ListOrders(ctx context.Context, page, limit int) ([]catalog.Order, apiclient.Pagination, error)
	UpdateOrderStatus(ctx context.Context, id string, status catalog.OrderStatus) (catalog.Order, error)
}

type Orders struct {
	*collection[catalog.Order]
	gw OrderGateway
}

func NewOrders(gw OrderGateway, cfg Config) *Orders {
	return &Orders{collection: newCollection[catalog.Order]("orders", cfg), gw: gw}
}

func (o *Orders) Fetch(ctx context.Context) (Source, error) {
	return o.fetch(ctx,
		func(ctx context.Context) ([]catalog.Order, error) { return listAll(ctx, o.gw.ListOrders) },
		func(ds *fallback.Dataset) []catalog.Order { return ds.Orders },
	)
}

func (o *Orders) UpdateStatus(ctx context.Context, id string, status catalog.OrderStatus) (Result[catalog.Order], error) {
	if !status.Valid() {
		err := fmt.Errorf("%w: unknown order status %q", catalog.ErrInvalid, status)
		o.fail(ctx, err)
		return Result[catalog.Order]{}, err
	}

	src := SourceRemote
	updated, err := o.gw.UpdateOrderStatus(ctx, id, status)
	if err == nil {
		err = o.replace(id, updated)
	} else {
		o.remoteFailed("update order status", err)
		src = SourceLocal
		updated, err = o.merge(id, func(cur catalog.Order) catalog.Order {
			cur.Status = status
			return cur
		})
	}
	if err != nil {
		o.fail(ctx, err)
		return Result[catalog.Order]{}, err
	}

	o.notify(ctx, notify.Notification{
		Title:       pick(src, "Order Status Updated", "Order Status Updated (Local)"),
		Description: fmt.Sprintf("Order %s status changed to %s.", id, status),
	})
	return Result[catalog.Order]{Value: updated, Source: src}, nil
}

func (o *Orders) Cancel(ctx context.Context, id string) (Result[catalog.Order], error) {
	return o.UpdateStatus(ctx, id, catalog.OrderCancelled)
}
