package reconcile

import (
	"context"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
	"github.com/ariefcatur/go-seller-dashboard/internal/stats"
)

type VideoGateway interface {
	ListVideoContent(ctx context.Context, productID string) ([]catalog.VideoContent, error)
	CreateVideoContent(ctx context.Context, in catalog.VideoInput) (catalog.VideoContent, error)
	UpdateVideoContent(ctx context.Context, id string, patch catalog.VideoPatch) (catalog.VideoContent, error)
	DeleteVideoContent(ctx context.Context, id string) error
}

type Videos struct {
	*collection[catalog.VideoContent]
	gw VideoGateway
}

func NewVideos(gw VideoGateway, cfg Config) *Videos {
	return &Videos{collection: newCollection[catalog.VideoContent]("video-content", cfg), gw: gw}
}

func (v *Videos) Fetch(ctx context.Context) (Source, error) {
	return v.fetch(ctx,
		func(ctx context.Context) ([]catalog.VideoContent, error) { return v.gw.ListVideoContent(ctx, "") },
		func(ds *fallback.Dataset) []catalog.VideoContent { return ds.VideoContent },
	)
}

// ByProduct filters the local list; it never calls the backend.
func (v *Videos) ByProduct(productID string) []catalog.VideoContent {
	return stats.VideosByProduct(v.store.Snapshot(), productID)
}

func (v *Videos) Create(ctx context.Context, in catalog.VideoInput) (Result[catalog.VideoContent], error) {
	if err := in.Validate(); err != nil {
		v.fail(ctx, err)
		return Result[catalog.VideoContent]{}, err
	}

	src := SourceRemote
	created, err := v.gw.CreateVideoContent(ctx, in)
	if err != nil {
		v.remoteFailed("create video content", err)
		created, src = in.Video(v.ids.Next(), v.createdAt()), SourceLocal
	}
	if err := v.add(created); err != nil {
		v.fail(ctx, err)
		return Result[catalog.VideoContent]{}, err
	}

	v.notify(ctx, notify.Notification{
		Title: pick(src, "Video Content Added", "Video Content Added (Local)"),
		Description: pick(src,
			in.Title+" has been added.",
			in.Title+" added locally. Connect to backend to persist."),
	})
	return Result[catalog.VideoContent]{Value: created, Source: src}, nil
}

func (v *Videos) Update(ctx context.Context, id string, patch catalog.VideoPatch) (Result[catalog.VideoContent], error) {
	if err := patch.Validate(); err != nil {
		v.fail(ctx, err)
		return Result[catalog.VideoContent]{}, err
	}

	src := SourceRemote
	updated, err := v.gw.UpdateVideoContent(ctx, id, patch)
	if err == nil {
		err = v.replace(id, updated)
	} else {
		v.remoteFailed("update video content", err)
		src = SourceLocal
		updated, err = v.merge(id, patch.Apply)
	}
	if err != nil {
		v.fail(ctx, err)
		return Result[catalog.VideoContent]{}, err
	}

	v.notify(ctx, notify.Notification{
		Title: pick(src, "Video Content Updated", "Video Content Updated (Local)"),
		Description: pick(src,
			"Video content has been successfully updated.",
			"Video content updated locally. Connect to backend to persist."),
	})
	return Result[catalog.VideoContent]{Value: updated, Source: src}, nil
}

func (v *Videos) Delete(ctx context.Context, id string) Source {
	prev, _ := v.store.Find(id)

	src := SourceRemote
	if err := v.gw.DeleteVideoContent(ctx, id); err != nil {
		v.remoteFailed("delete video content", err)
		src = SourceLocal
	}
	v.store.Remove(id)

	v.notify(ctx, notify.Notification{
		Title: pick(src, "Content Deleted", "Content Deleted (Local)"),
		Description: pick(src,
			prev.Title+" has been removed.",
			prev.Title+" removed locally. Connect to backend to persist."),
		Variant: notify.VariantDestructive,
	})
	return src
}
