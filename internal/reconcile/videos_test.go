package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
)

func newVideos(t *testing.T, gw *fakeBackend) (*Videos, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder(50)
	v := NewVideos(gw, testConfig(rec))
	t.Cleanup(v.Close)
	return v, rec
}

func TestVideosByProduct(t *testing.T) {
	gw := &fakeBackend{videos: []catalog.VideoContent{
		{ID: "a", ProductID: "1"},
		{ID: "b", ProductID: "1"},
		{ID: "c", ProductID: "2"},
	}}
	v, _ := newVideos(t, gw)
	_, err := v.Fetch(context.Background())
	require.NoError(t, err)

	got := v.ByProduct("1")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Empty(t, v.ByProduct("nope"))
}

func TestVideoLifecycleOffline(t *testing.T) {
	v, rec := newVideos(t, &fakeBackend{down: true})
	ctx := context.Background()

	src, err := v.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, src)
	before := len(v.Items())

	res, err := v.Create(ctx, catalog.VideoInput{Title: "Demo", Type: catalog.VideoTypeReel, Status: catalog.VideoDraft, ProductID: "1"})
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, res.Source)
	assert.Len(t, v.Items(), before+1)
	last, _ := rec.Last()
	assert.Equal(t, "Video Content Added (Local)", last.Title)
	assert.Equal(t, "Demo added locally. Connect to backend to persist.", last.Description)

	upd, err := v.Update(ctx, res.Value.ID, catalog.VideoPatch{Views: catalog.Ptr(42)})
	require.NoError(t, err)
	assert.Equal(t, 42, upd.Value.Views)
	assert.Equal(t, "Demo", upd.Value.Title)

	assert.Equal(t, SourceLocal, v.Delete(ctx, res.Value.ID))
	assert.Len(t, v.Items(), before)
	last, _ = rec.Last()
	assert.Equal(t, "Content Deleted (Local)", last.Title)
	assert.Equal(t, notify.VariantDestructive, last.Variant)
}

func TestVideoCreateRemote(t *testing.T) {
	v, rec := newVideos(t, &fakeBackend{})

	res, err := v.Create(context.Background(), catalog.VideoInput{Title: "Demo", Type: catalog.VideoTypeVideo, Status: catalog.VideoPublished})
	require.NoError(t, err)
	assert.Equal(t, "vid-1", res.Value.ID)
	id, ok := v.RecentlyAdded()
	assert.True(t, ok)
	assert.Equal(t, "vid-1", id)
	last, _ := rec.Last()
	assert.Equal(t, notify.Notification{Title: "Video Content Added", Description: "Demo has been added."}, last)
}
