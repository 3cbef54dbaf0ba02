package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/fallback"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
)

func TestSnapshotsRemote(t *testing.T) {
	gw := &fakeBackend{money: catalog.MoneyData{TotalIncome: 99}}
	s := NewSnapshots(gw, Config{})
	ctx := context.Background()

	m, err := s.Money(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result[catalog.MoneyData]{Value: catalog.MoneyData{TotalIncome: 99}, Source: SourceRemote}, m)

	a, err := s.Analytics(ctx, "2024-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, 10, a.Value.TotalSales)

	soc, err := s.Social(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, soc.Value.Followers)
}

func TestSnapshotsFallback(t *testing.T) {
	s := NewSnapshots(&fakeBackend{down: true}, Config{})
	ds, err := fallback.Load()
	require.NoError(t, err)

	m, err := s.Money(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, m.Source)
	assert.Equal(t, ds.Money, m.Value)

	soc, err := s.Social(context.Background())
	require.NoError(t, err)
	assert.Len(t, soc.Value.TopPerformingContent, 3)
}

func TestSnapshotsFallbackFailure(t *testing.T) {
	rec := notify.NewRecorder(5)
	s := NewSnapshots(&fakeBackend{down: true}, Config{Notifier: rec, Fallback: fallback.Failing(errors.New("gone"))})

	_, err := s.Analytics(context.Background(), "", "")
	var fe *FallbackError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "fetch analytics", fe.Op)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.VariantDestructive, last.Variant)
}
