package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   string
	name string
}

func (i item) Key() string { return i.id }

func ids(items []item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.id)
	}
	return out
}

func TestAppendKeepsOrderAndRejectsDuplicates(t *testing.T) {
	s := New[item]()
	require.NoError(t, s.Append(item{id: "1"}))
	require.NoError(t, s.Append(item{id: "2"}))

	assert.ErrorIs(t, s.Append(item{id: "1"}), ErrDuplicateID)
	assert.ErrorIs(t, s.Append(item{}), ErrEmptyID)
	assert.Equal(t, []string{"1", "2"}, ids(s.Snapshot()))
}

func TestResetOverwrites(t *testing.T) {
	s := New[item]()
	require.NoError(t, s.Append(item{id: "old"}))

	require.NoError(t, s.Reset([]item{{id: "a"}, {id: "b"}}))
	assert.Equal(t, []string{"a", "b"}, ids(s.Snapshot()))

	err := s.Reset([]item{{id: "x"}, {id: "x"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, []string{"a", "b"}, ids(s.Snapshot()), "failed reset leaves the list untouched")
}

func TestUpdateAndReplace(t *testing.T) {
	s := New[item]()
	require.NoError(t, s.Reset([]item{{id: "1", name: "a"}, {id: "2", name: "b"}}))

	require.NoError(t, s.Update("1", func(it item) item {
		it.name = "changed"
		return it
	}))
	got, ok := s.Find("1")
	require.True(t, ok)
	assert.Equal(t, "changed", got.name)

	assert.ErrorIs(t, s.Update("missing", func(it item) item { return it }), ErrNotFound)
	assert.ErrorIs(t, s.Replace("1", item{id: "2"}), ErrDuplicateID)

	require.NoError(t, s.Replace("2", item{id: "srv-2", name: "server"}))
	assert.Equal(t, []string{"1", "srv-2"}, ids(s.Snapshot()))
}

func TestRemove(t *testing.T) {
	s := New[item]()
	require.NoError(t, s.Reset([]item{{id: "1"}, {id: "2"}, {id: "3"}}))

	assert.True(t, s.Remove("2"))
	assert.False(t, s.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, ids(s.Snapshot()))
	_, ok := s.Find("2")
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New[item]()
	require.NoError(t, s.Append(item{id: "1", name: "a"}))

	snap := s.Snapshot()
	snap[0].name = "mutated"

	got, _ := s.Find("1")
	assert.Equal(t, "a", got.name)
}

func TestFilterPreservesOrder(t *testing.T) {
	s := New[item]()
	require.NoError(t, s.Reset([]item{{id: "1", name: "x"}, {id: "2", name: "y"}, {id: "3", name: "x"}}))

	got := s.Filter(func(it item) bool { return it.name == "x" })
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestOnChange(t *testing.T) {
	s := New[item]()
	var sizes []int
	s.OnChange(func(snap []item) { sizes = append(sizes, len(snap)) })

	require.NoError(t, s.Append(item{id: "1"}))
	require.NoError(t, s.Append(item{id: "2"}))
	s.Remove("1")
	s.Remove("nope")

	assert.Equal(t, []int{1, 2, 1}, sizes)
}

func TestConcurrentAppendsStayUnique(t *testing.T) {
	s := New[item]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Append(item{id: fmt.Sprintf("id-%d", n%25)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, s.Len())
}
