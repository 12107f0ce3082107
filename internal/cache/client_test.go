package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/inventory-admin-client/internal/obs"
)

type fakeFetcher struct {
	mu      sync.Mutex
	calls   atomic.Int64
	values  map[Tag]any
	err     error
	release chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, tag Tag) (any, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.values[tag], nil
}

func (f *fakeFetcher) set(tag Tag, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = make(map[Tag]any)
	}
	f.values[tag] = v
}

func (f *fakeFetcher) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeMutator struct {
	err   error
	calls atomic.Int64
}

func (m *fakeMutator) Mutate(ctx context.Context, kind MutationKind, payload any) (any, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return payload, nil
}

func newTestClient(f *fakeFetcher, m *fakeMutator) *Client {
	obs.InitLogger()
	return New(f, m, NewGraph())
}

func TestGetCachesUntilInvalidated(t *testing.T) {
	f := &fakeFetcher{}
	f.set(TagDropdown, "v1")
	c := newTestClient(f, &fakeMutator{})
	ctx := context.Background()

	v, err := c.Get(ctx, TagDropdown)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	f.set(TagDropdown, "v2")
	v, err = c.Get(ctx, TagDropdown)
	require.NoError(t, err)
	assert.Equal(t, "v1", v, "fresh entry must not refetch")
	assert.EqualValues(t, 1, f.calls.Load())

	c.Invalidate(TagDropdown)
	assert.True(t, c.Stale(TagDropdown))

	v, err = c.Get(ctx, TagDropdown)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.False(t, c.Stale(TagDropdown))
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestConcurrentReadersShareOneRefetch(t *testing.T) {
	f := &fakeFetcher{release: make(chan struct{})}
	f.set(TagDashboard, "fresh")
	c := newTestClient(f, &fakeMutator{})
	ctx := context.Background()

	const readers = 16
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get(ctx, TagDashboard)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}
	close(f.release)
	wg.Wait()

	assert.EqualValues(t, 1, f.calls.Load(), "stale entry must trigger exactly one refetch")
	for _, v := range results {
		assert.Equal(t, "fresh", v)
	}
}

func TestSuccessfulMutationMarksGraphTags(t *testing.T) {
	f := &fakeFetcher{}
	for _, tag := range []Tag{TagDropdown, TagVendorList, TagDashboard, TagProductList} {
		f.set(tag, string(tag))
	}
	c := newTestClient(f, &fakeMutator{})
	ctx := context.Background()

	for _, tag := range []Tag{TagDropdown, TagVendorList, TagDashboard, TagProductList} {
		_, err := c.Get(ctx, tag)
		require.NoError(t, err)
	}

	_, err := c.Mutate(ctx, MutationStockAdjust, "payload")
	require.NoError(t, err)

	assert.True(t, c.Stale(TagDropdown))
	assert.True(t, c.Stale(TagVendorList))
	assert.True(t, c.Stale(TagDashboard))
	assert.False(t, c.Stale(TagProductList), "stock adjust must not touch the product list")
}

func TestFailedMutationInvalidatesNothing(t *testing.T) {
	f := &fakeFetcher{}
	f.set(TagDropdown, "v1")
	m := &fakeMutator{err: errors.New("boom")}
	c := newTestClient(f, m)
	ctx := context.Background()

	_, err := c.Get(ctx, TagDropdown)
	require.NoError(t, err)

	_, err = c.Mutate(ctx, MutationStockAdjust, "payload")
	require.Error(t, err)
	assert.False(t, c.Stale(TagDropdown))
	assert.EqualValues(t, 1, m.calls.Load())
}

func TestFailedRefetchKeepsLastValueVisible(t *testing.T) {
	f := &fakeFetcher{}
	f.set(TagDropdown, "v1")
	c := newTestClient(f, &fakeMutator{})
	ctx := context.Background()

	_, err := c.Get(ctx, TagDropdown)
	require.NoError(t, err)

	c.Invalidate(TagDropdown)
	f.fail(errors.New("transport down"))

	v, err := c.Get(ctx, TagDropdown)
	require.Error(t, err)
	assert.Equal(t, "v1", v, "last snapshot stays visible on failed refetch")
	assert.True(t, c.Stale(TagDropdown), "entry stays stale until a refetch succeeds")
}

func TestSupersededFetchDiscarded(t *testing.T) {
	f := &fakeFetcher{release: make(chan struct{})}
	f.set(TagDropdown, "stale-response")
	c := newTestClient(f, &fakeMutator{})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Get(ctx, TagDropdown)
	}()

	// wait for the fetch to be in flight, then supersede it
	for f.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	c.Invalidate(TagDropdown)
	f.set(TagDropdown, "newer")
	close(f.release)
	<-done

	_, discards := c.Metrics()
	assert.EqualValues(t, 1, discards, "in-flight response must be discarded after invalidation")

	v, err := c.Get(ctx, TagDropdown)
	require.NoError(t, err)
	assert.Equal(t, "newer", v)
}

func TestOnApplyObservesAcceptedValues(t *testing.T) {
	f := &fakeFetcher{}
	f.set(TagDropdown, "v1")
	c := newTestClient(f, &fakeMutator{})

	var seen []any
	c.OnApply(TagDropdown, func(seq uint64, v any) {
		seen = append(seen, v)
	})

	_, err := c.Get(context.Background(), TagDropdown)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "v1", seen[0])
}
