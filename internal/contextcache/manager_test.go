package contextcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/allwaveav/boq-backend/internal/catalog"
	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCreator struct {
	calls   []*entity.CreateCacheRequest
	handles []string
	err     error
}

func (f *fakeCreator) CreateCachedContext(_ context.Context, req *entity.CreateCacheRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	handle := "cachedContents/test"
	if len(f.handles) > 0 {
		handle = f.handles[0]
		f.handles = f.handles[1:]
	}
	return handle, nil
}

func newTestManager(t *testing.T, creator Creator) (*Manager, *time.Time) {
	t.Helper()

	cat, err := catalog.New([]entity.CatalogProduct{{
		Brand: "Samsung", Model: "QM85C", Description: "Display", Category: "Display", Price: 2800,
	}})
	require.NoError(t, err)

	mgr, err := NewManager(NewMemoryStore(), creator, cat, Config{
		ServerTTL:   time.Hour,
		LocalWindow: 50 * time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)

	clock := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return clock }
	return mgr, &clock
}

func TestNewManager_RejectsWindowNotSmallerThanTTL(t *testing.T) {
	cat, err := catalog.New([]entity.CatalogProduct{{Brand: "b", Model: "m", Category: "c"}})
	require.NoError(t, err)

	_, err = NewManager(NewMemoryStore(), &fakeCreator{}, cat, Config{
		ServerTTL:   time.Hour,
		LocalWindow: time.Hour,
	}, zap.NewNop())
	assert.Error(t, err)
}

func TestGetOrRefresh_CreatesOnceAndReuses(t *testing.T) {
	creator := &fakeCreator{}
	mgr, _ := newTestManager(t, creator)
	ctx := context.Background()

	first := mgr.GetOrRefresh(ctx, "gemini-1.5-pro-002")
	second := mgr.GetOrRefresh(ctx, "gemini-1.5-pro-002")
	third := mgr.GetOrRefresh(ctx, "gemini-1.5-pro-002")

	assert.Equal(t, "cachedContents/test", first)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Len(t, creator.calls, 1)

	req := creator.calls[0]
	assert.Equal(t, "gemini-1.5-pro-002", req.Model)
	assert.Equal(t, time.Hour, req.TTL)
	assert.Contains(t, req.Contents, "QM85C")
	assert.Contains(t, req.SystemInstruction, "AV Solutions Architect")
}

func TestGetOrRefresh_RecreatesAfterLocalExpiry(t *testing.T) {
	creator := &fakeCreator{handles: []string{"cachedContents/one", "cachedContents/two"}}
	mgr, clock := newTestManager(t, creator)
	ctx := context.Background()

	first := mgr.GetOrRefresh(ctx, "m")
	assert.Equal(t, "cachedContents/one", first)

	// Still inside the local window: same handle.
	*clock = clock.Add(49 * time.Minute)
	assert.Equal(t, "cachedContents/one", mgr.GetOrRefresh(ctx, "m"))

	// Past the local window: a fresh context is created.
	*clock = clock.Add(2 * time.Minute)
	second := mgr.GetOrRefresh(ctx, "m")
	assert.Equal(t, "cachedContents/two", second)
	assert.Len(t, creator.calls, 2)
}

func TestGetOrRefresh_CreationFailureDegradesSilently(t *testing.T) {
	creator := &fakeCreator{err: errors.New("quota exceeded")}
	mgr, _ := newTestManager(t, creator)
	ctx := context.Background()

	handle := mgr.GetOrRefresh(ctx, "m")
	assert.Empty(t, handle)
	assert.Equal(t, 1, mgr.failures)

	// The failure is retried on the next call rather than remembered forever.
	handle = mgr.GetOrRefresh(ctx, "m")
	assert.Empty(t, handle)
	assert.Equal(t, 2, mgr.failures)
	assert.Len(t, creator.calls, 2)
}

func TestGetOrRefresh_RecoversAfterFailure(t *testing.T) {
	creator := &fakeCreator{err: errors.New("transient")}
	mgr, _ := newTestManager(t, creator)
	ctx := context.Background()

	assert.Empty(t, mgr.GetOrRefresh(ctx, "m"))

	creator.err = nil
	handle := mgr.GetOrRefresh(ctx, "m")
	assert.Equal(t, "cachedContents/test", handle)
	assert.Zero(t, mgr.failures)
}

func TestGetOrRefresh_DiscardsCorruptRecord(t *testing.T) {
	creator := &fakeCreator{}
	mgr, _ := newTestManager(t, creator)
	ctx := context.Background()

	require.NoError(t, mgr.store.Set(ctx, storeKeyPrefix+"m", "{not json"))

	handle := mgr.GetOrRefresh(ctx, "m")
	assert.Equal(t, "cachedContents/test", handle)
	assert.Len(t, creator.calls, 1)
}

func TestGetOrRefresh_SeparateHandlesPerModel(t *testing.T) {
	creator := &fakeCreator{handles: []string{"cachedContents/pro", "cachedContents/flash"}}
	mgr, _ := newTestManager(t, creator)
	ctx := context.Background()

	pro := mgr.GetOrRefresh(ctx, "gemini-1.5-pro-002")
	flash := mgr.GetOrRefresh(ctx, "gemini-2.5-flash")

	assert.Equal(t, "cachedContents/pro", pro)
	assert.Equal(t, "cachedContents/flash", flash)
	assert.Len(t, creator.calls, 2)
}
