// Package contextcache manages the server-side Gemini context cache: a
// reusable bundle of system instruction plus reference catalog, referenced
// by handle so the catalog is not re-sent on every generation call.
package contextcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/allwaveav/boq-backend/internal/catalog"
	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SystemInstruction is the persona baked into every cached context. The
// inline fallback path prepends the same text to the prompt instead.
const SystemInstruction = `You are a world-class, Senior AV Solutions Architect (CTS-D Certified) with 20 years of experience. Your goal is to generate a **100% production-ready, logically flawless Bill of Quantities (BOQ)** that adheres strictly to AVIXA standards and User Brand Requests.

**CUSTOM PRODUCT DATABASE (Priority Source):**
A JSON list of available products is provided in this context. Check this first.

**MANDATORY RULES:**
1.  **BRAND LOCK:** Strictly adhere to requested brands.
2.  **LOGICAL SIGNAL FLOW:** Every Source needs a Sink and connection.
3.  **DATABASE PRIORITY:** Prefer items from the provided database.
4.  **JUSTIFICATION:** Populate 'keyRemarks' with technical reasoning.
`

// CatalogMessage wraps the serialized catalog for inclusion in a cached
// context or an inline fallback prompt.
func CatalogMessage(payload string) string {
	return "Here is the Custom Product Database you must use:\n" + payload
}

const storeKeyPrefix = "gemini_boq_cache::"

// Creator creates a server-side cached context and returns its handle.
type Creator interface {
	CreateCachedContext(ctx context.Context, req *entity.CreateCacheRequest) (string, error)
}

// Config controls cache lifetimes. LocalWindow must be strictly smaller than
// ServerTTL so a handle nearing server-side expiry is never handed out.
type Config struct {
	ServerTTL   time.Duration
	LocalWindow time.Duration
}

// record is the persisted (handle, expiry) pair, one per model.
type record struct {
	Handle    string    `json:"handle"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Manager owns the process-wide cache handle lifecycle: lazy creation, reuse
// within the local window, recreation on expiry, and silent degradation on
// creation failure.
type Manager struct {
	mu       sync.Mutex
	store    Store
	creator  Creator
	catalog  *catalog.Catalog
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
	failures int // consecutive creation failures, for operator visibility
}

func NewManager(store Store, creator Creator, cat *catalog.Catalog, cfg Config, logger *zap.Logger) (*Manager, error) {
	if cfg.LocalWindow >= cfg.ServerTTL {
		return nil, fmt.Errorf("local reuse window (%s) must be smaller than server TTL (%s)", cfg.LocalWindow, cfg.ServerTTL)
	}
	return &Manager{
		store:   store,
		creator: creator,
		catalog: cat,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// GetOrRefresh returns a usable cache handle for the model, creating one if
// the stored record is absent or past its local expiry. An empty string
// signals a miss: creation failed and callers must fall back to inlining the
// catalog. Creation failures are never surfaced as errors.
func (m *Manager) GetOrRefresh(ctx context.Context, modelID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := storeKeyPrefix + modelID

	if handle := m.validHandle(ctx, key); handle != "" {
		ctxzap.Debug(ctx, "reusing existing context cache",
			zap.String("model", modelID),
			zap.String("cache_handle", handle),
		)
		return handle
	}

	ctxzap.Info(ctx, "creating new context cache", zap.String("model", modelID))

	handle, err := m.creator.CreateCachedContext(ctx, &entity.CreateCacheRequest{
		Model:             modelID,
		DisplayName:       "boq-catalog-" + uuid.New().String(),
		SystemInstruction: SystemInstruction,
		Contents:          CatalogMessage(m.catalog.PromptPayload()),
		TTL:               m.cfg.ServerTTL,
	})
	if err != nil {
		// Soft failure: clear any stale record and degrade to the
		// inline-catalog path. Quota errors land here too.
		m.failures++
		ctxzap.Warn(ctx, "failed to create context cache, falling back to inline catalog",
			zap.String("model", modelID),
			zap.Int("consecutive_failures", m.failures),
			zap.Error(err),
		)
		if rerr := m.store.Remove(ctx, key); rerr != nil {
			ctxzap.Warn(ctx, "failed to clear stale cache record", zap.Error(rerr))
		}
		return ""
	}

	m.failures = 0
	rec := record{
		Handle:    handle,
		ExpiresAt: m.now().Add(m.cfg.LocalWindow),
	}
	if err := m.persist(ctx, key, rec); err != nil {
		ctxzap.Warn(ctx, "failed to persist cache record", zap.Error(err))
		// The handle is still valid server-side for this call.
	}

	ctxzap.Info(ctx, "context cache created",
		zap.String("model", modelID),
		zap.String("cache_handle", handle),
		zap.Time("local_expiry", rec.ExpiresAt),
	)
	return handle
}

// validHandle returns the stored handle if it has not passed local expiry,
// removing expired or corrupt records along the way.
func (m *Manager) validHandle(ctx context.Context, key string) string {
	value, err := m.store.Get(ctx, key)
	if err != nil {
		ctxzap.Warn(ctx, "failed to read cache record", zap.Error(err))
		return ""
	}
	if value == "" {
		return ""
	}

	var rec record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		ctxzap.Warn(ctx, "corrupt cache record, discarding", zap.Error(err))
		_ = m.store.Remove(ctx, key)
		return ""
	}

	if !m.now().Before(rec.ExpiresAt) {
		ctxzap.Info(ctx, "context cache expired locally",
			zap.String("cache_handle", rec.Handle),
			zap.Time("expired_at", rec.ExpiresAt),
		)
		if err := m.store.Remove(ctx, key); err != nil {
			ctxzap.Warn(ctx, "failed to remove expired cache record", zap.Error(err))
		}
		return ""
	}

	return rec.Handle
}

func (m *Manager) persist(ctx context.Context, key string, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}
	return m.store.Set(ctx, key, string(data))
}
