package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Logical keys for the two persisted collections.
const (
	CartKey     = "cart"
	WishlistKey = "wishlist"
)

// KV is the durable key-value surface backing the adapter. pkg/redis.Client
// satisfies it; tests supply in-memory fakes.
type KV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	StateKey(name string) string
}

// Adapter persists the cart and wishlist collections as JSON blobs under
// fixed keys. Writes happen on every mutation; reads happen once at startup.
type Adapter struct {
	kv   KV
	logg *logger.Logger
}

// NewAdapter builds a persistence adapter over the given key-value store.
func NewAdapter(kv KV, logg *logger.Logger) (*Adapter, error) {
	if kv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "key-value store is required")
	}
	return &Adapter{kv: kv, logg: logg}, nil
}

// Save serializes the collection and writes it through to the store. A write
// failure is reported as storage-unavailable; callers log it and keep the
// in-memory state authoritative for the session.
func (a *Adapter) Save(ctx context.Context, key string, collection any) error {
	payload, err := json.Marshal(collection)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize collection")
	}
	if err := a.kv.Set(ctx, a.kv.StateKey(key), string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "persist collection")
	}
	return nil
}

// Load reads and deserializes a collection into dest. A missing key or an
// unparsable payload leaves dest untouched and returns nil: persisted state
// is best-effort and corrupt entries are repaired to empty rather than
// surfaced. Only store availability failures are returned.
func (a *Adapter) Load(ctx context.Context, key string, dest any) error {
	raw, err := a.kv.Get(ctx, a.kv.StateKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "load collection")
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		if a.logg != nil {
			warnCtx := a.logg.WithField(ctx, "key", key)
			a.logg.Warn(warnCtx, "storage.corrupt_state_discarded")
		}
		return nil
	}
	return nil
}
