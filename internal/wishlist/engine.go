package wishlist

import (
	"context"
	"sync"

	"github.com/davidrenteria/shopvista-backend/internal/cart"
	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/storage"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/davidrenteria/shopvista-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const collection = "wishlist"

// Entry is a denormalized wishlist item. Like cart lines, product attributes
// are snapshotted at save time; a wishlist entry carries no quantity.
type Entry struct {
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
}

// EngineParams groups the wishlist engine dependencies.
type EngineParams struct {
	Storage *storage.Adapter
	Cart    *cart.Engine
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Engine owns the wishlist state for the process, with the same locking and
// write-through discipline as the cart engine.
type Engine struct {
	mu      sync.Mutex
	entries []Entry
	store   *storage.Adapter
	cart    *cart.Engine
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewEngine builds the wishlist engine and hydrates it from storage. An
// unavailable store degrades to an empty wishlist rather than failing startup.
func NewEngine(ctx context.Context, params EngineParams) (*Engine, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage adapter is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart engine is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}

	engine := &Engine{
		store:   params.Storage,
		cart:    params.Cart,
		logg:    params.Logger,
		metrics: params.Metrics,
	}

	var entries []Entry
	if err := params.Storage.Load(ctx, storage.WishlistKey, &entries); err != nil {
		engine.logg.Error(engine.logg.WithCollection(ctx, collection), "wishlist.hydrate_failed", err)
	} else {
		for _, entry := range entries {
			if entry.ProductID <= 0 {
				continue
			}
			engine.entries = append(engine.entries, entry)
		}
	}

	return engine, nil
}

// Toggle adds the product when absent and removes it when present. It
// reports whether the product ended up on the wishlist.
func (e *Engine) Toggle(ctx context.Context, product catalog.Product) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx := e.indexOf(product.ID); idx >= 0 {
		e.entries = append(e.entries[:idx], e.entries[idx+1:]...)
		e.metrics.IncMutation(collection, "toggle_off")
		e.persist(ctx)
		return false
	}

	e.entries = append(e.entries, Entry{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Category:  product.Category,
	})
	e.metrics.IncMutation(collection, "toggle_on")
	e.persist(ctx)
	return true
}

// Remove deletes the entry for the product id. Unknown ids are a no-op.
func (e *Engine) Remove(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(productID)
	if idx < 0 {
		return
	}
	e.entries = append(e.entries[:idx], e.entries[idx+1:]...)

	e.metrics.IncMutation(collection, "remove")
	e.persist(ctx)
}

// Clear empties the wishlist.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries = nil

	e.metrics.IncMutation(collection, "clear")
	e.persist(ctx)
}

// Items returns a copy of the wishlist entries in insertion order.
func (e *Engine) Items() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Contains reports whether a product is on the wishlist.
func (e *Engine) Contains(productID int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.indexOf(productID) >= 0
}

// MoveToCart adds the wishlisted product to the cart with the given quantity
// and then removes it from the wishlist. The two steps are not atomic: when
// the cart add fails the entry stays wishlisted.
func (e *Engine) MoveToCart(ctx context.Context, productID, quantity int) error {
	e.mu.Lock()
	idx := e.indexOf(productID)
	if idx < 0 {
		e.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "product is not wishlisted")
	}
	entry := e.entries[idx]
	e.mu.Unlock()

	if err := e.cart.Add(ctx, entry.product(), quantity); err != nil {
		return err
	}

	e.Remove(ctx, productID)
	e.metrics.IncMutation(collection, "move_to_cart")
	return nil
}

// MoveAll moves every wishlist entry to the cart with quantity one, in
// insertion order. Entries that fail to move stay wishlisted; failures are
// aggregated and the rest still move.
func (e *Engine) MoveAll(ctx context.Context) error {
	entries := e.Items()

	var errs error
	for _, entry := range entries {
		if err := e.cart.Add(ctx, entry.product(), 1); err != nil {
			errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "move wishlist entry"))
			continue
		}
		e.Remove(ctx, entry.ProductID)
	}

	if errs == nil {
		e.metrics.IncMutation(collection, "move_all")
	}
	return errs
}

func (entry Entry) product() catalog.Product {
	return catalog.Product{
		ID:       entry.ProductID,
		Title:    entry.Title,
		Price:    entry.Price,
		Image:    entry.Image,
		Category: entry.Category,
	}
}

// persist writes the wishlist through to storage. Failures are logged and
// counted but never surfaced.
func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, storage.WishlistKey, e.entries); err != nil {
		e.metrics.IncPersistenceFailure(collection)
		e.logg.Error(e.logg.WithCollection(ctx, collection), "wishlist.persist_failed", err)
	}
}

func (e *Engine) indexOf(productID int) int {
	for i, entry := range e.entries {
		if entry.ProductID == productID {
			return i
		}
	}
	return -1
}
