package cart

import (
	"context"
	"sync"

	"github.com/davidrenteria/shopvista-backend/internal/catalog"
	"github.com/davidrenteria/shopvista-backend/internal/pricing"
	"github.com/davidrenteria/shopvista-backend/internal/storage"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/davidrenteria/shopvista-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

const collection = "cart"

// Line is a denormalized cart entry. Product attributes are snapshotted at
// add time so the cart stays renderable even if the catalog changes or the
// next fetch fails.
type Line struct {
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

// Quote is the priced summary of the cart in the display currency.
type Quote struct {
	Subtotal  decimal.Decimal        `json:"subtotal"`
	Discount  decimal.Decimal        `json:"discount"`
	Total     decimal.Decimal        `json:"total"`
	ItemCount int                    `json:"item_count"`
	Offers    []pricing.AppliedOffer `json:"applied_offers"`
}

// EngineParams groups the cart engine dependencies.
type EngineParams struct {
	Storage   *storage.Adapter
	Converter *pricing.Converter
	Offers    *pricing.OfferPolicy
	Logger    *logger.Logger
	Metrics   *metrics.StorefrontMetrics
}

// Engine owns the cart state for the process. All mutations run under a
// single lock and write through to storage; a failed write keeps the
// in-memory state authoritative for the rest of the session.
type Engine struct {
	mu        sync.Mutex
	lines     []Line
	store     *storage.Adapter
	converter *pricing.Converter
	offers    *pricing.OfferPolicy
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// NewEngine builds the cart engine and hydrates it from storage. An
// unavailable store degrades to an empty cart rather than failing startup.
func NewEngine(ctx context.Context, params EngineParams) (*Engine, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage adapter is required")
	}
	if params.Converter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency converter is required")
	}
	if params.Offers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer policy is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}

	engine := &Engine{
		store:     params.Storage,
		converter: params.Converter,
		offers:    params.Offers,
		logg:      params.Logger,
		metrics:   params.Metrics,
	}

	var lines []Line
	if err := params.Storage.Load(ctx, storage.CartKey, &lines); err != nil {
		engine.logg.Error(engine.logg.WithCollection(ctx, collection), "cart.hydrate_failed", err)
	} else {
		for _, line := range lines {
			if line.ProductID <= 0 || line.Quantity <= 0 {
				continue
			}
			engine.lines = append(engine.lines, line)
		}
	}

	return engine, nil
}

// Add puts the product in the cart with the given quantity, incrementing the
// existing line when the product is already present.
func (e *Engine) Add(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if idx := e.indexOf(product.ID); idx >= 0 {
		e.lines[idx].Quantity += quantity
	} else {
		e.lines = append(e.lines, Line{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
			Category:  product.Category,
			Quantity:  quantity,
		})
	}

	e.metrics.IncMutation(collection, "add")
	e.persist(ctx)
	return nil
}

// ChangeQuantity applies a signed delta to an existing line. Dropping to zero
// or below removes the line. An unknown product id is a no-op.
func (e *Engine) ChangeQuantity(ctx context.Context, productID, delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(productID)
	if idx < 0 {
		return
	}

	e.lines[idx].Quantity += delta
	if e.lines[idx].Quantity <= 0 {
		e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
	}

	e.metrics.IncMutation(collection, "change_quantity")
	e.persist(ctx)
}

// Remove deletes the line for the product id. Unknown ids are a no-op.
func (e *Engine) Remove(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(productID)
	if idx < 0 {
		return
	}
	e.lines = append(e.lines[:idx], e.lines[idx+1:]...)

	e.metrics.IncMutation(collection, "remove")
	e.persist(ctx)
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil

	e.metrics.IncMutation(collection, "clear")
	e.persist(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (e *Engine) Items() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Totals prices the current cart: line prices are converted into the display
// currency, summed, and run through the offer policy.
func (e *Engine) Totals() (Quote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subtotal := decimal.Zero
	itemCount := 0
	for _, line := range e.lines {
		converted, err := e.converter.Convert(line.Price)
		if err != nil {
			return Quote{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "price cart line")
		}
		subtotal = subtotal.Add(converted.Mul(decimal.NewFromInt(int64(line.Quantity))))
		itemCount += line.Quantity
	}

	discount, offers := e.offers.Evaluate(subtotal)
	return Quote{
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal.Sub(discount),
		ItemCount: itemCount,
		Offers:    offers,
	}, nil
}

// persist writes the cart through to storage. Failures are logged and
// counted but never surfaced: the in-memory state stays authoritative.
func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, storage.CartKey, e.lines); err != nil {
		e.metrics.IncPersistenceFailure(collection)
		e.logg.Error(e.logg.WithCollection(ctx, collection), "cart.persist_failed", err)
	}
}

func (e *Engine) indexOf(productID int) int {
	for i, line := range e.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
