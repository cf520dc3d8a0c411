package book

import (
	"fmt"
	"sort"
)

// Book owns every SymbolBook plus the id registry. It is the
// single-writer core the service façade drives; all methods must be
// externally serialized.
type Book struct {
	symbols  map[string]*SymbolBook
	registry *Registry
	retire   func(*Order)
}

// NewBook creates an empty multi-symbol book. retire is invoked for
// every resting order the book removes (full fill or cancel) so the
// caller can recycle it; nil is allowed.
func NewBook(retire func(*Order)) *Book {
	if retire == nil {
		retire = func(*Order) {}
	}
	return &Book{
		symbols:  make(map[string]*SymbolBook),
		registry: NewRegistry(),
		retire:   retire,
	}
}

// symbolBook returns the book for symbol, creating it on first use.
// Symbols are never deleted once created.
func (b *Book) symbolBook(symbol string) *SymbolBook {
	sb, ok := b.symbols[symbol]
	if !ok {
		sb = NewSymbolBook()
		b.symbols[symbol] = sb
	}
	return sb
}

// Place validates o against the registry, crosses it against the
// opposite ladder and rests any remainder on its own side. The fills
// are returned in the exact order they were generated. The caller
// still owns o if it came back fully filled or rejected.
func (b *Book) Place(o *Order) ([]Fill, error) {
	if !b.registry.RegisterIfNew(o.ID) {
		return nil, ErrDuplicateOrderID
	}

	sb := b.symbolBook(o.Symbol)
	fills := b.match(sb, o)

	if o.Qty > 0 {
		sb.enqueue(o)
		b.registry.TrackLive(o.ID, locator{
			symbol: o.Symbol,
			side:   o.Side,
			price:  o.Price,
			order:  o,
		})
	}
	return fills, nil
}

// match sweeps the opposite ladder best price first, consuming each
// crossable level front to back. The sweep stops at the first level
// that no longer crosses; levels behind it can only be worse.
func (b *Book) match(sb *SymbolBook, o *Order) []Fill {
	var fills []Fill

	if o.Side == Buy {
		for o.Qty > 0 {
			lvl := sb.Asks.MinLevel()
			if lvl == nil || lvl.Price > o.Price {
				break
			}
			fills = b.consumeLevel(sb.Asks, lvl, o, fills)
		}
	} else {
		for o.Qty > 0 {
			lvl := sb.Bids.MaxLevel()
			if lvl == nil || lvl.Price < o.Price {
				break
			}
			fills = b.consumeLevel(sb.Bids, lvl, o, fills)
		}
	}
	return fills
}

// consumeLevel executes o against lvl in arrival order until either
// side is exhausted, then deletes the level if it emptied. Execution
// price is always the resting order's price.
func (b *Book) consumeLevel(ladder *RBTree, lvl *PriceLevel, o *Order, fills []Fill) []Fill {
	for o.Qty > 0 {
		rest := lvl.Head()
		if rest == nil {
			break
		}

		executed := min(o.Qty, rest.Qty)
		o.Qty -= executed
		rest.Qty -= executed
		lvl.Reduce(executed)

		fills = append(fills,
			Fill{OrderID: o.ID, Symbol: o.Symbol, Qty: executed, Price: lvl.Price},
			Fill{OrderID: rest.ID, Symbol: rest.Symbol, Qty: executed, Price: lvl.Price},
		)

		if rest.Qty == 0 {
			// Evict the filled maker from the front before looking
			// at the next resting order.
			b.registry.Untrack(rest.ID)
			lvl.Unlink(rest)
			b.retire(rest)
		}
	}

	if lvl.Empty() {
		ladder.DeleteLevel(lvl.Price)
	}
	return fills
}

// Cancel removes a resting order. Cancelling an unknown, already
// cancelled or already filled id returns ErrOrderNotFound and leaves
// the book untouched.
func (b *Book) Cancel(id uint32) error {
	loc, ok := b.registry.Untrack(id)
	if !ok {
		return ErrOrderNotFound
	}

	sb := b.symbols[loc.symbol]
	if sb == nil {
		panic(fmt.Sprintf("book: live order %d points at missing symbol %q", id, loc.symbol))
	}
	ladder := sb.ladder(loc.side)
	lvl := ladder.FindLevel(loc.price)
	if lvl == nil {
		panic(fmt.Sprintf("book: live order %d points at missing level %d", id, loc.price))
	}

	lvl.Unlink(loc.order)
	if lvl.Empty() {
		ladder.DeleteLevel(lvl.Price)
	}
	b.retire(loc.order)
	return nil
}

// Snapshot enumerates every resting order in display order: symbols
// ascending; per symbol the ask side from highest to lowest price,
// then the bid side from highest to lowest price. The ask side is one
// reverse walk over the whole ladder, so within an ask level arrivals
// list newest first; within a bid level arrivals list oldest first.
// Matching order is unaffected, levels always fill front-first.
func (b *Book) Snapshot() []RestingOrder {
	symbols := make([]string, 0, len(b.symbols))
	for sym := range b.symbols {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var out []RestingOrder
	appendOrder := func(o *Order) {
		out = append(out, RestingOrder{
			ID:     o.ID,
			Symbol: o.Symbol,
			Side:   o.Side,
			Qty:    o.Qty,
			Price:  o.Price,
		})
	}
	askLevel := func(lvl *PriceLevel) bool {
		for o := lvl.Tail(); o != nil; o = o.Prev() {
			appendOrder(o)
		}
		return true
	}
	bidLevel := func(lvl *PriceLevel) bool {
		for o := lvl.Head(); o != nil; o = o.Next() {
			appendOrder(o)
		}
		return true
	}

	for _, sym := range symbols {
		sb := b.symbols[sym]
		sb.Asks.ForEachDescending(askLevel)
		sb.Bids.ForEachDescending(bidLevel)
	}
	return out
}

// LiveOrders reports how many orders are currently resting.
func (b *Book) LiveOrders() int { return b.registry.LiveCount() }

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
