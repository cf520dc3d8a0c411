package snapshot

import (
	"time"

	"matchbook/domain/book"
)

// DepthLevel is one aggregated price level.
type DepthLevel struct {
	Price  int64 `json:"price"`
	Qty    int64 `json:"qty"`
	Orders int   `json:"orders"`
}

// SymbolDepth summarizes one symbol's ladders. Asks run from highest
// to lowest price and bids from highest to lowest, mirroring the
// display order of the snapshot they were built from.
type SymbolDepth struct {
	Symbol string       `json:"symbol"`
	Asks   []DepthLevel `json:"asks"`
	Bids   []DepthLevel `json:"bids"`
}

// Depth is the periodic book summary shipped to the depth topic.
type Depth struct {
	V       int           `json:"v"`
	Seq     uint64        `json:"seq"`
	Created time.Time     `json:"created"`
	Symbols []SymbolDepth `json:"symbols"`
}

// BuildDepth folds a snapshot enumeration into per-symbol, per-level
// aggregates. The input must be in display order (the order
// book.Snapshot produces); consecutive rows of one symbol, side and
// price collapse into a single level.
func BuildDepth(seq uint64, resting []book.RestingOrder) Depth {
	d := Depth{V: 1, Seq: seq, Created: time.Now()}

	for _, r := range resting {
		if len(d.Symbols) == 0 || d.Symbols[len(d.Symbols)-1].Symbol != r.Symbol {
			d.Symbols = append(d.Symbols, SymbolDepth{Symbol: r.Symbol})
		}
		sd := &d.Symbols[len(d.Symbols)-1]

		levels := &sd.Bids
		if r.Side == book.Sell {
			levels = &sd.Asks
		}

		if n := len(*levels); n > 0 && (*levels)[n-1].Price == r.Price {
			(*levels)[n-1].Qty += r.Qty
			(*levels)[n-1].Orders++
		} else {
			*levels = append(*levels, DepthLevel{Price: r.Price, Qty: r.Qty, Orders: 1})
		}
	}
	return d
}
