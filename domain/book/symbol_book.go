package book

// SymbolBook pairs the two ladders of one traded symbol. Orders never
// cross between symbols; each SymbolBook is an isolated matching unit.
type SymbolBook struct {
	Bids *RBTree
	Asks *RBTree
}

func NewSymbolBook() *SymbolBook {
	return &SymbolBook{
		Bids: NewRBTree(),
		Asks: NewRBTree(),
	}
}

func (b *SymbolBook) ladder(s Side) *RBTree {
	if s == Buy {
		return b.Bids
	}
	return b.Asks
}

// enqueue rests o at the back of its price level on its own side.
func (b *SymbolBook) enqueue(o *Order) {
	b.ladder(o.Side).UpsertLevel(o.Price).Enqueue(o)
}
