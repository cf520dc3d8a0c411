package book

// Fill is one leg of an executed match. Every crossing emits two
// fills back to back: the aggressing order's leg first, then the
// resting order's leg, both at the resting order's price.
type Fill struct {
	OrderID uint32
	Symbol  string
	Qty     int64
	Price   int64
}

// RestingOrder is one entry of a book snapshot.
type RestingOrder struct {
	ID     uint32
	Symbol string
	Side   Side
	Qty    int64
	Price  int64
}
