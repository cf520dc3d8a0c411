package book

type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "S"
	}
	return "B"
}

// Opposite returns the side an incoming order crosses against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

type Status uint8

const (
	Active Status = iota
	Inactive
)

// Order is a resting or in-flight limit order. Qty is the remaining
// open quantity and is decremented as the order fills; an order whose
// Qty reaches zero is retired immediately and never stored.
//
// Price is a scaled fixed-point value in units of 1e-5, so equal text
// prices always land on the same level and ordering is exact.
type Order struct {
	ID     uint32
	Symbol string
	Side   Side
	Qty    int64
	Price  int64
	SeqID  uint64 // arrival stamp, breaks ties within a level
	Status Status

	next *Order
	prev *Order
}

func (o *Order) Next() *Order { return o.next }

func (o *Order) Prev() *Order { return o.prev }

func (o *Order) Reset() { *o = Order{} }
