package book

import "fmt"

// PriceLevel is the FIFO queue of resting orders at one exact price.
// Oldest order sits at the head and is always consumed first. A level
// is never kept empty; the owning ladder deletes it as soon as the
// last order leaves.
type PriceLevel struct {
	Price      int64
	head       *Order
	tail       *Order
	TotalQty   int64
	OrderCount int
}

func (p *PriceLevel) Head() *Order { return p.head }

func (p *PriceLevel) Tail() *Order { return p.tail }

func (p *PriceLevel) Empty() bool { return p.head == nil }

// Enqueue appends o at the back of the queue (newest arrival last).
func (p *PriceLevel) Enqueue(o *Order) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	p.TotalQty += o.Qty
	p.OrderCount++
}

// Unlink removes o from any position in the queue. o.Qty must already
// reflect the quantity being removed from the level.
func (p *PriceLevel) Unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	p.TotalQty -= o.Qty
	p.OrderCount--
	if p.TotalQty < 0 || p.OrderCount < 0 {
		panic(fmt.Sprintf("book: level %d aggregates negative after unlink (qty=%d orders=%d)", p.Price, p.TotalQty, p.OrderCount))
	}
}

// Reduce subtracts an executed quantity from the level aggregate
// without unlinking anything.
func (p *PriceLevel) Reduce(qty int64) {
	p.TotalQty -= qty
	if p.TotalQty < 0 {
		panic(fmt.Sprintf("book: level %d qty underflow (reduced %d past zero)", p.Price, qty))
	}
}

func (p *PriceLevel) String() string {
	return fmt.Sprintf("level{price=%d qty=%d orders=%d}", p.Price, p.TotalQty, p.OrderCount)
}
