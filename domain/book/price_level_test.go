package book

import "testing"

func TestLevelAggregates(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	a := &Order{ID: 1, Qty: 5}
	b := &Order{ID: 2, Qty: 7}

	lvl.Enqueue(a)
	lvl.Enqueue(b)
	if lvl.TotalQty != 12 || lvl.OrderCount != 2 {
		t.Fatalf("aggregates after enqueue: qty=%d orders=%d", lvl.TotalQty, lvl.OrderCount)
	}
	if lvl.Head() != a || lvl.Tail() != b {
		t.Fatal("queue endpoints wrong")
	}

	lvl.Reduce(3)
	a.Qty -= 3
	if lvl.TotalQty != 9 {
		t.Fatalf("expected qty 9 after reduce, got %d", lvl.TotalQty)
	}

	lvl.Unlink(a)
	if lvl.TotalQty != 7 || lvl.OrderCount != 1 {
		t.Fatalf("aggregates after unlink: qty=%d orders=%d", lvl.TotalQty, lvl.OrderCount)
	}
	if lvl.Head() != b || lvl.Tail() != b {
		t.Fatal("queue endpoints wrong after unlink")
	}
}

func TestReducePastZeroPanics(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	lvl.Enqueue(&Order{ID: 1, Qty: 5})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on qty underflow")
		}
	}()
	lvl.Reduce(6)
}

func TestUnlinkBeyondAggregatePanics(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	o := &Order{ID: 1, Qty: 5}
	lvl.Enqueue(o)

	// An order whose qty grew after enqueue signals corrupted
	// bookkeeping; unlinking it must not be papered over.
	o.Qty = 9
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on negative aggregates")
		}
	}()
	lvl.Unlink(o)
}
