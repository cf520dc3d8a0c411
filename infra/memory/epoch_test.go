package memory

import "testing"

type countingPool struct {
	returned []any
}

func (p *countingPool) PutAny(v any) { p.returned = append(p.returned, v) }

func TestReclaimWithNoActiveReaders(t *testing.T) {
	ring := NewRetireRing(8)
	pool := &countingPool{}

	ring.Enqueue("a")
	ring.Enqueue("b")

	var reader ReaderEpoch
	reader.Exit()

	AdvanceEpochAndReclaim(ring, pool, &reader)

	if len(pool.returned) != 2 {
		t.Fatalf("expected 2 reclaimed, got %d", len(pool.returned))
	}
	if ring.Dequeue() != nil {
		t.Fatal("ring should be drained")
	}
}

func TestReclaimBlockedByActiveReader(t *testing.T) {
	ring := NewRetireRing(8)
	pool := &countingPool{}

	ring.Enqueue("a")

	var reader ReaderEpoch
	reader.Enter()

	AdvanceEpochAndReclaim(ring, pool, &reader)

	if len(pool.returned) != 0 {
		t.Fatalf("expected nothing reclaimed, got %d", len(pool.returned))
	}

	// Once the reader leaves, reclamation proceeds.
	reader.Exit()
	AdvanceEpochAndReclaim(ring, pool, &reader)
	if len(pool.returned) != 1 {
		t.Fatalf("expected 1 reclaimed, got %d", len(pool.returned))
	}
}

func TestNilReadersAreIgnored(t *testing.T) {
	ring := NewRetireRing(8)
	pool := &countingPool{}
	ring.Enqueue("a")

	AdvanceEpochAndReclaim(ring, pool, nil, nil)

	if len(pool.returned) != 1 {
		t.Fatalf("expected 1 reclaimed, got %d", len(pool.returned))
	}
}

func TestTypedPoolRoundTrip(t *testing.T) {
	type obj struct{ n int }
	p := NewPool(func() *obj { return &obj{} })

	o := p.Get()
	o.n = 42
	p.Put(o)

	var rp ReclaimablePool = p
	rp.PutAny(&obj{n: 7})
}
