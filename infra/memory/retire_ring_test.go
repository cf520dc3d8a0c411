package memory

import (
	"sync"
	"testing"
)

func TestRetireRingFIFO(t *testing.T) {
	r := NewRetireRing(8)
	for i := 0; i < 5; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	for i := 0; i < 5; i++ {
		v := r.Dequeue()
		if v != i {
			t.Fatalf("expected %d, got %v", i, v)
		}
	}
	if r.Dequeue() != nil {
		t.Fatal("expected empty ring")
	}
}

func TestRetireRingFull(t *testing.T) {
	r := NewRetireRing(4)
	for i := 0; i < 4; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	if r.Enqueue(99) {
		t.Fatal("enqueue on full ring should fail")
	}
	_ = r.Dequeue()
	if !r.Enqueue(99) {
		t.Fatal("enqueue after dequeue should succeed")
	}
}

func TestRetireRingRejectsNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non power of two size")
		}
	}()
	NewRetireRing(6)
}

func TestRetireRingSPSC(t *testing.T) {
	const n = 100000
	r := NewRetireRing(1 << 10)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; {
			if r.Enqueue(i) {
				i++
			}
		}
	}()

	go func() {
		defer wg.Done()
		expect := 0
		for expect < n {
			v := r.Dequeue()
			if v == nil {
				continue
			}
			if v != expect {
				t.Errorf("expected %d, got %v", expect, v)
				return
			}
			expect++
		}
	}()

	wg.Wait()
}
