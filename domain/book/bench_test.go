package book

import "testing"

func BenchmarkPlaceResting(b *testing.B) {
	bk := NewBook(nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bk.Place(&Order{
			ID:     uint32(i + 1),
			Symbol: "IBM",
			Side:   Buy,
			Qty:    10,
			Price:  px(100) + int64(i%512),
			SeqID:  uint64(i + 1),
		})
	}
}

func BenchmarkPlaceAndCross(b *testing.B) {
	bk := NewBook(nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := Buy
		if i%2 == 1 {
			side = Sell
		}
		_, _ = bk.Place(&Order{
			ID:     uint32(i + 1),
			Symbol: "IBM",
			Side:   side,
			Qty:    10,
			Price:  px(100),
			SeqID:  uint64(i + 1),
		})
	}
}

func BenchmarkCancel(b *testing.B) {
	bk := NewBook(nil)
	for i := 0; i < b.N; i++ {
		_, _ = bk.Place(&Order{
			ID:     uint32(i + 1),
			Symbol: "IBM",
			Side:   Buy,
			Qty:    10,
			Price:  px(100) + int64(i%512),
			SeqID:  uint64(i + 1),
		})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bk.Cancel(uint32(i + 1))
	}
}
