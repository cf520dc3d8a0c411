package book

import "testing"

func TestRBTreeInsertFindDelete(t *testing.T) {
	tree := NewRBTree()
	pl1 := tree.UpsertLevel(100)
	if pl1 == nil {
		t.Fatal("UpsertLevel failed")
	}
	if pl2 := tree.FindLevel(100); pl2 != pl1 {
		t.Error("FindLevel did not return same PriceLevel")
	}

	tree.UpsertLevel(200)
	if tree.MinLevel().Price != 100 {
		t.Error("expected min=100")
	}
	if tree.MaxLevel().Price != 200 {
		t.Error("expected max=200")
	}

	if !tree.DeleteLevel(100) {
		t.Error("DeleteLevel failed")
	}
	if tree.FindLevel(100) != nil {
		t.Error("expected level 100 to be gone")
	}
}

func TestDeleteNonExistentLevel(t *testing.T) {
	tree := NewRBTree()
	if tree.DeleteLevel(123) {
		t.Error("expected false when deleting non-existent level")
	}
}

func TestEmptyTreeMinMax(t *testing.T) {
	tree := NewRBTree()
	if tree.MinLevel() != nil || tree.MaxLevel() != nil {
		t.Error("expected nil for min/max on empty tree")
	}
}

func TestUpsertDuplicateLevel(t *testing.T) {
	tree := NewRBTree()
	pl1 := tree.UpsertLevel(150)
	pl2 := tree.UpsertLevel(150)
	if pl1 != pl2 {
		t.Error("Upsert should return the same node for duplicate level")
	}
}

func TestIterationOrder(t *testing.T) {
	tree := NewRBTree()
	for _, px := range []int64{500, 100, 300, 200, 400} {
		tree.UpsertLevel(px)
	}

	var asc []int64
	tree.ForEachAscending(func(pl *PriceLevel) bool {
		asc = append(asc, pl.Price)
		return true
	})
	for i := 1; i < len(asc); i++ {
		if asc[i-1] >= asc[i] {
			t.Fatalf("ascending walk out of order: %v", asc)
		}
	}

	var desc []int64
	tree.ForEachDescending(func(pl *PriceLevel) bool {
		desc = append(desc, pl.Price)
		return true
	})
	for i := 1; i < len(desc); i++ {
		if desc[i-1] <= desc[i] {
			t.Fatalf("descending walk out of order: %v", desc)
		}
	}
}

func TestDeleteRebalances(t *testing.T) {
	tree := NewRBTree()
	for px := int64(1); px <= 64; px++ {
		tree.UpsertLevel(px)
	}
	for px := int64(1); px <= 64; px += 2 {
		if !tree.DeleteLevel(px) {
			t.Fatalf("delete %d failed", px)
		}
	}
	if tree.Size() != 32 {
		t.Fatalf("expected 32 levels left, got %d", tree.Size())
	}
	if tree.MinLevel().Price != 2 || tree.MaxLevel().Price != 64 {
		t.Error("min/max wrong after interleaved deletes")
	}
}
