package pipeline_test

import (
	"testing"

	"github.com/oriumgames/bevi/internal/pipeline"
)

func TestBitSetSetHasCount(t *testing.T) {
	bs := pipeline.NewBitSet(0)
	if bs.Has(3) {
		t.Fatalf("expected bit 3 unset initially")
	}
	bs.Set(3)
	bs.Set(130) // forces growth beyond the first word
	if !bs.Has(3) || !bs.Has(130) {
		t.Fatalf("expected bits 3 and 130 set")
	}
	if bs.Count() != 2 {
		t.Fatalf("expected count 2, got %d", bs.Count())
	}
}

func TestBitSetEqual(t *testing.T) {
	a := pipeline.NewBitSet(0)
	b := pipeline.NewBitSet(0)
	if !a.Equal(b) {
		t.Fatalf("expected two empty bitsets to be equal")
	}
	a.Set(5)
	if a.Equal(b) {
		t.Fatalf("expected bitsets to differ once one has an extra bit")
	}
	b.Set(5)
	if !a.Equal(b) {
		t.Fatalf("expected bitsets to be equal again")
	}
}

func TestBitSetEqualIgnoresTrailingZeroWords(t *testing.T) {
	a := pipeline.NewBitSet(0)
	a.Set(1)
	b := pipeline.NewBitSet(4)
	b.Set(1)
	if !a.Equal(b) {
		t.Fatalf("expected equal bitsets regardless of extra all-zero capacity")
	}
}

func TestBitSetForEachVisitsAscendingAndStopsEarly(t *testing.T) {
	bs := pipeline.NewBitSet(0)
	bs.Set(64)
	bs.Set(2)
	bs.Set(10)

	var seen []int
	bs.ForEach(func(idx int) bool {
		seen = append(seen, idx)
		return len(seen) < 2
	})
	if len(seen) != 2 || seen[0] != 2 || seen[1] != 10 {
		t.Fatalf("expected ascending visitation stopped after 2, got %v", seen)
	}
}

func TestBitSetCloneIsIndependent(t *testing.T) {
	a := pipeline.NewBitSet(0)
	a.Set(1)
	b := a.Clone()
	b.Set(2)
	if a.Has(2) {
		t.Fatalf("expected mutating the clone not to affect the original")
	}
}
