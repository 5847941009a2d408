package random

import (
	"sync"
	"testing"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := range 100 {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
	}
	c := New(43)
	same := true
	a = New(42)
	for range 10 {
		if a.Float64() != c.Float64() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical streams")
	}
}

func TestDerive(t *testing.T) {
	if Derive(42, "network") == Derive(42, "heatmap") {
		t.Error("Derive should separate names")
	}
	if Derive(42, "network") != Derive(42, "network") {
		t.Error("Derive should be deterministic")
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence(0.1, 0.5, 0.99)
	want := []float64{0.1, 0.5, 0.99, 0.1}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Errorf("Float64() #%d = %v, want %v", i, got, w)
		}
	}

	s = NewSequence(0, 0.5, 0.999999, 1)
	wantInts := []int{0, 5, 9, 9}
	for i, w := range wantInts {
		if got := s.IntN(10); got != w {
			t.Errorf("IntN(10) #%d = %d, want %d", i, got, w)
		}
	}

	if got := NewSequence().Float64(); got != 0 {
		t.Errorf("empty Sequence Float64() = %v, want 0", got)
	}
}

func TestLockedConcurrentDraws(t *testing.T) {
	l := NewLocked(New(7))
	if NewLocked(l) != l {
		t.Error("NewLocked should not double wrap")
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				if n := l.IntN(5); n < 0 || n >= 5 {
					t.Errorf("IntN(5) = %d out of range", n)
					return
				}
				if f := l.Float64(); f < 0 || f >= 1 {
					t.Errorf("Float64() = %v out of range", f)
					return
				}
			}
		}()
	}
	wg.Wait()
}
