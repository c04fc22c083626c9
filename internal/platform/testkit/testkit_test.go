package testkit

import (
	"sync/atomic"
	"testing"
	"time"
)

var seam = "prod"

func TestSwap(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		Swap(t, &seam, "fake")
		if seam != "fake" {
			t.Fatalf("seam = %q", seam)
		}
	})
	if seam != "prod" {
		t.Fatalf("not restored: %q", seam)
	}
}

func TestSerial(t *testing.T) {
	var inside, overlap atomic.Int32
	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"a", "b", "c"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				if inside.Add(1) > 1 {
					overlap.Add(1)
				}
				time.Sleep(10 * time.Millisecond)
				inside.Add(-1)
			})
		}
	})
	if overlap.Load() != 0 {
		t.Fatal("serial tests overlapped")
	}
}

func TestMustPanic(t *testing.T) {
	if v := MustPanic(t, func() { panic("boom") }); v != "boom" {
		t.Fatalf("recovered %v", v)
	}
}

func TestMustContain(t *testing.T) {
	MustContain(t, "alpha beta", "beta")
}
