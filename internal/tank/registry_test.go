package tank

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()

	if serial, ok := r.Lookup("AA:BB:CC:DD:EE:FF"); ok {
		t.Errorf("Lookup() = %q, true; want miss for unknown address", serial)
	}
}

func TestRegistry_RecordAndLookup(t *testing.T) {
	r := NewRegistry()

	r.Record("AA:BB:CC:DD:EE:FF", "20479133")

	serial, ok := r.Lookup("AA:BB:CC:DD:EE:FF")
	if !ok {
		t.Fatal("Lookup() miss after Record()")
	}
	if serial != "20479133" {
		t.Errorf("Lookup() = %q, want %q", serial, "20479133")
	}
}

func TestRegistry_UpsertLastWriteWins(t *testing.T) {
	r := NewRegistry()

	r.Record("AA:BB:CC:DD:EE:FF", "111")
	r.Record("AA:BB:CC:DD:EE:FF", "222")

	serial, ok := r.Lookup("AA:BB:CC:DD:EE:FF")
	if !ok {
		t.Fatal("Lookup() miss after Record()")
	}
	if serial != "222" {
		t.Errorf("Lookup() = %q, want last-written %q", serial, "222")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (same address overwritten)", r.Len())
	}
}

func TestRegistry_ConcurrentRecord(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			addr := fmt.Sprintf("AA:BB:CC:DD:EE:%02X", n)
			r.Record(addr, fmt.Sprintf("%d", n))
			r.Lookup(addr)
		}(i)
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("Len() = %d, want 50", r.Len())
	}
}
