package runtime

import (
	"sync"
	"sync/atomic"
	"time"
)

// Debouncer collapses bursts of triggers into at most one allowed trigger
// per interval and per source key, without serializing callers behind a
// lock. Racing goroutines resolve through a compare-and-swap on a single
// timestamp cell: exactly one of them wins a given window, the others are
// suppressed. The winner is arbitrary but unique.
type Debouncer struct {
	enabled     bool
	minInterval time.Duration
	gates       sync.Map // source key -> *gate
}

// gate holds the next instant a source may trigger again, as UTC
// nanoseconds. Monotonically non-decreasing.
type gate struct {
	nextAllowedUnixNano atomic.Int64
}

func NewDebouncer(enabled bool, minInterval time.Duration) *Debouncer {
	return &Debouncer{enabled: enabled, minInterval: minInterval}
}

// Allow reports whether the caller won the debounce window for source.
// When disabled every call returns false without touching any gate.
//
// The losing paths never retry: a trigger arriving inside an active
// window, or losing the CAS race to a concurrent trigger, is suppressed
// for good. The gate advances on the winning path regardless of what the
// winner does with its broadcast afterwards.
func (d *Debouncer) Allow(source string) bool {
	if !d.enabled {
		return false
	}

	g := d.gate(source)
	now := time.Now().UTC().UnixNano()

	prev := g.nextAllowedUnixNano.Load()
	if now < prev {
		// Another caller already reserved this window.
		return false
	}
	return g.nextAllowedUnixNano.CompareAndSwap(prev, now+d.minInterval.Nanoseconds())
}

func (d *Debouncer) gate(source string) *gate {
	if g, ok := d.gates.Load(source); ok {
		return g.(*gate)
	}
	g, _ := d.gates.LoadOrStore(source, &gate{})
	return g.(*gate)
}
