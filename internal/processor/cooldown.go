package processor

import "sync"

// CooldownGate suppresses repeat alerts for the same wallet inside a time
// window. State is process-local and best-effort: it resets on restart and
// is not shared across instances. Entries are never evicted; the map grows
// with the number of wallets that ever alerted.
type CooldownGate struct {
	windowSec int64

	mu   sync.Mutex
	last map[string]int64 // address → last alert unix seconds
}

// NewCooldownGate creates a gate with the given window in seconds. A window
// of zero or less disables suppression entirely.
func NewCooldownGate(windowSec int64) *CooldownGate {
	return &CooldownGate{
		windowSec: windowSec,
		last:      make(map[string]int64),
	}
}

// Suppressed reports whether an alert for the address must be held back at
// the given time. An address with no prior record is never suppressed.
func (g *CooldownGate) Suppressed(address string, now int64) bool {
	if g.windowSec <= 0 {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[address]
	if !ok {
		return false
	}
	return now-last < g.windowSec
}

// Record overwrites the last-alert timestamp for the address. Called only
// after an alert emission attempt, never for suppressed or filtered events.
func (g *CooldownGate) Record(address string, now int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last[address] = now
}
