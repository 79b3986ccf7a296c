package processor

import (
	"math"

	"github.com/solwatch/walletwatch/internal/ledger"
)

// evaluateTriggers decides whether a net movement is alert-worthy. Three
// independent magnitude triggers are combined with OR: any single one firing
// admits the event.
//
// A threshold of zero disables its dimension, and a disabled dimension
// always passes. The alternative reading (zero means never fire) would let
// an operator silently disable alerting by zeroing one knob; the pass-through
// policy is applied uniformly to all three dimensions.
func (p *Processor) evaluateTriggers(mv ledger.NetMovement) bool {
	native := p.cfg.MinNativeDelta <= 0 || math.Abs(mv.NativeDelta) >= p.cfg.MinNativeDelta
	stable := p.cfg.MinStableDelta <= 0 || math.Abs(mv.StableDelta) >= p.cfg.MinStableDelta
	leg := p.cfg.MinLegSize <= 0 || mv.LargestLeg() >= p.cfg.MinLegSize

	return native || stable || leg
}

// classifyAction maps the native delta's sign to an action label: spending
// SOL is a buy, receiving SOL is a sell, and a flat native position is a
// swap.
func classifyAction(mv ledger.NetMovement) string {
	switch {
	case mv.NativeDelta < 0:
		return "BUY"
	case mv.NativeDelta > 0:
		return "SELL"
	default:
		return "SWAP"
	}
}
