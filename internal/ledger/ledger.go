package ledger

import (
	"math"

	"github.com/solwatch/walletwatch/internal/event"
)

// Leg is a single inbound or outbound token transfer, tracked as the largest
// of its direction within an event.
type Leg struct {
	Mint   string
	Amount float64
}

// NetMovement is the net asset movement of one event from the subject
// wallet's perspective. Computed fresh per (event, subject) pair and never
// cached.
type NetMovement struct {
	NativeDelta float64 // in display units (SOL), signed
	StableDelta float64 // in display units, signed
	LargestIn   *Leg
	LargestOut  *Leg
}

// LargestLeg returns the magnitude of the biggest single token leg in either
// direction, or 0 when the event had none.
func (m NetMovement) LargestLeg() float64 {
	var leg float64
	if m.LargestIn != nil {
		leg = m.LargestIn.Amount
	}
	if m.LargestOut != nil && m.LargestOut.Amount > leg {
		leg = m.LargestOut.Amount
	}
	return leg
}

// Accountant computes net movements against a configured stable-mint
// allow-set and native subdivision factor.
type Accountant struct {
	subdivision float64
	stableMints map[string]struct{}
}

// New creates an Accountant. nativeDecimals is the exponent of the native
// unit's subdivision factor (9 for lamports).
func New(nativeDecimals int, stableMints []string) *Accountant {
	mints := make(map[string]struct{}, len(stableMints))
	for _, m := range stableMints {
		mints[m] = struct{}{}
	}
	return &Accountant{
		subdivision: math.Pow10(nativeDecimals),
		stableMints: mints,
	}
}

// Account computes the subject wallet's net movement across the event's
// transfers.
//
// Native amounts arrive in the smallest unit and are converted to display
// units once at the end. Zero-amount native records are common junk in raw
// feeds and are skipped outright rather than counted as zero-cost
// operations; token transfers are taken as-is, so a zero-amount token
// transfer still registers as a leg. A transfer where the subject is both
// sender and receiver counts on both sides independently; self-transfers are
// not special-cased.
func (a *Accountant) Account(ev event.Event, subject string) NetMovement {
	var mv NetMovement

	var lamports int64
	for _, t := range ev.NativeTransfers {
		if t.Amount == 0 {
			continue
		}
		if t.From == subject {
			lamports -= t.Amount
		}
		if t.To == subject {
			lamports += t.Amount
		}
	}
	mv.NativeDelta = float64(lamports) / a.subdivision

	for _, t := range ev.TokenTransfers {
		if _, stable := a.stableMints[t.Mint]; stable {
			if t.From == subject {
				mv.StableDelta -= t.Amount
			}
			if t.To == subject {
				mv.StableDelta += t.Amount
			}
		}

		// Largest legs span all token transfers regardless of asset class.
		// Strict > keeps the first-seen record on ties.
		if t.To == subject {
			if mv.LargestIn == nil || t.Amount > mv.LargestIn.Amount {
				mv.LargestIn = &Leg{Mint: t.Mint, Amount: t.Amount}
			}
		}
		if t.From == subject {
			if mv.LargestOut == nil || t.Amount > mv.LargestOut.Amount {
				mv.LargestOut = &Leg{Mint: t.Mint, Amount: t.Amount}
			}
		}
	}

	return mv
}
