package processor

import (
	"math"

	"github.com/solwatch/walletwatch/internal/ledger"
)

// scoreMovement maps a net movement to a non-negative significance score.
// Each dimension contributes one point per band its magnitude reaches, so
// the ladders are additive: a huge movement collects every lower band it
// exceeds. Any non-zero token leg at all adds a flat point on top. The
// result is monotonic in every input dimension.
func (p *Processor) scoreMovement(mv ledger.NetMovement) int {
	score := countBands(math.Abs(mv.NativeDelta), p.cfg.Policy.NativeBands)
	score += countBands(math.Abs(mv.StableDelta), p.cfg.Policy.StableBands)

	leg := mv.LargestLeg()
	score += countBands(leg, p.cfg.Policy.LegBands)
	if leg > 0 {
		score++
	}

	return score
}

// countBands returns how many ascending crossing points the magnitude has
// reached.
func countBands(magnitude float64, bands []float64) int {
	n := 0
	for _, band := range bands {
		if magnitude >= band {
			n++
		}
	}
	return n
}
