package bsp

import "github.com/katalvlaran/bspc/numeric"

// diagonalBias is the flat cost penalty spec.md §4.E adds when neither of
// a candidate partition's axes is zero (i.e. it is neither purely
// horizontal nor purely vertical).
const diagonalBias = 25.0

// crossingCost is the base cost spec.md §4.E charges for every seg a
// candidate partition would split.
const crossingCost = 100.0

// iffyPenaltyFactor and nearMissPenaltyFactor scale the quadratic
// too-close-to-an-endpoint penalty spec.md §4.E describes for "iffy"
// splits and "near miss" collinear-ish segs respectively.
const (
	nearMissPenaltyFactor = 100.0
	iffyPenaltyFactor     = 140.0
)

// tally accumulates real/mini seg counts on each side of a candidate
// partition while it is scored against the current seg set.
type tally struct {
	realRight, realLeft int
	miniRight, miniLeft int
	cost                float64
}

func (ta *tally) imbalance() float64 {
	return 100.0*numeric.AbsFloat(float64(ta.realRight-ta.realLeft)) +
		50.0*numeric.AbsFloat(float64(ta.miniRight-ta.miniLeft))
}

// EvaluatePartition scores candidate against every seg reachable from sb,
// using the superblock acceleration spec.md §4.E describes: whenever a
// block lies entirely to one side of candidate, its precomputed
// real/mini counts are folded in without visiting its segs.
//
// It returns (cost, true) when candidate is an acceptable partition, or
// (0, false) when it must be rejected outright — either side has zero
// real segs, or the running cost exceeded bestSoFar. bestSoFar should be
// +Inf for the first candidate tried and the best cost found so far
// thereafter, letting later candidates short-circuit early.
func EvaluatePartition(sb *Superblock, candidate *Seg, ctx *Context, bestSoFar float64) (float64, bool) {
	part := candidate.Partition()
	ta := &tally{}

	ok := evaluateBlock(sb, candidate, part, ctx, ta, bestSoFar)
	if !ok {
		return 0, false
	}

	if ta.realRight == 0 || ta.realLeft == 0 {
		return 0, false
	}

	total := ta.cost + ta.imbalance()
	if candidate.PDX != 0 && candidate.PDY != 0 {
		total += diagonalBias
	}
	if total > bestSoFar {
		return 0, false
	}

	return total, true
}

// evaluateBlock recursively folds sb's contribution into ta, returning
// false the moment ta.cost (plus imbalance so far would still be added
// later, so this is a conservative early exit on cost alone) exceeds
// bestSoFar.
func evaluateBlock(sb *Superblock, candidate *Seg, part numeric.Partition, ctx *Context, ta *tally, bestSoFar float64) bool {
	if sb == nil || sb.Total() == 0 {
		return true
	}

	switch numeric.BoxVsPartition(sb.Bounds, part) {
	case numeric.SideRight:
		ta.realRight += sb.RealNum
		ta.miniRight += sb.MiniNum

		return true
	case numeric.SideLeft:
		ta.realLeft += sb.RealNum
		ta.miniLeft += sb.MiniNum

		return true
	}

	for _, seg := range sb.Segs {
		if seg == candidate {
			ta.realRight++ // the candidate itself sits on its own right side
			continue
		}
		scoreSeg(seg, candidate, part, ctx, ta)
		if ta.cost > bestSoFar {
			return false
		}
	}

	if !evaluateBlock(sb.Children[0], candidate, part, ctx, ta, bestSoFar) {
		return false
	}

	return evaluateBlock(sb.Children[1], candidate, part, ctx, ta, bestSoFar)
}

// scoreSeg classifies seg against part (originating from candidate) and
// folds its contribution into ta, following the taxonomy in spec.md
// §4.E: collinear same/opposite direction, strictly right/left (with
// near-miss penalty), or crossing (with precious multiply and iffy-split
// penalty).
func scoreSeg(seg, candidate *Seg, part numeric.Partition, ctx *Context, ta *tally) {
	var a, b float64
	if seg.SourceLine == candidate.SourceLine && seg.SourceLine != NoIndex {
		a, b = 0, 0
	} else {
		a = part.PerpDist(seg.PSX, seg.PSY)
		b = part.PerpDist(seg.PEX, seg.PEY)
	}

	isMini := seg.IsMiniseg()

	switch {
	case numeric.AbsFloat(a) <= numeric.DistEpsilon && numeric.AbsFloat(b) <= numeric.DistEpsilon:
		// Collinear: direction agreement decides the side.
		dot := part.DX*seg.PDX + part.DY*seg.PDY
		if dot >= 0 {
			addSide(ta, true, isMini)
		} else {
			addSide(ta, false, isMini)
		}

	case a > -numeric.DistEpsilon && b > -numeric.DistEpsilon:
		addSide(ta, true, isMini)
		ta.cost += nearMissPenalty(a, b, ctx.Factor)

	case a < numeric.DistEpsilon && b < numeric.DistEpsilon:
		addSide(ta, false, isMini)
		ta.cost += nearMissPenalty(a, b, ctx.Factor)

	default:
		// Crossing: the partition splits this seg in two.
		cost := crossingCost * float64(ctx.Factor)
		if seg.Precious {
			// A precious crossing is charged more heavily so the picker
			// strongly prefers any alternative partition.
			cost *= float64(ctx.PreciousMultiply)
		}
		ta.cost += cost
		ta.cost += iffySplitPenalty(a, b, ctx.Factor)
		addSide(ta, true, isMini)
		addSide(ta, false, isMini)
	}
}

func addSide(ta *tally, right, isMini bool) {
	switch {
	case right && !isMini:
		ta.realRight++
	case right && isMini:
		ta.miniRight++
	case !right && !isMini:
		ta.realLeft++
	default:
		ta.miniLeft++
	}
}

// nearMissPenalty implements the quadratic "too close but same side"
// penalty: cost += 100*factor*((IffyLen/min_perp)^2 - 1). A seg that
// merely touches the partition at one endpoint while its other end is
// comfortably clear is a clean join, not a near miss, and costs nothing;
// when the touching seg's far end is itself within IffyLen the far
// distance becomes the denominator (the near one being ~zero would blow
// the ratio up), floored at DistEpsilon.
func nearMissPenalty(a, b float64, factor int) float64 {
	lo, hi := numeric.AbsFloat(a), numeric.AbsFloat(b)
	if lo > hi {
		lo, hi = hi, lo
	}

	if lo >= numeric.IffyLen {
		return 0 // both ends comfortably clear
	}
	if lo <= numeric.DistEpsilon && hi >= numeric.IffyLen {
		return 0 // clean endpoint touch
	}

	den := lo
	if lo <= numeric.DistEpsilon {
		den = hi
	}
	if den < numeric.DistEpsilon {
		den = numeric.DistEpsilon
	}
	ratio := numeric.IffyLen / den

	return nearMissPenaltyFactor * float64(factor) * (ratio*ratio - 1)
}

// iffySplitPenalty implements the "iffy" crossing penalty: a crossing
// where one side lands very close to an endpoint is penalised the same
// quadratic curve as nearMissPenalty, scaled by iffyPenaltyFactor instead
// of nearMissPenaltyFactor.
func iffySplitPenalty(a, b float64, factor int) float64 {
	minPerp := numeric.AbsFloat(a)
	if ab := numeric.AbsFloat(b); ab < minPerp {
		minPerp = ab
	}
	if minPerp >= numeric.IffyLen {
		return 0
	}
	if minPerp < numeric.DistEpsilon {
		minPerp = numeric.DistEpsilon
	}
	ratio := numeric.IffyLen / minPerp

	return iffyPenaltyFactor * float64(factor) * (ratio*ratio - 1)
}
