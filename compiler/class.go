package compiler

import (
	"github.com/coregx/hirnfa/hir"
	"github.com/coregx/hirnfa/nfa"
)

const (
	// enumerateThreshold is the §4.2 boundary: classes with at most this
	// many symbols are lowered as one Transitions transition per symbol;
	// larger classes are lowered as a single predicate transition.
	enumerateThreshold = 1000

	// negatedClassThreshold is the §4.1.4 boundary: classes whose symbol
	// count exceeds this are additionally eligible for the negated-class
	// heuristic (shared Rejected sink plus a sampled set of explicitly
	// rejected symbols) instead of a straightforward NotCharSet predicate
	// over the complement.
	negatedClassThreshold = 50000

	// maxRejectedSamples bounds how many gap symbols the negated-class
	// heuristic samples to build its explicit-rejection predicate.
	maxRejectedSamples = 200
)

// toNFARanges converts hir.RuneRange values to nfa.RuneRange values.
func toNFARanges(ranges []hir.RuneRange) []nfa.RuneRange {
	out := make([]nfa.RuneRange, len(ranges))
	for i, r := range ranges {
		out[i] = nfa.RuneRange{Lo: r.Lo, Hi: r.Hi}
	}
	return out
}

// lowerClass lowers a character class per §4.1.4 and §4.2: small classes
// enumerate, large classes use a predicate, and classes large enough to
// plausibly be a negated class use the gap-sampling heuristic instead of
// materializing the full complement.
func (c *Compiler) lowerClass(n *hir.Node) (start, end nfa.StateID, err error) {
	set := nfa.NewRuneSet(toNFARanges(n.Ranges))

	if set.Size() > negatedClassThreshold {
		return c.lowerNegatedClassHeuristic(set)
	}
	if set.Size() > enumerateThreshold {
		return c.lowerClassPredicate(set)
	}
	return c.lowerClassEnumerated(set)
}

// lowerClassEnumerated builds one Transitions transition per symbol in
// set, the direct encoding for small classes (§4.2).
func (c *Compiler) lowerClassEnumerated(set *nfa.RuneSet) (start, end nfa.StateID, err error) {
	match := c.builder.NewEpsilon()
	var transitions []nfa.Transition
	for _, rng := range set.Ranges() {
		for r := rng.Lo; r <= rng.Hi; r++ {
			transitions = append(transitions, nfa.Transition{Current: nfa.CharPredicate(r), Target: match})
		}
	}
	id := c.builder.NewTransitions(transitions)
	return id, match, nil
}

// lowerClassPredicate builds a single Transitions state with one
// CharSet-predicate transition, the O(log n) encoding for large classes
// that aren't treated as negated (§4.2).
func (c *Compiler) lowerClassPredicate(set *nfa.RuneSet) (start, end nfa.StateID, err error) {
	match := c.builder.NewEpsilon()
	id := c.builder.NewTransitions([]nfa.Transition{{Current: nfa.CharSetPredicate(set), Target: match}})
	return id, match, nil
}

// lowerNegatedClassHeuristic implements §4.1.4's approximation for very
// large classes: rather than materializing the (possibly enormous)
// complement, it samples up to maxRejectedSamples symbols from the gaps
// between set's ranges, routes exactly those sampled symbols to the
// shared Rejected state, and accepts everything else via Any. This is a
// deliberate approximation — a symbol outside set but not sampled is
// (incorrectly) accepted — documented as such in DESIGN.md and bounded
// by the 50,000-symbol threshold that makes a full complement
// impractical to enumerate.
func (c *Compiler) lowerNegatedClassHeuristic(set *nfa.RuneSet) (start, end nfa.StateID, err error) {
	match := c.builder.NewEpsilon()
	rejected := c.sharedRejected()

	samples := collectGapSamples(set, maxRejectedSamples)
	transitions := make([]nfa.Transition, 0, len(samples)+1)
	for _, r := range samples {
		transitions = append(transitions, nfa.Transition{Current: nfa.CharPredicate(r), Target: rejected})
	}
	transitions = append(transitions, nfa.Transition{Current: nfa.AnyPredicate(), Target: match})

	id := c.builder.NewTransitions(transitions)
	return id, match, nil
}

// collectGapSamples walks set's sorted, merged ranges and samples up to
// max rune values that lie strictly outside set: one just below the
// first range (if any room exists below it), then every rune of each gap
// between consecutive ranges in ascending order, then runes of the tail
// gap after the last range up to utf8.MaxRune. Sampling stops as soon as
// max samples are collected, so a wide early gap can use up the budget
// before later gaps are reached.
func collectGapSamples(set *nfa.RuneSet, max int) []rune {
	ranges := set.Ranges()
	if len(ranges) == 0 {
		return nil
	}

	const maxRune = 0x10FFFF

	var samples []rune
	add := func(r rune) bool {
		if r < 0 || r > maxRune {
			return len(samples) < max
		}
		samples = append(samples, r)
		return len(samples) < max
	}

	if ranges[0].Lo > 0 {
		if !add(ranges[0].Lo - 1) {
			return samples
		}
	}

	for i := 0; i+1 < len(ranges); i++ {
		gapLo := ranges[i].Hi + 1
		gapHi := ranges[i+1].Lo - 1
		for r := gapLo; r <= gapHi && len(samples) < max; r++ {
			if !add(r) {
				return samples
			}
		}
	}

	last := ranges[len(ranges)-1]
	for r := last.Hi + 1; r <= maxRune && len(samples) < max; r++ {
		if !add(r) {
			return samples
		}
	}

	return samples
}

// predicateForAtom returns the single CharacterPredicate matching sub,
// for use as a possessive loop's C (§4.1.3). Only single-rune literals
// and character classes are supported — a possessive quantifier over
// any other atom shape (a Concat, an Alternation, a nested Repetition)
// has no single-predicate encoding and is rejected by the caller.
func (c *Compiler) predicateForAtom(sub *hir.Node) (nfa.Predicate, bool) {
	switch sub.Kind {
	case hir.Literal:
		if len(sub.Runes) != 1 {
			return nfa.Predicate{}, false
		}
		return nfa.CharPredicate(sub.Runes[0]), true
	case hir.Class:
		set := nfa.NewRuneSet(toNFARanges(sub.Ranges))
		// Unlike lowerClass, a possessive loop's predicate is evaluated
		// per symbol rather than pre-enumerated into transitions, so the
		// exact CharSet predicate costs O(log n) regardless of set size —
		// the negated-class heuristic's approximation has no need to
		// apply here, even above negatedClassThreshold.
		return nfa.CharSetPredicate(set), true
	default:
		return nfa.Predicate{}, false
	}
}
