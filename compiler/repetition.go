package compiler

import (
	"github.com/coregx/hirnfa/hir"
	"github.com/coregx/hirnfa/nfa"
)

// lowerRepetition dispatches a Repetition node to the matching §4.1.2
// shape, or to the possessive encoding of §4.1.3.
func (c *Compiler) lowerRepetition(n *hir.Node) (start, end nfa.StateID, err error) {
	if n.RepKind == hir.Possessive {
		switch {
		case n.Min == 0 && n.Max == -1:
			return c.lowerPossessiveStar(n.Sub[0])
		case n.Min == 1 && n.Max == -1:
			return c.lowerPossessivePlus(n.Sub[0])
		default:
			// Counted possessive ({n}+, {n,m}+) is not required by the
			// testable scenarios (§8); this compiler falls back to the
			// non-possessive counted lowering, per §4.1.3's explicit
			// allowance. Documented in DESIGN.md.
			fallback := *n
			fallback.RepKind = hir.Greedy
			return c.lowerCounted(&fallback)
		}
	}

	switch {
	case n.Min == 0 && n.Max == 1:
		return c.lowerQuest(n.Sub[0], n.RepKind == hir.Reluctant)
	case n.Min == 0 && n.Max == -1:
		return c.lowerStar(n.Sub[0], n.RepKind == hir.Reluctant)
	case n.Min == 1 && n.Max == -1:
		return c.lowerPlus(n.Sub[0], n.RepKind == hir.Reluctant)
	default:
		return c.lowerCounted(n)
	}
}

// lowerQuest builds `?` (0,1): a Split whose ordered targets favor
// entering sub (greedy) or skipping it (reluctant), sub's end feeding
// directly into the shared exit epsilon.
func (c *Compiler) lowerQuest(sub *hir.Node, reluctant bool) (start, end nfa.StateID, err error) {
	subStart, subEnd, lerr := c.lower(sub)
	if lerr != nil {
		return 0, 0, lerr
	}
	exit := c.builder.NewEpsilon()
	split := c.orderedSplit(subStart, exit, reluctant)
	if cerr := c.builder.Connect(subEnd, exit); cerr != nil {
		return 0, 0, nfa.NewInternal(cerr.Error())
	}
	return split, exit, nil
}

// lowerStar builds `*` (0,∞): as lowerQuest, but sub's end loops back to
// the Split instead of feeding the exit directly.
func (c *Compiler) lowerStar(sub *hir.Node, reluctant bool) (start, end nfa.StateID, err error) {
	subStart, subEnd, lerr := c.lower(sub)
	if lerr != nil {
		return 0, 0, lerr
	}
	exit := c.builder.NewEpsilon()
	split := c.orderedSplit(subStart, exit, reluctant)
	if cerr := c.builder.Connect(subEnd, split); cerr != nil {
		return 0, 0, nfa.NewInternal(cerr.Error())
	}
	return split, exit, nil
}

// lowerPlus builds `+` (1,∞): entry is sub itself (at least one match is
// mandatory); sub's end reaches a Split that loops back into sub or
// exits.
func (c *Compiler) lowerPlus(sub *hir.Node, reluctant bool) (start, end nfa.StateID, err error) {
	subStart, subEnd, lerr := c.lower(sub)
	if lerr != nil {
		return 0, 0, lerr
	}
	exit := c.builder.NewEpsilon()
	split := c.orderedSplit(subStart, exit, reluctant)
	if cerr := c.builder.Connect(subEnd, split); cerr != nil {
		return 0, 0, nfa.NewInternal(cerr.Error())
	}
	return subStart, exit, nil
}

// orderedSplit returns a Split whose target ordering encodes greedy
// (continue before exit) or reluctant (exit before continue) priority.
// Greedy/reluctant is modeled purely by this ordering, never by a
// per-state flag (§9).
func (c *Compiler) orderedSplit(continueTo, exitTo nfa.StateID, reluctant bool) nfa.StateID {
	if reluctant {
		return c.builder.NewSplit(exitTo, continueTo)
	}
	return c.builder.NewSplit(continueTo, exitTo)
}

// lowerCounted builds bounded and unbounded counted repetition {n,m}.
func (c *Compiler) lowerCounted(n *hir.Node) (start, end nfa.StateID, err error) {
	sub := n.Sub[0]
	min, max := n.Min, n.Max
	reluctant := n.RepKind == hir.Reluctant

	if max == -1 {
		if min == 0 {
			return c.lowerStar(sub, reluctant)
		}
		var frags []fragment
		for i := 0; i < min; i++ {
			s, e, lerr := c.lower(sub)
			if lerr != nil {
				return 0, 0, lerr
			}
			frags = append(frags, fragment{s, e})
		}
		starStart, starEnd, serr := c.lowerStar(sub, reluctant)
		if serr != nil {
			return 0, 0, serr
		}
		frags = append(frags, fragment{starStart, starEnd})
		return c.chain(frags)
	}

	if min == max {
		if min == 0 {
			return c.lowerEmpty()
		}
		var frags []fragment
		for i := 0; i < min; i++ {
			s, e, lerr := c.lower(sub)
			if lerr != nil {
				return 0, 0, lerr
			}
			frags = append(frags, fragment{s, e})
		}
		return c.chain(frags)
	}

	var frags []fragment
	for i := 0; i < min; i++ {
		s, e, lerr := c.lower(sub)
		if lerr != nil {
			return 0, 0, lerr
		}
		frags = append(frags, fragment{s, e})
	}
	for i := 0; i < max-min; i++ {
		qs, qe, qerr := c.lowerQuest(sub, reluctant)
		if qerr != nil {
			return 0, 0, qerr
		}
		frags = append(frags, fragment{qs, qe})
	}
	return c.chain(frags)
}

// buildPossessiveLoop builds the shared possessive-loop shape of
// §4.1.3: a single Transitions state P over the atom's accepted set C,
// whose in-loop transition (current ∈ C, lookahead ∈ C, target = P) is
// listed before its exit transition (current ∈ C, no lookahead, target
// = exit). Listing order matters: the matcher fires at most the first
// qualifying transition per thread per step, so the two can never both
// advance the same thread at the same position.
//
// The atom's accepted set is represented as a single CharacterPredicate
// (class.go's predicateForAtom) rather than literally unrolled "one pair
// of transitions per symbol in C" — semantically identical to the
// literal unrolling for any C, and avoids an O(|C|) blowup for large
// classes, consistent with §4.2's own preference for predicate form.
func (c *Compiler) buildPossessiveLoop(sub *hir.Node) (p, exit nfa.StateID, err error) {
	pred, ok := c.predicateForAtom(sub)
	if !ok {
		return 0, 0, nfa.NewUnsupportedFeature("possessive quantifier over an atom that is not a single literal rune or character class")
	}

	exit = c.builder.NewEpsilon()
	lookahead := pred
	p = c.builder.NewTransitions([]nfa.Transition{
		{Current: pred, Lookahead: &lookahead, Target: nfa.Unpatched},
		{Current: pred, Target: exit},
	})
	if cerr := c.builder.Connect(p, p); cerr != nil {
		return 0, 0, nfa.NewInternal(cerr.Error())
	}
	return p, exit, nil
}

// lowerPossessivePlus builds possessive `++`: enter directly via P.
func (c *Compiler) lowerPossessivePlus(sub *hir.Node) (start, end nfa.StateID, err error) {
	p, exit, perr := c.buildPossessiveLoop(sub)
	if perr != nil {
		return 0, 0, perr
	}
	return p, exit, nil
}

// lowerPossessiveStar builds possessive `*+`: wraps the possessive loop
// in a preceding Split offering either entry to P or direct exit.
func (c *Compiler) lowerPossessiveStar(sub *hir.Node) (start, end nfa.StateID, err error) {
	p, exit, perr := c.buildPossessiveLoop(sub)
	if perr != nil {
		return 0, 0, perr
	}
	split := c.builder.NewSplit(p, exit)
	return split, exit, nil
}
