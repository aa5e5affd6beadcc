package compiler

import (
	"fmt"

	"github.com/coregx/hirnfa/hir"
	"github.com/coregx/hirnfa/nfa"
)

// lowerConcat processes subs left-to-right, consuming either one or two
// adjacent children per iteration, per the five pairwise rules of §4.1.1.
func (c *Compiler) lowerConcat(subs []*hir.Node) (start, end nfa.StateID, err error) {
	if len(subs) == 0 {
		return c.lowerEmpty()
	}

	var frags []fragment
	i := 0
	for i < len(subs) {
		a := subs[i]
		var b *hir.Node
		if i+1 < len(subs) {
			b = subs[i+1]
		}

		// Rule 1: a lookahead assertion can never occupy the "a" slot.
		if a.IsLookaheadAssertion() {
			return 0, 0, nfa.NewUnsupportedFeature("lookahead assertion cannot appear in this position of a concatenation")
		}

		if b != nil && b.IsLookaheadAssertion() {
			if a.IsPossessiveRepetition() {
				// Rule 2.
				f, rerr := c.fusePossessiveLookahead(a, b)
				if rerr != nil {
					return 0, 0, rerr
				}
				frags = append(frags, f)
				i += 2
				continue
			}
			// Rule 3.
			f, rerr := c.fuseLookaheadIntoFragment(a, b)
			if rerr != nil {
				return 0, 0, rerr
			}
			frags = append(frags, f)
			i += 2
			continue
		}

		// Rules 4 and 5: lower a standalone; consume only a. (Rule 4's
		// extra condition, a possessive, changes nothing here — a
		// possessive atom not followed by an assertion is lowered exactly
		// like any other atom.)
		s, e, lerr := c.lower(a)
		if lerr != nil {
			return 0, 0, lerr
		}
		frags = append(frags, fragment{start: s, end: e})
		i++
	}

	return c.chain(frags)
}

// fusePossessiveLookahead implements rule 2: a is possessive and b is a
// lookahead assertion. The disjointness check (2a) is unconditionally
// true for this HIR — anchors are defined disjoint from any character
// set (§4.1.1's parenthetical) — but the fusion itself has no faithful
// encoding: this HIR's Look nodes only ever carry anchor kinds (§6), and
// an anchor cannot be represented as the CharacterPredicate a lookahead
// slot expects (a present lookahead always fails at end-of-input, which
// is backwards for an end-of-text anchor). Per §9's conservative
// instruction, this is always UnsupportedFeature.
func (c *Compiler) fusePossessiveLookahead(a, b *hir.Node) (fragment, error) {
	if !anchorDisjointFromAnyCharacterSet(b) {
		return fragment{}, nfa.NewUnsupportedFeature("possessive atom followed by a non-disjoint lookahead assertion")
	}
	return fragment{}, nfa.NewUnsupportedFeature(
		fmt.Sprintf("cannot fuse anchor %s into a possessive atom's exit transitions", b.Anchor))
}

// fuseLookaheadIntoFragment implements rule 3: a is not possessive and b
// is a lookahead assertion. a is lowered first (an error from that is
// returned as-is), but rewriting a's outgoing transitions to carry b's
// predicate requires b
// to carry a bounded character set — which, per §6, this HIR's Look
// nodes never do (they carry only anchor kinds). Per §9, this is always
// UnsupportedFeature.
func (c *Compiler) fuseLookaheadIntoFragment(a, b *hir.Node) (fragment, error) {
	s, e, lerr := c.lower(a)
	if lerr != nil {
		return fragment{}, lerr
	}
	_ = s
	_ = e
	return fragment{}, nfa.NewUnsupportedFeature(
		fmt.Sprintf("cannot derive a lookahead predicate from anchor %s", b.Anchor))
}

// anchorDisjointFromAnyCharacterSet reports whether b is disjoint from
// any character-set predicate. Anchors are zero-width position
// assertions, never matching a consumed symbol, so they are disjoint
// from every character set by definition.
func anchorDisjointFromAnyCharacterSet(b *hir.Node) bool {
	return b.Kind == hir.Look
}
