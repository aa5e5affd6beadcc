// Package compiler lowers a hir.Node tree into an nfa.NFA, implementing
// the recursive Thompson-construction-with-two-character-window rules:
// pairwise concatenation (concat.go), repetition and possessive encoding
// (repetition.go), and character-class thresholds with the negated-class
// heuristic (class.go).
//
// The compiler owns a single nfa.Builder for the duration of one Compile
// call; it returns the finished graph and is discarded (§2).
package compiler

import (
	"fmt"

	"github.com/coregx/hirnfa/hir"
	"github.com/coregx/hirnfa/nfa"
)

// Compiler lowers hir.Node trees into nfa.NFA graphs.
type Compiler struct {
	config Config

	builder       *nfa.Builder
	depth         int
	rejectedState nfa.StateID
}

// NewCompiler returns a Compiler configured with config.
func NewCompiler(config Config) *Compiler {
	return &Compiler{config: config.withDefaults()}
}

// Compile lowers h into an NFA using a fresh, default-configured
// Compiler. Equivalent to NewCompiler(DefaultConfig()).Compile(h).
func Compile(h *hir.Node) (*nfa.NFA, error) {
	return NewCompiler(DefaultConfig()).Compile(h)
}

// fragment is the compile-time value of §3: start is where control
// enters, end is the state the next fragment connects from.
type fragment struct {
	start, end nfa.StateID
}

// Compile lowers h into an NFA. Deterministic: identical HIR inputs
// produce structurally identical NFAs (state IDs included), since
// lowering never branches on anything but h itself.
func (c *Compiler) Compile(h *hir.Node) (*nfa.NFA, error) {
	c.builder = nfa.NewBuilder()
	c.depth = 0
	c.rejectedState = nfa.Unpatched

	start, end, err := c.lower(h)
	if err != nil {
		return nil, err
	}

	match := c.builder.NewMatch()
	if cerr := c.builder.Connect(end, match); cerr != nil {
		return nil, nfa.NewInternal(cerr.Error())
	}
	c.builder.SetStart(start)

	built, berr := c.builder.Build()
	if berr != nil {
		return nil, nfa.NewInternal(berr.Error())
	}
	return built, nil
}

// lower dispatches a single HIR node to its lowering rule, per the
// dispatch table of §4.1.
func (c *Compiler) lower(n *hir.Node) (start, end nfa.StateID, err error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return 0, 0, nfa.NewTooComplex("maximum HIR recursion depth exceeded")
	}

	switch n.Kind {
	case hir.Empty:
		return c.lowerEmpty()
	case hir.Literal:
		return c.lowerLiteral(n)
	case hir.Class:
		return c.lowerClass(n)
	case hir.Look:
		return 0, 0, nfa.NewUnsupportedFeature("lookahead assertion cannot appear as a standalone pattern")
	case hir.Repetition:
		return c.lowerRepetition(n)
	case hir.Concat:
		return c.lowerConcat(n.Sub)
	case hir.Alternation:
		return c.lowerAlternation(n)
	case hir.Capture:
		if len(n.Sub) != 1 {
			return 0, 0, nfa.NewInternal("capture node without exactly one child")
		}
		return c.lower(n.Sub[0])
	default:
		return 0, 0, nfa.NewInternal(fmt.Sprintf("unrecognized HIR kind %v", n.Kind))
	}
}

// lowerEmpty builds the single-epsilon fragment for hir.Empty.
func (c *Compiler) lowerEmpty() (start, end nfa.StateID, err error) {
	id := c.builder.NewEpsilon()
	return id, id, nil
}

// lowerLiteral builds one Transitions node per symbol, chained in order.
func (c *Compiler) lowerLiteral(n *hir.Node) (start, end nfa.StateID, err error) {
	if len(n.Runes) == 0 {
		return c.lowerEmpty()
	}
	var prev nfa.StateID
	for i, r := range n.Runes {
		id := c.builder.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate(r), Target: nfa.Unpatched}})
		if i == 0 {
			start = id
		} else if cerr := c.builder.Connect(prev, id); cerr != nil {
			return 0, 0, nfa.NewInternal(cerr.Error())
		}
		prev = id
	}
	return start, prev, nil
}

// lowerAlternation builds a right-folded binary Thompson split over
// n.Sub, joining every branch's end at a shared exit epsilon.
func (c *Compiler) lowerAlternation(n *hir.Node) (start, end nfa.StateID, err error) {
	if len(n.Sub) == 0 {
		return c.lowerEmpty()
	}
	if len(n.Sub) == 1 {
		return c.lower(n.Sub[0])
	}

	starts := make([]nfa.StateID, len(n.Sub))
	ends := make([]nfa.StateID, len(n.Sub))
	for i, sub := range n.Sub {
		s, e, lerr := c.lower(sub)
		if lerr != nil {
			return 0, 0, lerr
		}
		starts[i] = s
		ends[i] = e
	}

	split := c.buildSplitChain(starts)
	join := c.builder.NewEpsilon()
	for _, e := range ends {
		if cerr := c.builder.Connect(e, join); cerr != nil {
			return 0, 0, nfa.NewInternal(cerr.Error())
		}
	}
	return split, join, nil
}

// buildSplitChain folds targets into a right-leaning binary tree of
// Split states: Split(t0, Split(t1, Split(t2, ...))). Earlier targets
// keep higher priority at every level, preserving overall ordering.
func (c *Compiler) buildSplitChain(targets []nfa.StateID) nfa.StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	if len(targets) == 2 {
		return c.builder.NewSplit(targets[0], targets[1])
	}
	right := c.buildSplitChain(targets[1:])
	return c.builder.NewSplit(targets[0], right)
}

// chain connects a sequence of fragments end-to-start via epsilon
// patching and returns the combined fragment's overall start and end.
func (c *Compiler) chain(frags []fragment) (start, end nfa.StateID, err error) {
	if len(frags) == 0 {
		return c.lowerEmpty()
	}
	start = frags[0].start
	end = frags[0].end
	for i := 1; i < len(frags); i++ {
		if cerr := c.builder.Connect(end, frags[i].start); cerr != nil {
			return 0, 0, nfa.NewInternal(cerr.Error())
		}
		end = frags[i].end
	}
	return start, end, nil
}

// sharedRejected returns the compile's single shared Rejected state,
// creating it lazily on first use (§4.1.4: "the Rejected state is shared
// across the compile").
func (c *Compiler) sharedRejected() nfa.StateID {
	if c.rejectedState == nfa.Unpatched {
		c.rejectedState = c.builder.NewRejected()
	}
	return c.rejectedState
}
