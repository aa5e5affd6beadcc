// Package hir defines the high-level regular-expression intermediate
// representation consumed by the compiler package.
//
// The HIR tree is produced by an upstream parser (out of scope here, per
// the spec this module implements): this package only defines the inbound
// contract the compiler depends on. The shape intentionally mirrors the
// regexp/syntax.Regexp tree that github.com/coregx/coregex's own compiler
// lowers from the AST package, restricted to the operations this compiler
// actually understands.
package hir

// Kind identifies the operation a Node represents.
type Kind uint8

const (
	// Empty matches the empty string.
	Empty Kind = iota
	// Literal matches an exact sequence of runes, in order.
	Literal
	// Class matches any rune accepted by one of Ranges.
	Class
	// Look is a zero-width anchor assertion; see Anchor.
	Look
	// Repetition applies Min/Max/RepKind to Sub[0].
	Repetition
	// Capture is a transparent grouping around Sub[0] (semantic no-op).
	Capture
	// Concat matches each of Sub in sequence.
	Concat
	// Alternation matches any one of Sub.
	Alternation
)

// String returns a human-readable name for k.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Literal:
		return "Literal"
	case Class:
		return "Class"
	case Look:
		return "Look"
	case Repetition:
		return "Repetition"
	case Capture:
		return "Capture"
	case Concat:
		return "Concat"
	case Alternation:
		return "Alternation"
	default:
		return "Unknown"
	}
}

// RepKind distinguishes the three quantifier flavors a Repetition node
// can carry. Possessive repetitions commit: once matched, the atom never
// gives a character back to a later alternative (see the compiler's
// structural possessive encoding).
type RepKind uint8

const (
	Greedy RepKind = iota
	Reluctant
	Possessive
)

func (k RepKind) String() string {
	switch k {
	case Greedy:
		return "Greedy"
	case Reluctant:
		return "Reluctant"
	case Possessive:
		return "Possessive"
	default:
		return "Unknown"
	}
}

// AnchorKind enumerates the zero-width position assertions a Look node
// may carry. There is no character-class-based lookahead in this HIR:
// every Look node is one of these anchors.
type AnchorKind uint8

const (
	// StartText anchors to the absolute start of input (\A).
	StartText AnchorKind = iota
	// EndText anchors to the absolute end of input (\z).
	EndText
	// StartLineLF anchors to input start or just after '\n' (^ in multiline mode).
	StartLineLF
	// EndLineLF anchors to input end or just before '\n' ($ in multiline mode).
	EndLineLF
	// StartLineCRLF is StartLineLF additionally recognizing "\r\n" line endings.
	StartLineCRLF
	// EndLineCRLF is EndLineLF additionally recognizing "\r\n" line endings.
	EndLineCRLF
)

func (a AnchorKind) String() string {
	switch a {
	case StartText:
		return "StartText"
	case EndText:
		return "EndText"
	case StartLineLF:
		return "StartLineLF"
	case EndLineLF:
		return "EndLineLF"
	case StartLineCRLF:
		return "StartLineCRLF"
	case EndLineCRLF:
		return "EndLineCRLF"
	default:
		return "Unknown"
	}
}

// RuneRange is an inclusive [Lo, Hi] range of Unicode scalar values.
type RuneRange struct {
	Lo, Hi rune
}

// Node is one node of the HIR tree.
//
// Field usage by Kind:
//
//	Empty       -- no fields used.
//	Literal     -- Runes.
//	Class       -- Ranges (unsorted, may overlap; the compiler normalizes).
//	Look        -- Anchor.
//	Repetition  -- Min, Max (-1 means unbounded), RepKind, Sub[0].
//	Capture     -- Sub[0]; Index is the 1-based group number.
//	Concat      -- Sub.
//	Alternation -- Sub.
type Node struct {
	Kind Kind

	Runes  []rune
	Ranges []RuneRange
	Anchor AnchorKind

	Min, Max int
	RepKind  RepKind

	Index int

	Sub []*Node
}

// NewEmpty returns an Empty node.
func NewEmpty() *Node { return &Node{Kind: Empty} }

// NewLiteral returns a Literal node matching runes in sequence.
func NewLiteral(runes ...rune) *Node {
	if len(runes) == 0 {
		return NewEmpty()
	}
	return &Node{Kind: Literal, Runes: runes}
}

// NewClass returns a Class node matching any rune within ranges.
func NewClass(ranges ...RuneRange) *Node {
	return &Node{Kind: Class, Ranges: ranges}
}

// NewLook returns a Look node asserting anchor.
func NewLook(anchor AnchorKind) *Node {
	return &Node{Kind: Look, Anchor: anchor}
}

// NewRepetition returns a Repetition node. max == -1 means unbounded.
func NewRepetition(sub *Node, min, max int, kind RepKind) *Node {
	return &Node{Kind: Repetition, Min: min, Max: max, RepKind: kind, Sub: []*Node{sub}}
}

// NewCapture returns a Capture node wrapping sub under group index.
func NewCapture(sub *Node, index int) *Node {
	return &Node{Kind: Capture, Index: index, Sub: []*Node{sub}}
}

// NewConcat returns a Concat node over subs, in order.
func NewConcat(subs ...*Node) *Node {
	return &Node{Kind: Concat, Sub: subs}
}

// NewAlternation returns an Alternation node over subs, in priority order
// (earlier entries match preferentially under leftmost-first semantics).
func NewAlternation(subs ...*Node) *Node {
	return &Node{Kind: Alternation, Sub: subs}
}

// IsLookaheadAssertion reports whether n is a zero-width anchor assertion,
// i.e. the only kind of "lookahead" this HIR's pairwise concatenation rules
// (compiler package, §4.1.1) ever need to recognize.
func (n *Node) IsLookaheadAssertion() bool {
	return n != nil && n.Kind == Look
}

// IsPossessiveRepetition reports whether n is a Repetition with possessive
// quantifier kind.
func (n *Node) IsPossessiveRepetition() bool {
	return n != nil && n.Kind == Repetition && n.RepKind == Possessive
}
