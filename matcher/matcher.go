// Package matcher implements the NFA execution model of §4.4: a
// leftmost-first priority simulator over the two-character-window NFA
// produced by the compiler package.
//
// The simulator is a Thompson/Pike-style multi-thread walk (no
// backtracking): at each input position it holds an ordered list of live
// StateIds, advances them all in lockstep against (current, lookahead),
// and resolves ambiguity by thread priority rather than by search order.
// One simulation pass is linear in the input it scans regardless of
// pattern shape; Find and FindAll start a new pass at each candidate
// offset, so a search can take time quadratic in input length.
package matcher

import (
	"github.com/coregx/hirnfa/internal/sparse"
	"github.com/coregx/hirnfa/nfa"
)

// Span is a half-open [Start, End) range of symbol positions into the
// matched input, in the Symbol domain of §3 (Unicode scalar values and
// identity-lifted invalid bytes) — for ASCII-only input this coincides
// with byte offsets.
type Span struct {
	Start, End int
}

// Matcher runs repeated searches against one immutable NFA. Per §5, an
// NFA is pure post-compile data: many Matchers may share one NFA
// concurrently.
type Matcher struct {
	nfa *nfa.NFA
}

// New wraps n for matching. n must not be mutated afterward.
func New(n *nfa.NFA) *Matcher {
	return &Matcher{nfa: n}
}

// threadList is the ordered, deduplicated set of live states for one
// simulation generation. Insertion order is priority order: the first
// thread to reach a given StateID in a generation keeps it, exactly as
// §4.4's epsilon closure requires for greedy/reluctant disambiguation.
type threadList struct {
	ids     []nfa.StateID
	visited *sparse.SparseSet
}

func newThreadList(capacity int) *threadList {
	if capacity < 1 {
		capacity = 1
	}
	//nolint:gosec // G115: capacity is bounded by NFA state count, always small enough for uint32
	return &threadList{ids: make([]nfa.StateID, 0, capacity), visited: sparse.NewSparseSet(uint32(capacity))}
}

func (t *threadList) reset() {
	t.ids = t.ids[:0]
	t.visited.Clear()
}

// addClosure performs the epsilon closure of id into t: Epsilon and
// Split edges are followed (in Split's priority order) until a
// Transitions, Match, or Rejected state is reached, which is appended as
// a closure-terminal thread. Already-visited states are skipped so the
// first (highest-priority) path to a given state wins.
func (t *threadList) addClosure(n *nfa.NFA, id nfa.StateID) {
	//nolint:gosec // G115: StateID is uint32-backed by construction
	if !t.visited.TryInsert(uint32(id)) {
		return
	}
	st, ok := n.State(id)
	if !ok {
		return
	}
	switch st.Kind {
	case nfa.KindEpsilon:
		t.addClosure(n, st.Next)
	case nfa.KindSplit:
		for _, target := range st.Targets {
			t.addClosure(n, target)
		}
	default: // Transitions, Match, Rejected are closure-terminal.
		t.ids = append(t.ids, id)
	}
}

// runFrom simulates the NFA starting at symbols[start:], per §4.4's
// stepping rules. It returns the end position of the best (leftmost-
// first, greedy-ordered) match starting exactly at start, or (false, -1)
// if none exists.
//
// Possessive transitions (§4.1.3) rely on at most one transition firing
// per thread per step: within a single Transitions state's list, this
// loop fires the first transition whose (current, lookahead) both hold
// and ignores the rest, so a possessive loop's in-loop and exit
// transitions — identical on `current`, distinguished only by
// `lookahead` — can never both advance the same thread.
func (m *Matcher) runFrom(symbols []rune, start int) (matched bool, end int) {
	capacity := m.nfa.NumStates()
	clist := newThreadList(capacity)
	nlist := newThreadList(capacity)

	clist.addClosure(m.nfa, m.nfa.Start())
	pos := start
	end = -1

	for {
		acceptedAt := -1
		for i, id := range clist.ids {
			if m.nfa.IsAccepting(id) {
				acceptedAt = i
				break
			}
		}
		if acceptedAt >= 0 {
			matched = true
			end = pos
		}
		if len(clist.ids) == 0 {
			break
		}
		if pos >= len(symbols) {
			break
		}

		sym := symbols[pos]
		haveLookahead := pos+1 < len(symbols)
		var lookahead rune
		if haveLookahead {
			lookahead = symbols[pos+1]
		}

		limit := len(clist.ids)
		if acceptedAt >= 0 {
			limit = acceptedAt // lower-priority threads than the match are cut
		}

		nlist.reset()
		for i := 0; i < limit; i++ {
			st, ok := m.nfa.State(clist.ids[i])
			if !ok || st.Kind != nfa.KindTransitions {
				continue
			}
			for _, tr := range st.Transitions {
				if !tr.Current.Matches(sym) {
					continue
				}
				if tr.Lookahead != nil {
					if !haveLookahead || !tr.Lookahead.Matches(lookahead) {
						continue
					}
				}
				nlist.addClosure(m.nfa, tr.Target)
				break
			}
		}

		clist, nlist = nlist, clist
		pos++
	}
	return matched, end
}

// IsMatch reports whether the entire input is accepted, i.e. whether
// Find would return a match spanning [0, len(runes)) — L1's definition.
func (m *Matcher) IsMatch(input string) bool {
	symbols := decodeSymbols(input)
	matched, end := m.runFrom(symbols, 0)
	return matched && end == len(symbols)
}

// Find returns the leftmost match, trying successive start offsets in
// order and taking the first offset that yields any match at all (not
// necessarily the longest at that offset — length is resolved by
// runFrom's greedy-ordered priority simulation, per L2).
func (m *Matcher) Find(input string) (Span, bool) {
	symbols := decodeSymbols(input)
	for start := 0; start <= len(symbols); start++ {
		if matched, end := m.runFrom(symbols, start); matched {
			return Span{Start: start, End: end}, true
		}
	}
	return Span{}, false
}

// FindAll returns all non-overlapping left-to-right matches. An empty
// match advances the search position by one symbol so FindAll always
// terminates and never reports the same empty span twice in a row.
func (m *Matcher) FindAll(input string) []Span {
	symbols := decodeSymbols(input)
	var spans []Span
	pos := 0
	for pos <= len(symbols) {
		matched, end := m.runFrom(symbols, pos)
		if !matched {
			pos++
			continue
		}
		spans = append(spans, Span{Start: pos, End: end})
		if end > pos {
			pos = end
		} else {
			pos++
		}
	}
	return spans
}
