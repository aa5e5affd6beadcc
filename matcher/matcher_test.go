package matcher

import (
	"testing"

	"github.com/coregx/hirnfa/nfa"
)

// These tests hand-assemble NFAs with the nfa.Builder primitives,
// independent of the compiler package, to pin down the simulation
// semantics (§4.4) against the concrete scenarios of §8 before the
// compiler exists to generate them.

// buildLiteral builds the NFA for a fixed literal string, S1.
func buildLiteral(t *testing.T, lit string) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	match := b.NewMatch()
	target := match
	// Chain right-to-left so each transitions node's target is already known.
	for i := len(lit) - 1; i >= 0; i-- {
		target = b.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate(rune(lit[i])), Target: target}})
	}
	b.SetStart(target)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return n
}

func TestS1LiteralMatch(t *testing.T) {
	m := New(buildLiteral(t, "ab"))
	span, ok := m.Find("ab")
	if !ok || span != (Span{0, 2}) {
		t.Fatalf("Find(%q) = %v, %v; want {0 2}, true", "ab", span, ok)
	}
	if !m.IsMatch("ab") {
		t.Fatal("IsMatch(\"ab\") = false, want true")
	}
}

// buildStar builds a*, greedy or reluctant per the greedy flag, per §4.1.2.
func buildStar(t *testing.T, greedy bool) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	match := b.NewMatch()
	exit := b.NewEpsilonTo(match)
	split := b.NewSplit()
	a := b.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate('a'), Target: nfa.Unpatched}})
	if err := b.Connect(a, split); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if greedy {
		if err := b.Connect(split, a); err != nil {
			t.Fatal(err)
		}
		if err := b.Connect(split, exit); err != nil {
			t.Fatal(err)
		}
	} else {
		if err := b.Connect(split, exit); err != nil {
			t.Fatal(err)
		}
		if err := b.Connect(split, a); err != nil {
			t.Fatal(err)
		}
	}
	b.SetStart(split)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return n
}

func TestS2GreedyStarLongestMatch(t *testing.T) {
	m := New(buildStar(t, true))

	span, ok := m.Find("aaa")
	if !ok || span != (Span{0, 3}) {
		t.Fatalf("Find(%q) = %v, %v; want {0 3}, true", "aaa", span, ok)
	}
	span, ok = m.Find("")
	if !ok || span != (Span{0, 0}) {
		t.Fatalf("Find(\"\") = %v, %v; want {0 0}, true", span, ok)
	}
}

func TestL2ReluctantStarPrefersShortest(t *testing.T) {
	m := New(buildStar(t, false))

	span, ok := m.Find("aaa")
	if !ok || span != (Span{0, 0}) {
		t.Fatalf("Find(%q) = %v, %v; want {0 0}, true (reluctant should not consume)", "aaa", span, ok)
	}
}

// buildAlternation builds a|b, a Thompson binary split, S3.
func buildAlternation(t *testing.T) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	match := b.NewMatch()
	exit := b.NewEpsilonTo(match)
	a := b.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate('a'), Target: exit}})
	bb := b.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate('b'), Target: exit}})
	split := b.NewSplit(a, bb)
	b.SetStart(split)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return n
}

func TestS3Alternation(t *testing.T) {
	m := New(buildAlternation(t))

	span, ok := m.Find("b")
	if !ok || span != (Span{0, 1}) {
		t.Fatalf("Find(%q) = %v, %v; want {0 1}, true", "b", span, ok)
	}
	if _, ok := m.Find("c"); ok {
		t.Fatal("Find(\"c\") matched, want no match")
	}
}

// buildClass builds [abc], S4.
func buildClass(t *testing.T) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	match := b.NewMatch()
	cls := b.NewTransitions([]nfa.Transition{
		{Current: nfa.CharPredicate('a'), Target: match},
		{Current: nfa.CharPredicate('b'), Target: match},
		{Current: nfa.CharPredicate('c'), Target: match},
	})
	b.SetStart(cls)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return n
}

func TestS4CharacterClass(t *testing.T) {
	m := New(buildClass(t))

	span, ok := m.Find("c")
	if !ok || span != (Span{0, 1}) {
		t.Fatalf("Find(%q) = %v, %v; want {0 1}, true", "c", span, ok)
	}
	if _, ok := m.Find("d"); ok {
		t.Fatal("Find(\"d\") matched, want no match")
	}
}

// buildPossessiveThenLiteral builds `a++ab` when possessive is true, or
// the contrasting `a+ab` when possessive is false, per §4.1.3 and S5.
func buildPossessiveThenLiteral(t *testing.T, possessive bool) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	match := b.NewMatch()
	litB := b.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate('b'), Target: match}})
	litA := b.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate('a'), Target: litB}})
	exit := b.NewEpsilonTo(litA)

	if possessive {
		aPred := nfa.CharPredicate('a')
		p := b.NewTransitions([]nfa.Transition{
			{Current: aPred, Lookahead: &aPred, Target: nfa.Unpatched},
			{Current: aPred, Target: exit},
		})
		if err := b.Connect(p, p); err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		b.SetStart(p)
	} else {
		r := b.NewTransitions([]nfa.Transition{{Current: nfa.CharPredicate('a'), Target: nfa.Unpatched}})
		split := b.NewSplit()
		if err := b.Connect(r, split); err != nil {
			t.Fatal(err)
		}
		if err := b.Connect(split, r); err != nil {
			t.Fatal(err)
		}
		if err := b.Connect(split, exit); err != nil {
			t.Fatal(err)
		}
		b.SetStart(r)
	}

	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return n
}

func TestS5PossessiveVsGreedyPlus(t *testing.T) {
	possessive := New(buildPossessiveThenLiteral(t, true))
	if _, ok := possessive.Find("aaab"); ok {
		t.Fatal("a++ab matched \"aaab\", want no match (possessive consumes all a's)")
	}

	greedy := New(buildPossessiveThenLiteral(t, false))
	span, ok := greedy.Find("aaab")
	if !ok || span != (Span{0, 4}) {
		t.Fatalf("a+ab: Find(%q) = %v, %v; want {0 4}, true", "aaab", span, ok)
	}
}

// buildNegatedClassPossessive builds `[^ab]++`, S6.
func buildNegatedClassPossessive(t *testing.T) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	match := b.NewMatch()
	exit := b.NewEpsilonTo(match)

	set := nfa.NewRuneSet([]nfa.RuneRange{{Lo: 'a', Hi: 'a'}, {Lo: 'b', Hi: 'b'}})
	pred := nfa.NotCharSetPredicate(set)

	p := b.NewTransitions([]nfa.Transition{
		{Current: pred, Lookahead: &pred, Target: nfa.Unpatched},
		{Current: pred, Target: exit},
	})
	if err := b.Connect(p, p); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	b.SetStart(p)

	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return n
}

func TestS6NegatedClassPossessive(t *testing.T) {
	m := New(buildNegatedClassPossessive(t))
	span, ok := m.Find("xyzab")
	if !ok || span != (Span{0, 3}) {
		t.Fatalf("Find(%q) = %v, %v; want {0 3}, true", "xyzab", span, ok)
	}
}

// buildEmpty builds the empty pattern, L3.
func buildEmpty(t *testing.T) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	match := b.NewMatch()
	b.SetStart(match)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return n
}

func TestL3EmptyPatternMatchesEverywhereAtZeroLength(t *testing.T) {
	m := New(buildEmpty(t))

	for _, input := range []string{"", "x", "hello"} {
		span, ok := m.Find(input)
		if !ok || span != (Span{0, 0}) {
			t.Fatalf("Find(%q) = %v, %v; want {0 0}, true", input, span, ok)
		}
	}
}

func TestL1IsMatchAgreesWithFullSpanFind(t *testing.T) {
	n := buildLiteral(t, "ab")
	m := New(n)

	if !m.IsMatch("ab") {
		t.Fatal("IsMatch(\"ab\") = false, want true per L1")
	}
	if m.IsMatch("abc") {
		t.Fatal("IsMatch(\"abc\") = true, want false (trailing symbol not consumed)")
	}
	if m.IsMatch("a") {
		t.Fatal("IsMatch(\"a\") = true, want false (incomplete literal)")
	}
}

func TestFindAllNonOverlappingAndEmptyAdvance(t *testing.T) {
	m := New(buildClass(t))

	spans := m.FindAll("xaybzc")
	want := []Span{{1, 2}, {3, 4}, {5, 6}}
	if len(spans) != len(want) {
		t.Fatalf("FindAll() = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("FindAll()[%d] = %v, want %v", i, spans[i], want[i])
		}
	}
}

func TestFindAllAdvancesPastEmptyMatches(t *testing.T) {
	m := New(buildEmpty(t))

	spans := m.FindAll("ab")
	if len(spans) != 3 {
		t.Fatalf("FindAll() on empty pattern over 2-symbol input returned %d spans, want 3", len(spans))
	}
	for i, s := range spans {
		if s.Start != i || s.End != i {
			t.Fatalf("FindAll()[%d] = %v, want {%d %d}", i, s, i, i)
		}
	}
}
