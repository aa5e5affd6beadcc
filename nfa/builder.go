package nfa

// Builder constructs an NFA incrementically using the low-level
// primitives of §4.3. The compiler package owns exactly one Builder for
// the duration of a single compile and discards it once Build returns.
type Builder struct {
	states    []State
	start     StateID
	haveStart bool
}

// Option configures a new Builder, in the functional-options style rather
// than a constructor with positional flags. (compiler.Config, by contrast,
// is a plain struct with a DefaultConfig constructor.)
type Option func(*Builder)

// WithInitialCapacity preallocates room for approximately n states,
// avoiding incremental slice growth for patterns known to be large.
func WithInitialCapacity(n int) Option {
	return func(b *Builder) {
		if n > cap(b.states) {
			grown := make([]State, len(b.states), n)
			copy(grown, b.states)
			b.states = grown
		}
	}
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{states: make([]State, 0, 16)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewEpsilon adds an Epsilon state whose target is initially Unpatched
// (patch it later via Connect), and returns its StateID.
func (b *Builder) NewEpsilon() StateID {
	return b.push(NewEpsilonState(Unpatched))
}

// NewEpsilonTo adds an Epsilon state targeting next directly.
func (b *Builder) NewEpsilonTo(next StateID) StateID {
	return b.push(NewEpsilonState(next))
}

// NewSplit adds a Split state over the given ordered targets (possibly
// empty; Connect appends further targets).
func (b *Builder) NewSplit(targets ...StateID) StateID {
	ts := make([]StateID, len(targets))
	copy(ts, targets)
	return b.push(NewSplitState(ts))
}

// NewTransitions adds a Transitions state over the given transition
// list. Any transition whose Target is Unpatched is rewritten by a later
// Connect call.
func (b *Builder) NewTransitions(transitions []Transition) StateID {
	ts := make([]Transition, len(transitions))
	copy(ts, transitions)
	return b.push(NewTransitionsState(ts))
}

// NewMatch adds a Match (accepting) state.
func (b *Builder) NewMatch() StateID {
	return b.push(NewMatchState())
}

// NewRejected adds a Rejected terminal sink state.
func (b *Builder) NewRejected() StateID {
	return b.push(NewRejectedState())
}

func (b *Builder) push(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// Connect wires from's pending targets to to, per §4.3:
//   - Epsilon:      set Next = to.
//   - Split:        append to to Targets.
//   - Transitions:  rewrite every transition whose Target == Unpatched to to.
//   - Match/Rejected: no-op (terminal, no outgoing edges).
func (b *Builder) Connect(from, to StateID) error {
	if int(from) >= len(b.states) {
		return &BuildError{Message: "connect: from state out of bounds", StateID: from}
	}
	s := &b.states[from]
	switch s.Kind {
	case KindEpsilon:
		s.Next = to
	case KindSplit:
		s.Targets = append(s.Targets, to)
	case KindTransitions:
		for i := range s.Transitions {
			if s.Transitions[i].Target == Unpatched {
				s.Transitions[i].Target = to
			}
		}
	case KindMatch, KindRejected:
		// terminal: no outgoing edges, nothing to connect.
	}
	return nil
}

// SetStart records id as the NFA's entry state.
func (b *Builder) SetStart(id StateID) {
	b.start = id
	b.haveStart = true
}

// NumStates returns the number of states added so far.
func (b *Builder) NumStates() int { return len(b.states) }

// Validate checks I1 (no Unpatched target survives) and that a start
// state was set and is in range. Called automatically by Build.
func (b *Builder) Validate() error {
	if !b.haveStart {
		return &BuildError{Message: "start state not set", StateID: Unpatched}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	for i, s := range b.states {
		id := StateID(i)
		switch s.Kind {
		case KindEpsilon:
			if s.Next == Unpatched {
				return &BuildError{Message: "unpatched epsilon target", StateID: id}
			}
			if int(s.Next) >= len(b.states) {
				return &BuildError{Message: "epsilon target out of bounds", StateID: id}
			}
		case KindSplit:
			for _, t := range s.Targets {
				if t == Unpatched {
					return &BuildError{Message: "unpatched split target", StateID: id}
				}
				if int(t) >= len(b.states) {
					return &BuildError{Message: "split target out of bounds", StateID: id}
				}
			}
		case KindTransitions:
			for _, tr := range s.Transitions {
				if tr.Target == Unpatched {
					return &BuildError{Message: "unpatched transition target", StateID: id}
				}
				if int(tr.Target) >= len(b.states) {
					return &BuildError{Message: "transition target out of bounds", StateID: id}
				}
			}
		}
	}
	return nil
}

// Build finalizes the Builder into an NFA: computes the accepting set
// (I2, every Match state and no other) and validates I1 before
// returning. The Builder should not be reused after Build.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	accepting := make(map[StateID]struct{})
	for i, s := range b.states {
		if s.Kind == KindMatch {
			accepting[StateID(i)] = struct{}{}
		}
	}
	return &NFA{
		states:    b.states,
		start:     b.start,
		accepting: accepting,
	}, nil
}
