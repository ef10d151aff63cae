package pipeline

// Outcome reports the result of processing exactly one instance. Err is nil on
// success or carries the per-instance failure; it is never raised out of the
// producing stream itself.
type Outcome struct {
	Instance *Instance
	Err      error
}

// Stream is a lazy, single-pass sequence of per-instance outcomes. Work is
// suspended between pulls: the producer runs only as far as needed to satisfy
// each Next call, so a caller aborts remaining work simply by ceasing
// iteration. A fully consumed stream yields nothing on further calls.
type Stream struct {
	next func() (Outcome, bool)
	done bool
}

// NewStream wraps a pull function into a stream. The function returns the next
// outcome and true, or a zero outcome and false once exhausted.
func NewStream(next func() (Outcome, bool)) *Stream {
	return &Stream{next: next}
}

// Empty returns a stream that yields nothing.
func Empty() *Stream {
	return &Stream{done: true}
}

// StreamOf returns a stream over pre-computed outcomes, yielded in order.
func StreamOf(outcomes ...Outcome) *Stream {
	i := 0
	return NewStream(func() (Outcome, bool) {
		if i >= len(outcomes) {
			return Outcome{}, false
		}
		out := outcomes[i]
		i++
		return out, true
	})
}

// Visit returns a stream that lazily applies fn to each instance in order,
// yielding one outcome per instance. A non-nil error from fn becomes the
// outcome's Err; it never aborts the remaining instances.
func Visit(instances []*Instance, fn func(*Instance) error) *Stream {
	i := 0
	return NewStream(func() (Outcome, bool) {
		if i >= len(instances) {
			return Outcome{}, false
		}
		inst := instances[i]
		i++
		return Outcome{Instance: inst, Err: fn(inst)}, true
	})
}

// Next advances the stream by one outcome. The second return is false once the
// stream is exhausted.
func (s *Stream) Next() (Outcome, bool) {
	if s.done || s.next == nil {
		return Outcome{}, false
	}
	out, ok := s.next()
	if !ok {
		s.done = true
		return Outcome{}, false
	}
	return out, true
}

// Collect drains the stream and returns every remaining outcome.
func (s *Stream) Collect() []Outcome {
	var outcomes []Outcome
	for {
		out, ok := s.Next()
		if !ok {
			return outcomes
		}
		outcomes = append(outcomes, out)
	}
}

// FirstError drains the stream until the first failed outcome and returns its
// error, or nil when every outcome succeeded. Remaining work after the failure
// is abandoned, which is the caller-escalation path of the protocol.
func (s *Stream) FirstError() error {
	for {
		out, ok := s.Next()
		if !ok {
			return nil
		}
		if out.Err != nil {
			return out.Err
		}
	}
}
