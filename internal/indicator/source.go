package indicator

import (
	"context"
	"io"
)

// Future is an external task that settles exactly once. Await blocks until
// it does, or until ctx is cancelled. Success and failure are treated alike.
type Future interface {
	Await(ctx context.Context) error
}

// Stream is an external task that emits progress fractions before it ends.
// Next returns io.EOF on normal completion; any other error also ends it.
type Stream interface {
	Next(ctx context.Context) (float64, error)
}

// SourceKind tags a Source.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceFuture
	SourceStream
)

func (k SourceKind) String() string {
	switch k {
	case SourceFuture:
		return "future"
	case SourceStream:
		return "stream"
	default:
		return "none"
	}
}

// Source is a future or a stream, decided once when it is built. The zero
// Source is empty.
type Source struct {
	kind   SourceKind
	future Future
	stream Stream
}

// FromFuture wraps a Future. A nil future gives the empty Source.
func FromFuture(f Future) Source {
	if f == nil {
		return Source{}
	}
	return Source{kind: SourceFuture, future: f}
}

// FromStream wraps a Stream. A nil stream gives the empty Source.
func FromStream(s Stream) Source {
	if s == nil {
		return Source{}
	}
	return Source{kind: SourceStream, stream: s}
}

// NewSource inspects v once and builds the matching Source. A value that is
// both a Stream and a Future is bound as a stream. Unsupported values give
// the empty Source.
func NewSource(v any) Source {
	switch s := v.(type) {
	case Source:
		return s
	case Stream:
		return FromStream(s)
	case Future:
		return FromFuture(s)
	default:
		return Source{}
	}
}

// Kind returns the source tag.
func (s Source) Kind() SourceKind {
	return s.kind
}

// IsZero reports whether the source is empty.
func (s Source) IsZero() bool {
	return s.kind == SourceNone
}

// FutureFunc runs fn on its own goroutine when awaited; fn's return settles
// the future.
type FutureFunc func(ctx context.Context) error

// Await implements Future.
func (f FutureFunc) Await(ctx context.Context) error {
	return f(ctx)
}

// FromErrChan returns a Future settled by the first value received on ch, or
// by ch being closed.
func FromErrChan(ch <-chan error) Future {
	return FutureFunc(func(ctx context.Context) error {
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// StreamFunc adapts a function to Stream.
type StreamFunc func(ctx context.Context) (float64, error)

// Next implements Stream.
func (f StreamFunc) Next(ctx context.Context) (float64, error) {
	return f(ctx)
}

// FromChannel returns a Stream emitting each fraction received on ch and
// ending when ch is closed.
func FromChannel(ch <-chan float64) Stream {
	return StreamFunc(func(ctx context.Context) (float64, error) {
		select {
		case v, ok := <-ch:
			if !ok {
				return 0, io.EOF
			}
			return v, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
}
