package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/logger"
)

var (
	percentPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	ratioPattern    = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	fractionPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?|\.\d+)\s*$`)
)

// ParseProgress extracts a progress fraction from one line of output.
//
// Recognised forms, in order of precedence:
//   - a percentage anywhere in the line: "downloading 45%" is 0.45
//   - a ratio anywhere in the line: "step 3/10" is 0.3
//   - a bare number making up the whole line: "0.3" is 0.3, "30" is 0.3
//
// Bare numbers up to 1 are fractions and larger ones are percentages. The
// last match in a line wins. Results are clamped to [0, 1].
func ParseProgress(line string) (float64, bool) {
	if m := percentPattern.FindAllStringSubmatch(line, -1); m != nil {
		v, err := strconv.ParseFloat(m[len(m)-1][1], 64)
		if err == nil {
			return clamp01(v / 100), true
		}
	}

	if m := ratioPattern.FindAllStringSubmatch(line, -1); m != nil {
		last := m[len(m)-1]
		num, err1 := strconv.ParseFloat(last[1], 64)
		den, err2 := strconv.ParseFloat(last[2], 64)
		if err1 == nil && err2 == nil && den > 0 {
			return clamp01(num / den), true
		}
	}

	if m := fractionPattern.FindStringSubmatch(line); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if v > 1 {
				v /= 100
			}
			return clamp01(v), true
		}
	}

	return 0, false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

type lineResult struct {
	value float64
	err   error
}

// LineStream is an indicator.Stream reading progress lines from a reader.
// Lines without a recognisable value are skipped. The reader is consumed on
// its own goroutine, started by the first call to Next.
type LineStream struct {
	r    io.Reader
	echo io.Writer
	log  logger.Logger

	once    sync.Once
	results chan lineResult
	done    chan struct{}
	stop    sync.Once
}

// LineStreamOption configures a LineStream.
type LineStreamOption func(*LineStream)

// WithEcho copies every line read, parsed or not, to w.
func WithEcho(w io.Writer) LineStreamOption {
	return func(s *LineStream) { s.echo = w }
}

// WithLogger sets the logger used for skipped lines.
func WithLogger(l logger.Logger) LineStreamOption {
	return func(s *LineStream) { s.log = l }
}

// NewLineStream creates a stream over r.
func NewLineStream(r io.Reader, opts ...LineStreamOption) *LineStream {
	s := &LineStream{
		r:       r,
		log:     logger.Noop(),
		results: make(chan lineResult),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next implements indicator.Stream. It returns io.EOF once the reader is
// exhausted.
func (s *LineStream) Next(ctx context.Context) (float64, error) {
	s.once.Do(func() { go s.scan() })

	select {
	case res, ok := <-s.results:
		if !ok {
			return 0, io.EOF
		}
		return res.value, res.err
	case <-ctx.Done():
		s.Close()
		return 0, ctx.Err()
	}
}

// Close stops delivering values. A read already blocked on the reader stays
// blocked until the reader returns.
func (s *LineStream) Close() {
	s.stop.Do(func() { close(s.done) })
}

func (s *LineStream) scan() {
	defer close(s.results)

	scanner := bufio.NewScanner(s.r)
	for scanner.Scan() {
		line := scanner.Text()
		if s.echo != nil {
			fmt.Fprintln(s.echo, line)
		}

		v, ok := ParseProgress(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				s.log.Debug("skipping line without progress: %q", line)
			}
			continue
		}
		if !s.send(lineResult{value: v}) {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		s.send(lineResult{err: errors.WrapWithCode(err, errors.ErrSource,
			"Couldn't read progress input",
			"Check that the producing command is still running.")})
	}
}

func (s *LineStream) send(res lineResult) bool {
	select {
	case s.results <- res:
		return true
	case <-s.done:
		return false
	}
}
