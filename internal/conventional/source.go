package conventional

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrConsumed is yielded when a stream source is asked for releases a second
// time; the underlying chunk stream cannot be restarted.
var ErrConsumed = errors.New("release stream already consumed")

// Request carries the parameters passed to the commit-grouping collaborator.
type Request struct {
	// Version is the target version of the release being prepared.
	Version string
	// SinceLastTag limits the result to commits since the most recent tag
	// (incremental mode). When false the full history is requested.
	SinceLastTag bool
}

// Source is the commit-grouping collaborator port. The returned sequence is
// finite and may only be ranged over once.
type Source interface {
	Releases(ctx context.Context, req Request) iter.Seq2[RawRelease, error]
}

// Collect materializes a release sequence, stopping at the first error.
func Collect(seq iter.Seq2[RawRelease, error]) ([]RawRelease, error) {
	var out []RawRelease
	for r, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Static is a Source over a fixed list of descriptions. It ignores the
// request and yields every element.
type Static []RawRelease

// Releases implements Source.
func (s Static) Releases(ctx context.Context, _ Request) iter.Seq2[RawRelease, error] {
	return func(yield func(RawRelease, error) bool) {
		for _, r := range s {
			if err := ctx.Err(); err != nil {
				yield(RawRelease{}, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Stream adapts a reader carrying conventional-changelog JSON output. The
// reader may hold concatenated or newline-delimited JSON objects, or a single
// JSON array of them, newest release first.
//
// Request handling follows conventional-changelog's release count: with
// SinceLastTag only the first (newest) description is yielded, otherwise all
// of them. A description without a version takes Request.Version.
type Stream struct {
	r        io.Reader
	consumed bool
}

// NewStream returns a Stream reading from r.
func NewStream(r io.Reader) *Stream {
	return &Stream{r: r}
}

// Releases implements Source.
func (s *Stream) Releases(ctx context.Context, req Request) iter.Seq2[RawRelease, error] {
	return func(yield func(RawRelease, error) bool) {
		if s.consumed {
			yield(RawRelease{}, ErrConsumed)
			return
		}
		s.consumed = true

		br := bufio.NewReader(s.r)
		isArray, err := startsWithArray(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				yield(RawRelease{}, fmt.Errorf("reading release stream: %w", err))
			}
			return
		}

		dec := json.NewDecoder(br)
		if isArray {
			if _, err := dec.Token(); err != nil {
				yield(RawRelease{}, fmt.Errorf("reading release stream: %w", err))
				return
			}
		}

		for n := 0; ; n++ {
			if err := ctx.Err(); err != nil {
				yield(RawRelease{}, err)
				return
			}
			if isArray && !dec.More() {
				if _, err := dec.Token(); err != nil {
					yield(RawRelease{}, fmt.Errorf("reading release stream: unterminated array: %w", err))
				}
				return
			}

			var r RawRelease
			if err := dec.Decode(&r); err != nil {
				if errors.Is(err, io.EOF) && !isArray {
					return
				}
				yield(RawRelease{}, fmt.Errorf("decoding release description %d: %w", n+1, err))
				return
			}
			if r.Version == "" {
				r.Version = req.Version
			}
			if !yield(r, nil) {
				return
			}
			if req.SinceLastTag {
				return
			}
		}
	}
}

// startsWithArray skips leading whitespace and reports whether the next
// byte opens a JSON array. It returns io.EOF for blank input.
func startsWithArray(br *bufio.Reader) (bool, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return false, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return false, err
		}
		return b == '[', nil
	}
}
