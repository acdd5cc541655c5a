// Package window maps protein sequences through amino acid property
// tables and smooths the result with a trailing moving average.
//
// The window grows at the start of a sequence and slides afterwards,
// so every series has exactly one value per sequence position and
// series computed with different window sizes share the same x-axis.
package window

import (
	"errors"
	"fmt"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/protplot/property"
)

// log is the global logging variable.
var log = logging.MustGetLogger("window")

var (
	// ErrInvalidArgument is returned for a non-positive window size.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownProperty is returned if a property table is missing
	// from the lookup.
	ErrUnknownProperty = errors.New("unknown property")
)

// LookupError is returned when a sequence symbol has no entry in a
// property table.
type LookupError struct {
	// Symbol is the offending one-letter code.
	Symbol byte
	// Position is the 0-based position in the sequence.
	Position int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no property value for %q at position %d", e.Symbol, e.Position)
}

// ring is a fixed capacity buffer keeping a running sum of the
// values it holds.
type ring struct {
	buf  []float64
	next int
	n    int
	sum  float64
}

func newRing(size int) *ring {
	return &ring{buf: make([]float64, size)}
}

// push adds a value, evicting the oldest one if the buffer is full.
func (r *ring) push(v float64) {
	if r.n == len(r.buf) {
		r.sum -= r.buf[r.next]
	} else {
		r.n++
	}
	r.buf[r.next] = v
	r.sum += v
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
	}
}

// mean returns the average over the values currently held.
func (r *ring) mean() float64 {
	return r.sum / float64(r.n)
}

// Average maps every residue of seq through the table and returns
// the trailing moving average with the given window size. Position i
// holds the mean over positions max(0, i-size+1)..i.
func Average(seq string, table property.Table, size int) ([]float64, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: window size %d, should be at least 1", ErrInvalidArgument, size)
	}
	res := make([]float64, len(seq))
	if len(seq) == 0 {
		return res, nil
	}
	// the window never fills up beyond the sequence length
	if size > len(seq) {
		size = len(seq)
	}
	r := newRing(size)
	for i := 0; i < len(seq); i++ {
		v, ok := table[seq[i]]
		if !ok {
			return nil, &LookupError{Symbol: seq[i], Position: i}
		}
		r.push(v)
		res[i] = r.mean()
	}
	return res, nil
}

// Map returns per-position property values without averaging.
func Map(seq string, table property.Table) ([]float64, error) {
	return Average(seq, table, 1)
}
