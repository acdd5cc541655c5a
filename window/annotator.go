package window

import (
	"fmt"
	"sync"

	"bitbucket.org/Davydov/protplot/property"
)

// Series is a named list of values, one per sequence position.
type Series struct {
	Name   string
	Values []float64
}

// Label returns a series name for a window size.
func Label(size int) string {
	if size == 1 {
		return "No average"
	}
	return fmt.Sprintf("Average over %d amino acids", size)
}

// Annotator holds a protein sequence together with the property
// tables it can be mapped through.
type Annotator struct {
	Sequence string
	Lookup   property.Lookup
}

// NewAnnotator creates a new Annotator.
func NewAnnotator(seq string, lookup property.Lookup) *Annotator {
	return &Annotator{
		Sequence: seq,
		Lookup:   lookup,
	}
}

func (a *Annotator) table(prop string) (property.Table, error) {
	t, ok := a.Lookup.Get(prop)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownProperty, prop, a.Lookup.Names())
	}
	return t, nil
}

// Annotate returns the sequence mapped through the property table
// and averaged over the window size.
func (a *Annotator) Annotate(prop string, size int) ([]float64, error) {
	t, err := a.table(prop)
	if err != nil {
		return nil, err
	}
	return Average(a.Sequence, t, size)
}

// Overlay computes one series per window size. Series are computed
// in parallel and returned in the order of sizes. If several sizes
// fail, the error for the first of them is returned.
func (a *Annotator) Overlay(prop string, sizes ...int) ([]Series, error) {
	t, err := a.table(prop)
	if err != nil {
		return nil, err
	}

	series := make([]Series, len(sizes))
	errs := make([]error, len(sizes))

	var wg sync.WaitGroup
	for i, size := range sizes {
		wg.Add(1)
		go func(i, size int) {
			defer wg.Done()
			series[i].Name = Label(size)
			series[i].Values, errs[i] = Average(a.Sequence, t, size)
		}(i, size)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	log.Debugf("%s: %d series over %d positions", prop, len(series), len(a.Sequence))
	return series, nil
}
