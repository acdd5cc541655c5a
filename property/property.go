// Package property provides amino-acid property tables, e.g.
// hydropathy or isoelectric point, keyed by one-letter residue code.
package property

import (
	"sort"
)

// Table maps a one-letter amino acid code (capital letter) to a
// numeric property value.
type Table map[byte]float64

// Lookup stores multiple property tables by name, e.g.
// "hydropathy":{'A':1.8, 'R':-4.5, ...}.
type Lookup map[string]Table

// Get returns the table for the property name.
func (l Lookup) Get(name string) (Table, bool) {
	t, ok := l[name]
	return t, ok
}

// Names returns sorted property names.
func (l Lookup) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Symbols returns sorted residue codes present in the table.
func (t Table) Symbols() []byte {
	syms := make([]byte, 0, len(t))
	for s := range t {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// Property names of the built-in tables.
const (
	Hydropathy = "hydropathy"
	PI         = "pI"
	Surface    = "surface"
)

var (
	// kyteDoolittle is the hydropathy index (Kyte & Doolittle, 1982).
	kyteDoolittle = Table{
		'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
		'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
		'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
		'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
	}
	// isoelectric is the isoelectric point of free amino acids.
	isoelectric = Table{
		'A': 6.00, 'R': 10.76, 'N': 5.41, 'D': 2.77, 'C': 5.07,
		'Q': 5.65, 'E': 3.22, 'G': 5.97, 'H': 7.59, 'I': 6.02,
		'L': 5.98, 'K': 9.74, 'M': 5.74, 'F': 5.48, 'P': 6.30,
		'S': 5.68, 'T': 5.60, 'W': 5.89, 'Y': 5.66, 'V': 5.96,
	}
	// accessible is the standard state accessible surface area in
	// square angstroms (Rose et al., 1985).
	accessible = Table{
		'A': 118.1, 'R': 256.0, 'N': 165.5, 'D': 158.7, 'C': 146.1,
		'Q': 193.2, 'E': 186.2, 'G': 88.1, 'H': 202.5, 'I': 181.0,
		'L': 193.1, 'K': 225.8, 'M': 203.4, 'F': 222.8, 'P': 146.8,
		'S': 129.8, 'T': 152.5, 'W': 266.3, 'Y': 236.8, 'V': 164.5,
	}
)

// Default returns a copy of the built-in tables for the 20 standard
// amino acids.
func Default() Lookup {
	return Lookup{
		Hydropathy: copyTable(kyteDoolittle),
		PI:         copyTable(isoelectric),
		Surface:    copyTable(accessible),
	}
}

func copyTable(t Table) Table {
	c := make(Table, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}
