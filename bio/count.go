package bio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("bio")

// Count is the number of occurrences of a residue.
type Count struct {
	Residue byte
	N       int
}

// Counts is a list of residue counts.
type Counts []Count

// CountResidues counts residues in the sequence lines of a FASTA
// stream. Residues are counted case-insensitively, whitespace is
// ignored.
func CountResidues(rd io.Reader) (map[byte]int, error) {
	counts := make(map[byte]int, 25)
	err := eachSequenceLine(rd, func(line []byte) {
		for _, b := range line {
			switch {
			case b == ' ' || b == '\t' || b == '\r':
				continue
			case b >= 'a' && b <= 'z':
				b -= 'a' - 'A'
			}
			counts[b]++
		}
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// CountFiles counts residues over all the files, which can be gzip
// compressed.
func CountFiles(fns ...string) (map[byte]int, error) {
	total := make(map[byte]int, 25)
	for _, fn := range fns {
		f, err := Open(fn)
		if err != nil {
			return nil, err
		}
		counts, err := CountResidues(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		n := 0
		for r, c := range counts {
			total[r] += c
			n += c
		}
		log.Infof("%s: %d residues", fn, n)
	}
	return total, nil
}

// SortCounts returns counts ordered from the most common residue,
// ties are ordered by residue code.
func SortCounts(counts map[byte]int) Counts {
	res := make(Counts, 0, len(counts))
	for r, n := range counts {
		res = append(res, Count{Residue: r, N: n})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].N != res[j].N {
			return res[i].N > res[j].N
		}
		return res[i].Residue < res[j].Residue
	})
	return res
}

// Total returns the total number of residues.
func (c Counts) Total() (n int) {
	for _, cnt := range c {
		n += cnt.N
	}
	return
}

// Labels returns residue codes as strings.
func (c Counts) Labels() []string {
	labels := make([]string, len(c))
	for i, cnt := range c {
		labels[i] = string([]byte{cnt.Residue})
	}
	return labels
}

// Values returns counts as floats, e.g. for plotting.
func (c Counts) Values() []float64 {
	values := make([]float64, len(c))
	for i, cnt := range c {
		values[i] = float64(cnt.N)
	}
	return values
}

// WriteCSV writes residue,count rows.
func (c Counts) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, cnt := range c {
		if err := cw.Write([]string{string([]byte{cnt.Residue}), strconv.Itoa(cnt.N)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
