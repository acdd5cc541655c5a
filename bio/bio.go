// Package bio provides functions for reading and writing protein
// sequences in FASTA format.
package bio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// maxLine is the longest FASTA line accepted by the line based readers.
const maxLine = 16 << 20

// StandardAminoAcids is the 20 letter amino acid alphabet.
const StandardAminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// IsStandard tests if b is one of the 20 standard amino acid codes
// (capital letters).
func IsStandard(b byte) bool {
	return strings.IndexByte(StandardAminoAcids, b) >= 0
}

// Sequence is a type which is intended for storing protein sequence
// with it's name.
type Sequence struct {
	Name        string
	Description string
	Sequence    string
}

// Sequences stores multiple sequences, e.g. a proteome.
type Sequences []Sequence

// Open opens a plain or gzip-compressed file.
func Open(fn string) (io.ReadCloser, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &gzipFile{Reader: gr, f: f}, nil
	}
	return &plainFile{Reader: br, f: f}, nil
}

type plainFile struct {
	*bufio.Reader
	f *os.File
}

func (p *plainFile) Close() error {
	return p.f.Close()
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if ferr := g.f.Close(); err == nil {
		err = ferr
	}
	return err
}

// normalize converts residues to capital letters and removes
// whitespace.
func normalize(s []byte) string {
	var buffer bytes.Buffer
	buffer.Grow(len(s))
	for _, b := range s {
		if unicode.IsSpace(rune(b)) {
			continue
		}
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		buffer.WriteByte(b)
	}
	return buffer.String()
}

// ParseFasta parses FASTA protein sequences from a reader.
func ParseFasta(rd io.Reader) (seqs Sequences, err error) {
	seqs = make(Sequences, 0, 10)
	t := linear.NewSeq("", nil, alphabet.Protein)
	sc := seqio.NewScanner(fasta.NewReader(rd, t))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, errors.New("unexpected sequence type")
		}
		letters := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			letters[i] = byte(l)
		}
		seqs = append(seqs, Sequence{
			Name:        s.Name(),
			Description: s.Description(),
			Sequence:    normalize(letters),
		})
	}
	if err = sc.Error(); err != nil {
		return nil, err
	}
	return
}

// Clean returns all the sequence lines of a FASTA file concatenated
// into a single sequence. Header lines (starting with '>') are
// dropped.
func Clean(rd io.Reader) (string, error) {
	var buffer bytes.Buffer
	err := eachSequenceLine(rd, func(line []byte) {
		buffer.WriteString(normalize(line))
	})
	if err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// Load parses FASTA records from data and returns them together with
// all their sequence lines concatenated. Data without any record is
// an error.
func Load(data []byte) (Sequences, string, error) {
	seqs, err := ParseFasta(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if len(seqs) == 0 {
		return nil, "", errors.New("no FASTA records")
	}
	seq, err := Clean(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return seqs, seq, nil
}

// ShortName returns the last '|'-separated field of the name, e.g.
// CCR7_HUMAN for sp|P32248|CCR7_HUMAN.
func (seq Sequence) ShortName() string {
	if i := strings.LastIndexByte(seq.Name, '|'); i >= 0 && i < len(seq.Name)-1 {
		return seq.Name[i+1:]
	}
	return seq.Name
}

// eachSequenceLine calls f for every non-header line.
func eachSequenceLine(rd io.Reader, f func(line []byte)) error {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '>' {
			continue
		}
		f(line)
	}
	return scanner.Err()
}

// Wrap inputs a string and wraps it so string length is n characters
// or less.
func Wrap(seq string, n int) string {
	var buffer bytes.Buffer
	for i := 0; i < len(seq); i += n {
		end := i + n
		if end > len(seq) {
			end = len(seq)
		}
		buffer.WriteString(seq[i:end])
		buffer.WriteByte('\n')
	}
	return buffer.String()
}

// String returns a sequence in FASTA format.
func (seq Sequence) String() string {
	header := seq.Name
	if seq.Description != "" {
		header += " " + seq.Description
	}
	return ">" + header + "\n" + Wrap(seq.Sequence, 80)
}

// String returns sequences in FASTA format.
func (seqs Sequences) String() string {
	var buffer bytes.Buffer
	for _, seq := range seqs {
		buffer.WriteString(seq.String())
	}
	return buffer.String()
}
