package bio

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

const fasta1 = `>sp|P32248|CCR7_HUMAN C-C chemokine receptor type 7
MDLGKPMKSV LVVALLVIFQ
vcLCQDEVTD
>sp|P00000|TEST_HUMAN Test
ACDE
XZ
`

func TestParseFasta(tst *testing.T) {
	seqs, err := ParseFasta(bytes.NewBufferString(fasta1))
	if err != nil {
		tst.Fatal("Error parsing fasta:", err)
	}
	if len(seqs) != 2 {
		tst.Fatal("Wrong number of sequences:", len(seqs))
	}
	if seqs[0].Name != "sp|P32248|CCR7_HUMAN" {
		tst.Error("Wrong name:", seqs[0].Name)
	}
	if seqs[0].Description != "C-C chemokine receptor type 7" {
		tst.Error("Wrong description:", seqs[0].Description)
	}
	if seqs[0].Sequence != "MDLGKPMKSVLVVALLVIFQVCLCQDEVTD" {
		tst.Error("Wrong sequence:", seqs[0].Sequence)
	}
	if seqs[1].Sequence != "ACDEXZ" {
		tst.Error("Wrong sequence:", seqs[1].Sequence)
	}
}

func TestClean(tst *testing.T) {
	seq, err := Clean(bytes.NewBufferString(fasta1))
	if err != nil {
		tst.Fatal("Error cleaning fasta:", err)
	}
	if seq != "MDLGKPMKSVLVVALLVIFQVCLCQDEVTDACDEXZ" {
		tst.Error("Wrong sequence:", seq)
	}
}

func TestCleanBlankLines(tst *testing.T) {
	seq, err := Clean(bytes.NewBufferString("\n>a\r\nAC\r\n\n  de \n>b\n"))
	if err != nil || seq != "ACDE" {
		tst.Error("Wrong sequence:", seq, err)
	}
}

func TestCleanEmpty(tst *testing.T) {
	seq, err := Clean(bytes.NewBufferString(">only header\n"))
	if err != nil || seq != "" {
		tst.Error("Expected empty sequence, got:", seq, err)
	}
}

func TestWrap(tst *testing.T) {
	if s := Wrap("ABCDEFG", 3); s != "ABC\nDEF\nG\n" {
		tst.Errorf("Wrong wrap: %q", s)
	}
	seq := Sequence{Name: "a", Description: "b c", Sequence: "ACD"}
	if s := seq.String(); s != ">a b c\nACD\n" {
		tst.Errorf("Wrong fasta: %q", s)
	}
}

func TestRoundTrip(tst *testing.T) {
	seqs, err := ParseFasta(bytes.NewBufferString(fasta1))
	if err != nil {
		tst.Fatal("Error parsing fasta:", err)
	}
	again, err := ParseFasta(bytes.NewBufferString(seqs.String()))
	if err != nil {
		tst.Fatal("Error parsing written fasta:", err)
	}
	if len(again) != len(seqs) {
		tst.Fatal("Sequence number mismatch")
	}
	for i := range seqs {
		if seqs[i] != again[i] {
			tst.Error("Sequence mismatch:", seqs[i], again[i])
		}
	}
}

func TestIsStandard(tst *testing.T) {
	if !IsStandard('W') || IsStandard('X') || IsStandard('a') {
		tst.Error("Wrong standard amino acid test")
	}
}

func TestCountResidues(tst *testing.T) {
	counts, err := CountResidues(bytes.NewBufferString(">x\nAAC a\n>y\ncW\n"))
	if err != nil {
		tst.Fatal("Error counting:", err)
	}
	if len(counts) != 3 || counts['A'] != 3 || counts['C'] != 2 || counts['W'] != 1 {
		tst.Error("Wrong counts:", counts)
	}

	sorted := SortCounts(counts)
	if sorted.Total() != 6 {
		tst.Error("Wrong total:", sorted.Total())
	}
	want := Counts{{'A', 3}, {'C', 2}, {'W', 1}}
	for i := range want {
		if sorted[i] != want[i] {
			tst.Error("Wrong order:", sorted)
			break
		}
	}

	var buf bytes.Buffer
	if err := sorted.WriteCSV(&buf); err != nil {
		tst.Fatal("Error writing csv:", err)
	}
	if buf.String() != "A,3\nC,2\nW,1\n" {
		tst.Errorf("Wrong csv: %q", buf.String())
	}
}

func TestSortCountsTies(tst *testing.T) {
	sorted := SortCounts(map[byte]int{'L': 2, 'A': 2, 'G': 5})
	if labels := sorted.Labels(); labels[0] != "G" || labels[1] != "A" || labels[2] != "L" {
		tst.Error("Wrong order:", labels)
	}
	if values := sorted.Values(); values[0] != 5 || values[2] != 2 {
		tst.Error("Wrong values:", values)
	}
}

func TestCountFiles(tst *testing.T) {
	dir := tst.TempDir()
	plain := filepath.Join(dir, "plain.fasta")
	if err := os.WriteFile(plain, []byte(">a\nMKV\n"), 0644); err != nil {
		tst.Fatal(err)
	}

	gz := filepath.Join(dir, "comp.fasta.gz")
	f, err := os.Create(gz)
	if err != nil {
		tst.Fatal(err)
	}
	w := gzip.NewWriter(f)
	w.Write([]byte(">b\nMMK\n"))
	w.Close()
	f.Close()

	counts, err := CountFiles(plain, gz)
	if err != nil {
		tst.Fatal("Error counting files:", err)
	}
	if counts['M'] != 3 || counts['K'] != 2 || counts['V'] != 1 {
		tst.Error("Wrong counts:", counts)
	}

	if _, err := CountFiles(filepath.Join(dir, "missing.fasta")); err == nil {
		tst.Error("Expected error for a missing file")
	}
}

func TestLoad(tst *testing.T) {
	seqs, seq, err := Load([]byte(fasta1))
	if err != nil {
		tst.Fatal("Error loading fasta:", err)
	}
	if len(seqs) != 2 || seqs[0].ShortName() != "CCR7_HUMAN" {
		tst.Error("Wrong records:", seqs)
	}
	if seq != "MDLGKPMKSVLVVALLVIFQVCLCQDEVTDACDEXZ" {
		tst.Error("Wrong sequence:", seq)
	}

	if _, _, err := Load([]byte("")); err == nil {
		tst.Error("Expected error for no records")
	}
	if _, _, err := Load([]byte("<html>Not found</html>\n")); err == nil {
		tst.Error("Expected error for non-FASTA data")
	}
}

func TestShortName(tst *testing.T) {
	for name, short := range map[string]string{
		"sp|P32248|CCR7_HUMAN": "CCR7_HUMAN",
		"GPCR":                 "GPCR",
		"odd|":                 "odd|",
	} {
		if s := (Sequence{Name: name}).ShortName(); s != short {
			tst.Errorf("Wrong short name for %q: %q", name, s)
		}
	}
}

func TestCountsNonASCII(tst *testing.T) {
	sorted := SortCounts(map[byte]int{0xc3: 2, 'A': 1})
	labels := sorted.Labels()
	if len(labels[0]) != 1 || labels[0][0] != 0xc3 {
		tst.Errorf("Residue byte not kept: %q", labels[0])
	}
	var buf bytes.Buffer
	if err := sorted.WriteCSV(&buf); err != nil {
		tst.Fatal("Error writing csv:", err)
	}
	if buf.String() != "\xc3,2\nA,1\n" {
		tst.Errorf("Wrong csv: %q", buf.String())
	}
}
