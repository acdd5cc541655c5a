package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/protplot/bio"
	"bitbucket.org/Davydov/protplot/cache"
	"bitbucket.org/Davydov/protplot/chart"
	"bitbucket.org/Davydov/protplot/config"
	"bitbucket.org/Davydov/protplot/property"
	"bitbucket.org/Davydov/protplot/uniprot"
	"bitbucket.org/Davydov/protplot/window"
)

// loadLookup returns property tables from the configured CSV file
// or the built-in ones.
func loadLookup(cfg *config.Config) (property.Lookup, error) {
	if cfg.Properties.CSV == "" {
		log.Info("Using built-in property tables")
		return property.Default(), nil
	}
	log.Infof("Reading property tables from %s", cfg.Properties.CSV)
	return property.ReadCSVFile(cfg.Properties.CSV, cfg.Properties.Columns)
}

// newClient returns a UniProt client and a function closing its
// cache.
func newClient(cfg *config.Config) (*uniprot.Client, func(), error) {
	client := uniprot.NewClient(cfg.UniProt.BaseURL, cfg.Timeout())
	if cfg.UniProt.Cache == "" {
		return client, func() {}, nil
	}
	store, err := cache.Open(cfg.UniProt.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache %s: %w", cfg.UniProt.Cache, err)
	}
	client.Cache = store
	return client, func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing cache:", err)
		}
	}, nil
}

// readRecords returns the records of a FASTA file and their cleaned
// sequence.
func readRecords(fn string) (bio.Sequences, string, error) {
	f, err := bio.Open(fn)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	seqs, seq, err := bio.Load(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", fn, err)
	}
	return seqs, seq, nil
}

// chartOptions returns chart options with the configured size.
func chartOptions(cfg *config.Config, title, xlabel, ylabel, path string) chart.Options {
	return chart.Options{
		Title:  title,
		XLabel: xlabel,
		YLabel: ylabel,
		Path:   path,
		Width:  vg.Length(cfg.Chart.Width) * vg.Inch,
		Height: vg.Length(cfg.Chart.Height) * vg.Inch,
	}
}

// Profile is a set of property profiles of a single sequence.
type Profile struct {
	// Source is the file name or accession.
	Source string
	// Name is the name of the first FASTA record.
	Name     string
	Sequence string
	Windows  []int
	Series   []window.Series
}

// profile computes property profiles of a sequence from a file or
// UniProt, one for every window size.
func profile(ctx context.Context, cfg *config.Config, fasta, accession, prop string, sizes []int) (*Profile, error) {
	if (fasta == "") == (accession == "") {
		return nil, errors.New("specify either a FASTA file or an accession")
	}
	lookup, err := loadLookup(cfg)
	if err != nil {
		return nil, err
	}

	var (
		p    = &Profile{Source: fasta}
		seqs bio.Sequences
	)
	if accession != "" {
		p.Source = accession
		client, closeCache, err := newClient(cfg)
		if err != nil {
			return nil, err
		}
		defer closeCache()
		seqs, p.Sequence, err = client.Record(ctx, accession)
		if err != nil {
			return nil, err
		}
	} else {
		seqs, p.Sequence, err = readRecords(fasta)
		if err != nil {
			return nil, err
		}
	}
	p.Name = seqs[0].ShortName()
	if len(seqs) > 1 {
		log.Warningf("%s has %d records, using all sequence lines", p.Source, len(seqs))
	}
	log.Infof("Read %d amino acids from %s (%s)", len(p.Sequence), p.Source, p.Name)
	if len(p.Sequence) == 0 {
		log.Warning("Empty sequence")
	}

	p.Windows = sizes
	if len(p.Windows) == 0 {
		p.Windows = cfg.Windows
	}
	log.Infof("Property %s, windows %v", prop, p.Windows)
	p.Series, err = window.NewAnnotator(p.Sequence, lookup).Overlay(prop, p.Windows...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func runWindow(ctx context.Context, cfg *config.Config, summary *RunSummary) error {
	p, err := profile(ctx, cfg, *windowFasta, *windowAcc, *windowProp, *windowSizes)
	if err != nil {
		return err
	}

	title := *windowTitle
	if title == "" {
		title = "Properties of " + p.Name
	}
	o := chartOptions(cfg, title, "Amino acid position", *windowProp, *windowOut)
	if err := chart.Lines(o, p.Series...); err != nil {
		return err
	}

	summary.Sequence = &SequenceSummary{Source: p.Source, Name: p.Name, Length: len(p.Sequence)}
	summary.Property = *windowProp
	for i, s := range p.Series {
		summary.Series = append(summary.Series, SeriesSummary{Window: p.Windows[i], Name: s.Name, Values: s.Values})
	}
	summary.Outputs = append(summary.Outputs, *windowOut)
	return nil
}

// countResidues counts residues in all the files, writes an optional
// CSV file and returns sorted counts.
func countResidues(fns []string, csvFn string) (bio.Counts, error) {
	counts, err := bio.CountFiles(fns...)
	if err != nil {
		return nil, err
	}
	sorted := bio.SortCounts(counts)
	log.Noticef("Counted %d residues, %d distinct", sorted.Total(), len(sorted))
	for _, c := range sorted {
		if !bio.IsStandard(c.Residue) {
			log.Infof("Non-standard residue %q: %d", c.Residue, c.N)
		}
	}

	if csvFn != "" {
		f, err := os.Create(csvFn)
		if err != nil {
			return nil, err
		}
		if err := sorted.WriteCSV(f); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

// perFileName derives an output name for a single input file, e.g.
// counts.png and human.fasta.gz give counts_human.png.
func perFileName(out, fasta string) string {
	base := strings.TrimSuffix(filepath.Base(fasta), ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_" + base + ext
}

// countChart counts residues in fns and writes a bar chart and an
// optional CSV file.
func countChart(cfg *config.Config, fns []string, out, csvFn, title string, summary *RunSummary) (bio.Counts, error) {
	sorted, err := countResidues(fns, csvFn)
	if err != nil {
		return nil, err
	}
	o := chartOptions(cfg, title, "Amino acid", "Frequency", out)
	if err := chart.Bars(o, sorted.Labels(), sorted.Values()); err != nil {
		return nil, err
	}
	if csvFn != "" {
		summary.Outputs = append(summary.Outputs, csvFn)
	}
	summary.Outputs = append(summary.Outputs, out)
	return sorted, nil
}

func runCount(cfg *config.Config, summary *RunSummary) error {
	summary.Counts = make(map[string]int)
	if !*countPerFile {
		sorted, err := countChart(cfg, *countFiles, *countOut, *countCSV, *countTitle, summary)
		if err != nil {
			return err
		}
		for _, c := range sorted {
			summary.Counts[string([]byte{c.Residue})] = c.N
		}
		return nil
	}

	for _, fn := range *countFiles {
		csvFn := ""
		if *countCSV != "" {
			csvFn = perFileName(*countCSV, fn)
		}
		title := *countTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(fn), ".gz")
		}
		sorted, err := countChart(cfg, []string{fn}, perFileName(*countOut, fn), csvFn, title, summary)
		if err != nil {
			return err
		}
		for _, c := range sorted {
			summary.Counts[string([]byte{c.Residue})] += c.N
		}
	}
	return nil
}

// propertyBars returns residue labels and property values.
func propertyBars(lookup property.Lookup, prop string) ([]string, []float64, error) {
	t, ok := lookup.Get(prop)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q (known: %v)", window.ErrUnknownProperty, prop, lookup.Names())
	}
	syms := t.Symbols()
	labels := make([]string, len(syms))
	values := make([]float64, len(syms))
	for i, s := range syms {
		labels[i] = string([]byte{s})
		values[i] = t[s]
	}
	return labels, values, nil
}

func runProps(cfg *config.Config, summary *RunSummary) error {
	lookup, err := loadLookup(cfg)
	if err != nil {
		return err
	}
	labels, values, err := propertyBars(lookup, *propsProp)
	if err != nil {
		return err
	}
	o := chartOptions(cfg, "Amino acid "+*propsProp, "Amino acid", *propsProp, *propsOut)
	if err := chart.Bars(o, labels, values); err != nil {
		return err
	}
	summary.Property = *propsProp
	summary.Outputs = append(summary.Outputs, *propsOut)
	return nil
}

// fetchRecord downloads a record and returns it reformatted as FASTA.
func fetchRecord(ctx context.Context, client *uniprot.Client, accession string) (bio.Sequences, error) {
	seqs, _, err := client.Record(ctx, accession)
	if err != nil {
		return nil, err
	}
	for _, s := range seqs {
		log.Infof("%s: %d amino acids", s.Name, len(s.Sequence))
	}
	return seqs, nil
}

func runFetch(ctx context.Context, cfg *config.Config, summary *RunSummary) error {
	client, closeCache, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	seqs, err := fetchRecord(ctx, client, *fetchAcc)
	if err != nil {
		return err
	}
	if *fetchOut == "" {
		_, err = io.WriteString(os.Stdout, seqs.String())
		return err
	}
	if err := os.WriteFile(*fetchOut, []byte(seqs.String()), 0644); err != nil {
		return err
	}
	log.Noticef("Saved %s to %s", *fetchAcc, *fetchOut)
	summary.Outputs = append(summary.Outputs, *fetchOut)
	return nil
}
