package main

// RunSummary is storing protplot run summary information.
type RunSummary struct {
	// Version stores protplot version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Command is the protplot command which was run.
	Command string `json:"command"`
	// Time is the running time in seconds.
	Time float64 `json:"time"`
	// Sequence describes the analysed protein (window command).
	Sequence *SequenceSummary `json:"sequence,omitempty"`
	// Property is the property name used for mapping.
	Property string `json:"property,omitempty"`
	// Series stores computed profiles (window command).
	Series []SeriesSummary `json:"series,omitempty"`
	// Counts stores residue counts (count command).
	Counts map[string]int `json:"counts,omitempty"`
	// Outputs lists all files written.
	Outputs []string `json:"outputs,omitempty"`
}

// SequenceSummary describes the input sequence.
type SequenceSummary struct {
	// Source is the file name or UniProt accession.
	Source string `json:"source"`
	// Name is the short name of the first record, e.g. CCR7_HUMAN.
	Name string `json:"name,omitempty"`
	// Length is the number of residues.
	Length int `json:"length"`
}

// SeriesSummary stores a single smoothed profile.
type SeriesSummary struct {
	Window int       `json:"window"`
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}
