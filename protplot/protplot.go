/*

Protplot maps protein sequences through amino acid property tables
(hydropathy, isoelectric point, accessible surface) and plots sliding
window averages along the sequence.

Plot the hydropathy of a protein from a FASTA file with several
window sizes:

	protplot window -w 1 -w 5 -w 10 -w 20 --out ccr7.png P32248.fasta

or fetch the sequence from UniProt first:

	protplot window --accession P32248 --property pI

Count amino acids in proteome files:

	protplot count --title Human --csv AA-Count.csv human.fasta.gz

or one chart per proteome (counts_human.png, counts_mouse.png):

	protplot count --per-file human.fasta.gz mouse.fasta.gz

To see all the options run:

	protplot --help

*/
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/protplot/config"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = "branch: " + gitbranch + ", revision: " + githash + ", build time: " + buildstamp

// Logger settings.
var log = logging.MustGetLogger("protplot")
var formatter = logging.MustStringFormatter(`%{message}`)

// modules are logging modules of all the packages.
var modules = []string{"protplot", "window", "bio", "property", "uniprot", "cache", "chart"}

// command-line options
var (
	// application
	app = kingpin.New("protplot", "amino acid property profiles and composition plots").Version(version)

	// global
	configF = app.Flag("config", "YAML configuration file").String()
	csvF    = app.Flag("properties", "amino acid properties CSV table (built-in tables by default)").String()
	cacheF  = app.Flag("cache", "bolt database for caching fetched sequences").String()
	outLogF = app.Flag("log", "write log to a file").String()
	jsonF   = app.Flag("json", "write json summary to a file").String()

	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")

	// window
	windowCmd   = app.Command("window", "plot sliding window averages of a property along a sequence")
	windowFasta = windowCmd.Arg("fasta", "protein FASTA file").ExistingFile()
	windowAcc   = windowCmd.Flag("accession", "fetch the sequence from UniProt instead of a file").Short('a').String()
	windowProp  = windowCmd.Flag("property", "property to map").Short('p').Default("hydropathy").String()
	windowSizes = windowCmd.Flag("window", "window size, repeat for several profiles (1, 5, 10, 20 by default)").Short('w').Ints()
	windowOut   = windowCmd.Flag("out", "output chart (png, svg or pdf)").Short('o').Default("profile.png").String()
	windowTitle = windowCmd.Flag("title", "chart title").String()

	// count
	countCmd     = app.Command("count", "count amino acids in FASTA files")
	countFiles   = countCmd.Arg("fasta", "FASTA files, can be gzipped").Required().ExistingFiles()
	countOut     = countCmd.Flag("out", "output chart").Short('o').Default("counts.png").String()
	countCSV     = countCmd.Flag("csv", "write counts to a CSV file").String()
	countTitle   = countCmd.Flag("title", "chart title, e.g. organism").String()
	countPerFile = countCmd.Flag("per-file", "one chart (and CSV) per input file, named after it").Bool()

	// props
	propsCmd  = app.Command("props", "bar plot of a property for all amino acids")
	propsProp = propsCmd.Flag("property", "property to plot").Short('p').Default("hydropathy").String()
	propsOut  = propsCmd.Flag("out", "output chart").Short('o').Default("property.png").String()

	// fetch
	fetchCmd = app.Command("fetch", "download a FASTA record from UniProt")
	fetchAcc = fetchCmd.Arg("accession", "UniProt accession, e.g. P32248").Required().String()
	fetchOut = fetchCmd.Flag("out", "output file, stdout by default").Short('o').String()
)

// saveJSON writes the run summary.
func saveJSON(summary *RunSummary) {
	if *jsonF == "" {
		return
	}
	j, err := json.Marshal(summary)
	if err != nil {
		log.Error(err)
		return
	}
	f, err := os.Create(*jsonF)
	if err != nil {
		log.Error("Error creating json output file:", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(j); err != nil {
		log.Error("Error writing json output file:", err)
	}
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range modules {
		logging.SetLevel(level, m)
	}

	log.Info(version)
	log.Info("Command line:", os.Args)

	cfg, err := config.Load(*configF)
	if err != nil {
		log.Fatal(err)
	}
	if *csvF != "" {
		cfg.Properties.CSV = *csvF
	}
	if *cacheF != "" {
		cfg.UniProt.Cache = *cacheF
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	summary := &RunSummary{
		Version:     version,
		CommandLine: os.Args,
		Command:     command,
	}

	switch command {
	case windowCmd.FullCommand():
		err = runWindow(ctx, cfg, summary)
	case countCmd.FullCommand():
		err = runCount(cfg, summary)
	case propsCmd.FullCommand():
		err = runProps(cfg, summary)
	case fetchCmd.FullCommand():
		err = runFetch(ctx, cfg, summary)
	}
	if err != nil {
		log.Fatal(err)
	}

	deltaT := time.Since(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	saveJSON(summary)
}
