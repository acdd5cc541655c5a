// Package chart draws property profiles and residue counts with
// gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/op/go-logging"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/protplot/window"
)

// log is the global logging variable.
var log = logging.MustGetLogger("chart")

// Default chart size.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Options sets chart labels and the output file. The file format is
// chosen by extension (png, svg, pdf, ...).
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Path   string
	Width  vg.Length
	Height vg.Length
}

func (o Options) newPlot() *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	return p
}

func (o Options) save(p *plot.Plot) error {
	if o.Path == "" {
		return errors.New("no output file")
	}
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if err := p.Save(w, h, o.Path); err != nil {
		return fmt.Errorf("saving %s: %w", o.Path, err)
	}
	log.Infof("Saved %s", o.Path)
	return nil
}

// XYs returns series values indexed by sequence position.
func XYs(s window.Series) plotter.XYs {
	pts := make(plotter.XYs, len(s.Values))
	for i, v := range s.Values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

// Lines overlays the series on a shared position axis together with
// a zero baseline.
func Lines(o Options, series ...window.Series) error {
	if len(series) == 0 {
		return errors.New("no series to plot")
	}
	p := o.newPlot()
	p.Legend.Top = true

	n := 0
	lines := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
		lines = append(lines, s.Name, XYs(s))
	}

	baseline, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: float64(n), Y: 0}})
	if err != nil {
		return err
	}
	baseline.LineStyle.Color = color.Gray{Y: 96}
	baseline.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(baseline)

	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}
	return o.save(p)
}

// Bars draws one bar per label.
func Bars(o Options, labels []string, values []float64) error {
	if len(labels) != len(values) {
		return fmt.Errorf("%d labels for %d values", len(labels), len(values))
	}
	if len(values) == 0 {
		return errors.New("no values to plot")
	}
	p := o.newPlot()

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(12))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return o.save(p)
}
