package compare

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BlandAltman renders the paired comparison as a mean-difference plot: one
// point per fold with x the average of the two conditions' metric and y their
// difference, plus a horizontal line at the mean difference.
func BlandAltman(t Table, m Metric, path string) error {
	if len(t) == 0 {
		return errors.New("empty results table")
	}

	pts := make(plotter.XYs, len(t))
	var lo, hi float64
	for i, r := range t {
		sampled, normal := r.pair(m)
		pts[i].X = (sampled + normal) / 2
		pts[i].Y = sampled - normal
		if i == 0 || pts[i].X < lo {
			lo = pts[i].X
		}
		if i == 0 || pts[i].X > hi {
			hi = pts[i].X
		}
	}
	meanDiff, err := t.MeanDiff(m)
	if err != nil {
		return err
	}

	p, err := plot.New()
	if err != nil {
		return errors.Wrap(err, "creating plot")
	}
	p.Title.Text = fmt.Sprintf("%s: sampled vs normal", m)
	p.X.Label.Text = "mean of conditions"
	p.Y.Label.Text = "difference (sampled - normal)"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "building scatter")
	}
	line, err := plotter.NewLine(plotter.XYs{{X: lo, Y: meanDiff}, {X: hi, Y: meanDiff}})
	if err != nil {
		return errors.Wrap(err, "building mean line")
	}
	p.Add(scatter, line, plotter.NewGrid())

	return errors.Wrapf(p.Save(6*vg.Inch, 4*vg.Inch, path), "saving %s", path)
}

// PairedScatter renders one point per fold with x the baseline metric and y
// the subsampled metric, plus the identity line: points above the line are
// folds where subsampling helped.
func PairedScatter(t Table, m Metric, path string) error {
	if len(t) == 0 {
		return errors.New("empty results table")
	}

	pts := make(plotter.XYs, len(t))
	lo, hi := 1.0, 0.0
	for i, r := range t {
		sampled, normal := r.pair(m)
		pts[i].X = normal
		pts[i].Y = sampled
		for _, v := range []float64{sampled, normal} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	p, err := plot.New()
	if err != nil {
		return errors.Wrap(err, "creating plot")
	}
	p.Title.Text = fmt.Sprintf("%s per fold", m)
	p.X.Label.Text = "without subsampling"
	p.Y.Label.Text = "with subsampling"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "building scatter")
	}
	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "building identity line")
	}
	p.Add(scatter, identity, plotter.NewGrid())

	return errors.Wrapf(p.Save(5*vg.Inch, 5*vg.Inch, path), "saving %s", path)
}
