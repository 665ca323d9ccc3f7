// Command subsampling walks through the effect of training-time down-sampling
// on an imbalanced two-class problem: it simulates data, runs repeated
// stratified cross-validation with and without down-sampling of the analysis
// sets, and compares per-fold ROC-AUC and J-index between the two conditions.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/kiteco/classbalance/compare"
	"github.com/kiteco/classbalance/dataset"
	"github.com/kiteco/classbalance/eval"
	"github.com/kiteco/classbalance/recipe"
	"github.com/kiteco/classbalance/resample"
)

func fail(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	args := struct {
		Rows      int     `help:"rows to simulate"`
		Intercept float64 `help:"imbalance control; larger means rarer Class1"`
		Folds     int     `help:"folds per repeat"`
		Repeats   int     `help:"cross-validation repeats"`
		Seed      uint64  `help:"seed for simulation, folds and sampling"`
		Cutoff    float64 `help:"posterior probability cutoff for hard predictions"`
		Under     float64 `help:"majority:minority ratio after down-sampling"`
		Up        bool    `help:"up-sample the minority instead of down-sampling the majority"`
		Posterior bool    `help:"estimate a Bayesian posterior over the J-index effect"`
		Out       string  `help:"directory for the results csv and plots"`
		Workers   int     `help:"parallel fold evaluations"`
	}{
		Rows:      1000,
		Intercept: 10,
		Folds:     10,
		Repeats:   5,
		Seed:      5440,
		Cutoff:    eval.DefaultCutoff,
		Under:     1,
	}
	arg.MustParse(&args)

	start := time.Now()

	ds, err := dataset.Simulate(dataset.SimConfig{
		Rows:      args.Rows,
		Intercept: args.Intercept,
		Seed:      args.Seed,
	})
	fail(err)

	fmt.Printf("simulated %d rows:", ds.Len())
	for _, cc := range ds.SortedCounts() {
		fmt.Printf(" %s=%d", cc.Class, cc.Count)
	}
	fmt.Println()

	folds, err := resample.VFold(ds, args.Folds, args.Repeats, args.Seed)
	fail(err)
	fmt.Printf("generated %d folds (%d repeats of %d-fold stratified CV)\n",
		len(folds), args.Repeats, args.Folds)

	var step recipe.Step = recipe.DownSample{Under: args.Under}
	if args.Up {
		step = recipe.UpSample{}
	}

	table, err := eval.Resamples(ds, folds, eval.Options{
		Step:    step,
		Cutoff:  args.Cutoff,
		Seed:    args.Seed,
		Workers: args.Workers,
	})
	fail(err)

	w := tabwriter.NewWriter(os.Stdout, 8, 4, 2, ' ', 0)
	fmt.Fprintln(w, "fold\tsampled_roc\tnormal_roc\tsampled_j\tnormal_j")
	for _, row := range table {
		fmt.Fprintf(w, "Fold%02d.Rep%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			row.Fold, row.Repeat, row.SampledROC, row.NormalROC, row.SampledJ, row.NormalJ)
	}
	fail(w.Flush())

	for _, m := range []compare.Metric{compare.ROC, compare.J} {
		s, err := table.Summarize(m)
		fail(err)
		fmt.Printf("%s: sampled mean %.4f, normal mean %.4f, mean diff %+.4f (sd %.4f)\n",
			m, s.SampledMean, s.NormalMean, s.MeanDiff, s.StdDevDiff)
	}

	if args.Posterior {
		post, err := compare.Posterior(table.Diffs(compare.J), compare.PosteriorConfig{Seed: args.Seed})
		fail(err)
		fmt.Printf("posterior J effect: mean %+.4f, 95%% interval [%+.4f, %+.4f], P(effect>0) %.3f\n",
			post.Mean, post.Lower, post.Upper, post.ProbPositive)
	}

	if args.Out != "" {
		fail(os.MkdirAll(args.Out, os.ModePerm))
		fail(table.WriteCSV(filepath.Join(args.Out, "results.csv")))
		fail(ds.WriteCSV(filepath.Join(args.Out, "simulated.csv")))
		for _, m := range []compare.Metric{compare.ROC, compare.J} {
			fail(compare.BlandAltman(table, m, filepath.Join(args.Out, fmt.Sprintf("bland_altman_%s.png", m))))
			fail(compare.PairedScatter(table, m, filepath.Join(args.Out, fmt.Sprintf("paired_%s.png", m))))
		}
		fmt.Printf("wrote results to %s\n", args.Out)
	}

	fmt.Printf("done in %v\n", time.Since(start))
}
