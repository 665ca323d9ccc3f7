// Package metrics computes classification performance measures over
// prediction records. All functions are pure.
package metrics

import (
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/kiteco/classbalance/dataset"
)

// ROCAUC computes the area under the ROC curve, treating the event-class
// posterior probability as the ranking score. Tied scores are grouped on a
// single curve point, which integrates to the midpoint convention; the area is
// the trapezoidal rule over all achievable cutoffs.
func ROCAUC(probs []float64, truth []dataset.Class, event dataset.Class) (float64, error) {
	if len(probs) != len(truth) {
		return 0, dataset.Inputf("got %d scores for %d labels", len(probs), len(truth))
	}
	if len(probs) == 0 {
		return 0, dataset.Inputf("no predictions to score")
	}

	y := append([]float64{}, probs...)
	classes := make([]bool, len(truth))
	var positives int
	for i, c := range truth {
		classes[i] = c == event
		if classes[i] {
			positives++
		}
	}
	if positives == 0 {
		return 0, dataset.EmptyClassError{Class: event}
	}
	if positives == len(truth) {
		return 0, dataset.EmptyClassError{Class: other(event)}
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// Sensitivity is the true-positive rate for the event class: the fraction of
// actual event rows predicted as the event.
func Sensitivity(truth, predicted []dataset.Class, event dataset.Class) (float64, error) {
	if len(truth) != len(predicted) {
		return 0, dataset.Inputf("got %d predictions for %d labels", len(predicted), len(truth))
	}
	var hits, total int
	for i, c := range truth {
		if c != event {
			continue
		}
		total++
		if predicted[i] == event {
			hits++
		}
	}
	if total == 0 {
		return 0, dataset.EmptyClassError{Class: event}
	}
	return float64(hits) / float64(total), nil
}

// Specificity is the true-negative rate: the fraction of non-event rows
// predicted as the non-event class.
func Specificity(truth, predicted []dataset.Class, event dataset.Class) (float64, error) {
	return Sensitivity(truth, predicted, other(event))
}

// JIndex is Youden's J at the cutoff the predictions were made with:
// sensitivity + specificity - 1. It lies in [-1, 1]; 1 means perfect
// predictions, 0 means no better than chance at that cutoff.
func JIndex(truth, predicted []dataset.Class, event dataset.Class) (float64, error) {
	sens, err := Sensitivity(truth, predicted, event)
	if err != nil {
		return 0, err
	}
	spec, err := Specificity(truth, predicted, event)
	if err != nil {
		return 0, err
	}
	return sens + spec - 1, nil
}

func other(c dataset.Class) dataset.Class {
	if c == dataset.Class1 {
		return dataset.Class2
	}
	return dataset.Class1
}
