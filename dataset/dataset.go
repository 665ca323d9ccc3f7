package dataset

import (
	"fmt"
	"sort"
)

// Class identifies one of the two outcome classes.
type Class int

const (
	// Class1 is the event of interest; in every imbalanced configuration it
	// is the minority class.
	Class1 Class = iota
	// Class2 is the majority class.
	Class2
)

func (c Class) String() string {
	switch c {
	case Class1:
		return "Class1"
	case Class2:
		return "Class2"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Classes lists the two outcome classes in a stable order.
var Classes = []Class{Class1, Class2}

// Observation pairs a feature vector with its outcome class. Observations are
// never mutated after simulation.
type Observation struct {
	Features []float64
	Class    Class
}

// Dataset is an ordered collection of observations sharing a feature schema.
// It is created once (by Simulate or ReadCSV) and read-only thereafter;
// Subset shares the underlying observations rather than copying them.
type Dataset struct {
	Names []string
	Obs   []Observation
}

// Len returns the number of observations.
func (d Dataset) Len() int {
	return len(d.Obs)
}

// NumFeatures returns the width of the feature vectors.
func (d Dataset) NumFeatures() int {
	return len(d.Names)
}

// Counts returns the number of observations per class.
func (d Dataset) Counts() map[Class]int {
	counts := make(map[Class]int, len(Classes))
	for _, o := range d.Obs {
		counts[o.Class]++
	}
	return counts
}

// Minority returns the class with the fewest observations, preferring Class1
// when the counts tie.
func (d Dataset) Minority() Class {
	counts := d.Counts()
	if counts[Class2] < counts[Class1] {
		return Class2
	}
	return Class1
}

// Majority returns the class with the most observations.
func (d Dataset) Majority() Class {
	if d.Minority() == Class1 {
		return Class2
	}
	return Class1
}

// ClassIndices returns the positions of all observations of class c, in order.
func (d Dataset) ClassIndices(c Class) []int {
	var idx []int
	for i, o := range d.Obs {
		if o.Class == c {
			idx = append(idx, i)
		}
	}
	return idx
}

// Subset returns a dataset containing the observations at the given positions,
// in the given order. The observations are shared, not copied.
func (d Dataset) Subset(idx []int) Dataset {
	obs := make([]Observation, len(idx))
	for i, j := range idx {
		obs[i] = d.Obs[j]
	}
	return Dataset{Names: d.Names, Obs: obs}
}

// ClassCount pairs a class with its row count.
type ClassCount struct {
	Class Class
	Count int
}

// SortedCounts returns the per-class counts ordered by class, for stable
// reporting.
func (d Dataset) SortedCounts() []ClassCount {
	counts := d.Counts()
	out := make([]ClassCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, ClassCount{Class: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}
