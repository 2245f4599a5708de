package seeder

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"
)

type Weighted struct {
	Label  string
	Weight float64
}

// Distribution is a weighted choice over labels. Labels are kept sorted so
// the same seed always yields the same picks.
type Distribution struct {
	entries []Weighted
	total   float64
}

func NewDistribution(weights map[string]float64) (*Distribution, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("distribution has no labels")
	}

	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	d := &Distribution{entries: make([]Weighted, 0, len(labels))}
	for _, label := range labels {
		w := weights[label]
		if w < 0 {
			return nil, fmt.Errorf("weight for %q is negative: %v", label, w)
		}
		d.entries = append(d.entries, Weighted{Label: label, Weight: w})
		d.total += w
	}
	if d.total <= 0 {
		return nil, fmt.Errorf("distribution weights sum to zero")
	}
	return d, nil
}

// Fixed always picks label.
func Fixed(label string) *Distribution {
	return &Distribution{entries: []Weighted{{Label: label, Weight: 1}}, total: 1}
}

func (d *Distribution) Pick(r *rand.Rand) string {
	x := r.Float64() * d.total
	for _, e := range d.entries {
		if x < e.Weight {
			return e.Label
		}
		x -= e.Weight
	}
	// Float rounding can leave x just above the last boundary.
	for i := len(d.entries) - 1; i >= 0; i-- {
		if d.entries[i].Weight > 0 {
			return d.entries[i].Label
		}
	}
	return d.entries[len(d.entries)-1].Label
}

func (d *Distribution) Labels() []string {
	labels := make([]string, len(d.entries))
	for i, e := range d.entries {
		labels[i] = e.Label
	}
	return labels
}

// restrict fails when the distribution names a label outside allowed.
func (d *Distribution) restrict(name string, allowed []string) error {
	for _, e := range d.entries {
		if !slices.Contains(allowed, e.Label) {
			return fmt.Errorf("%s distribution: label %q is not one of %v", name, e.Label, allowed)
		}
	}
	return nil
}
