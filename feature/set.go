package feature

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Set maps the string form of each feature to its label and generated
// data column.
type Set map[string]Data

// Data pairs a feature label with its generated regressor values.
type Data struct {
	F    Feature
	Data []float64
}

// Labels returns the features of the set sorted by their string keys so
// matrix columns line up deterministically with coefficients.
func (s Set) Labels() *Labels {
	if s == nil {
		return nil
	}

	labels := make([]Feature, 0, len(s))
	for _, feat := range s {
		labels = append(labels, feat.F)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].String() < labels[j].String()
	})
	return NewLabels(labels)
}

// Update merges the src set into this set overwriting duplicate keys.
func (s Set) Update(src Set) {
	for label, feat := range src {
		s[label] = feat
	}
}

// Matrix assembles the design matrix with m observation rows and one
// column per feature in label sort order, optionally prefixed with an
// intercept column of ones.
func (s Set) Matrix(intercept bool) *mat.Dense {
	if s == nil {
		return nil
	}

	labels := s.Labels()
	if labels.Len() == 0 {
		return nil
	}

	var m int
	for _, label := range labels.Labels() {
		m = len(s[label.String()].Data)
		break
	}
	n := labels.Len()
	if intercept {
		n++
	}

	obs := make([]float64, m*n)
	col := 0
	if intercept {
		for i := 0; i < m; i++ {
			obs[n*i] = 1.0
		}
		col++
	}
	for _, label := range labels.Labels() {
		data := s[label.String()].Data
		for i := 0; i < len(data); i++ {
			obs[n*i+col] = data[i]
		}
		col++
	}
	return mat.NewDense(m, n, obs)
}
