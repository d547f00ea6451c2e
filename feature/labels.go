package feature

// Labels tracks an ordered slice of features along with the index of
// each, matching the ordering of the fit coefficients.
type Labels struct {
	idx    map[string]int
	labels []Feature
}

func NewLabels(labels []Feature) *Labels {
	idx := make(map[string]int, len(labels))
	for i, label := range labels {
		idx[label.String()] = i
	}
	return &Labels{
		idx:    idx,
		labels: labels,
	}
}

func (l *Labels) Len() int {
	return len(l.labels)
}

func (l *Labels) Labels() []Feature {
	labels := make([]Feature, len(l.labels))
	copy(labels, l.labels)
	return labels
}

func (l *Labels) Index(label Feature) (int, bool) {
	idx, exists := l.idx[label.String()]
	if !exists {
		return -1, false
	}
	return idx, true
}
