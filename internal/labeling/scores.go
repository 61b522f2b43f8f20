package labeling

// Scores maps candidate labels to the classifier's confidence for one
// response. Multi-label scoring: values are independent, not a distribution.
type Scores map[Label]float64

// Missing returns the labels from want that have no score, in want order.
func (s Scores) Missing(want []Label) []Label {
	var missing []Label
	for _, l := range want {
		if _, ok := s[l]; !ok {
			missing = append(missing, l)
		}
	}
	return missing
}

// gate is one score threshold contributing to a derived signal. The
// comparison is strictly greater, so a score exactly at the threshold
// does not fire.
type gate struct {
	label Label
	over  float64
}

func (s Scores) over(g gate) bool {
	return s[g.label] > g.over
}

func (s Scores) anyOver(gates []gate) bool {
	for _, g := range gates {
		if s.over(g) {
			return true
		}
	}
	return false
}
