package matching

// SimilarityMatrix is a square, symmetric matrix of similarities indexed by an
// ordered list of unique skills. The diagonal is always 1.
type SimilarityMatrix struct {
	skills []string
	index  map[string]int
	values [][]float64
}

// NewSimilarityMatrix scores every pair of skills with provider.
func NewSimilarityMatrix(skills []string, provider SimilarityProvider) *SimilarityMatrix {
	n := len(skills)
	m := &SimilarityMatrix{
		skills: append([]string(nil), skills...),
		index:  make(map[string]int, n),
		values: make([][]float64, n),
	}
	for i, s := range skills {
		m.index[s] = i
		m.values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		m.values[i][i] = exactMatchScore
		for j := i + 1; j < n; j++ {
			score := clamp01(provider.Score(skills[i], skills[j]))
			m.values[i][j] = score
			m.values[j][i] = score
		}
	}
	return m
}

// Size returns the number of skills indexing the matrix.
func (m *SimilarityMatrix) Size() int {
	return len(m.skills)
}

// At returns the similarity at row i, column j.
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.values[i][j]
}

// Between returns the similarity of two indexed skills. ok is false if either
// skill is not in the matrix.
func (m *SimilarityMatrix) Between(a, b string) (score float64, ok bool) {
	i, okA := m.index[a]
	j, okB := m.index[b]
	if !okA || !okB {
		return 0, false
	}
	return m.values[i][j], true
}

// Skills returns a copy of the index order.
func (m *SimilarityMatrix) Skills() []string {
	return append([]string(nil), m.skills...)
}
