package scholarship

// Embedded is a scholarship vector with the metadata stored next to it in the index.
type Embedded struct {
	ID       int64
	Vector   []float32
	Metadata map[string]string
}

// Embed pairs the record with its vector.
func (s *Scholarship) Embed(vec []float32) Embedded {
	return Embedded{ID: s.ID, Vector: vec, Metadata: s.Metadata()}
}
