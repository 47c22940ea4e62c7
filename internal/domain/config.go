package domain

// KeyPrefix namespaces every key written to the vector store.
const KeyPrefix = "scholarsearch:"

// VectorConfig holds the index defaults for the embedding model.
type VectorConfig struct {
	Dimensions         int
	HNSWM              int
	HNSWEFConstruction int
}

// DefaultVectorConfig returns the defaults tuned for Qwen3-Embedding-8B.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Dimensions:         1024,
		HNSWM:              16,
		HNSWEFConstruction: 200,
	}
}
