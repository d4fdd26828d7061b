package ports

// HashAlgorithm names a perceptual hash variant.
type HashAlgorithm string

const (
	HashBlock      HashAlgorithm = "block"
	HashGradient   HashAlgorithm = "gradient"
	HashMean       HashAlgorithm = "mean"
	HashPerception HashAlgorithm = "perception"
)

// PerceptualHash is a 64-bit image fingerprint.
// Visually similar images have a small Hamming distance.
type PerceptualHash struct {
	Algorithm HashAlgorithm
	Value     uint64
}

// Hasher computes perceptual hashes of frames.
type Hasher interface {
	// Hash fingerprints a frame.
	Hash(frame Frame) (PerceptualHash, error)

	// Distance returns the Hamming distance between two hashes of the same algorithm.
	Distance(a, b PerceptualHash) (int, error)
}
