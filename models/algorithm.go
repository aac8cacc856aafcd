package models

// UnwrapAlgorithm identifies the client-side cipher used to unwrap the
// stored master key. The set is closed: anything outside the declared
// constants is rejected at the registration-completion boundary.
type UnwrapAlgorithm string

const (
	// AlgorithmXChaCha20Poly1305 selects XChaCha20-Poly1305 key unwrapping.
	AlgorithmXChaCha20Poly1305 UnwrapAlgorithm = "xchacha20-poly1305"

	// AlgorithmAESGCM256 selects AES-256-GCM key unwrapping.
	AlgorithmAESGCM256 UnwrapAlgorithm = "aes-gcm-256"
)

// Valid reports whether a belongs to the closed algorithm set.
func (a UnwrapAlgorithm) Valid() bool {
	switch a {
	case AlgorithmXChaCha20Poly1305, AlgorithmAESGCM256:
		return true
	}
	return false
}

// String returns the wire representation of the algorithm tag.
func (a UnwrapAlgorithm) String() string {
	return string(a)
}
