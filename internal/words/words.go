// Package words implements the word-based secret scheme used by the
// registration and login protocols. A registration mints a sequence of
// random words, splits it into authentication words and HMAC words, and
// stores only one-way digests of the two halves.
package words

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/apmod1/password-manager/internal/logger"
)

// Separator joins words before hashing and before using them as HMAC key
// material. It must never change once accounts exist: a different separator
// changes every stored digest.
const Separator = " "

// fallbackWords is the built-in list used when no wordlist file is
// configured or the configured one cannot be read.
var fallbackWords = []string{
	"apple", "banana", "orange", "grape", "melon", "car", "house",
	"tree", "phone", "book", "computer", "table", "chair", "window",
	"door", "mountain", "river", "ocean", "forest", "cloud", "sun",
	"moon", "star", "planet", "galaxy", "music", "song", "dance",
	"paint", "color", "light", "dark", "happy", "sad", "angry",
}

// Generator produces random word sequences from a configured wordlist.
// All state is read-only after construction, so a Generator is safe for
// concurrent use.
type Generator struct {
	words  []string
	logger *logger.Logger
}

// NewGenerator constructs a Generator backed by the wordlist file at path.
// An empty path or an unreadable file selects the built-in fallback list;
// the condition is logged but is not an error, matching the scheme's
// degrade-gracefully contract.
func NewGenerator(path string, log *logger.Logger) *Generator {
	g := &Generator{
		words:  fallbackWords,
		logger: log,
	}

	if path == "" {
		return g
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("wordlist file unavailable, using built-in fallback list")
		return g
	}

	loaded := make([]string, 0, 256)
	for _, line := range strings.Split(string(raw), "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			loaded = append(loaded, word)
		}
	}

	if len(loaded) == 0 {
		log.Warn().Str("path", path).Msg("wordlist file is empty, using built-in fallback list")
		return g
	}

	g.words = loaded
	return g
}

// Size returns the number of words available to the generator.
func (g *Generator) Size() int {
	return len(g.words)
}

// Generate returns n words drawn from the wordlist using the OS CSPRNG.
//
// Words are sampled without replacement so every returned word is distinct.
// When the list holds fewer than n entries, sampling switches to
// with-replacement to still guarantee n results.
func (g *Generator) Generate(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("word count must be positive, got %d", n)
	}

	if len(g.words) < n {
		return g.generateWithReplacement(n)
	}

	// partial Fisher-Yates over a copy: the first n slots end up with a
	// uniform sample without replacement
	pool := make([]string, len(g.words))
	copy(pool, g.words)

	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j, err := randomIndex(len(pool) - i)
		if err != nil {
			return nil, err
		}
		pool[i], pool[i+j] = pool[i+j], pool[i]
		picked = append(picked, pool[i])
	}

	return picked, nil
}

// generateWithReplacement samples n words allowing duplicates. Used only
// when the wordlist is smaller than the requested count.
func (g *Generator) generateWithReplacement(n int) ([]string, error) {
	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j, err := randomIndex(len(g.words))
		if err != nil {
			return nil, err
		}
		picked = append(picked, g.words[j])
	}

	return picked, nil
}

// randomIndex returns a uniform random int in [0, bound) from crypto/rand.
func randomIndex(bound int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(bound)))
	if err != nil {
		return 0, fmt.Errorf("error reading from CSPRNG: %w", err)
	}

	return int(v.Int64()), nil
}

// Split divides a generated sequence into its two disjoint halves: the
// first half is the authentication words, the remainder the HMAC words.
// For the standard 10-word set the split is 5/5.
func Split(generated []string) (authWords, hmacWords []string) {
	half := len(generated) / 2
	return generated[:half], generated[half:]
}

// Join returns the canonical single-space-joined form of a word sequence,
// the exact byte string used as HMAC key material and as hash input.
func Join(words []string) string {
	return strings.Join(words, Separator)
}

// Hash returns the SHA-256 digest of the space-joined word sequence.
// Deterministic and order-sensitive; used only for storage and
// verification, never reversible.
func Hash(words []string) []byte {
	sum := sha256.Sum256([]byte(Join(words)))
	return sum[:]
}
