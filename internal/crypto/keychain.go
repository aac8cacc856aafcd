package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/apmod1/password-manager/models"
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeyChainService constructs a [KeyChainService] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyChainService() KeyChainService {
	return &keyChainService{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// GenerateSalt implements [KeyChainService]. It reads 16 random bytes from
// the OS CSPRNG. Returns an error if the random read fails.
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// GenerateVaultKey implements [KeyChainService]. It reads 32 random bytes
// from the OS CSPRNG. Returns an error if the random read fails.
func (k *keyChainService) GenerateVaultKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeriveKEK implements [KeyChainService]. It derives a 256-bit
// key-encryption key from masterPassword and salt using Argon2id with the
// parameters stored in the receiver.
func (k *keyChainService) DeriveKEK(masterPassword string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(masterPassword),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)
}

// Fingerprint implements [KeyChainService].
func (k *keyChainService) Fingerprint(username string) []byte {
	sum := sha512.Sum512([]byte(username))
	return sum[:]
}

// WrapKey implements [KeyChainService]. The blob layout is
// nonce ‖ ciphertext so that UnwrapKey can split the nonce back out.
func (k *keyChainService) WrapKey(vaultKey, kek []byte, algorithm models.UnwrapAlgorithm) ([]byte, error) {
	aead, err := newAEAD(kek, algorithm)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	wrapped := aead.Seal(nil, nonce, vaultKey, nil)
	return append(nonce, wrapped...), nil
}

// UnwrapKey implements [KeyChainService]. It unwraps the blob produced by
// [keyChainService.WrapKey]. The blob must be at least as long as the AEAD
// nonce. Returns an error if the blob is too short, the KEK is wrong, or
// the ciphertext is corrupted (authentication-tag mismatch).
func (k *keyChainService) UnwrapKey(wrapped, kek []byte, algorithm models.UnwrapAlgorithm) ([]byte, error) {
	aead, err := newAEAD(kek, algorithm)
	if err != nil {
		return nil, err
	}

	nonceSize := aead.NonceSize()
	if len(wrapped) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := wrapped[:nonceSize], wrapped[nonceSize:]

	// An error here almost always means the user entered the wrong
	// master password, producing a wrong KEK.
	vaultKey, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return vaultKey, nil
}

// EncryptItem implements [KeyChainService]. It marshals data to JSON, then
// encrypts it with the vault key using XChaCha20-Poly1305. The output is a
// Base64 (standard encoding) string of the blob: nonce ‖ ciphertext.
func (k *keyChainService) EncryptItem(data any, vaultKey []byte) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}

	aead, err := chacha20poly1305.NewX(vaultKey)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptItem implements [KeyChainService]. It Base64-decodes encryptedB64,
// splits out the nonce, decrypts the ciphertext with the vault key, and
// unmarshals the resulting JSON into target. target must be a non-nil
// pointer, identical to the requirement of [encoding/json.Unmarshal].
func (k *keyChainService) DecryptItem(encryptedB64 string, vaultKey []byte, target any) error {
	blob, err := base64.StdEncoding.DecodeString(encryptedB64)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}

	aead, err := chacha20poly1305.NewX(vaultKey)
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}

	nonceSize := aead.NonceSize()
	if len(blob) < nonceSize {
		return fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("decrypt data: %w", err)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}

// newAEAD maps the wrap algorithm recorded on the user to a concrete AEAD
// construction over the KEK.
func newAEAD(kek []byte, algorithm models.UnwrapAlgorithm) (cipher.AEAD, error) {
	switch algorithm {
	case models.AlgorithmXChaCha20Poly1305:
		return chacha20poly1305.NewX(kek)
	case models.AlgorithmAESGCM256:
		block, err := aes.NewCipher(kek)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	default:
		return nil, fmt.Errorf("unsupported unwrap algorithm: %q", algorithm)
	}
}
