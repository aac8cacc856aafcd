package crypto

import "github.com/apmod1/password-manager/models"

// KeyChainService owns all client-side cryptography of the zero-knowledge
// scheme. It knows nothing about the network, the database or users; its
// only job is to generate and protect keys.
//
// Enrollment flow:
//
//	salt, vaultKey = GenerateSalt() + GenerateVaultKey()
//	kek            = DeriveKEK(masterPassword, salt)
//	wrapped        = WrapKey(vaultKey, kek, algorithm)
//	fingerprint    = Fingerprint(username)
//
// The server only ever sees the wrapped key, the fingerprint and hashes of
// the secret words. The vault key and the KEK never leave the client.
type KeyChainService interface {
	// GenerateSalt returns a random 16-byte salt. The salt is not a
	// secret; it exists so that equal passwords derive different KEKs.
	GenerateSalt() ([]byte, error)

	// GenerateVaultKey returns a random 256-bit vault key. It encrypts
	// all of the user's items and never leaves the client unwrapped.
	GenerateVaultKey() ([]byte, error)

	// DeriveKEK derives the key-encryption key from the master password
	// and salt via Argon2id. The KEK exists only in client memory.
	DeriveKEK(masterPassword string, salt []byte) []byte

	// Fingerprint returns the SHA-512 digest of the username. The server
	// indexes users by this value and never learns the username itself.
	Fingerprint(username string) []byte

	// WrapKey encrypts the vault key with the KEK using the chosen AEAD.
	// The result (nonce followed by ciphertext) is safe to store on the
	// server: without the KEK it is indistinguishable from random noise.
	WrapKey(vaultKey, kek []byte, algorithm models.UnwrapAlgorithm) ([]byte, error)

	// UnwrapKey reverses WrapKey. Returns an error on an authentication
	// tag mismatch, which almost always means a wrong master password.
	UnwrapKey(wrapped, kek []byte, algorithm models.UnwrapAlgorithm) ([]byte, error)

	// EncryptItem serializes the given value to JSON and encrypts it with
	// the vault key. Returns a base64 blob safe to store on the server.
	EncryptItem(data any, vaultKey []byte) (string, error)

	// DecryptItem decrypts a base64 blob with the vault key and
	// unmarshals the result into target (same contract as json.Unmarshal).
	DecryptItem(encryptedB64 string, vaultKey []byte, target any) error
}
