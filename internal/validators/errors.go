package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyFingerprint    = errors.New("fingerprint is required")
	ErrEmptyWrappedKey     = errors.New("wrapped key is required")
	ErrEmptyWrappedKeyHMAC = errors.New("wrapped key HMAC is required")
	ErrUnknownAlgorithm    = errors.New("unknown wrap algorithm")
	ErrNoIdentity          = errors.New("account ID or fingerprint is required")
	ErrEmptyAuthHash       = errors.New("auth hash is required")
	ErrEmptyEncryptedData  = errors.New("encrypted data is required")
	ErrNoFieldsToUpdate    = errors.New("at least one field must be provided for update")
)
