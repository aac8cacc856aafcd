package validators

import (
	"context"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/models"
)

const (
	FieldFingerprint    = "fingerprint"
	FieldWrappedKey     = "wrapped_key"
	FieldWrappedKeyHMAC = "wrapped_key_hmac"
	FieldAlgorithm      = "algorithm"
	FieldIdentity       = "identity"
	FieldAuthHash       = "auth_hash"
)

// CredentialValidator validates the credential material exchanged during
// registration completion and login identification.
type CredentialValidator struct {
}

func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CompleteRegistration:
		return v.validateCompleteRegistration(ctx, value, fields...)
	case *models.CompleteRegistration:
		return v.validateCompleteRegistration(ctx, *value, fields...)

	case models.LoginIdentity:
		return v.validateLoginIdentity(ctx, value, fields...)
	case *models.LoginIdentity:
		return v.validateLoginIdentity(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialValidator) validateCompleteRegistration(_ context.Context, completion models.CompleteRegistration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFingerprint, FieldWrappedKey, FieldWrappedKeyHMAC, FieldAlgorithm}
	}

	for _, f := range fields {
		switch f {
		case FieldFingerprint:
			if len(completion.Fingerprint) == 0 {
				return ErrEmptyFingerprint
			}
		case FieldWrappedKey:
			if len(completion.WrappedKey) == 0 {
				return ErrEmptyWrappedKey
			}
		case FieldWrappedKeyHMAC:
			if len(completion.WrappedKeyHMAC) == 0 {
				return ErrEmptyWrappedKeyHMAC
			}
		case FieldAlgorithm:
			if !completion.Algorithm.Valid() {
				return ErrUnknownAlgorithm
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validateLoginIdentity(_ context.Context, identity models.LoginIdentity, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentity, FieldAuthHash}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentity:
			if identity.UserID == uuid.Nil && len(identity.Fingerprint) == 0 {
				return ErrNoIdentity
			}
		case FieldAuthHash:
			if len(identity.AuthHash) == 0 {
				return ErrEmptyAuthHash
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
