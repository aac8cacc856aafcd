package validators

import (
	"context"

	"github.com/apmod1/password-manager/models"
)

const (
	FieldEncryptedData = "encrypted_data"
	FieldUpdate        = "update"
)

// VaultItemValidator validates vault items and item updates before they
// reach storage. The encrypted payload is opaque; only its presence is
// checked.
type VaultItemValidator struct {
}

func NewVaultItemValidator() Validator {
	return &VaultItemValidator{}
}

func (v *VaultItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultItem:
		return v.validateVaultItem(ctx, value, fields...)
	case *models.VaultItem:
		return v.validateVaultItem(ctx, *value, fields...)

	case models.VaultItemUpdate:
		return v.validateVaultItemUpdate(ctx, value, fields...)
	case *models.VaultItemUpdate:
		return v.validateVaultItemUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultItemValidator) validateVaultItem(_ context.Context, item models.VaultItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEncryptedData}
	}

	for _, f := range fields {
		switch f {
		case FieldEncryptedData:
			if item.EncryptedData == "" {
				return ErrEmptyEncryptedData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultItemValidator) validateVaultItemUpdate(_ context.Context, update models.VaultItemUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdate}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdate:
			if update.EncryptedData == nil && update.Name == nil {
				return ErrNoFieldsToUpdate
			}
			if update.EncryptedData != nil && *update.EncryptedData == "" {
				return ErrEmptyEncryptedData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
