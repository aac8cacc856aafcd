package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/integrity"
	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/store"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/internal/validators"
	"github.com/apmod1/password-manager/models"
)

// vaultService is the concrete implementation of VaultService. It enforces
// owner scoping on every operation and runs the optional client-side
// integrity check before any write.
type vaultService struct {
	// userRepository resolves the owner's HMAC key material for tag checks.
	userRepository store.UserRepository

	// itemRepository is the data-access layer for encrypted items.
	itemRepository store.ItemRepository

	// validator checks items and item updates before any write.
	validator validators.Validator

	// uuidGenerator mints item identifiers.
	uuidGenerator *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewVaultService constructs a VaultService wired to the given repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewVaultService(userRepository store.UserRepository, itemRepository store.ItemRepository, validator validators.Validator, logger *logger.Logger) VaultService {
	return &vaultService{
		userRepository: userRepository,
		itemRepository: itemRepository,
		validator:      validator,
		uuidGenerator:  utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// ListItems returns the metadata of the user's items ordered by update
// time, most recent first. The encrypted payloads never leave the item
// table through this path.
func (s *vaultService) ListItems(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error) {
	log := logger.FromContext(ctx)

	items, err := s.itemRepository.ListItems(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("listing vault items failed")
		return nil, fmt.Errorf("listing vault items failed: %w", err)
	}

	return items, nil
}

// CreateItem stores a new encrypted item for the user. The item identifier
// is minted here; any caller-supplied value is overwritten.
//
// Returns:
//   - ErrInvalidDataProvided on an empty payload.
//   - ErrHMACKeyUnconfigured if a tag was supplied but the account has no
//     HMAC key material.
//   - ErrIntegrityCheckFailed on a tag mismatch; nothing is written.
func (s *vaultService) CreateItem(ctx context.Context, userID uuid.UUID, item models.VaultItem, tag []byte) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, item); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("invalid vault item")
		return models.VaultItem{}, errors.Join(ErrInvalidDataProvided, err)
	}

	if err := s.verifyTag(ctx, userID, item.EncryptedData, tag); err != nil {
		return models.VaultItem{}, err
	}

	item.ItemID = s.uuidGenerator.Generate()
	item.UserID = userID
	created, err := s.itemRepository.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("vault item creation ended with error")
		return models.VaultItem{}, fmt.Errorf("vault item creation ended with error: %w", err)
	}

	return created, nil
}

// GetItem returns the full item, ciphertext included.
//
// Returns ErrNotFound when the item does not exist or belongs to a
// different user; the two cases are indistinguishable to the caller.
func (s *vaultService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	item, err := s.itemRepository.GetItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return models.VaultItem{}, ErrNotFound
		}
		log.Err(err).Str("itemID", itemID.String()).Msg("vault item lookup failed")
		return models.VaultItem{}, fmt.Errorf("vault item lookup failed: %w", err)
	}

	return item, nil
}

// UpdateItem applies the non-nil fields of update and refreshes the update
// timestamp. When the payload is replaced and a tag is supplied, the tag is
// verified against the replacement ciphertext before the write.
//
// Returns the same error kinds as CreateItem plus ErrNotFound for a missing
// or foreign item.
func (s *vaultService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate, tag []byte) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, update); err != nil {
		log.Error().Err(err).Str("itemID", itemID.String()).Msg("invalid vault item update")
		return models.VaultItem{}, errors.Join(ErrInvalidDataProvided, err)
	}

	if update.EncryptedData != nil {
		if err := s.verifyTag(ctx, userID, *update.EncryptedData, tag); err != nil {
			return models.VaultItem{}, err
		}
	}

	updated, err := s.itemRepository.UpdateItem(ctx, userID, itemID, update)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return models.VaultItem{}, ErrNotFound
		}
		log.Err(err).Str("itemID", itemID.String()).Msg("vault item update ended with error")
		return models.VaultItem{}, fmt.Errorf("vault item update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteItem removes the item permanently. Returns ErrNotFound for a
// missing or foreign item.
func (s *vaultService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := s.itemRepository.DeleteItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return ErrNotFound
		}
		log.Err(err).Str("itemID", itemID.String()).Msg("vault item deletion ended with error")
		return fmt.Errorf("vault item deletion ended with error: %w", err)
	}

	return nil
}

// verifyTag runs the optional client integrity check: the tag is an
// HMAC-SHA256 over the ciphertext, keyed by the account's stored HMAC-words
// hash. A nil tag skips the check entirely.
func (s *vaultService) verifyTag(ctx context.Context, userID uuid.UUID, encryptedData string, tag []byte) error {
	if len(tag) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if len(user.HMACWordsHash) == 0 {
		log.Warn().Str("userID", userID.String()).Msg("integrity tag supplied without configured HMAC key")
		return ErrHMACKeyUnconfigured
	}

	if !integrity.Verify(user.HMACWordsHash, []byte(encryptedData), tag) {
		log.Warn().Str("userID", userID.String()).Msg("vault item integrity check failed")
		return ErrIntegrityCheckFailed
	}

	return nil
}
