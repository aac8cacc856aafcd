package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/config"
	"github.com/apmod1/password-manager/internal/integrity"
	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/session"
	"github.com/apmod1/password-manager/internal/store"
	"github.com/apmod1/password-manager/internal/totp"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/internal/validators"
	"github.com/apmod1/password-manager/internal/words"
	"github.com/apmod1/password-manager/models"
)

// registrationService is the concrete implementation of RegistrationService.
// It keeps the whole pending enrollment inside a session transaction record:
// the user directory and the device directory are touched only at Complete,
// so an abandoned registration leaves no rows behind.
type registrationService struct {
	// userRepository persists the finalized account at completion.
	userRepository store.UserRepository

	// deviceRepository persists the confirmed authenticator at completion.
	deviceRepository store.DeviceRepository

	// transactions holds the pending registration between steps.
	transactions session.Store

	// wordGenerator draws the secret word set at initiation.
	wordGenerator *words.Generator

	// validator checks the credential material submitted at completion.
	validator validators.Validator

	// uuidGenerator mints candidate account identifiers.
	uuidGenerator *utils.UUIDGenerator

	// totpIssuer is the issuer label embedded in provisioning URIs.
	totpIssuer string

	// wordCount is how many secret words an enrollment draws. Always even:
	// the first half authenticates, the second half keys integrity tags.
	wordCount int

	// registrationTTL bounds the enrollment window.
	registrationTTL time.Duration

	// now is the clock. Overridable in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewRegistrationService constructs a RegistrationService wired to the given
// repositories and transaction store, with protocol parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewRegistrationService(
	userRepository store.UserRepository,
	deviceRepository store.DeviceRepository,
	transactions session.Store,
	wordGenerator *words.Generator,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) RegistrationService {
	return &registrationService{
		userRepository:   userRepository,
		deviceRepository: deviceRepository,
		transactions:     transactions,
		wordGenerator:    wordGenerator,
		validator:        validator,
		uuidGenerator:    utils.NewUUIDGenerator(),
		totpIssuer:       cfg.TOTPIssuer,
		wordCount:        cfg.WordCount,
		registrationTTL:  cfg.RegistrationTTL,
		now:              time.Now,
		logger:           logger,
	}
}

// Initiate starts a new enrollment for the session.
//
// It mints a candidate account identifier, draws the secret word set, and
// generates a fresh TOTP secret with its otpauth:// provisioning URI. The
// whole pending state is written as the session's registration transaction,
// replacing any earlier attempt of the same session.
func (s *registrationService) Initiate(ctx context.Context, sessionKey string) (models.RegistrationChallenge, error) {
	log := logger.FromContext(ctx)

	if sessionKey == "" {
		log.Error().Msg("empty session key on registration initiation")
		return models.RegistrationChallenge{}, ErrInvalidDataProvided
	}

	generated, err := s.wordGenerator.Generate(s.wordCount)
	if err != nil {
		log.Err(err).Msg("secret word generation failed")
		return models.RegistrationChallenge{}, fmt.Errorf("secret word generation failed: %w", err)
	}
	authWords, hmacWords := words.Split(generated)

	secret, err := totp.GenerateSecret()
	if err != nil {
		log.Err(err).Msg("totp secret generation failed")
		return models.RegistrationChallenge{}, fmt.Errorf("totp secret generation failed: %w", err)
	}

	userID := s.uuidGenerator.Generate()

	uri, err := totp.ProvisioningURI(totp.ProvisioningParams{
		Secret:      secret,
		Issuer:      s.totpIssuer,
		AccountName: userID.String(),
	})
	if err != nil {
		log.Err(err).Msg("building provisioning URI failed")
		return models.RegistrationChallenge{}, fmt.Errorf("building provisioning URI failed: %w", err)
	}

	transaction := models.RegistrationTransaction{
		UserID:     userID,
		AuthWords:  authWords,
		HMACWords:  hmacWords,
		TOTPSecret: secret,
		CreatedAt:  s.now(),
	}
	// Store TTL is a garbage-collection backstop; the read-time Age check
	// in getTransaction owns the enrollment window.
	if err = s.transactions.Put(ctx, sessionKey, models.KindRegistration, transaction, 2*s.registrationTTL); err != nil {
		log.Err(err).Msg("storing registration transaction failed")
		return models.RegistrationChallenge{}, fmt.Errorf("storing registration transaction failed: %w", err)
	}

	log.Info().Str("userID", userID.String()).Msg("registration initiated")

	return models.RegistrationChallenge{
		UserID:          userID,
		Words:           generated,
		TOTPSecret:      secret,
		ProvisioningURI: uri,
	}, nil
}

// VerifyTOTP confirms the pending authenticator with a one-time code.
//
// Returns:
//   - ErrSessionExpired if the session has no live registration transaction.
//   - ErrInvalidCode if the code does not verify or replays an already
//     accepted counter. The transaction is kept, so the client may retry.
func (s *registrationService) VerifyTOTP(ctx context.Context, sessionKey, code string) error {
	log := logger.FromContext(ctx)

	transaction, err := s.getTransaction(ctx, sessionKey)
	if err != nil {
		return err
	}

	ok, counter, err := totp.VerifyAt(transaction.TOTPSecret, code, s.now())
	if err != nil {
		log.Err(err).Msg("totp verification failed")
		return fmt.Errorf("totp verification failed: %w", err)
	}
	if !ok || counter <= transaction.LastCounter {
		log.Warn().Msg("invalid totp code during registration")
		return ErrInvalidCode
	}

	transaction.TOTPVerified = true
	transaction.LastCounter = counter
	if err = s.transactions.Put(ctx, sessionKey, models.KindRegistration, transaction, 2*s.registrationTTL); err != nil {
		log.Err(err).Msg("updating registration transaction failed")
		return fmt.Errorf("updating registration transaction failed: %w", err)
	}

	return nil
}

// Complete finalizes the enrollment.
//
// It recomputes the HMAC-SHA256 tag of the wrapped key using the space-joined
// HMAC words of the transaction as key material and compares it with the
// client-supplied tag in constant time. Only on a match are the account and
// its confirmed authenticator device persisted, and the transaction removed.
//
// Returns:
//   - ErrSessionExpired if the session has no live registration transaction
//     or the enrollment window elapsed.
//   - ErrTotpNotVerified if the authenticator was never confirmed.
//   - ErrInvalidDataProvided on missing credential material or an unknown
//     unwrap algorithm.
//   - ErrIntegrityCheckFailed on a tag mismatch; nothing is persisted.
//   - A wrapped storage error if persistence fails (e.g. a fingerprint
//     collision — see store.ErrFingerprintAlreadyExists).
func (s *registrationService) Complete(ctx context.Context, sessionKey string, completion models.CompleteRegistration) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	transaction, err := s.getTransaction(ctx, sessionKey)
	if err != nil {
		return uuid.Nil, err
	}

	if !transaction.TOTPVerified {
		log.Warn().Msg("registration completion attempted before totp verification")
		return uuid.Nil, ErrTotpNotVerified
	}

	if err = s.validator.Validate(ctx, completion); err != nil {
		log.Error().Err(err).Msg("invalid credential material on registration completion")
		return uuid.Nil, errors.Join(ErrInvalidDataProvided, err)
	}

	hmacKey := []byte(words.Join(transaction.HMACWords))
	if !integrity.Verify(hmacKey, completion.WrappedKey, completion.WrappedKeyHMAC) {
		log.Warn().Str("userID", transaction.UserID.String()).Msg("wrapped key integrity check failed")
		return uuid.Nil, ErrIntegrityCheckFailed
	}

	user := models.User{
		ID:             transaction.UserID,
		Fingerprint:    completion.Fingerprint,
		WrappedKey:     completion.WrappedKey,
		WrappedKeyHMAC: completion.WrappedKeyHMAC,
		Algorithm:      completion.Algorithm,
		AuthWordsHash:  words.Hash(transaction.AuthWords),
		HMACWordsHash:  words.Hash(transaction.HMACWords),
		Verifier:       completion.Verifier,
		Email:          completion.Email,
	}
	createdUser, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("userID", transaction.UserID.String()).Msg("user creation ended with error")
		return uuid.Nil, fmt.Errorf("user creation ended with error: %w", err)
	}

	device := models.TOTPDevice{
		UserID:      createdUser.ID,
		Secret:      transaction.TOTPSecret,
		Confirmed:   true,
		LastCounter: transaction.LastCounter,
	}
	if _, err = s.deviceRepository.CreateDevice(ctx, device); err != nil {
		log.Err(err).Str("userID", createdUser.ID.String()).Msg("device creation ended with error")
		return uuid.Nil, fmt.Errorf("device creation ended with error: %w", err)
	}

	if err = s.transactions.Delete(ctx, sessionKey, models.KindRegistration); err != nil {
		log.Err(err).Msg("deleting registration transaction failed")
	}

	log.Info().Str("userID", createdUser.ID.String()).Msg("registration completed")

	return createdUser.ID, nil
}

// getTransaction loads the session's registration transaction, enforcing the
// enrollment window at read time.
func (s *registrationService) getTransaction(ctx context.Context, sessionKey string) (models.RegistrationTransaction, error) {
	log := logger.FromContext(ctx)

	var transaction models.RegistrationTransaction
	if err := s.transactions.Get(ctx, sessionKey, models.KindRegistration, &transaction); err != nil {
		log.Warn().Err(err).Msg("no live registration transaction")
		return models.RegistrationTransaction{}, ErrSessionExpired
	}

	if transaction.Age(s.now()) > s.registrationTTL {
		if err := s.transactions.Delete(ctx, sessionKey, models.KindRegistration); err != nil {
			log.Err(err).Msg("deleting stale registration transaction failed")
		}
		return models.RegistrationTransaction{}, ErrSessionExpired
	}

	return transaction, nil
}
